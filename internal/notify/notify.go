// Package notify delivers classified wallet activities to humans.
package notify

import (
	"context"
	"log"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
)

// Notifier delivers one activity alert. Implementations are expected to be
// safe for concurrent use; the pipeline treats delivery as fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, activity *domain.Activity) error
}

// LogNotifier writes alerts to the process log. It is the default sink when
// no Telegram credentials are configured.
type LogNotifier struct{}

var _ Notifier = LogNotifier{}

// Notify logs the activity.
func (LogNotifier) Notify(_ context.Context, a *domain.Activity) error {
	switch {
	case a.SourceToken != nil && a.DestToken != nil:
		log.Printf("[notify] %s %s: %+.6f %s -> %+.6f %s via %s (sig %s)",
			a.Wallet, a.Type, a.SourceToken.Amount, a.SourceToken.Mint,
			a.DestToken.Amount, a.DestToken.Mint, a.Program, a.Signature)
	case a.SourceToken != nil:
		log.Printf("[notify] %s %s: %+.6f %s via %s (sig %s)",
			a.Wallet, a.Type, a.SourceToken.Amount, a.SourceToken.Mint, a.Program, a.Signature)
	case a.DestToken != nil:
		log.Printf("[notify] %s %s: %+.6f %s via %s (sig %s)",
			a.Wallet, a.Type, a.DestToken.Amount, a.DestToken.Mint, a.Program, a.Signature)
	default:
		log.Printf("[notify] %s %s via %s (sig %s)", a.Wallet, a.Type, a.Program, a.Signature)
	}
	return nil
}
