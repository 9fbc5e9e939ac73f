// Package pipeline runs one dispatched signature end to end: fetch,
// attribute, classify, deliver.
package pipeline

import (
	"context"
	"log"

	"github.com/Techcifa/sol-wallet-tracker/internal/classifier"
	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/notify"
	"github.com/Techcifa/sol-wallet-tracker/internal/observability"
	"github.com/Techcifa/sol-wallet-tracker/internal/solana"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// TransactionFetcher retrieves a transaction by signature, returning
// (nil, nil) on a permanent miss.
type TransactionFetcher interface {
	Fetch(ctx context.Context, signature string) (*solana.Transaction, error)
}

// Coordinator turns a signature into an alert. Every failure is absorbed
// and logged: one bad transaction must never tear down the notification
// stream that dispatched it.
type Coordinator struct {
	fetcher   TransactionFetcher
	watchlist storage.WatchlistStore
	notifier  notify.Notifier
	archive   storage.ActivityStore // optional
}

// Options configures a Coordinator.
type Options struct {
	Fetcher   TransactionFetcher
	Watchlist storage.WatchlistStore
	Notifier  notify.Notifier
	Archive   storage.ActivityStore // nil disables archiving
}

// NewCoordinator creates a pipeline coordinator.
func NewCoordinator(opts Options) *Coordinator {
	return &Coordinator{
		fetcher:   opts.Fetcher,
		watchlist: opts.Watchlist,
		notifier:  opts.Notifier,
		archive:   opts.Archive,
	}
}

// Run processes one dispatched signature. The signature has already been
// marked processed by the caller; a fetch miss therefore forfeits the alert
// permanently.
func (c *Coordinator) Run(ctx context.Context, signature string) {
	tx, err := c.fetcher.Fetch(ctx, signature)
	if err != nil {
		log.Printf("[pipeline] fetch aborted for %s: %v", signature, err)
		return
	}
	if tx == nil {
		// Permanent miss; counted and logged by the fetcher.
		return
	}

	wallet := c.attribute(ctx, tx)
	if wallet == "" {
		log.Printf("[pipeline] no watched wallet in account keys for %s", signature)
		return
	}

	activity := classifier.Classify(tx, wallet)
	if activity == nil {
		return
	}
	observability.RecordActivity(string(activity.Type))

	c.deliver(ctx, activity)
}

// attribute returns the first watched address found among the transaction's
// account keys. A transaction touching two watched wallets is attributed to
// only one.
func (c *Coordinator) attribute(ctx context.Context, tx *solana.Transaction) string {
	wallets, err := c.watchlist.List(ctx)
	if err != nil {
		log.Printf("[pipeline] watchlist read failed: %v", err)
		return ""
	}

	watched := make(map[string]struct{}, len(wallets))
	for _, w := range wallets {
		watched[w.Address] = struct{}{}
	}

	for _, key := range tx.Message.AccountKeys {
		if _, ok := watched[key]; ok {
			return key
		}
	}
	return ""
}

func (c *Coordinator) deliver(ctx context.Context, activity *domain.Activity) {
	observability.RecordAlertSent()
	if err := c.notifier.Notify(ctx, activity); err != nil {
		observability.RecordNotifierError()
		log.Printf("[pipeline] notify failed for %s: %v", activity.Signature, err)
	}

	if c.archive == nil {
		return
	}
	if err := c.archive.Insert(ctx, activity); err != nil {
		observability.RecordArchiveError()
		log.Printf("[pipeline] archive write failed for %s: %v", activity.Signature, err)
	}
}
