package solana

import "context"

// WSClient defines the Solana WebSocket subscription interface.
type WSClient interface {
	// SubscribeLogs subscribes to logs matching the filter and returns a
	// handle carrying the notification channel.
	SubscribeLogs(ctx context.Context, filter LogsFilter) (*Subscription, error)

	// Unsubscribe cancels a subscription and closes its channel.
	// Unsubscribing an already-cancelled subscription is a no-op.
	Unsubscribe(ctx context.Context, sub *Subscription) error

	// Close closes the WebSocket connection and all subscriptions.
	Close() error
}

// LogsFilter defines a subscription filter for logs.
type LogsFilter struct {
	// Mentions filters logs that mention any of these account addresses.
	Mentions []string
}

// Subscription is a live logs subscription handle.
type Subscription struct {
	// C delivers notifications until the subscription is cancelled.
	C <-chan LogNotification

	id int64
}

// ID returns the server-assigned subscription ID.
func (s *Subscription) ID() int64 { return s.id }

// LogNotification represents one logsNotification message.
type LogNotification struct {
	Signature string
	Slot      int64
	Logs      []string
	Err       interface{}
}
