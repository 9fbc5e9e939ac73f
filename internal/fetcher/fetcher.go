// Package fetcher retrieves confirmed transactions with bounded retries.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Techcifa/sol-wallet-tracker/internal/observability"
	"github.com/Techcifa/sol-wallet-tracker/internal/solana"
)

const (
	// DefaultMaxAttempts bounds how many times we ask the RPC node for a
	// transaction before giving up on it permanently.
	DefaultMaxAttempts = 5

	// DefaultBaseDelay is the first backoff interval; it doubles after
	// each attempt.
	DefaultBaseDelay = 500 * time.Millisecond
)

// Fetcher fetches transactions by signature, retrying while the RPC node
// has not yet made the transaction visible. A transaction that never turns
// up within the retry budget is a permanent miss.
type Fetcher struct {
	client      solana.RPCClient
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxAttempts overrides the retry budget.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxAttempts = n
		}
	}
}

// WithBaseDelay overrides the initial backoff interval.
func WithBaseDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.baseDelay = d
		}
	}
}

// withSleep replaces the backoff sleep, for tests.
func withSleep(sleep func(ctx context.Context, d time.Duration)) Option {
	return func(f *Fetcher) {
		f.sleep = sleep
	}
}

// New creates a Fetcher using the given RPC client.
func New(client solana.RPCClient, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:      client,
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves the transaction for signature. It returns (nil, nil) when
// the transaction never became visible within the retry budget; the caller
// decides what a permanent miss means. A non-nil error is only returned
// when the context is cancelled.
//
// The backoff sleep runs after every unsuccessful attempt, including the
// final one before giving up.
func (f *Fetcher) Fetch(ctx context.Context, signature string) (*solana.Transaction, error) {
	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		observability.RecordFetchAttempt()

		tx, err := f.client.GetTransaction(ctx, signature)
		if err == nil && tx != nil {
			return tx, nil
		}

		switch {
		case err == nil:
			// Confirmed on the websocket but not yet queryable over
			// HTTP; the node needs a moment.
			log.Printf("[fetcher] %s not yet visible (attempt %d/%d)", signature, attempt+1, f.maxAttempts)
		case errors.Is(err, solana.ErrRateLimited):
			observability.RecordFetchRateLimited()
			log.Printf("[fetcher] rate limited fetching %s (attempt %d/%d)", signature, attempt+1, f.maxAttempts)
		case ctx.Err() != nil:
			return nil, fmt.Errorf("fetch %s: %w", signature, ctx.Err())
		default:
			log.Printf("[fetcher] fetch %s failed (attempt %d/%d): %v", signature, attempt+1, f.maxAttempts, err)
		}

		f.sleep(ctx, f.baseDelay*(1<<attempt))
		if ctx.Err() != nil {
			return nil, fmt.Errorf("fetch %s: %w", signature, ctx.Err())
		}
	}

	observability.RecordFetchForfeited()
	log.Printf("[fetcher] giving up on %s after %d attempts", signature, f.maxAttempts)
	return nil, nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
