// Package storage defines the durable-store contracts consumed by the
// tracker core and their shared error values.
package storage

import (
	"context"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
)

// CursorKeyLastProcessedSlot is the system_state key holding the
// highest fully-processed slot watermark.
const CursorKeyLastProcessedSlot = "last_processed_slot"

// ProcessedSignatureStore provides access to processed_txs storage.
// Records are append-only: written once per signature, never updated.
type ProcessedSignatureStore interface {
	// Insert adds a record. Returns ErrDuplicateKey if the signature exists;
	// callers treat that as success (idempotent handling already happened).
	Insert(ctx context.Context, rec *domain.ProcessedSignature) error

	// Get retrieves a record by signature. Returns ErrNotFound if absent.
	Get(ctx context.Context, signature string) (*domain.ProcessedSignature, error)
}

// CursorStore provides access to the system_state key/value table.
type CursorStore interface {
	// Get retrieves a cursor value. Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) (int64, error)

	// Set overwrites a cursor value (last-writer-wins).
	Set(ctx context.Context, key string, value int64) error
}

// WatchlistStore provides access to monitored_wallets storage.
type WatchlistStore interface {
	// Upsert adds or replaces a watched wallet keyed by address.
	Upsert(ctx context.Context, w *domain.WatchedWallet) error

	// Delete removes a wallet. Deleting an unknown address is a no-op.
	Delete(ctx context.Context, address string) error

	// List returns all watched wallets ordered by added_at then address.
	List(ctx context.Context) ([]*domain.WatchedWallet, error)
}

// ActivityStore archives classified activities for later analysis.
// The archive is a sink: pipeline writes are best-effort and append-only.
type ActivityStore interface {
	// Insert appends one classified activity.
	Insert(ctx context.Context, a *domain.Activity) error

	// GetByWalletTimeRange retrieves activities for a wallet within
	// [start, end) block time, ordered by block time then signature.
	GetByWalletTimeRange(ctx context.Context, wallet string, start, end int64) ([]*domain.Activity, error)
}
