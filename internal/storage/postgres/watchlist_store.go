package postgres

import (
	"context"
	"fmt"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// WatchlistStore implements storage.WatchlistStore using PostgreSQL.
type WatchlistStore struct {
	pool *Pool
}

// NewWatchlistStore creates a new WatchlistStore.
func NewWatchlistStore(pool *Pool) *WatchlistStore {
	return &WatchlistStore{pool: pool}
}

// Compile-time interface check.
var _ storage.WatchlistStore = (*WatchlistStore)(nil)

// Upsert adds or replaces a watched wallet keyed by address.
func (s *WatchlistStore) Upsert(ctx context.Context, w *domain.WatchedWallet) error {
	if w == nil || w.Address == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO monitored_wallets (address, label, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO UPDATE SET label = EXCLUDED.label, added_at = EXCLUDED.added_at
	`

	_, err := s.pool.Exec(ctx, query, w.Address, w.Label, w.AddedAt)
	if err != nil {
		return fmt.Errorf("upsert watched wallet: %w", err)
	}
	return nil
}

// Delete removes a wallet. Deleting an unknown address is a no-op.
func (s *WatchlistStore) Delete(ctx context.Context, address string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM monitored_wallets WHERE address = $1`, address)
	if err != nil {
		return fmt.Errorf("delete watched wallet: %w", err)
	}
	return nil
}

// List returns all watched wallets ordered by added_at then address.
func (s *WatchlistStore) List(ctx context.Context) ([]*domain.WatchedWallet, error) {
	query := `
		SELECT address, label, added_at
		FROM monitored_wallets
		ORDER BY added_at ASC, address ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list watched wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*domain.WatchedWallet
	for rows.Next() {
		var w domain.WatchedWallet
		if err := rows.Scan(&w.Address, &w.Label, &w.AddedAt); err != nil {
			return nil, fmt.Errorf("scan watched wallet row: %w", err)
		}
		wallets = append(wallets, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watched wallet rows: %w", err)
	}

	return wallets, nil
}
