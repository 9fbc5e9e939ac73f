package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// WatchlistStore is an in-memory implementation of storage.WatchlistStore.
type WatchlistStore struct {
	mu   sync.RWMutex
	data map[string]*domain.WatchedWallet
}

// NewWatchlistStore creates a new in-memory watchlist store.
func NewWatchlistStore() *WatchlistStore {
	return &WatchlistStore{data: make(map[string]*domain.WatchedWallet)}
}

// Compile-time interface check.
var _ storage.WatchlistStore = (*WatchlistStore)(nil)

// Upsert adds or replaces a watched wallet keyed by address.
func (s *WatchlistStore) Upsert(_ context.Context, w *domain.WatchedWallet) error {
	if w == nil || w.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *w
	s.data[w.Address] = &copy
	return nil
}

// Delete removes a wallet. Deleting an unknown address is a no-op.
func (s *WatchlistStore) Delete(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, address)
	return nil
}

// List returns all watched wallets ordered by added_at then address.
func (s *WatchlistStore) List(_ context.Context) ([]*domain.WatchedWallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wallets := make([]*domain.WatchedWallet, 0, len(s.data))
	for _, w := range s.data {
		copy := *w
		wallets = append(wallets, &copy)
	}

	sort.Slice(wallets, func(i, j int) bool {
		if wallets[i].AddedAt != wallets[j].AddedAt {
			return wallets[i].AddedAt < wallets[j].AddedAt
		}
		return wallets[i].Address < wallets[j].Address
	})

	return wallets, nil
}
