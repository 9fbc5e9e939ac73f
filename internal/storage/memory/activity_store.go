package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// ActivityStore is an in-memory implementation of storage.ActivityStore.
type ActivityStore struct {
	mu   sync.RWMutex
	data []*domain.Activity
}

// NewActivityStore creates a new in-memory activity archive.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{}
}

// Compile-time interface check.
var _ storage.ActivityStore = (*ActivityStore)(nil)

// Insert appends one classified activity.
func (s *ActivityStore) Insert(_ context.Context, a *domain.Activity) error {
	if a == nil || a.Signature == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copy := *a
	s.data = append(s.data, &copy)
	return nil
}

// GetByWalletTimeRange retrieves activities for a wallet within [start, end).
func (s *ActivityStore) GetByWalletTimeRange(_ context.Context, wallet string, start, end int64) ([]*domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Activity
	for _, a := range s.data {
		if a.Wallet == wallet && a.Timestamp >= start && a.Timestamp < end {
			copy := *a
			out = append(out, &copy)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp != out[j].Timestamp {
			return out[i].Timestamp < out[j].Timestamp
		}
		return out[i].Signature < out[j].Signature
	})

	return out, nil
}
