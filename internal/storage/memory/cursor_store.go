package memory

import (
	"context"
	"sync"

	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// CursorStore is an in-memory implementation of storage.CursorStore.
type CursorStore struct {
	mu   sync.RWMutex
	data map[string]int64
}

// NewCursorStore creates a new in-memory cursor store.
func NewCursorStore() *CursorStore {
	return &CursorStore{data: make(map[string]int64)}
}

// Compile-time interface check.
var _ storage.CursorStore = (*CursorStore)(nil)

// Get retrieves a cursor value. Returns ErrNotFound if the key is absent.
func (s *CursorStore) Get(_ context.Context, key string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return v, nil
}

// Set overwrites a cursor value.
func (s *CursorStore) Set(_ context.Context, key string, value int64) error {
	if key == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}
