// Package memory provides in-memory storage implementations, used in tests
// and for running the tracker without a database.
package memory

import (
	"context"
	"sync"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// SignatureStore is an in-memory implementation of storage.ProcessedSignatureStore.
type SignatureStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ProcessedSignature
}

// NewSignatureStore creates a new in-memory processed-signature store.
func NewSignatureStore() *SignatureStore {
	return &SignatureStore{
		data: make(map[string]*domain.ProcessedSignature),
	}
}

// Compile-time interface check.
var _ storage.ProcessedSignatureStore = (*SignatureStore)(nil)

// Insert adds a record. Returns ErrDuplicateKey if the signature exists.
func (s *SignatureStore) Insert(_ context.Context, rec *domain.ProcessedSignature) error {
	if rec == nil || rec.Signature == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[rec.Signature]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *rec
	s.data[rec.Signature] = &copy
	return nil
}

// Get retrieves a record by signature. Returns ErrNotFound if absent.
func (s *SignatureStore) Get(_ context.Context, signature string) (*domain.ProcessedSignature, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[signature]
	if !ok {
		return nil, storage.ErrNotFound
	}

	copy := *rec
	return &copy, nil
}
