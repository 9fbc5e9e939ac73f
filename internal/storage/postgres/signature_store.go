package postgres

import (
	"context"
	"fmt"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// SignatureStore implements storage.ProcessedSignatureStore using PostgreSQL.
type SignatureStore struct {
	pool *Pool
}

// NewSignatureStore creates a new SignatureStore.
func NewSignatureStore(pool *Pool) *SignatureStore {
	return &SignatureStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ProcessedSignatureStore = (*SignatureStore)(nil)

// Insert adds a processed-signature record. Returns ErrDuplicateKey if the
// signature already exists.
func (s *SignatureStore) Insert(ctx context.Context, rec *domain.ProcessedSignature) error {
	if rec == nil || rec.Signature == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO processed_txs (signature, slot, processed_at)
		VALUES ($1, $2, $3)
	`

	_, err := s.pool.Exec(ctx, query, rec.Signature, rec.Slot, rec.ProcessedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert processed signature: %w", err)
	}
	return nil
}

// Get retrieves a record by signature. Returns ErrNotFound if absent.
func (s *SignatureStore) Get(ctx context.Context, signature string) (*domain.ProcessedSignature, error) {
	query := `
		SELECT signature, slot, processed_at
		FROM processed_txs
		WHERE signature = $1
	`

	var rec domain.ProcessedSignature
	err := s.pool.QueryRow(ctx, query, signature).Scan(&rec.Signature, &rec.Slot, &rec.ProcessedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get processed signature: %w", err)
	}

	return &rec, nil
}
