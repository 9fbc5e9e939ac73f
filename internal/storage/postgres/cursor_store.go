package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// CursorStore implements storage.CursorStore using the system_state table.
type CursorStore struct {
	pool *Pool
}

// NewCursorStore creates a new CursorStore.
func NewCursorStore(pool *Pool) *CursorStore {
	return &CursorStore{pool: pool}
}

// Compile-time interface check.
var _ storage.CursorStore = (*CursorStore)(nil)

// Get retrieves a cursor value. Returns ErrNotFound if the key is absent.
func (s *CursorStore) Get(ctx context.Context, key string) (int64, error) {
	query := `SELECT value FROM system_state WHERE key = $1`

	var raw string
	err := s.pool.QueryRow(ctx, query, key).Scan(&raw)
	if err != nil {
		if isNotFoundError(err) {
			return 0, storage.ErrNotFound
		}
		return 0, fmt.Errorf("get cursor %q: %w", key, err)
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse cursor %q value %q: %w", key, raw, err)
	}
	return value, nil
}

// Set overwrites a cursor value (last-writer-wins).
func (s *CursorStore) Set(ctx context.Context, key string, value int64) error {
	if key == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO system_state (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := s.pool.Exec(ctx, query, key, strconv.FormatInt(value, 10), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("set cursor %q: %w", key, err)
	}
	return nil
}
