package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// CursorStore implements storage.CursorStore using the system_state table.
type CursorStore struct {
	db *DB
}

// NewCursorStore creates a new CursorStore.
func NewCursorStore(db *DB) *CursorStore {
	return &CursorStore{db: db}
}

// Compile-time interface check.
var _ storage.CursorStore = (*CursorStore)(nil)

// Get retrieves a cursor value. Returns ErrNotFound if the key is absent.
func (s *CursorStore) Get(ctx context.Context, key string) (int64, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM system_state WHERE key = ?`, key,
	).Scan(&raw)
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

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO system_state (key, value, updated_at) VALUES (?, ?, ?)`,
		key, strconv.FormatInt(value, 10), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("set cursor %q: %w", key, err)
	}
	return nil
}
