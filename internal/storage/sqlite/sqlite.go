// Package sqlite implements the storage contracts on SQLite, the tracker's
// default single-file backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// DB wraps sql.DB for dependency injection across the sqlite stores.
type DB struct {
	*sql.DB
	path string
}

// Open opens (creating if needed) the tracker database at path and applies
// the schema.
func Open(ctx context.Context, path string) (*DB, error) {
	if path == "" {
		return nil, storage.ErrInvalidInput
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite does not benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	wrapped := &DB{DB: db, path: path}
	if err := wrapped.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return wrapped, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.DB.Close()
}

// migrate applies the idempotent schema.
func (d *DB) migrate(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS processed_txs (
			signature    TEXT PRIMARY KEY,
			slot         INTEGER NOT NULL,
			processed_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS monitored_wallets (
			address  TEXT PRIMARY KEY,
			label    TEXT,
			added_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS system_state (
			key        TEXT PRIMARY KEY,
			value      TEXT,
			updated_at INTEGER NOT NULL
		)`,
	}

	for _, stmt := range schema {
		if _, err := d.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return nil
}

// isDuplicateKeyError checks if error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}

	return false
}

// isNotFoundError checks if error indicates no rows found.
func isNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
