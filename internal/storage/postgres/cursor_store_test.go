package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
	pgstore "github.com/Techcifa/sol-wallet-tracker/internal/storage/postgres"
)

func TestCursorStore_SetAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := pgstore.NewCursorStore(pool)

	_, err := store.Get(ctx, storage.CursorKeyLastProcessedSlot)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, store.Set(ctx, storage.CursorKeyLastProcessedSlot, 250000000))

	v, err := store.Get(ctx, storage.CursorKeyLastProcessedSlot)
	require.NoError(t, err)
	assert.Equal(t, int64(250000000), v)
}

func TestCursorStore_SetOverwrites(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := pgstore.NewCursorStore(pool)

	require.NoError(t, store.Set(ctx, storage.CursorKeyLastProcessedSlot, 100))
	require.NoError(t, store.Set(ctx, storage.CursorKeyLastProcessedSlot, 200))

	v, err := store.Get(ctx, storage.CursorKeyLastProcessedSlot)
	require.NoError(t, err)
	assert.Equal(t, int64(200), v)
}
