package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	pgstore "github.com/Techcifa/sol-wallet-tracker/internal/storage/postgres"
)

func TestWatchlistStore_UpsertListDelete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := pgstore.NewWatchlistStore(pool)

	wallets := []*domain.WatchedWallet{
		{Address: "walletB", Label: "second", AddedAt: 2000},
		{Address: "walletA", Label: "third", AddedAt: 3000},
		{Address: "walletC", Label: "first", AddedAt: 1000},
	}
	for _, w := range wallets {
		require.NoError(t, store.Upsert(ctx, w))
	}

	got, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "walletC", got[0].Address)
	assert.Equal(t, "walletB", got[1].Address)
	assert.Equal(t, "walletA", got[2].Address)

	// Upsert replaces the label without duplicating the row.
	require.NoError(t, store.Upsert(ctx, &domain.WatchedWallet{Address: "walletC", Label: "renamed", AddedAt: 1000}))
	got, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "renamed", got[0].Label)

	require.NoError(t, store.Delete(ctx, "walletB"))
	require.NoError(t, store.Delete(ctx, "neverAdded"))

	got, err = store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
