// walletctl manages the tracker's wallet watch-list.
//
// Usage:
//
//	walletctl [flags] add <address> [label]
//	walletctl [flags] remove <address>
//	walletctl [flags] list
//
// The running tracker picks up watch-list changes on restart.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/solana"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage/migrations"
	pgstore "github.com/Techcifa/sol-wallet-tracker/internal/storage/postgres"
	sqlstore "github.com/Techcifa/sol-wallet-tracker/internal/storage/sqlite"
)

func main() {
	sqlitePath := flag.String("sqlite-path", "./data/tracker.db", "SQLite database path")
	postgresDSN := flag.String("postgres-dsn", "", "PostgreSQL connection string (overrides sqlite)")
	flag.Parse()

	logger := log.New(os.Stderr, "[walletctl] ", 0)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	store, cleanup, err := openWatchlist(ctx, *sqlitePath, *postgresDSN)
	if err != nil {
		logger.Fatalf("Open storage: %v", err)
	}
	defer cleanup()

	switch args[0] {
	case "add":
		err = runAdd(ctx, store, args[1:])
	case "remove":
		err = runRemove(ctx, store, args[1:])
	case "list":
		err = runList(ctx, store)
	default:
		logger.Fatalf("Unknown command: %s", args[0])
	}
	if err != nil {
		logger.Fatalf("Error: %v", err)
	}
}

func openWatchlist(ctx context.Context, sqlitePath, postgresDSN string) (storage.WatchlistStore, func(), error) {
	if postgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		return pgstore.NewWatchlistStore(pool), pool.Close, nil
	}

	db, err := sqlstore.Open(ctx, sqlitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	return sqlstore.NewWatchlistStore(db), func() { db.Close() }, nil
}

func runAdd(ctx context.Context, store storage.WatchlistStore, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: walletctl add <address> [label]")
	}
	address := args[0]
	if err := solana.ValidateWalletAddress(address); err != nil {
		return fmt.Errorf("invalid address %s: %w", address, err)
	}

	label := ""
	if len(args) > 1 {
		label = args[1]
	}

	err := store.Upsert(ctx, &domain.WatchedWallet{
		Address: address,
		Label:   label,
		AddedAt: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("add wallet: %w", err)
	}
	fmt.Printf("Added %s\n", address)
	return nil
}

func runRemove(ctx context.Context, store storage.WatchlistStore, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: walletctl remove <address>")
	}
	if err := store.Delete(ctx, args[0]); err != nil {
		return fmt.Errorf("remove wallet: %w", err)
	}
	fmt.Printf("Removed %s\n", args[0])
	return nil
}

func runList(ctx context.Context, store storage.WatchlistStore) error {
	wallets, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list wallets: %w", err)
	}
	if len(wallets) == 0 {
		fmt.Println("Watch-list is empty")
		return nil
	}
	for _, w := range wallets {
		added := time.UnixMilli(w.AddedAt).UTC().Format(time.RFC3339)
		if w.Label != "" {
			fmt.Printf("%s  %s  (added %s)\n", w.Address, w.Label, added)
		} else {
			fmt.Printf("%s  (added %s)\n", w.Address, added)
		}
	}
	return nil
}
