package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Techcifa/sol-wallet-tracker/internal/config"
	"github.com/Techcifa/sol-wallet-tracker/internal/fetcher"
	"github.com/Techcifa/sol-wallet-tracker/internal/metadata"
	"github.com/Techcifa/sol-wallet-tracker/internal/monitor"
	"github.com/Techcifa/sol-wallet-tracker/internal/notify"
	"github.com/Techcifa/sol-wallet-tracker/internal/observability"
	"github.com/Techcifa/sol-wallet-tracker/internal/pipeline"
	"github.com/Techcifa/sol-wallet-tracker/internal/solana"
	"github.com/Techcifa/sol-wallet-tracker/internal/state"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
	chstore "github.com/Techcifa/sol-wallet-tracker/internal/storage/clickhouse"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage/memory"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage/migrations"
	pgstore "github.com/Techcifa/sol-wallet-tracker/internal/storage/postgres"
	sqlstore "github.com/Techcifa/sol-wallet-tracker/internal/storage/sqlite"
)

func main() {
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics HTTP address (defaults to :METRICS_PORT)")
	flag.Parse()

	logger := log.New(os.Stdout, "[tracker] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Load config: %v", err)
	}
	logger.Printf("Storage backend: %s, telegram token: %s", cfg.StorageBackend, cfg.MaskedTelegramToken())

	addr := *metricsAddr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.MetricsPort)
	}
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.Handler())
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})
		logger.Printf("Starting metrics server on %s", addr)
		if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
			logger.Printf("Metrics server error: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
		}
	}()

	err = run(ctx, logger, cfg)

	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Error: %v", err)
	}
	logger.Println("Shutdown complete")
}

func run(ctx context.Context, logger *log.Logger, cfg *config.Config) error {
	stores, cleanup, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	rpc := solana.NewHTTPClient(cfg.RPCURL)

	ws, err := solana.NewWSClient(ctx, cfg.WSURL, nil)
	if err != nil {
		return fmt.Errorf("create websocket client: %w", err)
	}
	defer ws.Close()

	var archive storage.ActivityStore
	if cfg.ClickhouseDSN != "" {
		conn, err := chstore.NewConn(ctx, cfg.ClickhouseDSN)
		if err != nil {
			return fmt.Errorf("connect to clickhouse: %w", err)
		}
		defer conn.Close()
		if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			return fmt.Errorf("clickhouse migrations: %w", err)
		}
		archive = chstore.NewActivityStore(conn)
		logger.Println("Activity archive enabled")
	}

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.TelegramBotToken != "" {
		notifier = notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID,
			notify.WithMetadataClient(metadata.NewClient()))
		logger.Println("Telegram alerts enabled")
	}

	tracker := state.NewTracker(stores.signatures, stores.cursor)

	coordinator := pipeline.NewCoordinator(pipeline.Options{
		Fetcher:   fetcher.New(rpc),
		Watchlist: stores.watchlist,
		Notifier:  notifier,
		Archive:   archive,
	})

	manager := monitor.NewManager(ws, tracker, coordinator.Run)
	defer manager.Stop(context.Background())

	if slot, err := tracker.Cursor(ctx); err != nil {
		logger.Printf("Cursor read failed: %v", err)
	} else {
		logger.Printf("Last processed slot at startup: %d", slot)
	}

	wallets, err := stores.watchlist.List(ctx)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}
	if len(wallets) == 0 {
		logger.Println("Watchlist is empty; add wallets with the walletctl tool")
	}
	for _, w := range wallets {
		if err := manager.AddWallet(ctx, w.Address); err != nil {
			return fmt.Errorf("watch %s: %w", w.Address, err)
		}
	}
	logger.Printf("Watching %d wallets", len(wallets))

	// Standalone health endpoint, the target of the keep-alive ping on
	// hosting platforms that idle out quiet processes.
	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "tracker up, watching %d wallets", len(manager.Watched()))
		})
		healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
		logger.Printf("Starting health server on %s", healthAddr)
		if err := http.ListenAndServe(healthAddr, mux); err != nil && err != http.ErrServerClosed {
			logger.Printf("Health server error: %v", err)
		}
	}()

	if cfg.AppURL != "" {
		go keepAlive(ctx, logger, cfg.AppURL)
	}

	<-ctx.Done()
	return ctx.Err()
}

type storeSet struct {
	signatures storage.ProcessedSignatureStore
	cursor     storage.CursorStore
	watchlist  storage.WatchlistStore
}

// openStores opens the configured storage backend and returns the stores
// plus a cleanup function.
func openStores(ctx context.Context, cfg *config.Config) (*storeSet, func(), error) {
	switch cfg.StorageBackend {
	case "memory":
		return &storeSet{
			signatures: memory.NewSignatureStore(),
			cursor:     memory.NewCursorStore(),
			watchlist:  memory.NewWatchlistStore(),
		}, func() {}, nil

	case "postgres":
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("postgres migrations: %w", err)
		}
		return &storeSet{
			signatures: pgstore.NewSignatureStore(pool),
			cursor:     pgstore.NewCursorStore(pool),
			watchlist:  pgstore.NewWatchlistStore(pool),
		}, pool.Close, nil

	case "sqlite":
		db, err := sqlstore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &storeSet{
			signatures: sqlstore.NewSignatureStore(db),
			cursor:     sqlstore.NewCursorStore(db),
			watchlist:  sqlstore.NewWatchlistStore(db),
		}, func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// keepAlive pings the app's own URL so free-tier hosting does not idle the
// process out.
func keepAlive(ctx context.Context, logger *log.Logger, appURL string) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	client := &http.Client{Timeout: 15 * time.Second}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, appURL, nil)
			if err != nil {
				logger.Printf("Keep-alive request build failed: %v", err)
				continue
			}
			resp, err := client.Do(req)
			if err != nil {
				logger.Printf("Keep-alive ping failed: %v", err)
				continue
			}
			resp.Body.Close()
		}
	}
}
