package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/solana"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage/memory"
)

const watchedWallet = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

type fakeFetcher struct {
	txs map[string]*solana.Transaction
	err error
}

func (f *fakeFetcher) Fetch(_ context.Context, signature string) (*solana.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.txs[signature], nil
}

type capturingNotifier struct {
	mu         sync.Mutex
	activities []*domain.Activity
	err        error
}

func (n *capturingNotifier) Notify(_ context.Context, a *domain.Activity) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.activities = append(n.activities, a)
	return n.err
}

func (n *capturingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.activities)
}

// buyTx is a transaction where watchedWallet spends 0.5 SOL for 50 tokens.
func buyTx(signature string) *solana.Transaction {
	ui := 50.0
	return &solana.Transaction{
		Signature: signature,
		Slot:      1000,
		Meta: &solana.TransactionMeta{
			Fee:          5000,
			PreBalances:  []uint64{2_000_000_000},
			PostBalances: []uint64{2_000_000_000 - 5000 - 500_000_000},
			PostTokenBalances: []solana.TokenBalance{{
				Mint:          "mintM",
				Owner:         watchedWallet,
				UITokenAmount: solana.UITokenAmount{Decimals: 6, UIAmount: &ui},
			}},
		},
		Message: &solana.TransactionMessage{
			AccountKeys: []string{watchedWallet, "someOtherAccount"},
		},
	}
}

func watchlistWith(t *testing.T, addresses ...string) *memory.WatchlistStore {
	t.Helper()
	store := memory.NewWatchlistStore()
	for _, addr := range addresses {
		if err := store.Upsert(context.Background(), &domain.WatchedWallet{Address: addr}); err != nil {
			t.Fatalf("seed watchlist: %v", err)
		}
	}
	return store
}

func TestRunDeliversClassifiedActivity(t *testing.T) {
	notifier := &capturingNotifier{}
	archive := memory.NewActivityStore()
	c := NewCoordinator(Options{
		Fetcher:   &fakeFetcher{txs: map[string]*solana.Transaction{"sig1": buyTx("sig1")}},
		Watchlist: watchlistWith(t, watchedWallet),
		Notifier:  notifier,
		Archive:   archive,
	})

	c.Run(context.Background(), "sig1")

	if notifier.count() != 1 {
		t.Fatalf("expected 1 alert, got %d", notifier.count())
	}
	got := notifier.activities[0]
	if got.Type != domain.ActivityBuy || got.Wallet != watchedWallet {
		t.Fatalf("unexpected activity %+v", got)
	}

	archived, err := archive.GetByWalletTimeRange(context.Background(), watchedWallet, 0, 1<<62)
	if err != nil {
		t.Fatalf("archive read: %v", err)
	}
	if len(archived) != 1 {
		t.Fatalf("expected 1 archived activity, got %d", len(archived))
	}
}

func TestRunFetchMissProducesNoAlert(t *testing.T) {
	notifier := &capturingNotifier{}
	c := NewCoordinator(Options{
		Fetcher:   &fakeFetcher{txs: map[string]*solana.Transaction{}},
		Watchlist: watchlistWith(t, watchedWallet),
		Notifier:  notifier,
	})

	c.Run(context.Background(), "ghost")

	if notifier.count() != 0 {
		t.Fatalf("expected no alerts, got %d", notifier.count())
	}
}

func TestRunUnwatchedWalletProducesNoAlert(t *testing.T) {
	notifier := &capturingNotifier{}
	c := NewCoordinator(Options{
		Fetcher:   &fakeFetcher{txs: map[string]*solana.Transaction{"sig1": buyTx("sig1")}},
		Watchlist: watchlistWith(t, "someWalletWeDoNotWatch"),
		Notifier:  notifier,
	})

	c.Run(context.Background(), "sig1")

	if notifier.count() != 0 {
		t.Fatalf("expected no alerts, got %d", notifier.count())
	}
}

func TestRunNotifierFailureIsAbsorbed(t *testing.T) {
	notifier := &capturingNotifier{err: errors.New("telegram down")}
	c := NewCoordinator(Options{
		Fetcher:   &fakeFetcher{txs: map[string]*solana.Transaction{"sig1": buyTx("sig1")}},
		Watchlist: watchlistWith(t, watchedWallet),
		Notifier:  notifier,
	})

	// Must not panic or propagate anything.
	c.Run(context.Background(), "sig1")

	if notifier.count() != 1 {
		t.Fatalf("expected notify to be attempted once, got %d", notifier.count())
	}
}

func TestRunFeeOnlyTransactionProducesNoAlert(t *testing.T) {
	tx := buyTx("sig1")
	tx.Meta.PostTokenBalances = nil
	tx.Meta.PostBalances = []uint64{2_000_000_000 - 5000}

	notifier := &capturingNotifier{}
	c := NewCoordinator(Options{
		Fetcher:   &fakeFetcher{txs: map[string]*solana.Transaction{"sig1": tx}},
		Watchlist: watchlistWith(t, watchedWallet),
		Notifier:  notifier,
	})

	c.Run(context.Background(), "sig1")

	if notifier.count() != 0 {
		t.Fatalf("expected no alerts for fee-only tx, got %d", notifier.count())
	}
}
