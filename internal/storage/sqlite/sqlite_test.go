package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "tracker.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSignatureStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSignatureStore(openTestDB(t))

	rec := &domain.ProcessedSignature{Signature: "sig1", Slot: 100, ProcessedAt: 1000}
	if err := s.Insert(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.Insert(ctx, rec); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	got, err := s.Get(ctx, "sig1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Slot != 100 || got.ProcessedAt != 1000 {
		t.Fatalf("unexpected record %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSignatureStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tracker.db")

	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := NewSignatureStore(db).Insert(ctx, &domain.ProcessedSignature{Signature: "sig1", Slot: 100}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()

	got, err := NewSignatureStore(reopened).Get(ctx, "sig1")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Slot != 100 {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestCursorStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewCursorStore(openTestDB(t))

	if _, err := s.Get(ctx, storage.CursorKeyLastProcessedSlot); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, storage.CursorKeyLastProcessedSlot, 42); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, storage.CursorKeyLastProcessedSlot, 99); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, err := s.Get(ctx, storage.CursorKeyLastProcessedSlot)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if v != 99 {
		t.Fatalf("expected 99, got %d", v)
	}
}

func TestWatchlistStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewWatchlistStore(openTestDB(t))

	for _, w := range []*domain.WatchedWallet{
		{Address: "bbb", Label: "second", AddedAt: 2},
		{Address: "aaa", Label: "third", AddedAt: 3},
		{Address: "ccc", Label: "first", AddedAt: 1},
	} {
		if err := s.Upsert(ctx, w); err != nil {
			t.Fatalf("upsert %s: %v", w.Address, err)
		}
	}

	got, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"ccc", "bbb", "aaa"}
	if len(got) != len(want) {
		t.Fatalf("expected %d wallets, got %d", len(want), len(got))
	}
	for i, addr := range want {
		if got[i].Address != addr {
			t.Errorf("position %d: expected %s, got %s", i, addr, got[i].Address)
		}
	}

	if err := s.Delete(ctx, "bbb"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}

	got, err = s.List(ctx)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 wallets after delete, got %d", len(got))
	}
}
