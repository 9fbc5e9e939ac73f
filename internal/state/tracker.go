// Package state tracks which signatures have already been processed and
// the highest fully-processed slot.
package state

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/observability"
	"github.com/Techcifa/sol-wallet-tracker/internal/storage"
)

// DefaultCacheCapacity bounds the in-memory signature cache.
const DefaultCacheCapacity = 10000

// Tracker answers "have we seen this signature?" with a bounded in-memory
// cache in front of a durable store. The cache absorbs the common case
// (live duplicates arrive seconds apart); the store survives restarts.
type Tracker struct {
	mu       sync.Mutex
	cache    map[string]struct{}
	order    []string // insertion order, oldest first
	capacity int

	signatures storage.ProcessedSignatureStore
	cursor     storage.CursorStore
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithCacheCapacity overrides the in-memory cache capacity.
func WithCacheCapacity(n int) TrackerOption {
	return func(t *Tracker) {
		if n > 0 {
			t.capacity = n
		}
	}
}

// NewTracker creates a Tracker backed by the given stores.
func NewTracker(signatures storage.ProcessedSignatureStore, cursor storage.CursorStore, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		cache:      make(map[string]struct{}),
		capacity:   DefaultCacheCapacity,
		signatures: signatures,
		cursor:     cursor,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsProcessed reports whether the signature was already handled. A durable
// hit backfills the cache so subsequent checks stay in memory. Store read
// errors are treated as "not processed": a duplicate alert beats a lost one.
func (t *Tracker) IsProcessed(ctx context.Context, signature string) bool {
	t.mu.Lock()
	if _, ok := t.cache[signature]; ok {
		t.mu.Unlock()
		return true
	}
	t.mu.Unlock()

	_, err := t.signatures.Get(ctx, signature)
	if err == nil {
		t.remember(signature)
		return true
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("[state] signature lookup failed for %s: %v", signature, err)
	}
	return false
}

// MarkProcessed records the signature in memory and durably. The in-memory
// mark always succeeds; a durable-write failure is logged and swallowed so
// one storage hiccup does not stall the pipeline.
func (t *Tracker) MarkProcessed(ctx context.Context, sig domain.ProcessedSignature) {
	t.remember(sig.Signature)

	err := t.signatures.Insert(ctx, &sig)
	if err == nil || errors.Is(err, storage.ErrDuplicateKey) {
		return
	}
	observability.RecordMarkWriteFailure()
	log.Printf("[state] durable mark failed for %s: %v", sig.Signature, err)
}

// AdvanceCursor persists the watermark if slot is higher than the stored
// value. The cursor is informational; failures are logged and swallowed.
func (t *Tracker) AdvanceCursor(ctx context.Context, slot int64) {
	current, err := t.cursor.Get(ctx, storage.CursorKeyLastProcessedSlot)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Printf("[state] cursor read failed: %v", err)
		return
	}
	if err == nil && current >= slot {
		return
	}
	if err := t.cursor.Set(ctx, storage.CursorKeyLastProcessedSlot, slot); err != nil {
		log.Printf("[state] cursor write failed: %v", err)
		return
	}
	observability.UpdateCursorSlot(slot)
}

// Cursor returns the stored watermark, or 0 when none exists yet.
func (t *Tracker) Cursor(ctx context.Context) (int64, error) {
	slot, err := t.cursor.Get(ctx, storage.CursorKeyLastProcessedSlot)
	if errors.Is(err, storage.ErrNotFound) {
		return 0, nil
	}
	return slot, err
}

// CacheLen returns the current number of cached signatures.
func (t *Tracker) CacheLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cache)
}

func (t *Tracker) remember(signature string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.cache[signature]; ok {
		return
	}
	if len(t.order) >= t.capacity {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.cache, oldest)
	}
	t.cache[signature] = struct{}{}
	t.order = append(t.order, signature)
}
