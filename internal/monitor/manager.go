// Package monitor owns the per-wallet log subscriptions and feeds new
// signatures into the processing pipeline.
package monitor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/observability"
	"github.com/Techcifa/sol-wallet-tracker/internal/solana"
	"github.com/Techcifa/sol-wallet-tracker/internal/state"
)

// Handler processes one dispatched signature. It runs on its own goroutine;
// panics are recovered and logged so one bad transaction cannot kill the
// stream.
type Handler func(ctx context.Context, signature string)

// Manager maintains one logs subscription per watched wallet. Duplicate
// signatures and failed transactions are filtered here, before dispatch, so
// the pipeline only ever sees fresh work.
type Manager struct {
	ws      solana.WSClient
	tracker *state.Tracker
	handler Handler

	mu   sync.Mutex
	subs map[string]*walletSub
}

type walletSub struct {
	sub  *solana.Subscription
	done chan struct{}
}

// NewManager creates a subscription manager.
func NewManager(ws solana.WSClient, tracker *state.Tracker, handler Handler) *Manager {
	return &Manager{
		ws:      ws,
		tracker: tracker,
		handler: handler,
		subs:    make(map[string]*walletSub),
	}
}

// AddWallet subscribes to log notifications mentioning address. Adding a
// wallet that is already watched is a no-op.
func (m *Manager) AddWallet(ctx context.Context, address string) error {
	m.mu.Lock()
	if _, ok := m.subs[address]; ok {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	sub, err := m.ws.SubscribeLogs(ctx, solana.LogsFilter{Mentions: []string{address}})
	if err != nil {
		return fmt.Errorf("subscribe logs for %s: %w", address, err)
	}

	ws := &walletSub{sub: sub, done: make(chan struct{})}

	m.mu.Lock()
	if _, ok := m.subs[address]; ok {
		// Lost the race to a concurrent AddWallet for the same address.
		m.mu.Unlock()
		if err := m.ws.Unsubscribe(ctx, sub); err != nil {
			log.Printf("[monitor] cleanup unsubscribe for %s failed: %v", address, err)
		}
		return nil
	}
	m.subs[address] = ws
	count := len(m.subs)
	m.mu.Unlock()

	observability.UpdateActiveSubscriptions(count)
	log.Printf("[monitor] watching %s (subscription %d)", address, sub.ID())

	go m.consume(ctx, address, ws)
	return nil
}

// RemoveWallet tears down the subscription for address. Removing an
// unwatched wallet is a no-op.
func (m *Manager) RemoveWallet(ctx context.Context, address string) error {
	m.mu.Lock()
	ws, ok := m.subs[address]
	if !ok {
		m.mu.Unlock()
		return nil
	}
	delete(m.subs, address)
	count := len(m.subs)
	m.mu.Unlock()

	observability.UpdateActiveSubscriptions(count)
	if err := m.ws.Unsubscribe(ctx, ws.sub); err != nil {
		return fmt.Errorf("unsubscribe %s: %w", address, err)
	}
	log.Printf("[monitor] stopped watching %s", address)
	return nil
}

// Watched returns the currently subscribed addresses.
func (m *Manager) Watched() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	addresses := make([]string, 0, len(m.subs))
	for addr := range m.subs {
		addresses = append(addresses, addr)
	}
	return addresses
}

// Stop tears down all subscriptions. In-flight pipeline runs are not
// awaited; they complete or fail on their own.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	subs := m.subs
	m.subs = make(map[string]*walletSub)
	m.mu.Unlock()

	for address, ws := range subs {
		if err := m.ws.Unsubscribe(ctx, ws.sub); err != nil {
			log.Printf("[monitor] unsubscribe %s failed: %v", address, err)
		}
	}
	observability.UpdateActiveSubscriptions(0)
}

// consume drains one wallet's notification channel until it closes.
func (m *Manager) consume(ctx context.Context, address string, ws *walletSub) {
	defer close(ws.done)

	for n := range ws.sub.C {
		observability.RecordNotification()

		if n.Err != nil {
			// The transaction failed on chain; nothing moved.
			observability.RecordFailedTxSkipped()
			continue
		}
		if m.tracker.IsProcessed(ctx, n.Signature) {
			observability.RecordDuplicateSkipped()
			continue
		}

		// Mark before fetching. A redundant notification arriving a
		// moment later is rejected above; the cost is that a fetch
		// miss can never be retried for this signature.
		m.tracker.MarkProcessed(ctx, domain.ProcessedSignature{
			Signature:   n.Signature,
			Slot:        n.Slot,
			ProcessedAt: time.Now().UnixMilli(),
		})
		m.tracker.AdvanceCursor(ctx, n.Slot)

		observability.RecordDispatch()
		go m.dispatch(ctx, n.Signature)
	}

	log.Printf("[monitor] notification stream for %s closed", address)
}

// dispatch runs the handler, recovering panics so the consume loop and the
// other dispatches stay alive.
func (m *Manager) dispatch(ctx context.Context, signature string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[monitor] handler panic for %s: %v", signature, r)
		}
	}()
	m.handler(ctx, signature)
}
