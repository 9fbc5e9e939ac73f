// Package stub provides in-memory fakes of the Solana clients for testing.
package stub

import (
	"context"
	"sync"

	"github.com/Techcifa/sol-wallet-tracker/internal/solana"
)

// RPCClient implements solana.RPCClient for testing. Transactions not present
// in the store yield (nil, nil), matching the real client's not-found result.
// A non-nil Errs entry for a signature is returned instead, once per call.
type RPCClient struct {
	mu           sync.Mutex
	Transactions map[string]*solana.Transaction
	Errs         map[string][]error // consumed FIFO per call
	Calls        map[string]int
}

// NewRPCClient creates a new stub RPC client.
func NewRPCClient() *RPCClient {
	return &RPCClient{
		Transactions: make(map[string]*solana.Transaction),
		Errs:         make(map[string][]error),
		Calls:        make(map[string]int),
	}
}

// Compile-time interface check.
var _ solana.RPCClient = (*RPCClient)(nil)

// GetTransaction returns the stored transaction, a queued error, or (nil, nil).
func (c *RPCClient) GetTransaction(_ context.Context, signature string) (*solana.Transaction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Calls[signature]++

	if errs := c.Errs[signature]; len(errs) > 0 {
		err := errs[0]
		c.Errs[signature] = errs[1:]
		return nil, err
	}

	return c.Transactions[signature], nil
}

// AddTransaction adds a transaction to the stub store.
func (c *RPCClient) AddTransaction(tx *solana.Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Transactions[tx.Signature] = tx
}

// QueueError queues an error to be returned for the next calls for signature.
func (c *RPCClient) QueueError(signature string, errs ...error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Errs[signature] = append(c.Errs[signature], errs...)
}

// CallCount returns how many times GetTransaction was invoked for signature.
func (c *RPCClient) CallCount(signature string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Calls[signature]
}
