package solana

import "context"

// RPCClient defines the Solana RPC HTTP interface consumed by the tracker.
type RPCClient interface {
	// GetTransaction retrieves a parsed transaction by signature.
	// Returns (nil, nil) when the transaction is not yet visible.
	GetTransaction(ctx context.Context, signature string) (*Transaction, error)
}

// Transaction represents a Solana transaction with the balance metadata
// needed for activity classification.
type Transaction struct {
	Slot      int64
	Signature string
	BlockTime int64 // Unix timestamp (seconds), 0 if unavailable
	Meta      *TransactionMeta
	Message   *TransactionMessage
}

// TransactionMeta contains execution metadata: fee, error state and the
// pre/post SOL and token balances keyed by account index.
type TransactionMeta struct {
	Err               interface{}
	Fee               uint64 // lamports
	PreBalances       []uint64
	PostBalances      []uint64
	PreTokenBalances  []TokenBalance
	PostTokenBalances []TokenBalance
	LogMessages       []string
}

// TransactionMessage contains the account list and top-level instructions.
type TransactionMessage struct {
	AccountKeys  []string
	Instructions []Instruction
}

// Instruction is a top-level instruction; only the program ID is retained.
type Instruction struct {
	ProgramID string
}

// TokenBalance is one entry of pre/postTokenBalances.
type TokenBalance struct {
	AccountIndex  int
	Mint          string
	Owner         string
	UITokenAmount UITokenAmount
}

// UITokenAmount is a token amount in raw and display denominations.
type UITokenAmount struct {
	Amount   string // raw integer amount as string
	Decimals int
	UIAmount *float64 // null for zero-initialized accounts
}

// UIAmountOrZero returns the display amount, treating null as zero.
func (a UITokenAmount) UIAmountOrZero() float64 {
	if a.UIAmount == nil {
		return 0
	}
	return *a.UIAmount
}
