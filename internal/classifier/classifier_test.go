package classifier

import (
	"testing"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/registry"
	"github.com/Techcifa/sol-wallet-tracker/internal/solana"
)

const wallet = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

func ptr(v float64) *float64 { return &v }

// tx builds a minimal transaction where the wallet is the fee payer.
// lamport deltas are raw (fee already deducted from post, as on chain).
func tx(preLamports, postLamports, fee uint64) *solana.Transaction {
	return &solana.Transaction{
		Signature: "sig",
		Slot:      1000,
		BlockTime: 1700000000,
		Meta: &solana.TransactionMeta{
			Fee:          fee,
			PreBalances:  []uint64{preLamports},
			PostBalances: []uint64{postLamports},
		},
		Message: &solana.TransactionMessage{
			AccountKeys: []string{wallet},
		},
	}
}

func tokenBalance(mint string, ui float64) solana.TokenBalance {
	return solana.TokenBalance{
		Mint:  mint,
		Owner: wallet,
		UITokenAmount: solana.UITokenAmount{
			Decimals: 6,
			UIAmount: ptr(ui),
		},
	}
}

func TestClassifyWalletAbsentYieldsNone(t *testing.T) {
	transaction := tx(1_000_000_000, 999_000_000, 5000)
	transaction.Message.AccountKeys = []string{"somebodyElse"}

	if got := Classify(transaction, wallet); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestClassifyPureFeeIsNoise(t *testing.T) {
	// Post = pre - fee: after fee add-back the delta is exactly zero.
	transaction := tx(1_000_000_000, 999_995_000, 5000)

	if got := Classify(transaction, wallet); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestClassifyNoiseThresholdIsStrict(t *testing.T) {
	// Exactly 0.001 SOL moved (after fee add-back): still noise.
	atBoundary := tx(1_000_000_000, 1_000_000_000-5000-1_000_000, 5000)
	if got := Classify(atBoundary, wallet); got != nil {
		t.Fatalf("expected nil at 0.001, got %+v", got)
	}

	// 0.0011 SOL: just over the line, a transfer.
	overBoundary := tx(1_000_000_000, 1_000_000_000-5000-1_100_000, 5000)
	got := Classify(overBoundary, wallet)
	if got == nil || got.Type != domain.ActivityTransfer {
		t.Fatalf("expected TRANSFER at 0.0011, got %+v", got)
	}
}

func TestClassifyBuy(t *testing.T) {
	// Wallet spends 0.5 SOL (plus fee) and receives 50 tokens of M.
	transaction := tx(2_000_000_000, 2_000_000_000-5000-500_000_000, 5000)
	transaction.Meta.PreTokenBalances = []solana.TokenBalance{tokenBalance("mintM", 0)}
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{tokenBalance("mintM", 50)}

	got := Classify(transaction, wallet)
	if got == nil || got.Type != domain.ActivityBuy {
		t.Fatalf("expected BUY, got %+v", got)
	}
	if got.SourceToken == nil || got.SourceToken.Mint != domain.NativeMint || got.SourceToken.Amount != 0.5 {
		t.Fatalf("expected source 0.5 SOL, got %+v", got.SourceToken)
	}
	if got.DestToken == nil || got.DestToken.Mint != "mintM" || got.DestToken.Amount != 50 {
		t.Fatalf("expected dest +50 mintM, got %+v", got.DestToken)
	}
}

func TestClassifySell(t *testing.T) {
	// Wallet receives 0.3 SOL and parts with 20 tokens of N.
	transaction := tx(1_000_000_000, 1_000_000_000-5000+300_000_000, 5000)
	transaction.Meta.PreTokenBalances = []solana.TokenBalance{tokenBalance("mintN", 20)}
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{tokenBalance("mintN", 0)}

	got := Classify(transaction, wallet)
	if got == nil || got.Type != domain.ActivitySell {
		t.Fatalf("expected SELL, got %+v", got)
	}
	if got.SourceToken == nil || got.SourceToken.Mint != "mintN" || got.SourceToken.Amount != -20 {
		t.Fatalf("expected source -20 mintN, got %+v", got.SourceToken)
	}
	if got.DestToken == nil || got.DestToken.Mint != domain.NativeMint || got.DestToken.Amount != 0.3 {
		t.Fatalf("expected dest 0.3 SOL, got %+v", got.DestToken)
	}
}

func TestClassifySwap(t *testing.T) {
	// Token A out, token B in, SOL movement is only fee.
	transaction := tx(1_000_000_000, 999_995_000, 5000)
	transaction.Meta.PreTokenBalances = []solana.TokenBalance{
		tokenBalance("mintA", 10),
		tokenBalance("mintB", 0),
	}
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{
		tokenBalance("mintA", 0),
		tokenBalance("mintB", 5),
	}

	got := Classify(transaction, wallet)
	if got == nil || got.Type != domain.ActivitySwap {
		t.Fatalf("expected SWAP, got %+v", got)
	}
	if got.SourceToken.Mint != "mintA" || got.SourceToken.Amount != -10 {
		t.Fatalf("expected source -10 mintA, got %+v", got.SourceToken)
	}
	if got.DestToken.Mint != "mintB" || got.DestToken.Amount != 5 {
		t.Fatalf("expected dest +5 mintB, got %+v", got.DestToken)
	}
}

func TestClassifyTokenReceivedIsTransfer(t *testing.T) {
	transaction := tx(1_000_000_000, 999_995_000, 5000)
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{tokenBalance("mintM", 100)}

	got := Classify(transaction, wallet)
	if got == nil || got.Type != domain.ActivityTransfer {
		t.Fatalf("expected TRANSFER, got %+v", got)
	}
	if got.SourceToken != nil {
		t.Fatalf("expected no source, got %+v", got.SourceToken)
	}
	if got.DestToken == nil || got.DestToken.Amount != 100 {
		t.Fatalf("expected dest +100, got %+v", got.DestToken)
	}
}

func TestClassifyTokenSentIsTransfer(t *testing.T) {
	transaction := tx(1_000_000_000, 999_995_000, 5000)
	transaction.Meta.PreTokenBalances = []solana.TokenBalance{tokenBalance("mintM", 100)}
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{tokenBalance("mintM", 40)}

	got := Classify(transaction, wallet)
	if got == nil || got.Type != domain.ActivityTransfer {
		t.Fatalf("expected TRANSFER, got %+v", got)
	}
	if got.SourceToken == nil || got.SourceToken.Amount != -60 {
		t.Fatalf("expected source -60, got %+v", got.SourceToken)
	}
}

func TestClassifyUnknownOnOddPattern(t *testing.T) {
	// Two positive token deltas with no negatives and no SOL spend does
	// not fit any recognized shape.
	transaction := tx(1_000_000_000, 999_995_000, 5000)
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{
		tokenBalance("mintA", 5),
		tokenBalance("mintB", 7),
	}

	got := Classify(transaction, wallet)
	if got == nil || got.Type != domain.ActivityUnknown {
		t.Fatalf("expected UNKNOWN, got %+v", got)
	}
}

func TestClassifyFeeAddBackOnlyForFeePayer(t *testing.T) {
	// Wallet at index 1 is not the fee payer; no add-back. It receives
	// exactly 0.0009 SOL, which stays under the noise threshold.
	transaction := &solana.Transaction{
		Signature: "sig",
		Slot:      1000,
		Meta: &solana.TransactionMeta{
			Fee:          5000,
			PreBalances:  []uint64{1_000_000_000, 500_000_000},
			PostBalances: []uint64{999_995_000, 500_900_000},
		},
		Message: &solana.TransactionMessage{
			AccountKeys: []string{"feePayer", wallet},
		},
	}

	if got := Classify(transaction, wallet); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestClassifyFirstPositiveWins(t *testing.T) {
	// Two tokens received during a buy: the first-encountered mint is
	// reported, not the larger amount.
	transaction := tx(2_000_000_000, 2_000_000_000-5000-500_000_000, 5000)
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{
		tokenBalance("mintSmall", 1),
		tokenBalance("mintBig", 1000),
	}

	got := Classify(transaction, wallet)
	if got == nil || got.Type != domain.ActivityBuy {
		t.Fatalf("expected BUY, got %+v", got)
	}
	if got.DestToken.Mint != "mintSmall" {
		t.Fatalf("expected first-encountered mintSmall, got %s", got.DestToken.Mint)
	}
}

func TestClassifyProgramResolution(t *testing.T) {
	transaction := tx(2_000_000_000, 2_000_000_000-5000-500_000_000, 5000)
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{tokenBalance("mintM", 50)}
	transaction.Message.Instructions = []solana.Instruction{
		{ProgramID: registry.SystemProgram},
		{ProgramID: registry.TokenProgram},
		{ProgramID: registry.JupiterV6},
	}

	got := Classify(transaction, wallet)
	if got == nil {
		t.Fatal("expected activity")
	}
	if got.Program != "Jupiter" {
		t.Fatalf("expected Jupiter, got %s", got.Program)
	}
}

func TestClassifyATAProgramIsNotSkipped(t *testing.T) {
	transaction := tx(2_000_000_000, 2_000_000_000-5000-500_000_000, 5000)
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{tokenBalance("mintM", 50)}
	transaction.Message.Instructions = []solana.Instruction{
		{ProgramID: registry.SystemProgram},
		{ProgramID: registry.AssociatedTokenProgram},
		{ProgramID: registry.JupiterV6},
	}

	got := Classify(transaction, wallet)
	if got == nil {
		t.Fatal("expected activity")
	}
	if got.Program != "ATA Program" {
		t.Fatalf("expected ATA Program, got %s", got.Program)
	}
}

func TestClassifyUnknownProgramLabel(t *testing.T) {
	transaction := tx(2_000_000_000, 2_000_000_000-5000-500_000_000, 5000)
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{tokenBalance("mintM", 50)}
	transaction.Message.Instructions = []solana.Instruction{
		{ProgramID: registry.SystemProgram},
	}

	got := Classify(transaction, wallet)
	if got == nil {
		t.Fatal("expected activity")
	}
	if got.Program != registry.UnknownProgram {
		t.Fatalf("expected %s, got %s", registry.UnknownProgram, got.Program)
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	transaction := tx(2_000_000_000, 2_000_000_000-5000-500_000_000, 5000)
	transaction.Meta.PostTokenBalances = []solana.TokenBalance{tokenBalance("mintM", 50)}

	first := Classify(transaction, wallet)
	second := Classify(transaction, wallet)
	if first == nil || second == nil {
		t.Fatal("expected activities")
	}
	if *first.SourceToken != *second.SourceToken || *first.DestToken != *second.DestToken || first.Type != second.Type {
		t.Fatalf("expected identical results, got %+v vs %+v", first, second)
	}
}
