// Package classifier turns a parsed transaction into a wallet activity by
// inspecting balance movements. It is a pure function of its inputs.
package classifier

import (
	"math"

	"github.com/Techcifa/sol-wallet-tracker/internal/domain"
	"github.com/Techcifa/sol-wallet-tracker/internal/registry"
	"github.com/Techcifa/sol-wallet-tracker/internal/solana"
)

const (
	// noiseThreshold is the SOL movement below which a balance change is
	// considered fee drag or dust, in display units. Comparisons are
	// strict: exactly 0.001 is still noise.
	noiseThreshold = 0.001

	// transferThreshold bounds incidental SOL movement for a pure token
	// transfer. A token move accompanied by more SOL than this no longer
	// looks like a plain transfer.
	transferThreshold = 0.01

	lamportsPerSol = 1e9
)

// Classify inspects a transaction's balance changes from wallet's point of
// view and returns the resulting activity, or nil when the transaction is
// noise (pure fee payment, or the wallet does not appear in it at all).
func Classify(tx *solana.Transaction, wallet string) *domain.Activity {
	if tx == nil || tx.Meta == nil || tx.Message == nil {
		return nil
	}

	walletIdx := accountIndex(tx, wallet)
	if walletIdx < 0 {
		return nil
	}

	solDelta := solDelta(tx, walletIdx)
	tokenDeltas := tokenDeltas(tx, wallet)

	activity := domain.Activity{
		Signature: tx.Signature,
		Slot:      tx.Slot,
		Timestamp: tx.BlockTime,
		Wallet:    wallet,
		Program:   resolveProgram(tx),
		Fee:       float64(tx.Meta.Fee) / lamportsPerSol,
	}

	firstPositive := first(tokenDeltas, func(c domain.TokenBalanceChange) bool { return c.Amount > 0 })
	firstNegative := first(tokenDeltas, func(c domain.TokenBalanceChange) bool { return c.Amount < 0 })

	switch {
	case len(tokenDeltas) == 0:
		if math.Abs(solDelta) <= noiseThreshold {
			return nil
		}
		activity.Type = domain.ActivityTransfer
		activity.SourceToken = nativeChange(solDelta)

	case solDelta < -noiseThreshold && firstPositive != nil:
		activity.Type = domain.ActivityBuy
		activity.SourceToken = nativeChange(math.Abs(solDelta))
		activity.DestToken = firstPositive

	case solDelta > noiseThreshold && firstNegative != nil:
		activity.Type = domain.ActivitySell
		activity.SourceToken = firstNegative
		activity.DestToken = nativeChange(solDelta)

	case firstNegative != nil && firstPositive != nil:
		activity.Type = domain.ActivitySwap
		activity.SourceToken = firstNegative
		activity.DestToken = firstPositive

	case firstPositive != nil && firstNegative == nil && len(tokenDeltas) == 1 && math.Abs(solDelta) < transferThreshold:
		activity.Type = domain.ActivityTransfer
		activity.DestToken = firstPositive

	case firstNegative != nil && firstPositive == nil && len(tokenDeltas) == 1 && math.Abs(solDelta) < transferThreshold:
		activity.Type = domain.ActivityTransfer
		activity.SourceToken = firstNegative

	default:
		activity.Type = domain.ActivityUnknown
	}

	return &activity
}

// resolveProgram returns the name of the first recognized non-infrastructure
// program among the top-level instructions. System and token program calls
// are wrappers around whatever actually happened, so they never win.
func resolveProgram(tx *solana.Transaction) string {
	for _, ins := range tx.Message.Instructions {
		name := registry.ProgramName(ins.ProgramID)
		if !registry.IsInfrastructure(name) {
			return name
		}
	}
	return registry.UnknownProgram
}

func accountIndex(tx *solana.Transaction, wallet string) int {
	for i, key := range tx.Message.AccountKeys {
		if key == wallet {
			return i
		}
	}
	return -1
}

// solDelta computes the wallet's SOL movement in display units. The fee
// payer (account index 0) gets the fee added back so the swap-relevant
// movement is not skewed by fee drag.
func solDelta(tx *solana.Transaction, walletIdx int) float64 {
	if walletIdx >= len(tx.Meta.PreBalances) || walletIdx >= len(tx.Meta.PostBalances) {
		return 0
	}
	// Stay in integer lamports until the final division so boundary
	// comparisons against the thresholds are exact.
	lamports := int64(tx.Meta.PostBalances[walletIdx]) - int64(tx.Meta.PreBalances[walletIdx])
	if walletIdx == 0 {
		lamports += int64(tx.Meta.Fee)
	}
	return float64(lamports) / lamportsPerSol
}

// tokenDeltas merges pre and post token balances owned by wallet into
// per-mint changes, preserving the order mints are first encountered.
// Entries with a zero net delta are dropped.
func tokenDeltas(tx *solana.Transaction, wallet string) []domain.TokenBalanceChange {
	type pair struct {
		pre, post float64
		decimals  int
	}

	merged := make(map[string]*pair)
	var mints []string

	track := func(b solana.TokenBalance) *pair {
		p, ok := merged[b.Mint]
		if !ok {
			p = &pair{decimals: b.UITokenAmount.Decimals}
			merged[b.Mint] = p
			mints = append(mints, b.Mint)
		}
		return p
	}

	for _, b := range tx.Meta.PreTokenBalances {
		if b.Owner != wallet {
			continue
		}
		track(b).pre = b.UITokenAmount.UIAmountOrZero()
	}
	for _, b := range tx.Meta.PostTokenBalances {
		if b.Owner != wallet {
			continue
		}
		track(b).post = b.UITokenAmount.UIAmountOrZero()
	}

	var changes []domain.TokenBalanceChange
	for _, mint := range mints {
		p := merged[mint]
		delta := p.post - p.pre
		if delta == 0 {
			continue
		}
		changes = append(changes, domain.TokenBalanceChange{
			Mint:     mint,
			Amount:   delta,
			Decimals: p.decimals,
		})
	}
	return changes
}

func nativeChange(amount float64) *domain.TokenBalanceChange {
	return &domain.TokenBalanceChange{
		Mint:     domain.NativeMint,
		Amount:   amount,
		Decimals: 9,
	}
}

func first(changes []domain.TokenBalanceChange, match func(domain.TokenBalanceChange) bool) *domain.TokenBalanceChange {
	for i := range changes {
		if match(changes[i]) {
			c := changes[i]
			return &c
		}
	}
	return nil
}
