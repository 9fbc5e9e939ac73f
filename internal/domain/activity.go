package domain

// ActivityType classifies the economic effect of a transaction for a wallet.
type ActivityType string

const (
	ActivityBuy      ActivityType = "BUY"
	ActivitySell     ActivityType = "SELL"
	ActivitySwap     ActivityType = "SWAP"
	ActivityTransfer ActivityType = "TRANSFER"
	ActivityUnknown  ActivityType = "UNKNOWN"
)

// NativeMint is the synthetic mint identifier used for SOL balance changes.
const NativeMint = "SOL"

// TokenBalanceChange describes a signed per-mint balance movement for a wallet.
type TokenBalanceChange struct {
	Mint     string
	Amount   float64 // signed, ui units
	Decimals int
}

// Activity is the classifier's output: one classified wallet movement per
// transaction. SourceToken is what left the wallet, DestToken what entered;
// either may be nil depending on the activity type.
type Activity struct {
	Type        ActivityType
	Signature   string
	Slot        int64
	Timestamp   int64 // block time, unix seconds; 0 if unavailable
	Wallet      string
	SourceToken *TokenBalanceChange
	DestToken   *TokenBalanceChange
	Program     string
	Fee         float64 // SOL
}
