package domain

// WatchedWallet is a wallet address under observation.
type WatchedWallet struct {
	Address string
	Label   string
	AddedAt int64 // unix millis
}

// ProcessedSignature is durable proof that a transaction signature has been
// handled. Records are written once and never updated.
type ProcessedSignature struct {
	Signature   string
	Slot        int64
	ProcessedAt int64 // unix millis
}
