// Package registry maps well-known Solana program IDs to display names.
package registry

// Well-known program IDs.
const (
	JupiterV6     = "JUP6LkbZbjS1jKKwapdHNy745kF3NMtK7hc2K5cTEms"
	RaydiumAMMV4  = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"
	OrcaWhirlpool = "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc"
	PumpFun       = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	MeteoraDLMM   = "LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo"

	TokenProgram           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	SystemProgram          = "11111111111111111111111111111111"
	AssociatedTokenProgram = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
)

// UnknownProgram is returned for program IDs not in the registry.
const UnknownProgram = "Unknown"

var knownPrograms = map[string]string{
	JupiterV6:              "Jupiter",
	RaydiumAMMV4:           "Raydium",
	OrcaWhirlpool:          "Orca",
	PumpFun:                "Pump.fun",
	MeteoraDLMM:            "Meteora",
	TokenProgram:           "Token Program",
	SystemProgram:          "System Program",
	AssociatedTokenProgram: "ATA Program",
}

// ProgramName returns the display name for a program ID, or UnknownProgram.
func ProgramName(programID string) string {
	if name, ok := knownPrograms[programID]; ok {
		return name
	}
	return UnknownProgram
}

// IsInfrastructure reports whether a program name belongs to the base runtime
// rather than a DeFi protocol. Infrastructure programs are skipped when
// resolving the "interesting" program of a transaction.
func IsInfrastructure(name string) bool {
	return name == UnknownProgram || name == "System Program" || name == "Token Program"
}
