package solana

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// ValidateWalletAddress checks that an address is a plausible Solana wallet:
// base58, 32 bytes, and on the ed25519 curve. Program-derived addresses are
// off-curve and rejected here on purpose — a watchlist entry must be a wallet.
func ValidateWalletAddress(address string) error {
	decoded, err := base58.Decode(address)
	if err != nil {
		return fmt.Errorf("decode base58 address: %w", err)
	}
	if len(decoded) != 32 {
		return fmt.Errorf("address must be 32 bytes, got %d", len(decoded))
	}
	if !isOnCurve(decoded) {
		return fmt.Errorf("address is not an ed25519 public key")
	}
	return nil
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
