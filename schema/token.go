package schema

import (
	"github.com/gagliardetto/solana-go"
)

// TokenMint is the supply record of one fungible token. The ownership-unit
// mint of a property has the property's derived authority as its Authority;
// the payment mint is configured at startup.
type TokenMint struct {
	Address   solana.PublicKey `json:"address"`
	Authority solana.PublicKey `json:"authority"`
	Supply    uint64           `json:"supply"`
	Decimals  uint8            `json:"decimals"`
	Symbol    string           `json:"symbol"`
}

// TokenAccount holds one owner's balance of one mint, addressed by the
// associated token address of (owner, mint).
type TokenAccount struct {
	Address solana.PublicKey `json:"address"`
	Mint    solana.PublicKey `json:"mint"`
	Owner   solana.PublicKey `json:"owner"`
	Balance uint64           `json:"balance"`
}
