package schema

import (
	"github.com/gagliardetto/solana-go"
)

// Investment is one investor's live position in one property. The record is
// created on the first purchase and deleted again on full withdrawal; a
// surviving record always has UnitsOwned > 0.
type Investment struct {
	Address  solana.PublicKey `json:"address"`
	Investor solana.PublicKey `json:"investor"`
	Property solana.PublicKey `json:"property"`

	UnitsOwned       uint64 `json:"unitsOwned"`
	DividendsClaimed uint64 `json:"dividendsClaimed"` // cumulative, never decreases
}
