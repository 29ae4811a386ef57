package schema

import (
	"github.com/gagliardetto/solana-go"
)

const (
	MaxNameLen = 32
	// symbol length differs between creation and update on purpose, the
	// original program shipped with this asymmetry
	MaxSymbolLenCreate = 3
	MaxSymbolLenUpdate = 8

	// PaymentDecimals is the decimal count of the stable payment token, used
	// only for display conversion in API responses.
	PaymentDecimals = 6
)

// Property is the canonical registry record of one tokenized asset. It is the
// authoritative source for supply, pricing and governance control; the
// relational index only mirrors it.
type Property struct {
	Address solana.PublicKey `json:"address"`
	Admin   solana.PublicKey `json:"admin"`
	Name    string           `json:"name"`
	Symbol  string           `json:"symbol"`

	TotalUnits     uint64 `json:"totalUnits"`
	AvailableUnits uint64 `json:"availableUnits"`
	UnitPrice      uint64 `json:"unitPrice"` // payment base units per ownership unit, fixed at creation

	Mint           solana.PublicKey `json:"mint"`
	DividendsTotal uint64           `json:"dividendsTotal"`
	IsClosed       bool             `json:"isClosed"`
	Bump           uint8            `json:"bump"`
}

// Authority returns the property's derived signing capability. The property
// record itself is the owner of the vault and the unit mint, so transfers,
// mints and burns on its behalf are authorized by this key, never by a human
// signer.
func (p *Property) Authority() solana.PublicKey {
	return p.Address
}

func ValidPropertyName(name string) bool {
	return len(name) > 0 && len(name) <= MaxNameLen
}

func ValidTokenSymbol(symbol string, maxLen int) bool {
	return len(symbol) > 0 && len(symbol) <= maxLen
}
