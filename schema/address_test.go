package schema

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestPropertyAddressDeterministic(t *testing.T) {
	admin := solana.NewWallet().PublicKey()

	a1, b1, err := PropertyAddress(admin, "Sunset Villa")
	assert.NoError(t, err)
	a2, b2, err := PropertyAddress(admin, "Sunset Villa")
	assert.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)

	// different name, different slot
	a3, _, err := PropertyAddress(admin, "Harbor Lofts")
	assert.NoError(t, err)
	assert.NotEqual(t, a1, a3)

	// different admin, different slot
	a4, _, err := PropertyAddress(solana.NewWallet().PublicKey(), "Sunset Villa")
	assert.NoError(t, err)
	assert.NotEqual(t, a1, a4)
}

func TestDerivedAddressesDistinct(t *testing.T) {
	admin := solana.NewWallet().PublicKey()
	investor := solana.NewWallet().PublicKey()

	prop, _, err := PropertyAddress(admin, "Sunset Villa")
	assert.NoError(t, err)
	mint, _, err := UnitMintAddress(prop)
	assert.NoError(t, err)
	inv, _, err := InvestmentAddress(investor, prop)
	assert.NoError(t, err)
	pps, _, err := ProposalAddress(investor, prop)
	assert.NoError(t, err)
	vote, _, err := VoteRecordAddress(pps, investor)
	assert.NoError(t, err)

	seen := map[solana.PublicKey]bool{}
	for _, addr := range []solana.PublicKey{prop, mint, inv, pps, vote} {
		assert.False(t, seen[addr])
		seen[addr] = true
	}
}

func TestTokenAccountAddressPerOwnerMint(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	a1, err := TokenAccountAddress(owner, mintA)
	assert.NoError(t, err)
	a2, err := TokenAccountAddress(owner, mintA)
	assert.NoError(t, err)
	assert.Equal(t, a1, a2)

	b, err := TokenAccountAddress(owner, mintB)
	assert.NoError(t, err)
	assert.NotEqual(t, a1, b)
}

func TestValidPropertyName(t *testing.T) {
	assert.True(t, ValidPropertyName("Sunset Villa"))
	assert.False(t, ValidPropertyName(""))
	assert.False(t, ValidPropertyName("a name that is clearly longer than thirty-two bytes"))
}

func TestValidTokenSymbol(t *testing.T) {
	assert.True(t, ValidTokenSymbol("SVL", MaxSymbolLenCreate))
	assert.False(t, ValidTokenSymbol("VILLA", MaxSymbolLenCreate))
	assert.True(t, ValidTokenSymbol("SUNVILLA", MaxSymbolLenUpdate))
	assert.False(t, ValidTokenSymbol("", MaxSymbolLenCreate))
}
