package crowdestate

import (
	"path"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
	"github.com/stretchr/testify/assert"
)

const testPaymentMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

func newTestPlatform(t *testing.T) *CrowdEstate {
	dir := t.TempDir()
	s := New(path.Join(dir, "bolt"), "", path.Join(dir, "sqlite"), true,
		testPaymentMint, "", false, true)
	t.Cleanup(s.Close)
	return s
}

// fundPayment issues stable tokens to owner through the faucet authority, the
// same path the dev-mode airdrop endpoint takes.
func fundPayment(t *testing.T, s *CrowdEstate, owner solana.PublicKey, amount uint64) {
	faucet, err := schema.FaucetAuthority()
	assert.NoError(t, err)
	err = s.store.Update(func(tx *rawdb.Txn) error {
		return s.ledger.MintTo(tx, s.paymentMint, owner, amount, faucet)
	})
	assert.NoError(t, err)
}

func paymentBalance(t *testing.T, s *CrowdEstate, owner solana.PublicKey) uint64 {
	bal, err := s.GetBalance(s.paymentMint, owner)
	assert.NoError(t, err)
	return bal
}

func unitBalance(t *testing.T, s *CrowdEstate, prop schema.Property, owner solana.PublicKey) uint64 {
	bal, err := s.GetBalance(prop.Mint, owner)
	assert.NoError(t, err)
	return bal
}

func TestEnsurePaymentMint(t *testing.T) {
	s := newTestPlatform(t)

	owner := solana.NewWallet().PublicKey()
	fundPayment(t, s, owner, 5_000_000)
	assert.Equal(t, uint64(5_000_000), paymentBalance(t, s, owner))

	// re-running the bootstrap must not reset the mint
	err := s.ensurePaymentMint()
	assert.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), paymentBalance(t, s, owner))
}
