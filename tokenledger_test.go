package crowdestate

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
	"github.com/stretchr/testify/assert"
)

func newTestLedger(t *testing.T) (*rawdb.Store, TokenLedger) {
	store, err := rawdb.NewStore(t.TempDir())
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, TokenLedger{}
}

func TestLedgerMintAndBalance(t *testing.T) {
	store, l := newTestLedger(t)
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	holder := solana.NewWallet().PublicKey()

	err := store.Update(func(tx *rawdb.Txn) error {
		if err := l.CreateMint(tx, mint, authority, 6, "TST"); err != nil {
			return err
		}
		return l.MintTo(tx, mint, holder, 1_000, authority)
	})
	assert.NoError(t, err)

	err = store.View(func(tx *rawdb.Txn) error {
		bal, err := l.Balance(tx, mint, holder)
		assert.NoError(t, err)
		assert.Equal(t, uint64(1_000), bal)

		// unknown holders read as zero
		bal, err = l.Balance(tx, mint, solana.NewWallet().PublicKey())
		assert.NoError(t, err)
		assert.Equal(t, uint64(0), bal)
		return nil
	})
	assert.NoError(t, err)

	// recreating an existing mint fails
	err = store.Update(func(tx *rawdb.Txn) error {
		return l.CreateMint(tx, mint, authority, 6, "TST")
	})
	assert.ErrorIs(t, err, schema.ErrMintExist)

	// only the mint authority issues
	err = store.Update(func(tx *rawdb.Txn) error {
		return l.MintTo(tx, mint, holder, 1, holder)
	})
	assert.ErrorIs(t, err, schema.ErrInvalidAuthority)
}

func TestLedgerTransfer(t *testing.T) {
	store, l := newTestLedger(t)
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	from := solana.NewWallet().PublicKey()
	to := solana.NewWallet().PublicKey()

	err := store.Update(func(tx *rawdb.Txn) error {
		if err := l.CreateMint(tx, mint, authority, 6, "TST"); err != nil {
			return err
		}
		return l.MintTo(tx, mint, from, 1_000, authority)
	})
	assert.NoError(t, err)

	// only the source owner authorizes
	err = store.Update(func(tx *rawdb.Txn) error {
		return l.Transfer(tx, mint, from, to, 400, to)
	})
	assert.ErrorIs(t, err, schema.ErrInvalidAuthority)

	err = store.Update(func(tx *rawdb.Txn) error {
		return l.Transfer(tx, mint, from, to, 400, from)
	})
	assert.NoError(t, err)

	err = store.Update(func(tx *rawdb.Txn) error {
		return l.Transfer(tx, mint, from, to, 601, from)
	})
	assert.ErrorIs(t, err, schema.ErrInsufficientBalance)

	err = store.View(func(tx *rawdb.Txn) error {
		fromBal, _ := l.Balance(tx, mint, from)
		toBal, _ := l.Balance(tx, mint, to)
		assert.Equal(t, uint64(600), fromBal)
		assert.Equal(t, uint64(400), toBal)
		return nil
	})
	assert.NoError(t, err)
}

// Transferring into the source account must move nothing; a naive
// read-modify-write of both ends would credit the amount twice.
func TestLedgerSelfTransferConservesBalance(t *testing.T) {
	store, l := newTestLedger(t)
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	holder := solana.NewWallet().PublicKey()

	err := store.Update(func(tx *rawdb.Txn) error {
		if err := l.CreateMint(tx, mint, authority, 6, "TST"); err != nil {
			return err
		}
		return l.MintTo(tx, mint, holder, 1_000, authority)
	})
	assert.NoError(t, err)

	err = store.Update(func(tx *rawdb.Txn) error {
		return l.Transfer(tx, mint, holder, holder, 400, holder)
	})
	assert.NoError(t, err)

	// overdrawing self-transfers still fail
	err = store.Update(func(tx *rawdb.Txn) error {
		return l.Transfer(tx, mint, holder, holder, 1_001, holder)
	})
	assert.ErrorIs(t, err, schema.ErrInsufficientBalance)

	err = store.View(func(tx *rawdb.Txn) error {
		bal, err := l.Balance(tx, mint, holder)
		assert.NoError(t, err)
		assert.Equal(t, uint64(1_000), bal)

		m, err := l.getMint(tx, mint)
		assert.NoError(t, err)
		assert.Equal(t, uint64(1_000), m.Supply)
		return nil
	})
	assert.NoError(t, err)
}

func TestLedgerBurn(t *testing.T) {
	store, l := newTestLedger(t)
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	err := store.Update(func(tx *rawdb.Txn) error {
		if err := l.CreateMint(tx, mint, authority, 0, "TST"); err != nil {
			return err
		}
		return l.MintTo(tx, mint, authority, 1_000, authority)
	})
	assert.NoError(t, err)

	err = store.Update(func(tx *rawdb.Txn) error {
		return l.Burn(tx, mint, authority, 300, authority)
	})
	assert.NoError(t, err)

	err = store.Update(func(tx *rawdb.Txn) error {
		return l.Burn(tx, mint, authority, 701, authority)
	})
	assert.ErrorIs(t, err, schema.ErrInsufficientBalance)

	err = store.View(func(tx *rawdb.Txn) error {
		bal, _ := l.Balance(tx, mint, authority)
		assert.Equal(t, uint64(700), bal)
		return nil
	})
	assert.NoError(t, err)
}

// A failing step aborts every mutation of the same transaction.
func TestLedgerTransactionAtomicity(t *testing.T) {
	store, l := newTestLedger(t)
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	from := solana.NewWallet().PublicKey()
	to := solana.NewWallet().PublicKey()

	err := store.Update(func(tx *rawdb.Txn) error {
		if err := l.CreateMint(tx, mint, authority, 6, "TST"); err != nil {
			return err
		}
		return l.MintTo(tx, mint, from, 100, authority)
	})
	assert.NoError(t, err)

	err = store.Update(func(tx *rawdb.Txn) error {
		if err := l.Transfer(tx, mint, from, to, 100, from); err != nil {
			return err
		}
		// second hop overdraws and must roll the first hop back
		return l.Transfer(tx, mint, from, to, 1, from)
	})
	assert.ErrorIs(t, err, schema.ErrInsufficientBalance)

	err = store.View(func(tx *rawdb.Txn) error {
		fromBal, _ := l.Balance(tx, mint, from)
		toBal, _ := l.Balance(tx, mint, to)
		assert.Equal(t, uint64(100), fromBal)
		assert.Equal(t, uint64(0), toBal)
		return nil
	})
	assert.NoError(t, err)
}
