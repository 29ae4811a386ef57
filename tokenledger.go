package crowdestate

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

// TokenLedger is the value-transfer collaborator: an SPL-style fungible-token
// ledger kept in the same bolt database as the accounting records, so token
// movements commit or abort together with the record mutations that caused
// them. State lives entirely in the transaction; the ledger itself is
// stateless.
type TokenLedger struct{}

func (TokenLedger) getMint(tx *rawdb.Txn, mint solana.PublicKey) (schema.TokenMint, error) {
	m := schema.TokenMint{}
	data, err := tx.Get(rawdb.MintBucket, mint.String())
	if err != nil {
		return m, err
	}
	err = json.Unmarshal(data, &m)
	return m, err
}

func (TokenLedger) putMint(tx *rawdb.Txn, m schema.TokenMint) error {
	data, err := json.Marshal(&m)
	if err != nil {
		return err
	}
	return tx.Put(rawdb.MintBucket, m.Address.String(), data)
}

// account loads the token account of owner for mint, lazily creating it when
// create is set; associated addressing means one account per (owner, mint).
func (TokenLedger) account(tx *rawdb.Txn, mint, owner solana.PublicKey, create bool) (schema.TokenAccount, error) {
	acc := schema.TokenAccount{}
	addr, err := schema.TokenAccountAddress(owner, mint)
	if err != nil {
		return acc, err
	}
	data, err := tx.Get(rawdb.BalanceBucket, addr.String())
	if err == schema.ErrNotExist && create {
		return schema.TokenAccount{Address: addr, Mint: mint, Owner: owner}, nil
	}
	if err != nil {
		return acc, err
	}
	if err := json.Unmarshal(data, &acc); err != nil {
		return acc, err
	}
	if !acc.Mint.Equals(mint) {
		return acc, schema.ErrMintMismatch
	}
	return acc, nil
}

func (TokenLedger) putAccount(tx *rawdb.Txn, acc schema.TokenAccount) error {
	data, err := json.Marshal(&acc)
	if err != nil {
		return err
	}
	return tx.Put(rawdb.BalanceBucket, acc.Address.String(), data)
}

// CreateMint registers a new mint with zero supply. Fails if the mint already
// exists.
func (l TokenLedger) CreateMint(tx *rawdb.Txn, mint, authority solana.PublicKey, decimals uint8, symbol string) error {
	if tx.Exist(rawdb.MintBucket, mint.String()) {
		return fmt.Errorf("create mint %s: %w", mint.String(), schema.ErrMintExist)
	}
	return l.putMint(tx, schema.TokenMint{
		Address:   mint,
		Authority: authority,
		Decimals:  decimals,
		Symbol:    symbol,
	})
}

// Transfer moves amount between the (owner, mint) accounts of from and to.
// The authority must be the owner of the source account.
func (l TokenLedger) Transfer(tx *rawdb.Txn, mint, from, to solana.PublicKey, amount uint64, authority solana.PublicKey) error {
	src, err := l.account(tx, mint, from, false)
	if err != nil {
		return err
	}
	if !authority.Equals(src.Owner) {
		return schema.ErrInvalidAuthority
	}
	if src.Balance < amount {
		return schema.ErrInsufficientBalance
	}
	// a transfer into the source account moves nothing; writing a separately
	// loaded destination copy here would undo the debit and inflate supply
	if from.Equals(to) {
		return nil
	}
	dst, err := l.account(tx, mint, to, true)
	if err != nil {
		return err
	}

	src.Balance -= amount
	newBal, ok := checkedAdd(dst.Balance, amount)
	if !ok {
		return schema.ErrOverflow
	}
	dst.Balance = newBal

	if err := l.putAccount(tx, src); err != nil {
		return err
	}
	return l.putAccount(tx, dst)
}

// MintTo issues amount new tokens to the (to, mint) account; only the mint
// authority may issue.
func (l TokenLedger) MintTo(tx *rawdb.Txn, mint, to solana.PublicKey, amount uint64, authority solana.PublicKey) error {
	m, err := l.getMint(tx, mint)
	if err != nil {
		return err
	}
	if !authority.Equals(m.Authority) {
		return schema.ErrInvalidAuthority
	}
	supply, ok := checkedAdd(m.Supply, amount)
	if !ok {
		return schema.ErrOverflow
	}
	acc, err := l.account(tx, mint, to, true)
	if err != nil {
		return err
	}
	bal, ok := checkedAdd(acc.Balance, amount)
	if !ok {
		return schema.ErrOverflow
	}

	m.Supply = supply
	acc.Balance = bal
	if err := l.putMint(tx, m); err != nil {
		return err
	}
	return l.putAccount(tx, acc)
}

// Burn destroys amount tokens from the (from, mint) account; only the mint
// authority may burn, and on this platform the authority and the account owner
// are the same derived key (the property burns from its own vault).
func (l TokenLedger) Burn(tx *rawdb.Txn, mint, from solana.PublicKey, amount uint64, authority solana.PublicKey) error {
	m, err := l.getMint(tx, mint)
	if err != nil {
		return err
	}
	if !authority.Equals(m.Authority) {
		return schema.ErrInvalidAuthority
	}
	acc, err := l.account(tx, mint, from, false)
	if err != nil {
		return err
	}
	if acc.Balance < amount {
		return schema.ErrInsufficientBalance
	}
	supply, ok := checkedSub(m.Supply, amount)
	if !ok {
		return schema.ErrInsufficientBalance
	}

	m.Supply = supply
	acc.Balance -= amount
	if err := l.putMint(tx, m); err != nil {
		return err
	}
	return l.putAccount(tx, acc)
}

// Balance reads the balance of the (owner, mint) account; missing accounts
// read as zero.
func (l TokenLedger) Balance(tx *rawdb.Txn, mint, owner solana.PublicKey) (uint64, error) {
	acc, err := l.account(tx, mint, owner, false)
	if err == schema.ErrNotExist {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}
