package crowdestate

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

// Typed access to the record buckets. All helpers operate on the caller's
// transaction so a whole operation stays one atomic unit.

func getProperty(tx *rawdb.Txn, addr solana.PublicKey) (schema.Property, error) {
	p := schema.Property{}
	data, err := tx.Get(rawdb.PropertyBucket, addr.String())
	if err != nil {
		return p, err
	}
	err = json.Unmarshal(data, &p)
	return p, err
}

func putProperty(tx *rawdb.Txn, p schema.Property) error {
	data, err := json.Marshal(&p)
	if err != nil {
		return err
	}
	return tx.Put(rawdb.PropertyBucket, p.Address.String(), data)
}

func deleteProperty(tx *rawdb.Txn, addr solana.PublicKey) error {
	return tx.Delete(rawdb.PropertyBucket, addr.String())
}

func getInvestment(tx *rawdb.Txn, addr solana.PublicKey) (schema.Investment, error) {
	inv := schema.Investment{}
	data, err := tx.Get(rawdb.InvestmentBucket, addr.String())
	if err != nil {
		return inv, err
	}
	err = json.Unmarshal(data, &inv)
	return inv, err
}

func putInvestment(tx *rawdb.Txn, inv schema.Investment) error {
	data, err := json.Marshal(&inv)
	if err != nil {
		return err
	}
	return tx.Put(rawdb.InvestmentBucket, inv.Address.String(), data)
}

func deleteInvestment(tx *rawdb.Txn, addr solana.PublicKey) error {
	return tx.Delete(rawdb.InvestmentBucket, addr.String())
}

func getProposal(tx *rawdb.Txn, addr solana.PublicKey) (schema.Proposal, error) {
	pps := schema.Proposal{}
	data, err := tx.Get(rawdb.ProposalBucket, addr.String())
	if err != nil {
		return pps, err
	}
	err = json.Unmarshal(data, &pps)
	return pps, err
}

func putProposal(tx *rawdb.Txn, pps schema.Proposal) error {
	data, err := json.Marshal(&pps)
	if err != nil {
		return err
	}
	return tx.Put(rawdb.ProposalBucket, pps.Address.String(), data)
}

func getVoteRecord(tx *rawdb.Txn, addr solana.PublicKey) (schema.VoteRecord, error) {
	vr := schema.VoteRecord{}
	data, err := tx.Get(rawdb.VoteBucket, addr.String())
	if err != nil {
		return vr, err
	}
	err = json.Unmarshal(data, &vr)
	return vr, err
}

func putVoteRecord(tx *rawdb.Txn, vr schema.VoteRecord) error {
	data, err := json.Marshal(&vr)
	if err != nil {
		return err
	}
	return tx.Put(rawdb.VoteBucket, vr.Address.String(), data)
}
