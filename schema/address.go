package schema

import (
	"github.com/gagliardetto/solana-go"
)

// ProgramID anchors every derived address; all records of the platform live
// under this id, so addresses are stable across deployments.
var ProgramID = solana.MustPublicKeyFromBase58("7JA2mxcVkWwJ6ccfD5rf5K979kSprp1drhG6LcjrwZCf")

const (
	PropertySeed   = "property"
	MintSeed       = "mint"
	InvestmentSeed = "investment"
	ProposalSeed   = "proposal"
	VoteSeed       = "vote"
)

// PropertyAddress derives the property record address from the creating admin
// and the property name. The admin baked into the seed is the creator; a later
// admin change moves control but never the address.
func PropertyAddress(admin solana.PublicKey, name string) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(PropertySeed),
		admin.Bytes(),
		[]byte(name),
	}, ProgramID)
}

// UnitMintAddress derives the ownership-unit mint for a property.
func UnitMintAddress(property solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(MintSeed),
		property.Bytes(),
	}, ProgramID)
}

// InvestmentAddress derives the position record address for one
// (investor, property) pair.
func InvestmentAddress(investor, property solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(InvestmentSeed),
		investor.Bytes(),
		property.Bytes(),
	}, ProgramID)
}

// ProposalAddress derives the proposal record address; one live proposal per
// (proposer, property) pair.
func ProposalAddress(proposer, property solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(ProposalSeed),
		proposer.Bytes(),
		property.Bytes(),
	}, ProgramID)
}

// VoteRecordAddress derives the vote record address for one (proposal, voter)
// pair.
func VoteRecordAddress(proposal, voter solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{
		[]byte(VoteSeed),
		proposal.Bytes(),
		voter.Bytes(),
	}, ProgramID)
}

// FaucetAuthority derives the authority allowed to issue dev-mode payment
// funds. Only used when the faucet endpoint is enabled.
func FaucetAuthority() (solana.PublicKey, error) {
	pk, _, err := solana.FindProgramAddress([][]byte{[]byte("faucet")}, ProgramID)
	return pk, err
}

// TokenAccountAddress derives the associated token account of owner for mint.
// The property vault is TokenAccountAddress(property, unitMint).
func TokenAccountAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	return ata, err
}
