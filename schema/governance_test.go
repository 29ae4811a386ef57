package schema

import (
	"encoding/json"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestProposalActionRoundTrip(t *testing.T) {
	newAdmin := solana.NewWallet().PublicKey()

	data, err := MarshalAction(ChangeAdmin{NewAdmin: newAdmin})
	assert.NoError(t, err)
	act, err := UnmarshalAction(data)
	assert.NoError(t, err)
	assert.Equal(t, ChangeAdmin{NewAdmin: newAdmin}, act)

	data, err = MarshalAction(MintAdditionalUnits{Amount: 500})
	assert.NoError(t, err)
	act, err = UnmarshalAction(data)
	assert.NoError(t, err)
	assert.Equal(t, MintAdditionalUnits{Amount: 500}, act)
}

func TestUnmarshalActionRejectsBadEnvelopes(t *testing.T) {
	_, err := UnmarshalAction([]byte(`{"kind":"dissolve_property"}`))
	assert.ErrorIs(t, err, ErrInvalidProposalType)

	// kind without a matching payload
	_, err = UnmarshalAction([]byte(`{"kind":"change_admin"}`))
	assert.ErrorIs(t, err, ErrInvalidProposalType)

	_, err = UnmarshalAction([]byte(`{"kind":"mint_additional_units"}`))
	assert.ErrorIs(t, err, ErrInvalidProposalType)
}

func TestProposalJSONRoundTrip(t *testing.T) {
	pps := Proposal{
		Address:      solana.NewWallet().PublicKey(),
		Proposer:     solana.NewWallet().PublicKey(),
		Property:     solana.NewWallet().PublicKey(),
		Description:  "mint 500 more units",
		Action:       MintAdditionalUnits{Amount: 500},
		VotesFor:     3,
		VotesAgainst: 1,
	}

	data, err := json.Marshal(pps)
	assert.NoError(t, err)

	got := Proposal{}
	assert.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, pps, got)
}
