package schema

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

const MaxDescriptionLen = 256

const (
	ActionKindChangeAdmin = "change_admin"
	ActionKindMintUnits   = "mint_additional_units"
)

// ProposalAction is the typed payload of a proposal. Exactly two variants
// exist; execution dispatches on the concrete type.
type ProposalAction interface {
	Kind() string
}

// ChangeAdmin hands control of the property to a new admin identity.
type ChangeAdmin struct {
	NewAdmin solana.PublicKey `json:"newAdmin"`
}

func (ChangeAdmin) Kind() string { return ActionKindChangeAdmin }

// MintAdditionalUnits issues Amount new ownership units into the vault.
type MintAdditionalUnits struct {
	Amount uint64 `json:"amount"`
}

func (MintAdditionalUnits) Kind() string { return ActionKindMintUnits }

// Proposal is the governance record for one (proposer, property) pair.
// States: open (IsExecuted=false) or executed (terminal). A proposal that
// never gathers a majority simply stays open.
type Proposal struct {
	Address     solana.PublicKey `json:"address"`
	Proposer    solana.PublicKey `json:"proposer"`
	Property    solana.PublicKey `json:"property"`
	Description string           `json:"description"`

	Action ProposalAction `json:"-"`

	VotesFor     uint64 `json:"votesFor"`
	VotesAgainst uint64 `json:"votesAgainst"`
	IsExecuted   bool   `json:"isExecuted"`
}

// actionEnvelope is the tagged wire form of ProposalAction.
type actionEnvelope struct {
	Kind        string               `json:"kind"`
	ChangeAdmin *ChangeAdmin         `json:"changeAdmin,omitempty"`
	MintUnits   *MintAdditionalUnits `json:"mintAdditionalUnits,omitempty"`
}

// MarshalAction encodes a ProposalAction into its tagged JSON form, used both
// for the record store and the relational index payload column.
func MarshalAction(a ProposalAction) ([]byte, error) {
	env := actionEnvelope{Kind: a.Kind()}
	switch act := a.(type) {
	case ChangeAdmin:
		env.ChangeAdmin = &act
	case MintAdditionalUnits:
		env.MintUnits = &act
	default:
		return nil, ErrInvalidProposalType
	}
	return json.Marshal(env)
}

// UnmarshalAction decodes the tagged JSON form back into a ProposalAction.
func UnmarshalAction(data []byte) (ProposalAction, error) {
	env := actionEnvelope{}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case ActionKindChangeAdmin:
		if env.ChangeAdmin == nil {
			return nil, fmt.Errorf("decode proposal action %s: %w", env.Kind, ErrInvalidProposalType)
		}
		return *env.ChangeAdmin, nil
	case ActionKindMintUnits:
		if env.MintUnits == nil {
			return nil, fmt.Errorf("decode proposal action %s: %w", env.Kind, ErrInvalidProposalType)
		}
		return *env.MintUnits, nil
	}
	return nil, ErrInvalidProposalType
}

type proposalAlias Proposal

type proposalWire struct {
	proposalAlias
	Action json.RawMessage `json:"action"`
}

func (p Proposal) MarshalJSON() ([]byte, error) {
	action, err := MarshalAction(p.Action)
	if err != nil {
		return nil, err
	}
	return json.Marshal(proposalWire{
		proposalAlias: proposalAlias(p),
		Action:        action,
	})
}

func (p *Proposal) UnmarshalJSON(data []byte) error {
	wire := proposalWire{}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	action, err := UnmarshalAction(wire.Action)
	if err != nil {
		return err
	}
	*p = Proposal(wire.proposalAlias)
	p.Action = action
	return nil
}

// VoteRecord marks one voter as having voted on one proposal. Created lazily
// on the first vote; never deleted.
type VoteRecord struct {
	Address  solana.PublicKey `json:"address"`
	Proposal solana.PublicKey `json:"proposal"`
	Voter    solana.PublicKey `json:"voter"`
	Voted    bool             `json:"voted"`
}
