package crowdestate

import (
	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

// Governance Engine: propose / vote / execute over property administration.

// CreateProposal opens a proposal against a property. The proposal address is
// derived from (proposer, property), so a proposer holds at most one live
// proposal slot per property; creating again overwrites that slot once the
// previous proposal is executed or abandoned.
func (s *CrowdEstate) CreateProposal(proposer, property solana.PublicKey, description string, action schema.ProposalAction) (schema.Proposal, error) {
	pps := schema.Proposal{}
	if len(description) > schema.MaxDescriptionLen {
		return pps, schema.ErrDescriptionTooLong
	}
	switch act := action.(type) {
	case schema.ChangeAdmin:
		if act.NewAdmin.IsZero() {
			return pps, schema.ErrInvalidNewAdmin
		}
	case schema.MintAdditionalUnits:
		if act.Amount == 0 {
			return pps, schema.ErrInvalidAdditionalUnits
		}
	default:
		return pps, schema.ErrInvalidProposalType
	}

	addr, _, err := schema.ProposalAddress(proposer, property)
	if err != nil {
		return pps, err
	}
	pps = schema.Proposal{
		Address:     addr,
		Proposer:    proposer,
		Property:    property,
		Description: description,
		Action:      action,
	}

	err = s.store.Update(func(tx *rawdb.Txn) error {
		if _, err := getProperty(tx, property); err != nil {
			return err
		}
		return putProposal(tx, pps)
	})
	metricOperation("create_proposal", err)
	if err != nil {
		return schema.Proposal{}, err
	}

	s.syncProposalIndex(pps)
	s.sendEvent(schema.Event{Type: schema.EventProposalCreated, Property: property.String(), Proposal: addr.String(), Actor: proposer.String()})
	log.Info("proposal created", "address", addr.String(), "kind", action.Kind())
	return pps, nil
}

// Vote casts one vote per identity on an open proposal. Unit holdings carry
// no extra weight. A second vote by the same identity fails and leaves the
// counters untouched.
func (s *CrowdEstate) Vote(voter, proposal solana.PublicKey, inFavor bool) (schema.Proposal, error) {
	pps := schema.Proposal{}
	vr := schema.VoteRecord{}

	err := s.store.Update(func(tx *rawdb.Txn) error {
		var err error
		pps, err = getProposal(tx, proposal)
		if err != nil {
			return err
		}
		if pps.IsExecuted {
			return schema.ErrProposalAlreadyExecuted
		}

		voteAddr, _, err := schema.VoteRecordAddress(proposal, voter)
		if err != nil {
			return err
		}
		vr, err = getVoteRecord(tx, voteAddr)
		if err == schema.ErrNotExist {
			vr = schema.VoteRecord{Address: voteAddr, Proposal: proposal, Voter: voter}
		} else if err != nil {
			return err
		}
		if vr.Voted {
			return schema.ErrAlreadyVoted
		}

		if inFavor {
			votes, ok := checkedAdd(pps.VotesFor, 1)
			if !ok {
				return schema.ErrOverflow
			}
			pps.VotesFor = votes
		} else {
			votes, ok := checkedAdd(pps.VotesAgainst, 1)
			if !ok {
				return schema.ErrOverflow
			}
			pps.VotesAgainst = votes
		}
		vr.Voted = true

		if err := putVoteRecord(tx, vr); err != nil {
			return err
		}
		return putProposal(tx, pps)
	})
	metricOperation("vote", err)
	if err != nil {
		return schema.Proposal{}, err
	}

	s.syncProposalIndex(pps)
	s.syncVoteIndex(vr, inFavor)
	s.sendEvent(schema.Event{Type: schema.EventVoted, Proposal: proposal.String(), Actor: voter.String()})
	return pps, nil
}

// ExecuteProposal applies an adopted proposal. Adoption needs a strict
// majority of cast votes; ties fail. Execution is terminal, no further votes
// are accepted afterward.
func (s *CrowdEstate) ExecuteProposal(caller, proposal solana.PublicKey) (schema.Proposal, error) {
	pps := schema.Proposal{}
	var prop schema.Property

	err := s.store.Update(func(tx *rawdb.Txn) error {
		var err error
		pps, err = getProposal(tx, proposal)
		if err != nil {
			return err
		}
		if pps.IsExecuted {
			return schema.ErrProposalAlreadyExecuted
		}
		if pps.VotesFor <= pps.VotesAgainst {
			return schema.ErrProposalNotApproved
		}

		prop, err = getProperty(tx, pps.Property)
		if err != nil {
			return err
		}

		switch act := pps.Action.(type) {
		case schema.MintAdditionalUnits:
			if err := s.mintUnitsToVault(tx, &prop, act.Amount); err != nil {
				return err
			}
		case schema.ChangeAdmin:
			// control moves; the record address keeps the creating admin
			prop.Admin = act.NewAdmin
		default:
			return schema.ErrInvalidProposalType
		}
		if err := putProperty(tx, prop); err != nil {
			return err
		}

		pps.IsExecuted = true
		return putProposal(tx, pps)
	})
	metricOperation("execute_proposal", err)
	if err != nil {
		return schema.Proposal{}, err
	}

	s.syncPropertyIndex(prop)
	s.syncProposalIndex(pps)
	s.sendEvent(schema.Event{Type: schema.EventProposalExecuted, Property: pps.Property.String(), Proposal: proposal.String(), Actor: caller.String()})
	log.Info("proposal executed", "address", proposal.String(), "kind", pps.Action.Kind())
	return pps, nil
}

// GetProposal reads the live proposal record.
func (s *CrowdEstate) GetProposal(proposal solana.PublicKey) (schema.Proposal, error) {
	pps := schema.Proposal{}
	err := s.store.View(func(tx *rawdb.Txn) error {
		var err error
		pps, err = getProposal(tx, proposal)
		return err
	})
	return pps, err
}
