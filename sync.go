package crowdestate

import (
	"github.com/marcelofeitoza/crowd-estate/schema"
)

// Index refresh after a committed record-store transaction. The index is a
// view: failures are logged, never propagated, and the next successful sync
// for the same address repairs the row.

func (s *CrowdEstate) syncPropertyIndex(p schema.Property) {
	row := schema.PropertyIndex{
		Address:        p.Address.String(),
		Admin:          p.Admin.String(),
		Name:           p.Name,
		Symbol:         p.Symbol,
		TotalUnits:     p.TotalUnits,
		AvailableUnits: p.AvailableUnits,
		UnitPrice:      p.UnitPrice,
		DividendsTotal: p.DividendsTotal,
		IsClosed:       p.IsClosed,
	}
	if err := s.wdb.UpsertProperty(row); err != nil {
		log.Error("sync property index", "address", row.Address, "err", err)
	}
	// force the next list read to repopulate
	s.listCache.DropProperties()
}

func (s *CrowdEstate) syncInvestmentIndex(inv schema.Investment, withdrawn bool) {
	row := schema.InvestmentIndex{
		Address:          inv.Address.String(),
		Investor:         inv.Investor.String(),
		Property:         inv.Property.String(),
		UnitsOwned:       inv.UnitsOwned,
		DividendsClaimed: inv.DividendsClaimed,
		Withdrawn:        withdrawn,
	}
	if err := s.wdb.UpsertInvestment(row); err != nil {
		log.Error("sync investment index", "address", row.Address, "err", err)
	}
}

func (s *CrowdEstate) syncProposalIndex(pps schema.Proposal) {
	action, err := schema.MarshalAction(pps.Action)
	if err != nil {
		log.Error("marshal proposal action", "address", pps.Address.String(), "err", err)
		return
	}
	row := schema.ProposalIndex{
		Address:      pps.Address.String(),
		Proposer:     pps.Proposer.String(),
		Property:     pps.Property.String(),
		Description:  pps.Description,
		Action:       action,
		VotesFor:     pps.VotesFor,
		VotesAgainst: pps.VotesAgainst,
		IsExecuted:   pps.IsExecuted,
	}
	if err := s.wdb.UpsertProposal(row); err != nil {
		log.Error("sync proposal index", "address", row.Address, "err", err)
	}
}

func (s *CrowdEstate) syncVoteIndex(vr schema.VoteRecord, inFavor bool) {
	row := schema.VoteIndex{
		Address:  vr.Address.String(),
		Proposal: vr.Proposal.String(),
		Voter:    vr.Voter.String(),
		InFavor:  inFavor,
	}
	if err := s.wdb.InsertVote(row); err != nil {
		log.Error("sync vote index", "address", row.Address, "err", err)
	}
}
