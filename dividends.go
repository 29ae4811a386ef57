package crowdestate

import (
	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

// Dividend Engine: income declaration and pro-rata claims.

// DistributeDividends records that amount of new income exists for the
// property. It only grows the cumulative pool; the matching deposit into the
// property's payment account settles externally.
func (s *CrowdEstate) DistributeDividends(caller, property solana.PublicKey, amount uint64) (schema.Property, error) {
	prop := schema.Property{}
	err := s.store.Update(func(tx *rawdb.Txn) error {
		var err error
		prop, err = getProperty(tx, property)
		if err != nil {
			return err
		}
		if !caller.Equals(prop.Admin) {
			return schema.ErrUnauthorized
		}
		total, ok := checkedAdd(prop.DividendsTotal, amount)
		if !ok {
			return schema.ErrOverflow
		}
		prop.DividendsTotal = total
		return putProperty(tx, prop)
	})
	metricOperation("distribute_dividends", err)
	if err != nil {
		return schema.Property{}, err
	}

	s.syncPropertyIndex(prop)
	s.sendEvent(schema.Event{Type: schema.EventDividendsDeclared, Property: property.String(), Actor: caller.String(), Amount: amount})
	return prop, nil
}

// RedeemDividends settles the investor's claim against the current pool.
// dividendPerUnit is recomputed fresh from the current pool and the current
// total supply on every call; because supply can grow between declarations,
// per-unit value drifts across redemption order. That floor-division drift is
// inherited behavior, kept as is.
func (s *CrowdEstate) RedeemDividends(investor, property solana.PublicKey) (uint64, error) {
	var claimable uint64
	inv := schema.Investment{}

	err := s.store.Update(func(tx *rawdb.Txn) error {
		prop, err := getProperty(tx, property)
		if err != nil {
			return err
		}

		addr, _, err := schema.InvestmentAddress(investor, property)
		if err != nil {
			return err
		}
		inv, err = getInvestment(tx, addr)
		if err != nil {
			return err
		}

		if prop.TotalUnits == 0 {
			return schema.ErrDivision
		}
		dividendPerUnit := prop.DividendsTotal / prop.TotalUnits

		totalDue, ok := checkedMul(inv.UnitsOwned, dividendPerUnit)
		if !ok {
			return schema.ErrMultiplication
		}
		// consistency guard: claimed can only exceed due if total supply ever
		// shrank, which the registry never does
		claimable, ok = checkedSub(totalDue, inv.DividendsClaimed)
		if !ok {
			return schema.ErrInvalidDividendsClaim
		}
		if claimable == 0 {
			return schema.ErrNoDividendsToClaim
		}

		if err := s.ledger.Transfer(tx, s.paymentMint, prop.Authority(), investor, claimable, prop.Authority()); err != nil {
			return err
		}

		claimed, ok := checkedAdd(inv.DividendsClaimed, claimable)
		if !ok {
			return schema.ErrOverflow
		}
		inv.DividendsClaimed = claimed
		return putInvestment(tx, inv)
	})
	metricOperation("redeem_dividends", err)
	if err != nil {
		return 0, err
	}

	s.syncInvestmentIndex(inv, false)
	s.sendEvent(schema.Event{Type: schema.EventDividendsRedeemed, Property: property.String(), Actor: investor.String(), Amount: claimable})
	return claimable, nil
}

// ClaimableDividends computes what RedeemDividends would pay right now,
// without settling. Zero when nothing is claimable.
func (s *CrowdEstate) ClaimableDividends(prop schema.Property, inv schema.Investment) uint64 {
	if prop.TotalUnits == 0 {
		return 0
	}
	due, ok := checkedMul(inv.UnitsOwned, prop.DividendsTotal/prop.TotalUnits)
	if !ok {
		return 0
	}
	claimable, ok := checkedSub(due, inv.DividendsClaimed)
	if !ok {
		return 0
	}
	return claimable
}
