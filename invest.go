package crowdestate

import (
	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

// Investment Ledger: positions of investors in properties.

// Invest buys ownership units for paymentAmount of the stable token. Units
// purchased are floor(paymentAmount / unitPrice); the division remainder is
// paid in full and retained by the property, no refund is issued. The payment
// moves investor -> property, the units move vault -> investor, and the
// position record is created (or grown, on a repeat purchase) in the same
// atomic unit.
func (s *CrowdEstate) Invest(investor, property solana.PublicKey, paymentAmount uint64) (schema.Investment, error) {
	inv := schema.Investment{}
	prop := schema.Property{}
	var volume uint64

	// the property's derived authority is not an investor identity
	if investor.Equals(property) {
		return inv, schema.ErrInvalidAuthority
	}

	err := s.store.Update(func(tx *rawdb.Txn) error {
		var err error
		prop, err = getProperty(tx, property)
		if err != nil {
			return err
		}

		units := paymentAmount / prop.UnitPrice
		if units == 0 {
			return schema.ErrInsufficientAmount
		}
		if units > prop.AvailableUnits {
			return schema.ErrNotEnoughUnits
		}

		// investor-authorized payment into the property account
		if err := s.ledger.Transfer(tx, s.paymentMint, investor, prop.Authority(), paymentAmount, investor); err != nil {
			return err
		}
		// property-authorized release of units from the vault
		if err := s.ledger.Transfer(tx, prop.Mint, prop.Authority(), investor, units, prop.Authority()); err != nil {
			return err
		}

		prop.AvailableUnits -= units
		if err := putProperty(tx, prop); err != nil {
			return err
		}

		addr, _, err := schema.InvestmentAddress(investor, property)
		if err != nil {
			return err
		}
		inv, err = getInvestment(tx, addr)
		if err == schema.ErrNotExist {
			inv = schema.Investment{
				Address:  addr,
				Investor: investor,
				Property: property,
			}
		} else if err != nil {
			return err
		}
		owned, ok := checkedAdd(inv.UnitsOwned, units)
		if !ok {
			return schema.ErrOverflow
		}
		inv.UnitsOwned = owned
		volume = paymentAmount
		return putInvestment(tx, inv)
	})
	metricOperation("invest", err)
	if err != nil {
		return schema.Investment{}, err
	}

	s.syncPropertyIndex(prop)
	s.syncInvestmentIndex(inv, false)
	s.sendEvent(schema.Event{Type: schema.EventInvested, Property: property.String(), Actor: investor.String(), Amount: volume})
	log.Info("investment", "property", property.String(), "investor", investor.String(), "units", inv.UnitsOwned)
	return inv, nil
}

// Withdraw exits the full position: the units go back to the vault, the
// original payment (unitsOwned * unitPrice) is refunded under the property's
// derived authority, and the position record is removed. The admin co-signer
// mirrors the original account contract; it is required but not inspected.
func (s *CrowdEstate) Withdraw(investor, admin, property solana.PublicKey) (uint64, error) {
	var refund uint64
	inv := schema.Investment{}
	prop := schema.Property{}

	if investor.Equals(property) {
		return 0, schema.ErrInvalidAuthority
	}

	err := s.store.Update(func(tx *rawdb.Txn) error {
		var err error
		prop, err = getProperty(tx, property)
		if err != nil {
			return err
		}
		if prop.IsClosed {
			return schema.ErrPropertyClosed
		}

		addr, _, err := schema.InvestmentAddress(investor, property)
		if err != nil {
			return err
		}
		inv, err = getInvestment(tx, addr)
		if err != nil {
			return err
		}

		var ok bool
		refund, ok = checkedMul(inv.UnitsOwned, prop.UnitPrice)
		if !ok {
			return schema.ErrMultiplication
		}

		if err := s.ledger.Transfer(tx, prop.Mint, investor, prop.Authority(), inv.UnitsOwned, investor); err != nil {
			return err
		}
		available, ok := checkedAdd(prop.AvailableUnits, inv.UnitsOwned)
		if !ok {
			return schema.ErrOverflow
		}
		prop.AvailableUnits = available

		if err := s.ledger.Transfer(tx, s.paymentMint, prop.Authority(), investor, refund, prop.Authority()); err != nil {
			return err
		}
		if err := putProperty(tx, prop); err != nil {
			return err
		}

		inv.UnitsOwned = 0
		return deleteInvestment(tx, addr)
	})
	metricOperation("withdraw", err)
	if err != nil {
		return 0, err
	}

	s.syncPropertyIndex(prop)
	s.syncInvestmentIndex(inv, true)
	s.sendEvent(schema.Event{Type: schema.EventWithdrawn, Property: property.String(), Actor: investor.String(), Amount: refund})
	log.Info("withdrawal", "property", property.String(), "investor", investor.String(), "refund", refund)
	return refund, nil
}

// GetInvestment reads the live position record of (investor, property).
func (s *CrowdEstate) GetInvestment(investor, property solana.PublicKey) (schema.Investment, error) {
	addr, _, err := schema.InvestmentAddress(investor, property)
	if err != nil {
		return schema.Investment{}, err
	}
	inv := schema.Investment{}
	err = s.store.View(func(tx *rawdb.Txn) error {
		var err error
		inv, err = getInvestment(tx, addr)
		return err
	})
	return inv, err
}
