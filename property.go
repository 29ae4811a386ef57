package crowdestate

import (
	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

// Property Registry: canonical supply, pricing and control state of each
// tokenized asset.

// CreateProperty registers a property, creates its unit mint and issues the
// whole fixed supply into the property vault under the property's own derived
// authority.
func (s *CrowdEstate) CreateProperty(admin solana.PublicKey, name string, totalUnits, unitPrice uint64, symbol string) (schema.Property, error) {
	prop := schema.Property{}
	if totalUnits == 0 {
		return prop, schema.ErrInvalidTotalUnits
	}
	if unitPrice == 0 {
		return prop, schema.ErrInvalidUnitPrice
	}
	if !schema.ValidPropertyName(name) {
		return prop, schema.ErrInvalidName
	}
	if !schema.ValidTokenSymbol(symbol, schema.MaxSymbolLenCreate) {
		return prop, schema.ErrInvalidTokenSymbol
	}

	addr, bump, err := schema.PropertyAddress(admin, name)
	if err != nil {
		return prop, err
	}
	mint, _, err := schema.UnitMintAddress(addr)
	if err != nil {
		return prop, err
	}

	prop = schema.Property{
		Address:        addr,
		Admin:          admin,
		Name:           name,
		Symbol:         symbol,
		TotalUnits:     totalUnits,
		AvailableUnits: totalUnits,
		UnitPrice:      unitPrice,
		Mint:           mint,
		DividendsTotal: 0,
		IsClosed:       false,
		Bump:           bump,
	}

	err = s.store.Update(func(tx *rawdb.Txn) error {
		if tx.Exist(rawdb.PropertyBucket, addr.String()) {
			return schema.ErrPropertyExist // same (admin, name) pair
		}
		if err := s.ledger.CreateMint(tx, mint, prop.Authority(), 0, symbol); err != nil {
			return err
		}
		if err := s.ledger.MintTo(tx, mint, prop.Authority(), totalUnits, prop.Authority()); err != nil {
			return err
		}
		return putProperty(tx, prop)
	})
	metricOperation("create_property", err)
	if err != nil {
		return schema.Property{}, err
	}

	s.syncPropertyIndex(prop)
	s.sendEvent(schema.Event{Type: schema.EventPropertyCreated, Property: addr.String(), Actor: admin.String(), Amount: totalUnits})
	log.Info("property created", "address", addr.String(), "name", name, "totalUnits", totalUnits)
	return prop, nil
}

// MintAdditionalUnits lets the current admin grow the supply outside of
// governance; the new units go straight into the vault.
func (s *CrowdEstate) MintAdditionalUnits(caller, property solana.PublicKey, amount uint64) (schema.Property, error) {
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
		if err := s.mintUnitsToVault(tx, &prop, amount); err != nil {
			return err
		}
		return putProperty(tx, prop)
	})
	metricOperation("mint_additional_units", err)
	if err != nil {
		return schema.Property{}, err
	}

	s.syncPropertyIndex(prop)
	s.sendEvent(schema.Event{Type: schema.EventUnitsMinted, Property: property.String(), Actor: caller.String(), Amount: amount})
	return prop, nil
}

// mintUnitsToVault issues amount new units into the vault and grows both
// supply counters, with overflow checks. Shared by the admin mint and by
// proposal execution.
func (s *CrowdEstate) mintUnitsToVault(tx *rawdb.Txn, prop *schema.Property, amount uint64) error {
	if err := s.ledger.MintTo(tx, prop.Mint, prop.Authority(), amount, prop.Authority()); err != nil {
		return err
	}
	total, ok := checkedAdd(prop.TotalUnits, amount)
	if !ok {
		return schema.ErrOverflow
	}
	available, ok := checkedAdd(prop.AvailableUnits, amount)
	if !ok {
		return schema.ErrOverflow
	}
	prop.TotalUnits = total
	prop.AvailableUnits = available
	return nil
}

// UpdateProperty replaces name and symbol in place. Price and supply are not
// touched here; the looser 8-byte symbol bound on update is inherited
// behavior.
func (s *CrowdEstate) UpdateProperty(caller, property solana.PublicKey, newName, newSymbol string) (schema.Property, error) {
	prop := schema.Property{}
	if !schema.ValidPropertyName(newName) {
		return prop, schema.ErrInvalidName
	}
	if !schema.ValidTokenSymbol(newSymbol, schema.MaxSymbolLenUpdate) {
		return prop, schema.ErrInvalidTokenSymbol
	}

	err := s.store.Update(func(tx *rawdb.Txn) error {
		var err error
		prop, err = getProperty(tx, property)
		if err != nil {
			return err
		}
		if !caller.Equals(prop.Admin) {
			return schema.ErrUnauthorized
		}
		prop.Name = newName
		prop.Symbol = newSymbol
		return putProperty(tx, prop)
	})
	metricOperation("update_property", err)
	if err != nil {
		return schema.Property{}, err
	}

	s.syncPropertyIndex(prop)
	s.sendEvent(schema.Event{Type: schema.EventPropertyUpdated, Property: property.String(), Actor: caller.String()})
	return prop, nil
}

// CloseProperty burns the unsold vault supply, marks the property closed and
// removes the record. The address can never be reused afterward without the
// admin recreating the same (admin, name) pair.
func (s *CrowdEstate) CloseProperty(caller, property solana.PublicKey) error {
	prop := schema.Property{}
	err := s.store.Update(func(tx *rawdb.Txn) error {
		var err error
		prop, err = getProperty(tx, property)
		if err != nil {
			return err
		}
		if prop.IsClosed {
			return schema.ErrPropertyClosed
		}
		if !caller.Equals(prop.Admin) {
			return schema.ErrUnauthorized
		}
		if err := s.ledger.Burn(tx, prop.Mint, prop.Authority(), prop.AvailableUnits, prop.Authority()); err != nil {
			return err
		}
		prop.IsClosed = true
		// the closed state is observable through the index; the record itself
		// is released, so a second close hits not_exist_record
		return deleteProperty(tx, property)
	})
	metricOperation("close_property", err)
	if err != nil {
		return err
	}

	s.syncPropertyIndex(prop)
	s.sendEvent(schema.Event{Type: schema.EventPropertyClosed, Property: property.String(), Actor: caller.String()})
	log.Info("property closed", "address", property.String())
	return nil
}

// GetProperty reads the live registry record.
func (s *CrowdEstate) GetProperty(property solana.PublicKey) (schema.Property, error) {
	prop := schema.Property{}
	err := s.store.View(func(tx *rawdb.Txn) error {
		var err error
		prop, err = getProperty(tx, property)
		return err
	})
	return prop, err
}

// GetBalance reads a token balance straight from the ledger.
func (s *CrowdEstate) GetBalance(mint, owner solana.PublicKey) (uint64, error) {
	var bal uint64
	err := s.store.View(func(tx *rawdb.Txn) error {
		var err error
		bal, err = s.ledger.Balance(tx, mint, owner)
		return err
	})
	return bal, err
}
