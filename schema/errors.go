package schema

import (
	"errors"
)

var (
	ErrNotExist = errors.New("not_exist_record")
	ErrNotFound = errors.New("not_found")

	// property registry
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidTotalUnits  = errors.New("invalid_total_units")
	ErrInvalidUnitPrice   = errors.New("invalid_unit_price")
	ErrInvalidName        = errors.New("invalid_property_name")
	ErrInvalidTokenSymbol = errors.New("invalid_token_symbol")
	ErrPropertyClosed     = errors.New("property_closed")
	ErrPropertyExist      = errors.New("property_exist")

	// investment ledger
	ErrInsufficientAmount = errors.New("insufficient_amount")
	ErrNotEnoughUnits     = errors.New("not_enough_units")

	// checked arithmetic
	ErrOverflow       = errors.New("overflow_error")
	ErrDivision       = errors.New("division_error")
	ErrMultiplication = errors.New("multiplication_error")

	// dividends
	ErrInvalidDividendsClaim = errors.New("invalid_dividends_claim")
	ErrNoDividendsToClaim    = errors.New("no_dividends_to_claim")

	// governance
	ErrDescriptionTooLong      = errors.New("description_too_long")
	ErrInvalidNewAdmin         = errors.New("invalid_new_admin")
	ErrInvalidAdditionalUnits  = errors.New("invalid_additional_units")
	ErrProposalAlreadyExecuted = errors.New("proposal_already_executed")
	ErrAlreadyVoted            = errors.New("already_voted")
	ErrProposalNotApproved     = errors.New("proposal_not_approved")
	ErrInvalidProposalType     = errors.New("invalid_proposal_type")

	// token ledger
	ErrInsufficientBalance = errors.New("insufficient_balance")
	ErrInvalidAuthority    = errors.New("invalid_authority")
	ErrMintExist           = errors.New("mint_exist")
	ErrMintMismatch        = errors.New("mint_mismatch")
)
