package schema

import (
	"math/big"

	"github.com/shopspring/decimal"
)

type RespErr struct {
	Err string `json:"error"`
}

// request bodies; signer fields are trusted identities, authenticated by the
// deployment's gateway before a request reaches this service

type ReqCreateProperty struct {
	Admin      string `json:"admin"`
	Name       string `json:"name"`
	TotalUnits uint64 `json:"totalUnits"`
	UnitPrice  uint64 `json:"unitPrice"`
	Symbol     string `json:"symbol"`
}

type ReqMintUnits struct {
	Admin  string `json:"admin"`
	Amount uint64 `json:"amount"`
}

type ReqUpdateProperty struct {
	Admin  string `json:"admin"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type ReqCloseProperty struct {
	Admin string `json:"admin"`
}

type ReqInvest struct {
	Investor      string `json:"investor"`
	PaymentAmount uint64 `json:"paymentAmount"`
}

type ReqWithdraw struct {
	Investor string `json:"investor"`
	Admin    string `json:"admin"` // co-signer, mirrors the on-chain account list
}

type ReqDistributeDividends struct {
	Admin  string `json:"admin"`
	Amount uint64 `json:"amount"`
}

type ReqRedeemDividends struct {
	Investor string `json:"investor"`
}

type ReqCreateProposal struct {
	Proposer    string `json:"proposer"`
	Property    string `json:"property"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	NewAdmin    string `json:"newAdmin,omitempty"`
	Amount      uint64 `json:"amount,omitempty"`
}

type ReqVote struct {
	Voter   string `json:"voter"`
	InFavor bool   `json:"inFavor"`
}

type ReqExecuteProposal struct {
	Caller string `json:"caller"`
}

type ReqAirdrop struct {
	Owner  string `json:"owner"`
	Amount uint64 `json:"amount"`
}

// responses

type RespProperty struct {
	Property
	UnitPriceDisplay string `json:"unitPriceDisplay"` // human payment-token amount
}

// DisplayAmount converts payment base units into the human token amount,
// e.g. 1500000 -> "1.5" with 6 decimals. Goes through big.Int so the full
// uint64 range stays non-negative.
func DisplayAmount(baseUnits uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(baseUnits), -PaymentDecimals).String()
}

type RespInvestment struct {
	Investment
	ClaimableDividends uint64 `json:"claimableDividends"`
}

type RespWithdraw struct {
	Property string `json:"property"`
	Investor string `json:"investor"`
	Refund   uint64 `json:"refund"`
}

type RespRedeem struct {
	Property string `json:"property"`
	Investor string `json:"investor"`
	Claimed  uint64 `json:"claimed"`
}

type RespBalance struct {
	Mint    string `json:"mint"`
	Owner   string `json:"owner"`
	Balance uint64 `json:"balance"`
}

// PlatformInfo is the static identity of a deployment.
type PlatformInfo struct {
	ProgramID   string `json:"programId"`
	PaymentMint string `json:"paymentMint"`
	Version     string `json:"version"`
}

// PlatformStats is the periodically refreshed aggregate view.
type PlatformStats struct {
	Properties        int64  `json:"properties"`
	OpenProperties    int64  `json:"openProperties"`
	Investments       int64  `json:"investments"`
	UnitsSold         uint64 `json:"unitsSold"`
	DividendsDeclared uint64 `json:"dividendsDeclared"`
	Proposals         int64  `json:"proposals"`
}
