package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Relational mirror of the record store, used for list/query endpoints and
// statistics. Rows are upserted after the authoritative record-store
// transaction commits; they are a view, never a source of truth.

type PropertyIndex struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Address string `gorm:"uniqueIndex" json:"address"`
	Admin   string `gorm:"index:idx_prop_admin" json:"admin"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`

	TotalUnits     uint64 `json:"totalUnits"`
	AvailableUnits uint64 `json:"availableUnits"`
	UnitPrice      uint64 `json:"unitPrice"`
	DividendsTotal uint64 `json:"dividendsTotal"`
	IsClosed       bool   `json:"isClosed"`
}

type InvestmentIndex struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Address  string `gorm:"uniqueIndex" json:"address"`
	Investor string `gorm:"index:idx_inv_investor" json:"investor"`
	Property string `gorm:"index:idx_inv_property" json:"property"`

	UnitsOwned       uint64 `json:"unitsOwned"`
	DividendsClaimed uint64 `json:"dividendsClaimed"`
	Withdrawn        bool   `json:"withdrawn"`
}

type ProposalIndex struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Address     string `gorm:"uniqueIndex" json:"address"`
	Proposer    string `gorm:"index:idx_pps_proposer" json:"proposer"`
	Property    string `gorm:"index:idx_pps_property" json:"property"`
	Description string `json:"description"`

	Action       datatypes.JSON `json:"action"` // tagged ProposalAction payload
	VotesFor     uint64         `json:"votesFor"`
	VotesAgainst uint64         `json:"votesAgainst"`
	IsExecuted   bool           `json:"isExecuted"`
}

type VoteIndex struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"createdAt"`

	Address  string `gorm:"uniqueIndex" json:"address"`
	Proposal string `gorm:"index:idx_vote_proposal" json:"proposal"`
	Voter    string `json:"voter"`
	InFavor  bool   `json:"inFavor"`
}

type TimeRange struct {
	Start time.Time
	End   time.Time
}

type DailyStatistic struct {
	ID   uint      `gorm:"primarykey"`
	Date time.Time `gorm:"uniqueIndex"`

	Properties        int64
	Investments       int64
	UnitsSold         uint64
	Volume            uint64 // payment base units moved into properties
	DividendsDeclared uint64
}
