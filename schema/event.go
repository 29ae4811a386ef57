package schema

const (
	EventPropertyCreated     = "property_created"
	EventPropertyUpdated     = "property_updated"
	EventPropertyClosed      = "property_closed"
	EventUnitsMinted         = "units_minted"
	EventInvested            = "invested"
	EventWithdrawn           = "withdrawn"
	EventDividendsDeclared   = "dividends_declared"
	EventDividendsRedeemed   = "dividends_redeemed"
	EventProposalCreated     = "proposal_created"
	EventVoted               = "voted"
	EventProposalExecuted    = "proposal_executed"
)

// Event is the JSON message published to kafka after a state change commits.
type Event struct {
	ID        string `json:"id"` // uuid
	Type      string `json:"type"`
	Property  string `json:"property,omitempty"`
	Proposal  string `json:"proposal,omitempty"`
	Actor     string `json:"actor"`
	Amount    uint64 `json:"amount,omitempty"`
	Timestamp int64  `json:"timestamp"` // unix seconds
}
