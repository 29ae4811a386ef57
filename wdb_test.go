package crowdestate

import (
	"testing"

	"github.com/marcelofeitoza/crowd-estate/schema"
	"github.com/stretchr/testify/assert"
)

func newTestWdb(t *testing.T) *Wdb {
	w := NewSqliteDb(t.TempDir())
	assert.NoError(t, w.Migrate())
	t.Cleanup(w.Close)
	return w
}

func TestWdbProperty(t *testing.T) {
	w := newTestWdb(t)

	p := schema.PropertyIndex{
		Address:        "prop-1",
		Admin:          "admin-1",
		Name:           "Sunset Villa",
		Symbol:         "SVL",
		TotalUnits:     1000,
		AvailableUnits: 1000,
		UnitPrice:      50_000_000,
	}
	assert.NoError(t, w.UpsertProperty(p))

	// upsert replaces by address
	p.AvailableUnits = 900
	p.IsClosed = true
	assert.NoError(t, w.UpsertProperty(p))

	got, err := w.GetProperty("prop-1")
	assert.NoError(t, err)
	assert.Equal(t, uint64(900), got.AvailableUnits)
	assert.True(t, got.IsClosed)

	all, err := w.GetProperties(false)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	open, err := w.GetProperties(true)
	assert.NoError(t, err)
	assert.Len(t, open, 0)
}

func TestWdbInvestments(t *testing.T) {
	w := newTestWdb(t)

	assert.NoError(t, w.UpsertInvestment(schema.InvestmentIndex{
		Address: "inv-1", Investor: "alice", Property: "prop-1", UnitsOwned: 10,
	}))
	assert.NoError(t, w.UpsertInvestment(schema.InvestmentIndex{
		Address: "inv-2", Investor: "alice", Property: "prop-2", UnitsOwned: 5,
	}))
	assert.NoError(t, w.UpsertInvestment(schema.InvestmentIndex{
		Address: "inv-3", Investor: "bob", Property: "prop-1", UnitsOwned: 7,
	}))

	byInvestor, err := w.GetInvestmentsByInvestor("alice")
	assert.NoError(t, err)
	assert.Len(t, byInvestor, 2)

	byProperty, err := w.GetInvestmentsByProperty("prop-1")
	assert.NoError(t, err)
	assert.Len(t, byProperty, 2)

	// withdrawn rows drop out of both views
	assert.NoError(t, w.UpsertInvestment(schema.InvestmentIndex{
		Address: "inv-1", Investor: "alice", Property: "prop-1", UnitsOwned: 0, Withdrawn: true,
	}))
	byInvestor, err = w.GetInvestmentsByInvestor("alice")
	assert.NoError(t, err)
	assert.Len(t, byInvestor, 1)
}

func TestWdbVoteConflict(t *testing.T) {
	w := newTestWdb(t)

	vote := schema.VoteIndex{Address: "vote-1", Proposal: "pps-1", Voter: "alice", InFavor: true}
	assert.NoError(t, w.InsertVote(vote))
	// replays are swallowed, the first row wins
	vote.InFavor = false
	assert.NoError(t, w.InsertVote(vote))
}

func TestWdbStats(t *testing.T) {
	w := newTestWdb(t)

	assert.NoError(t, w.UpsertProperty(schema.PropertyIndex{
		Address: "prop-1", TotalUnits: 1000, AvailableUnits: 900, DividendsTotal: 500,
	}))
	assert.NoError(t, w.UpsertProperty(schema.PropertyIndex{
		Address: "prop-2", TotalUnits: 200, AvailableUnits: 200, IsClosed: true,
	}))
	assert.NoError(t, w.UpsertInvestment(schema.InvestmentIndex{
		Address: "inv-1", Investor: "alice", Property: "prop-1", UnitsOwned: 100,
	}))

	stats, err := w.GetStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(2), stats.Properties)
	assert.Equal(t, int64(1), stats.OpenProperties)
	assert.Equal(t, int64(1), stats.Investments)
	assert.Equal(t, uint64(100), stats.UnitsSold)
	assert.Equal(t, uint64(500), stats.DividendsDeclared)
}

func TestWdbDailyStatistic(t *testing.T) {
	w := newTestWdb(t)

	today := WhenToday()
	assert.NoError(t, w.UpdateDailyStatistic(schema.DailyStatistic{
		Date: today, Properties: 1, Investments: 2, UnitsSold: 100, Volume: 200_000_000,
	}))
	// the day bucket updates in place
	assert.NoError(t, w.UpdateDailyStatistic(schema.DailyStatistic{
		Date: today, Properties: 1, Investments: 3, UnitsSold: 150, Volume: 300_000_000,
	}))

	rows, err := w.GetDailyStatistics(schema.TimeRange{
		Start: today.AddDate(0, 0, -1),
		End:   today.AddDate(0, 0, 1),
	})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0].Investments)
	assert.Equal(t, uint64(300_000_000), rows[0].Volume)
}
