package crowdestate

import (
	"math"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/schema"
	"github.com/stretchr/testify/assert"
)

func TestSoldVolume(t *testing.T) {
	rows := []schema.PropertyIndex{
		{TotalUnits: 1000, AvailableUnits: 995, UnitPrice: 2_000_000},
		{TotalUnits: 10, AvailableUnits: 10, UnitPrice: 50_000_000},
		{TotalUnits: 500, AvailableUnits: 400, UnitPrice: 1_000_000},
	}
	assert.Equal(t, uint64(110_000_000), soldVolume(rows))
}

// Volume must never wrap: rows whose product does not fit are skipped, and a
// sum that would exceed uint64 stops at the last exact total.
func TestSoldVolumeOverflow(t *testing.T) {
	// per-row product overflows, row skipped
	rows := []schema.PropertyIndex{
		{TotalUnits: 3, AvailableUnits: 0, UnitPrice: math.MaxUint64},
		{TotalUnits: 5, AvailableUnits: 0, UnitPrice: 2_000_000},
	}
	assert.Equal(t, uint64(10_000_000), soldVolume(rows))

	// valid products whose sum exceeds uint64 truncate instead of wrapping
	rows = []schema.PropertyIndex{
		{TotalUnits: 1, AvailableUnits: 0, UnitPrice: math.MaxUint64},
		{TotalUnits: 5, AvailableUnits: 0, UnitPrice: 2_000_000},
	}
	assert.Equal(t, uint64(math.MaxUint64), soldVolume(rows))
}

func TestRollupDailyStatistic(t *testing.T) {
	s := newTestPlatform(t)
	admin := solana.NewWallet().PublicKey()
	investor := solana.NewWallet().PublicKey()

	prop, err := s.CreateProperty(admin, "Harbor Lofts", 1000, 2_000_000, "HRB")
	assert.NoError(t, err)
	fundPayment(t, s, investor, 10_000_000)
	_, err = s.Invest(investor, prop.Address, 10_000_000)
	assert.NoError(t, err)

	s.rollupDailyStatistic()

	today := WhenToday()
	rows, err := s.wdb.GetDailyStatistics(schema.TimeRange{
		Start: today.AddDate(0, 0, -1),
		End:   today.AddDate(0, 0, 1),
	})
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].Properties)
	assert.Equal(t, uint64(5), rows[0].UnitsSold)
	assert.Equal(t, uint64(10_000_000), rows[0].Volume)
}
