package crowdestate

import (
	"github.com/marcelofeitoza/crowd-estate/schema"
)

func (s *CrowdEstate) runJobs() {
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.refreshPropertyList)
	s.scheduler.Every(1).Minute().SingletonMode().Do(s.updatePlatformStats)
	s.scheduler.Every(5).Minute().SingletonMode().Do(s.rollupDailyStatistic)

	s.scheduler.StartAsync()
}

func (s *CrowdEstate) refreshPropertyList() {
	rows, err := s.wdb.GetProperties(false)
	if err != nil {
		log.Error("refresh property list", "err", err)
		return
	}
	if err := s.listCache.SetProperties(rows); err != nil {
		log.Error("cache property list", "err", err)
	}
}

func (s *CrowdEstate) updatePlatformStats() {
	stats, err := s.wdb.GetStats()
	if err != nil {
		log.Error("update platform stats", "err", err)
		return
	}
	s.cache.UpdateStats(stats)
	metricPlatformStats(stats)
}

func (s *CrowdEstate) rollupDailyStatistic() {
	stats, err := s.wdb.GetStats()
	if err != nil {
		log.Error("rollup daily statistic", "err", err)
		return
	}

	// volume is derivable from units sold at each property's fixed price;
	// summed per row to avoid overflow on the aggregate query
	rows, err := s.wdb.GetProperties(false)
	if err != nil {
		log.Error("rollup daily statistic", "err", err)
		return
	}
	volume := soldVolume(rows)

	err = s.wdb.UpdateDailyStatistic(schema.DailyStatistic{
		Date:              WhenToday(),
		Properties:        stats.Properties,
		Investments:       stats.Investments,
		UnitsSold:         stats.UnitsSold,
		Volume:            volume,
		DividendsDeclared: stats.DividendsDeclared,
	})
	if err != nil {
		log.Error("store daily statistic", "err", err)
	}
}

// soldVolume prices the sold units of each listing. Rows whose product does
// not fit a uint64 are skipped; the running total stops at the last exact sum
// instead of wrapping.
func soldVolume(rows []schema.PropertyIndex) uint64 {
	var volume uint64
	for _, row := range rows {
		sold := row.TotalUnits - row.AvailableUnits
		v, ok := checkedMul(sold, row.UnitPrice)
		if !ok {
			continue
		}
		sum, ok := checkedAdd(volume, v)
		if !ok {
			log.Warn("daily volume overflow, rollup truncated")
			return volume
		}
		volume = sum
	}
	return volume
}
