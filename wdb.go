package crowdestate

import (
	"os"
	"path"
	"time"

	"github.com/marcelofeitoza/crowd-estate/schema"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const sqliteName = "crowdestate.sqlite"

// Wdb is the relational mirror of the record store, serving list/query
// endpoints and statistics. It is refreshed after each committed operation
// and rebuilt rows win over stale ones by address.
type Wdb struct {
	Db *gorm.DB
}

func NewMysqlDb(dsn string) *Wdb {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect mysql db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbDir string) *Wdb {
	if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
		panic(err)
	}
	db, err := gorm.Open(sqlite.Open(path.Join(dbDir, sqliteName)), &gorm.Config{
		Logger:          logger.Default.LogMode(logger.Error),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(
		&schema.PropertyIndex{},
		&schema.InvestmentIndex{},
		&schema.ProposalIndex{},
		&schema.VoteIndex{},
		&schema.DailyStatistic{},
	)
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}

func (w *Wdb) UpsertProperty(p schema.PropertyIndex) error {
	return w.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		UpdateAll: true,
	}).Create(&p).Error
}

func (w *Wdb) GetProperty(address string) (schema.PropertyIndex, error) {
	res := schema.PropertyIndex{}
	err := w.Db.Where("address = ?", address).First(&res).Error
	return res, err
}

func (w *Wdb) GetProperties(onlyOpen bool) ([]schema.PropertyIndex, error) {
	res := make([]schema.PropertyIndex, 0, 20)
	db := w.Db.Order("created_at desc")
	if onlyOpen {
		db = db.Where("is_closed = ?", false)
	}
	err := db.Find(&res).Error
	return res, err
}

func (w *Wdb) UpsertInvestment(inv schema.InvestmentIndex) error {
	return w.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		UpdateAll: true,
	}).Create(&inv).Error
}

func (w *Wdb) GetInvestmentsByInvestor(investor string) ([]schema.InvestmentIndex, error) {
	res := make([]schema.InvestmentIndex, 0, 10)
	err := w.Db.Where("investor = ? and withdrawn = ?", investor, false).Find(&res).Error
	return res, err
}

func (w *Wdb) GetInvestmentsByProperty(property string) ([]schema.InvestmentIndex, error) {
	res := make([]schema.InvestmentIndex, 0, 10)
	err := w.Db.Where("property = ? and withdrawn = ?", property, false).Find(&res).Error
	return res, err
}

func (w *Wdb) UpsertProposal(pps schema.ProposalIndex) error {
	return w.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}},
		UpdateAll: true,
	}).Create(&pps).Error
}

func (w *Wdb) GetProposalsByProperty(property string) ([]schema.ProposalIndex, error) {
	res := make([]schema.ProposalIndex, 0, 10)
	err := w.Db.Where("property = ?", property).Order("created_at desc").Find(&res).Error
	return res, err
}

func (w *Wdb) InsertVote(vote schema.VoteIndex) error {
	return w.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote).Error
}

func (w *Wdb) GetStats() (schema.PlatformStats, error) {
	stats := schema.PlatformStats{}
	if err := w.Db.Model(&schema.PropertyIndex{}).Count(&stats.Properties).Error; err != nil {
		return stats, err
	}
	if err := w.Db.Model(&schema.PropertyIndex{}).Where("is_closed = ?", false).Count(&stats.OpenProperties).Error; err != nil {
		return stats, err
	}
	if err := w.Db.Model(&schema.InvestmentIndex{}).Where("withdrawn = ?", false).Count(&stats.Investments).Error; err != nil {
		return stats, err
	}
	if err := w.Db.Model(&schema.ProposalIndex{}).Count(&stats.Proposals).Error; err != nil {
		return stats, err
	}

	type sums struct {
		UnitsSold         uint64
		DividendsDeclared uint64
	}
	sm := sums{}
	err := w.Db.Model(&schema.PropertyIndex{}).
		Select("coalesce(sum(total_units - available_units), 0) as units_sold, coalesce(sum(dividends_total), 0) as dividends_declared").
		Scan(&sm).Error
	if err != nil {
		return stats, err
	}
	stats.UnitsSold = sm.UnitsSold
	stats.DividendsDeclared = sm.DividendsDeclared
	return stats, nil
}

func (w *Wdb) UpdateDailyStatistic(stat schema.DailyStatistic) error {
	return w.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		UpdateAll: true,
	}).Create(&stat).Error
}

func (w *Wdb) GetDailyStatistics(rng schema.TimeRange) ([]schema.DailyStatistic, error) {
	res := make([]schema.DailyStatistic, 0, 30)
	err := w.Db.Where("date >= ? and date < ?", rng.Start, rng.End).Order("date asc").Find(&res).Error
	return res, err
}

// WhenToday returns the day bucket a statistics rollup writes into.
func WhenToday() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
