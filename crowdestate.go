package crowdestate

import (
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/marcelofeitoza/crowd-estate/cache"
	"github.com/marcelofeitoza/crowd-estate/rawdb"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

const Version = "v1.2.0"

type CrowdEstate struct {
	store  *rawdb.Store
	ledger TokenLedger
	wdb    *Wdb

	engine    *gin.Engine
	scheduler *gocron.Scheduler

	cache     *Cache
	listCache *cache.BigCache

	kafka *KWriter

	paymentMint  solana.PublicKey
	enableFaucet bool
}

func New(
	boltDirPath, mySqlDsn string, sqliteDir string, useSqlite bool,
	paymentMint string, kafkaUri string, useKafka bool, enableFaucet bool,
) *CrowdEstate {
	store, err := rawdb.NewStore(boltDirPath)
	if err != nil {
		panic(err)
	}

	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewMysqlDb(mySqlDsn)
	}
	if err = wdb.Migrate(); err != nil {
		panic(err)
	}

	payMint, err := solana.PublicKeyFromBase58(paymentMint)
	if err != nil {
		panic(err)
	}

	listCache, err := cache.NewBigCache(5 * time.Minute)
	if err != nil {
		panic(err)
	}

	var kafka *KWriter
	if useKafka {
		kafka, err = NewKWriter(EventTopic, kafkaUri)
		if err != nil {
			panic(err)
		}
	}

	s := &CrowdEstate{
		store:        store,
		wdb:          wdb,
		engine:       gin.Default(),
		scheduler:    gocron.NewScheduler(time.UTC),
		cache:        NewCache(payMint),
		listCache:    listCache,
		kafka:        kafka,
		paymentMint:  payMint,
		enableFaucet: enableFaucet,
	}

	if err := s.ensurePaymentMint(); err != nil {
		panic(err)
	}
	return s
}

// ensurePaymentMint registers the stable payment mint on first boot. Its
// authority is the faucet key; in production deployments the faucet endpoint
// stays disabled and funds arrive through external settlement.
func (s *CrowdEstate) ensurePaymentMint() error {
	faucet, err := schema.FaucetAuthority()
	if err != nil {
		return err
	}
	return s.store.Update(func(tx *rawdb.Txn) error {
		if tx.Exist(rawdb.MintBucket, s.paymentMint.String()) {
			return nil
		}
		return s.ledger.CreateMint(tx, s.paymentMint, faucet, schema.PaymentDecimals, "USDC")
	})
}

func (s *CrowdEstate) Run(port string) {
	go s.runAPI(port)
	go s.runJobs()
}

func (s *CrowdEstate) Close() {
	s.scheduler.Stop()
	if s.kafka != nil {
		s.kafka.Close()
	}
	s.wdb.Close()
	if err := s.store.Close(); err != nil {
		log.Error("close store", "err", err)
	}
	log.Info("crowd-estate closed")
}
