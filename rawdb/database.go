// Package rawdb is the durable record store of the platform. Every public
// operation of the accounting core runs inside exactly one Update transaction:
// either all of its record mutations and token movements commit, or none do.
package rawdb

import (
	"errors"
	"os"
	"path"
	"time"

	"github.com/marcelofeitoza/crowd-estate/schema"
	bolt "go.etcd.io/bbolt"
)

const (
	boltAllocSize = 8 * 1024 * 1024
	boltName      = "crowdestate.db"
)

const (
	PropertyBucket   = "property"
	InvestmentBucket = "investment"
	ProposalBucket   = "proposal"
	VoteBucket       = "vote"
	MintBucket       = "token_mint"
	BalanceBucket    = "token_account"
)

type Store struct {
	Db *bolt.DB
}

func NewStore(boltDirPath string) (*Store, error) {
	if len(boltDirPath) == 0 {
		return nil, errors.New("boltDb dir path can not null")
	}
	if err := os.MkdirAll(boltDirPath, os.ModePerm); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path.Join(boltDirPath, boltName), 0660, &bolt.Options{Timeout: 2 * time.Second, InitialMmapSize: 10e6})
	if err != nil {
		if err == bolt.ErrTimeout {
			return nil, errors.New("cannot obtain database lock, database may be in use by another process")
		}
		return nil, err
	}
	db.AllocSize = boltAllocSize

	s := &Store{Db: db}
	if err := s.Db.Update(func(tx *bolt.Tx) error {
		buckets := []string{
			PropertyBucket,
			InvestmentBucket,
			ProposalBucket,
			VoteBucket,
			MintBucket,
			BalanceBucket,
		}
		return createBuckets(tx, buckets)
	}); err != nil {
		return nil, err
	}
	return s, nil
}

func createBuckets(tx *bolt.Tx, buckets []string) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.Db.Close()
}

// Update runs fn inside one writable transaction. Returning an error aborts
// every mutation made through the Txn.
func (s *Store) Update(fn func(tx *Txn) error) error {
	return s.Db.Update(func(btx *bolt.Tx) error {
		return fn(&Txn{btx: btx})
	})
}

// View runs fn inside a read-only transaction.
func (s *Store) View(fn func(tx *Txn) error) error {
	return s.Db.View(func(btx *bolt.Tx) error {
		return fn(&Txn{btx: btx})
	})
}

// Txn scopes record access to one transaction.
type Txn struct {
	btx *bolt.Tx
}

func (t *Txn) Put(bucket, key string, value []byte) error {
	return t.btx.Bucket([]byte(bucket)).Put([]byte(key), value)
}

func (t *Txn) Get(bucket, key string) ([]byte, error) {
	data := t.btx.Bucket([]byte(bucket)).Get([]byte(key))
	if data == nil {
		return nil, schema.ErrNotExist
	}
	return data, nil
}

func (t *Txn) Exist(bucket, key string) bool {
	return t.btx.Bucket([]byte(bucket)).Get([]byte(key)) != nil
}

func (t *Txn) Delete(bucket, key string) error {
	return t.btx.Bucket([]byte(bucket)).Delete([]byte(key))
}

func (t *Txn) ForEach(bucket string, fn func(key string, value []byte) error) error {
	return t.btx.Bucket([]byte(bucket)).ForEach(func(k, v []byte) error {
		return fn(string(k), v)
	})
}

func (t *Txn) GetAllKey(bucket string) ([]string, error) {
	keys := make([]string, 0)
	err := t.ForEach(bucket, func(key string, _ []byte) error {
		keys = append(keys, key)
		return nil
	})
	return keys, err
}
