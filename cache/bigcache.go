// Package cache keeps serialized list payloads hot between index queries,
// filling the role redis served in the first deployment of the platform.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

const propertiesKey = "properties"

type BigCache struct {
	Cache *bigcache.BigCache
}

func NewBigCache(allKeysExpTime time.Duration) (*BigCache, error) {

	cache, err := bigcache.New(context.Background(), bigcache.DefaultConfig(allKeysExpTime))

	if err != nil {
		return nil, err
	}
	return &BigCache{Cache: cache}, nil
}

func (s *BigCache) Set(key string, entry []byte) (err error) {
	return s.Cache.Set(key, entry)
}

func (s *BigCache) Get(key string) ([]byte, error) {
	return s.Cache.Get(key)
}

// SetProperties caches the serialized property list.
func (s *BigCache) SetProperties(rows []schema.PropertyIndex) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return s.Cache.Set(propertiesKey, data)
}

// GetProperties returns the cached list, or schema.ErrNotFound on miss.
func (s *BigCache) GetProperties() ([]schema.PropertyIndex, error) {
	data, err := s.Cache.Get(propertiesKey)
	if err != nil {
		return nil, schema.ErrNotFound
	}
	rows := make([]schema.PropertyIndex, 0, 20)
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DropProperties invalidates the list after a property mutation commits.
func (s *BigCache) DropProperties() {
	_ = s.Cache.Delete(propertiesKey)
}
