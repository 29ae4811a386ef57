package crowdestate

import (
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/marcelofeitoza/crowd-estate/schema"
)

// Cache holds the hot platform-level reads served by /info and /stats.
// Stats are refreshed by the scheduler; info is static per deployment.
type Cache struct {
	info  schema.PlatformInfo
	stats schema.PlatformStats
	lock  sync.RWMutex
}

func NewCache(paymentMint solana.PublicKey) *Cache {
	return &Cache{
		info: schema.PlatformInfo{
			ProgramID:   schema.ProgramID.String(),
			PaymentMint: paymentMint.String(),
			Version:     Version,
		},
	}
}

func (c *Cache) GetInfo() schema.PlatformInfo {
	c.lock.RLock()
	defer c.lock.RUnlock()
	info := c.info
	return info
}

func (c *Cache) GetStats() schema.PlatformStats {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.stats
}

func (c *Cache) UpdateStats(stats schema.PlatformStats) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.stats = stats
}
