package store

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/willf/bloom"

	"github.com/corvuschain/corvus/types"
)

// WalletCache keeps hot wallets in memory in front of the Badger snapshot.
// The Bloom filter answers "has this address ever been indexed" without
// touching disk, which keeps create-on-miss lookups for fresh addresses
// cheap.
type WalletCache struct {
	cache       *lru.Cache[string, *types.Wallet]
	bloomFilter *bloom.BloomFilter
	mutex       sync.RWMutex
}

// NewWalletCache creates a wallet cache with an eviction callback; evicted
// wallets are handed to onEvict so they can be flushed to disk.
func NewWalletCache(size int, expectedItems uint, falsePositiveRate float64, onEvict func(addr string, w *types.Wallet)) (*WalletCache, error) {
	c, err := lru.NewWithEvict[string, *types.Wallet](size, onEvict)
	if err != nil {
		return nil, err
	}

	bf := bloom.NewWithEstimates(expectedItems, falsePositiveRate)

	return &WalletCache{
		cache:       c,
		bloomFilter: bf,
	}, nil
}

// Get retrieves a wallet from the cache.
func (c *WalletCache) Get(addr string) (*types.Wallet, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if !c.bloomFilter.TestString(addr) {
		return nil, false
	}
	return c.cache.Get(addr)
}

// Add inserts a wallet and records its address in the Bloom filter.
func (c *WalletCache) Add(addr string, w *types.Wallet) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.bloomFilter.AddString(addr)
	c.cache.Add(addr, w)
}

// MaybeContains reports whether addr has possibly been indexed before.
// False means definitely not.
func (c *WalletCache) MaybeContains(addr string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.bloomFilter.TestString(addr)
}

// Keys returns the addresses currently cached.
func (c *WalletCache) Keys() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cache.Keys()
}

// Len returns the number of cached wallets.
func (c *WalletCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cache.Len()
}
