package data

import (
	"fmt"
	"sync"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// MemoryCache implements Cache using in-memory storage
type MemoryCache struct {
	cache map[string][]types.PriceBar
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string][]types.PriceBar),
	}
}

// Get retrieves a series from cache if available
func (c *MemoryCache) Get(key string) ([]types.PriceBar, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	bars, exists := c.cache[key]
	if exists {
		// Return a copy to prevent external modifications
		result := make([]types.PriceBar, len(bars))
		copy(result, bars)
		return result, true
	}

	return nil, false
}

// Set stores a series in cache
func (c *MemoryCache) Set(key string, bars []types.PriceBar) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cached := make([]types.PriceBar, len(bars))
	copy(cached, bars)
	c.cache[key] = cached
}

// Clear removes all cached series
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string][]types.PriceBar)
}

// Size returns the number of cached entries
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CachedProvider wraps another Provider with caching functionality
type CachedProvider struct {
	provider Provider
	cache    Cache
}

// NewCachedProvider creates a new cached data provider
func NewCachedProvider(provider Provider) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    NewMemoryCache(),
	}
}

// NewCachedProviderWithCache creates a new cached data provider with a custom cache
func NewCachedProviderWithCache(provider Provider, cache Cache) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
	}
}

// GetName returns the name of the underlying provider with cache indication
func (p *CachedProvider) GetName() string {
	return p.provider.GetName() + " (cached)"
}

// GetSeries returns the cached series when available, loading it otherwise
func (p *CachedProvider) GetSeries(symbol string, start, end time.Time) ([]types.PriceBar, error) {
	key := cacheKey(symbol, start, end)

	if bars, ok := p.cache.Get(key); ok {
		return bars, nil
	}

	bars, err := p.provider.GetSeries(symbol, start, end)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, bars)
	return bars, nil
}

func cacheKey(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s", symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
}
