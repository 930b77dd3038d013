package sportsdata

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// StatsCache provides in-memory caching for fixture statistics. Finished
// fixtures never change, so a hit saves an upstream request and a rate
// limiter slot.
type StatsCache struct {
	cache *cache.Cache
	ttl   time.Duration

	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewStatsCache creates a new statistics cache
func NewStatsCache(ttl time.Duration) *StatsCache {
	return &StatsCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

func statsKey(fixtureID int64) string {
	return fmt.Sprintf("stats:%d", fixtureID)
}

// Get retrieves cached statistics for a fixture
func (sc *StatsCache) Get(fixtureID int64) (*FixtureStatistics, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if value, found := sc.cache.Get(statsKey(fixtureID)); found {
		if stats, ok := value.(*FixtureStatistics); ok {
			sc.hitCount++
			return stats, true
		}
	}

	sc.missCount++
	return nil, false
}

// Set stores statistics for a fixture
func (sc *StatsCache) Set(fixtureID int64, stats *FixtureStatistics) {
	sc.cache.Set(statsKey(fixtureID), stats, sc.ttl)
}

// Stats returns cache hit statistics
func (sc *StatsCache) Stats() (hits, misses uint64) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.hitCount, sc.missCount
}

// Clear flushes the entire cache
func (sc *StatsCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.cache.Flush()
	sc.hitCount = 0
	sc.missCount = 0
}

// ItemCount returns the number of cached entries
func (sc *StatsCache) ItemCount() int {
	return sc.cache.ItemCount()
}
