// Package cache memoizes simulated market probabilities per fixture.
package cache

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/futalgo/internal/metrics"
	"github.com/yourusername/futalgo/internal/simulation"
)

// DefaultTTL is the lifetime of a cached probability set
const DefaultTTL = 30 * time.Minute

// Key identifies a probability set by snapshot version and fixture
type Key struct {
	Version uint64
	Home    string
	Away    string
}

// String returns string representation of cache key. Team names are quoted so
// a separator inside a name cannot collide with another fixture.
func (k Key) String() string {
	return fmt.Sprintf("%d|%q|%q", k.Version, k.Home, k.Away)
}

func keyVersion(key string) (uint64, error) {
	version, _, _ := strings.Cut(key, "|")
	return strconv.ParseUint(version, 10, 64)
}

// ProbabilityCache provides in-memory caching of simulation results
type ProbabilityCache struct {
	cache     *gocache.Cache
	ttl       time.Duration
	maxSize   int
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewProbabilityCache creates a new probability cache
func NewProbabilityCache(ttl time.Duration, maxSize int) *ProbabilityCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProbabilityCache{
		cache:   gocache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached probability set
func (pc *ProbabilityCache) Get(key Key) (*simulation.MarketProbabilities, bool) {
	if v, found := pc.cache.Get(key.String()); found {
		if probs, ok := v.(*simulation.MarketProbabilities); ok {
			pc.hitCount.Add(1)
			pc.updateMetrics(true)
			return probs, true
		}
	}
	pc.missCount.Add(1)
	pc.updateMetrics(false)
	return nil, false
}

// Set stores a probability set
func (pc *ProbabilityCache) Set(key Key, probs *simulation.MarketProbabilities) {
	if pc.maxSize > 0 && pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
		if pc.cache.ItemCount() >= pc.maxSize {
			return
		}
	}
	pc.cache.Set(key.String(), probs, pc.ttl)
}

// InvalidateBefore removes entries computed on snapshots older than version
func (pc *ProbabilityCache) InvalidateBefore(version uint64) int {
	removed := 0
	for k := range pc.cache.Items() {
		v, err := keyVersion(k)
		if err != nil || v < version {
			pc.cache.Delete(k)
			removed++
		}
	}
	return removed
}

// Clear flushes the entire cache
func (pc *ProbabilityCache) Clear() {
	pc.cache.Flush()
	pc.hitCount.Store(0)
	pc.missCount.Store(0)
}

// Stats returns cache statistics
func (pc *ProbabilityCache) Stats() (hits, misses uint64, ratio float64) {
	hits = pc.hitCount.Load()
	misses = pc.missCount.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (pc *ProbabilityCache) ItemCount() int {
	return pc.cache.ItemCount()
}

func (pc *ProbabilityCache) updateMetrics(hit bool) {
	_, _, ratio := pc.Stats()
	metrics.RecordCacheLookup(hit, ratio)
}
