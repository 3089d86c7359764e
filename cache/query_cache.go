// Package cache provides short-lived memoization of search results keyed
// by normalized search options.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"news-engine/domain"
)

// DefaultTTL is how long a cached result set stays servable.
const DefaultTTL = 5 * time.Minute

// DefaultMaxEntries bounds the cache; search option combinations are
// few in practice, the bound is protection against key churn.
const DefaultMaxEntries = 256

type cachedResult struct {
	results  []domain.KnowledgeEntry
	storedAt time.Time
}

// QueryCache memoizes search results for a TTL. The LRU handles bounded
// concurrent storage; staleness is decided here against an injectable
// clock so expiry is testable. Concurrent writes for one key simply
// overwrite each other — cached results are disposable.
type QueryCache struct {
	entries *lru.Cache[string, cachedResult]
	ttl     time.Duration
	now     func() time.Time
}

func NewQueryCache(ttl time.Duration, maxEntries int) (*QueryCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	entries, err := lru.New[string, cachedResult](maxEntries)
	if err != nil {
		return nil, err
	}

	return &QueryCache{
		entries: entries,
		ttl:     ttl,
		now:     time.Now,
	}, nil
}

// WithClock replaces the cache's clock. Test hook.
func (c *QueryCache) WithClock(now func() time.Time) *QueryCache {
	c.now = now
	return c
}

// Get returns the live cached results for key. Entries at or past the TTL
// are treated as absent and evicted lazily.
func (c *QueryCache) Get(key string) ([]domain.KnowledgeEntry, bool) {
	cached, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}

	if c.now().Sub(cached.storedAt) >= c.ttl {
		c.entries.Remove(key)
		return nil, false
	}

	return cached.results, true
}

// Set stores results under key, stamping them with the current time.
func (c *QueryCache) Set(key string, results []domain.KnowledgeEntry) {
	c.entries.Add(key, cachedResult{
		results:  results,
		storedAt: c.now(),
	})
}

// Purge drops every cached entry.
func (c *QueryCache) Purge() {
	c.entries.Purge()
}

// Len returns the number of cached entries, live or stale.
func (c *QueryCache) Len() int {
	return c.entries.Len()
}
