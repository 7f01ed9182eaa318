package langsupport

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of memoized resolutions per build.
const DefaultCacheSize = 4096

type cacheKey struct {
	variant   string
	dir       string
	specifier string
}

// Cache memoizes resolutions keyed by resolver variant, importing directory and
// specifier. It is safe for concurrent use and lives for one build invocation.
type Cache struct {
	entries *lru.Cache[cacheKey, Resolution]
	hits    atomic.Int64
	misses  atomic.Int64
}

// NewCache creates a cache holding at most size resolutions.
func NewCache(size int) (*Cache, error) {
	entries, err := lru.New[cacheKey, Resolution](size)
	if err != nil {
		return nil, fmt.Errorf("create resolution cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Lookup returns the cached resolution or computes and stores it.
// Errors are not cached. A nil cache always computes.
func (c *Cache) Lookup(variant, dir, specifier string, resolve func() (Resolution, error)) (Resolution, error) {
	if c == nil {
		return resolve()
	}

	key := cacheKey{variant: variant, dir: dir, specifier: specifier}
	if res, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		return res, nil
	}
	c.misses.Add(1)

	res, err := resolve()
	if err != nil {
		return Resolution{}, err
	}
	c.entries.Add(key, res)
	return res, nil
}

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}
