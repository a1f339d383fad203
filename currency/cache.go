package currency

import (
	"sync"
	"time"
)

type entry struct {
	rates      *Rates
	expiration time.Time
}

// Cache holds rate tables per base currency for a fixed TTL. It is safe for
// concurrent use.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time

	hits, misses int64
}

// NewCache creates a cache. A non-positive ttl disables caching.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		items: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get returns the cached rates for base, if present and not expired.
func (c *Cache) Get(base string) (*Rates, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.items[base]
	if !ok || !c.now().Before(e.expiration) {
		delete(c.items, base)
		c.misses++
		return nil, false
	}
	c.hits++
	return e.rates, true
}

// Set stores rates under their base.
func (c *Cache) Set(r *Rates) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[r.Base] = entry{rates: r, expiration: c.now().Add(c.ttl)}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
}

// Stats returns the number of hits and misses so far.
func (c *Cache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
