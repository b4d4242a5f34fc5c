package reconcile

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry is one cached query result.
type cacheEntry struct {
	value any
	built time.Time
	ttl   time.Duration
}

// isExpired returns true if the entry outlived its TTL. A zero TTL never expires;
// such entries only go away through invalidation.
func (e *cacheEntry) isExpired() bool {
	if e.ttl == 0 {
		return false
	}
	return time.Since(e.built) > e.ttl
}

// QueryCache holds fetched last-saved data keyed by query key.
// Concurrent loads of the same key share one fetch. A fetch that was already running when its
// key got invalidated still answers its callers but is never stored.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	gens    map[string]uint64
	sf      singleflight.Group
	ttl     time.Duration
}

// NewQueryCache creates a cache whose entries expire after ttl. Zero disables expiry.
func NewQueryCache(ttl time.Duration) *QueryCache {
	return &QueryCache{
		entries: make(map[string]*cacheEntry),
		gens:    make(map[string]uint64),
		ttl:     ttl,
	}
}

// Get returns a fresh cached value.
func (c *QueryCache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || entry.isExpired() {
		return nil, false
	}
	return entry.value, true
}

// GetOrLoad returns the cached value for key, or runs load and stores its result.
func (c *QueryCache) GetOrLoad(ctx context.Context, key string, load func(ctx context.Context) (any, error)) (any, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// Double-check after acquiring singleflight lock
		if v, ok := c.Get(key); ok {
			return v, nil
		}

		c.mu.Lock()
		gen := c.gens[key]
		c.gens[key] = gen
		c.mu.Unlock()

		v, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gens[key] == gen {
			c.entries[key] = &cacheEntry{value: v, built: time.Now(), ttl: c.ttl}
		}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Invalidate drops key so the next read fetches again.
func (c *QueryCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.gens[key]++
	c.mu.Unlock()
	c.sf.Forget(key)
}

// InvalidatePrefix drops every key starting with prefix.
func (c *QueryCache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	// Every key ever loaded has a generation, running fetches included.
	for key := range c.gens {
		if strings.HasPrefix(key, prefix) {
			c.gens[key]++
			c.sf.Forget(key)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *QueryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
