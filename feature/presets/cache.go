package presets

import (
	"context"
	"sync"
	"time"

	"blendshape-presets/core/reconcile"

	"golang.org/x/sync/singleflight"
)

// cacheEntry is one decoded preset and the time it was loaded.
type cacheEntry struct {
	bundle *reconcile.Bundle
	built  time.Time
}

// Cache keeps decoded presets for a TTL. Concurrent misses for the same name
// share a single load. Cached bundles are shared and must not be mutated.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	// gen counts invalidations per name; a load only stores its result
	// when no invalidation happened while it ran.
	gen     map[string]uint64
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache. A zero ttl disables caching.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
		gen:     make(map[string]uint64),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache) fresh(name string) (*reconcile.Bundle, bool) {
	c.mu.RLock()
	entry, ok := c.entries[name]
	c.mu.RUnlock()
	if !ok || c.ttl == 0 || c.now().Sub(entry.built) > c.ttl {
		return nil, false
	}
	return entry.bundle, true
}

// GetOrLoad returns the cached preset for name, or calls load.
func (c *Cache) GetOrLoad(ctx context.Context, name string, load func(context.Context) (*reconcile.Bundle, error)) (*reconcile.Bundle, error) {
	if b, ok := c.fresh(name); ok {
		return b, nil
	}

	result, err, _ := c.sf.Do(name, func() (any, error) {
		// Another caller may have stored it while we waited.
		if b, ok := c.fresh(name); ok {
			return b, nil
		}

		c.mu.RLock()
		gen := c.gen[name]
		c.mu.RUnlock()

		b, err := load(ctx)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			if c.gen[name] == gen {
				c.entries[name] = &cacheEntry{bundle: b, built: c.now()}
			}
			c.mu.Unlock()
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*reconcile.Bundle), nil
}

// Invalidate drops name from the cache. A load already in flight for name
// still returns to its callers but is not stored, and later callers start a
// new load.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.gen[name]++
	c.mu.Unlock()
	c.sf.Forget(name)
}
