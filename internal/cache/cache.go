// Package cache keeps the last fetched list of each resource until a write
// invalidates it.
package cache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// Cache holds raw resource lists keyed by resource name. It is safe for
// concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[resource.Name]any
	gen     map[resource.Name]uint64
	group   singleflight.Group
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		entries: map[resource.Name]any{},
		gen:     map[resource.Name]uint64{},
	}
}

// Load returns the cached list for name, calling fetch on a miss.
// Concurrent misses for one resource share a single fetch, which runs
// detached from any caller's cancellation. A fetch that
// started before an invalidation of the same resource is returned to its
// callers but not stored.
func Load[T any](ctx context.Context, c *Cache, name resource.Name, fetch func(context.Context) ([]T, error)) ([]T, error) {
	c.mu.Lock()
	if v, ok := c.entries[name]; ok {
		c.mu.Unlock()
		items, ok := v.([]T)
		if !ok {
			return nil, fmt.Errorf("cache entry for %s has type %T", name, v)
		}
		return items, nil
	}
	started := c.gen[name]
	c.mu.Unlock()

	// The shared fetch outlives any one caller; each caller stops waiting
	// when its own ctx ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(string(name), func() (any, error) {
		items, err := fetch(fetchCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen[name] == started {
			c.entries[name] = items
		}
		c.mu.Unlock()
		return items, nil
	})

	var v any
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		v = res.Val
	}
	items, ok := v.([]T)
	if !ok {
		return nil, fmt.Errorf("fetch for %s returned %T", name, v)
	}
	return items, nil
}

// Invalidate drops the cached lists for names so the next Load refetches.
func (c *Cache) Invalidate(names ...resource.Name) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range names {
		delete(c.entries, n)
		c.gen[n]++
		c.group.Forget(string(n))
	}
}

// Cached reports whether a list for name is currently held.
func (c *Cache) Cached(name resource.Name) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[name]
	return ok
}
