package sitemap

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// IDSource produces the id list the cache memoizes.
type IDSource interface {
	CollectArticleIDs(ctx context.Context, opts Options) ([]int64, error)
}

// IDCache memoizes one id collection so the sitemap index and its chunks are
// computed from the same list. Concurrent misses share a single collection.
// A zero ttl keeps the result until Invalidate is called.
type IDCache struct {
	source IDSource
	opts   Options
	ttl    time.Duration
	now    func() time.Time

	group singleflight.Group

	mu        sync.RWMutex
	ids       []int64
	fetchedAt time.Time
	valid     bool
	// gen changes on every Invalidate; a collection started under an older
	// gen is returned to its waiters but not stored.
	gen uint64
}

// NewIDCache returns an empty cache over source.
func NewIDCache(source IDSource, opts Options, ttl time.Duration) *IDCache {
	return &IDCache{
		source: source,
		opts:   opts,
		ttl:    ttl,
		now:    time.Now,
	}
}

// IDs returns the cached ids, collecting them first if the cache is empty or
// expired. Callers must not modify the returned slice.
func (c *IDCache) IDs(ctx context.Context) ([]int64, error) {
	if ids, ok := c.cached(); ok {
		return ids, nil
	}

	v, err, _ := c.group.Do("ids", func() (interface{}, error) {
		if ids, ok := c.cached(); ok {
			return ids, nil
		}
		c.mu.RLock()
		gen := c.gen
		c.mu.RUnlock()

		// Detached so one caller's cancellation does not fail every waiter.
		ids, err := c.source.CollectArticleIDs(context.WithoutCancel(ctx), c.opts)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if gen == c.gen {
			c.ids = ids
			c.fetchedAt = c.now()
			c.valid = true
		}
		c.mu.Unlock()
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]int64), nil
}

func (c *IDCache) cached() ([]int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.ids, true
}

// Invalidate drops the cached ids; the next IDs call collects again, even
// when a collection was already running.
func (c *IDCache) Invalidate() {
	c.mu.Lock()
	c.ids = nil
	c.valid = false
	c.gen++
	c.mu.Unlock()
	c.group.Forget("ids")
}

// FetchedAt reports when the cached ids were collected, or false if empty.
func (c *IDCache) FetchedAt() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt, c.valid
}
