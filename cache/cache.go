// Package cache provides a capacity and TTL bounded key/value store with
// least-recently-used eviction, used as the DNSLink resolution cache.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

const DefaultCapacity = 1000 // max entries kept
const DefaultTTL = time.Hour // entry freshness window, regardless of access

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache maps string keys to values of type V. Reads refresh recency; writes
// reset the entry's age. Entries older than TTL read as missing even before
// they are physically removed. All methods are safe for concurrent use and
// nil-receiver safe.
type Cache[V any] struct {
	TTL   time.Duration // entries older than this read as missing
	now   func() time.Time
	count atomic.Uint64
	hits  atomic.Uint64
	mu    sync.Mutex // protects lru
	lru   *simplelru.LRU[string, entry[V]]
}

// New returns a Cache with the default capacity and TTL.
func New[V any]() *Cache[V] {
	return NewWith[V](DefaultCapacity, DefaultTTL, nil)
}

// NewWith returns a Cache holding at most capacity entries, each fresh for
// ttl. A non-nil now overrides the clock, for tests.
func NewWith[V any](capacity int, ttl time.Duration, now func() time.Time) *Cache[V] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	if now == nil {
		now = time.Now
	}
	lru, err := simplelru.NewLRU[string, entry[V]](capacity, nil)
	if err != nil {
		panic(err)
	}
	return &Cache[V]{
		TTL: ttl,
		now: now,
		lru: lru,
	}
}

// HitRatio returns the hit ratio as a percentage.
func (c *Cache[V]) HitRatio() (n float64) {
	if c != nil {
		if count := c.count.Load(); count > 0 {
			n = float64(c.hits.Load()*100) / float64(count)
		}
	}
	return
}

// Entries returns the number of entries in the cache, counting expired
// entries not yet swept.
func (c *Cache[V]) Entries() (n int) {
	if c != nil {
		c.mu.Lock()
		n = c.lru.Len()
		c.mu.Unlock()
	}
	return
}

// Get returns the fresh value for key, if any. An expired entry is removed
// and reads as missing.
func (c *Cache[V]) Get(key string) (value V, ok bool) {
	if c != nil {
		c.count.Add(1)
		c.mu.Lock()
		if e, found := c.lru.Get(key); found {
			if c.now().Sub(e.insertedAt) < c.TTL {
				value = e.value
				ok = true
			} else {
				c.lru.Remove(key)
			}
		}
		c.mu.Unlock()
		if ok {
			c.hits.Add(1)
		}
	}
	return
}

// Set inserts or overwrites the entry for key, resetting its age. The
// least-recently-used entry is evicted if capacity would be exceeded.
func (c *Cache[V]) Set(key string, value V) {
	if c != nil {
		e := entry[V]{value: value, insertedAt: c.now()}
		c.mu.Lock()
		c.lru.Add(key, e)
		c.mu.Unlock()
	}
}

// Clear removes all entries unconditionally.
func (c *Cache[V]) Clear() {
	if c != nil {
		c.mu.Lock()
		c.lru.Purge()
		c.mu.Unlock()
	}
}

// Clean sweeps out expired entries.
func (c *Cache[V]) Clean() {
	if c != nil {
		now := c.now()
		c.mu.Lock()
		for _, key := range c.lru.Keys() {
			if e, found := c.lru.Peek(key); found {
				if now.Sub(e.insertedAt) >= c.TTL {
					c.lru.Remove(key)
				}
			}
		}
		c.mu.Unlock()
	}
}
