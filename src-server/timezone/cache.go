package timezone

import (
	"strconv"
	"sync"
	"time"
)

const (
	DisplayCacheCapacity = 5000
	DisplayCacheTTL      = 15 * time.Minute
)

type displayCacheEntry struct {
	value   DisplayTime
	addedAt time.Time
}

// DisplayCache is a bounded, time-expiring cache of computed display times,
// keyed by (minute-truncated instant, timezone name). Entries are immutable
// once stored; eviction only removes them. A mutex guards the map since the
// cache is shared across concurrent requests.
type DisplayCache struct {
	mu       sync.Mutex
	entries  map[string]displayCacheEntry
	order    []string
	capacity int
	ttl      time.Duration

	hits   uint64
	misses uint64
}

func NewDisplayCache(capacity int, ttl time.Duration) *DisplayCache {
	if capacity <= 0 {
		capacity = DisplayCacheCapacity
	}
	if ttl <= 0 {
		ttl = DisplayCacheTTL
	}
	return &DisplayCache{
		entries:  make(map[string]displayCacheEntry),
		capacity: capacity,
		ttl:      ttl,
	}
}

func cacheKey(utc time.Time, zone string) string {
	return strconv.FormatInt(utc.Truncate(time.Minute).Unix(), 10) + "_" + zone
}

// get returns a copy of the cached value, or nil on miss. Entries past the
// TTL are treated as absent and dropped lazily.
func (c *DisplayCache) get(utc time.Time, zone string) *DisplayTime {
	key := cacheKey(utc, zone)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok && time.Since(entry.addedAt) < c.ttl {
		c.hits++
		value := entry.value
		return &value
	}
	if ok {
		// drop the order slot too, or a later re-set of this key would leave
		// a stale duplicate that makes capacity eviction remove the fresh
		// entry ahead of its turn
		delete(c.entries, key)
		for i, orderKey := range c.order {
			if orderKey == key {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	c.misses++
	return nil
}

func (c *DisplayCache) set(utc time.Time, zone string, value DisplayTime) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		// evict the oldest 10% by insertion order
		evict := c.capacity / 10
		if evict < 1 {
			evict = 1
		}
		if evict > len(c.order) {
			evict = len(c.order)
		}
		for _, key := range c.order[:evict] {
			delete(c.entries, key)
		}
		c.order = c.order[evict:]
	}

	key := cacheKey(utc, zone)
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = displayCacheEntry{value: value, addedAt: time.Now()}
}

func (c *DisplayCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports cumulative lookup hits and misses.
func (c *DisplayCache) Stats() (hits uint64, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
