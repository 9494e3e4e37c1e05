package utils

import (
	"sync"
	"time"
)

// -----------------------------------------------------------------------------
// TTLCache is a small keyed cache with per-cache expiry. The dashboard uses
// one for history series (1h) and one for forecasts (1h); quote snapshots
// live in the server state instead.
// -----------------------------------------------------------------------------

type cacheEntry[V any] struct {
	value    V
	storedAt time.Time
}

type TTLCache[V any] struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry[V]
}

// -----------------------------------------------------------------------------

func NewTTLCache[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		ttl:     ttl,
		entries: make(map[string]cacheEntry[V]),
	}
}

// -----------------------------------------------------------------------------

// Get returns the cached value and true when present and not expired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Since(entry.storedAt) > c.ttl {
		var zero V
		return zero, false
	}
	return entry.value, true
}

// -----------------------------------------------------------------------------

func (c *TTLCache[V]) Put(key string, value V) {
	c.mu.Lock()
	c.entries[key] = cacheEntry[V]{value: value, storedAt: time.Now()}
	c.mu.Unlock()
}

// -----------------------------------------------------------------------------

// Purge drops expired entries. Called opportunistically by the refresh loop.
func (c *TTLCache[V]) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if time.Since(entry.storedAt) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// -----------------------------------------------------------------------------

func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
