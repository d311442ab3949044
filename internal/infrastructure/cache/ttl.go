package cache

import (
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time // zero: never expires
}

// TTL is an in-process key/value map with per-entry expiry.
//
// There is no capacity bound and no background sweep: an expired entry is
// removed only when its key is read again, so expired-but-unread entries stay
// in memory. Keys used by the repository decorators are few and short-lived.
type TTL[V any] struct {
	mu      sync.Mutex
	entries map[string]ttlEntry[V]
	now     func() time.Time
}

func NewTTL[V any]() *TTL[V] {
	return NewTTLWithClock[V](time.Now)
}

func NewTTLWithClock[V any](now func() time.Time) *TTL[V] {
	if now == nil {
		now = time.Now
	}
	return &TTL[V]{
		entries: make(map[string]ttlEntry[V]),
		now:     now,
	}
}

// Set stores value until now+ttl. A ttl <= 0 stores it without expiry.
func (c *TTL[V]) Set(key string, value V, ttl time.Duration) {
	entry := ttlEntry[V]{value: value}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
}

// Get returns the value stored under key. An expired entry is deleted and reported absent.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}

	return entry.value, true
}

func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len counts stored entries, including expired ones not yet read.
func (c *TTL[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
