// Package cache provides the single-entry time-to-live cache used by the dashboard.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL matches the dashboard's refresh window.
const DefaultTTL = 30 * time.Second

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// TTL holds one value that stays valid for a fixed window after it was stored.
// The zero value is not usable; use New.
type TTL[T any] struct {
	mu       sync.RWMutex
	value    T
	storedAt time.Time
	ttl      time.Duration
	has      bool
	now      Clock
}

// New returns an empty cache with the given window. A nil clock uses time.Now.
func New[T any](ttl time.Duration, now Clock) *TTL[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TTL[T]{ttl: ttl, now: now}
}

// Get returns the stored value if it is still inside the window.
func (c *TTL[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	if !c.has || c.now().Sub(c.storedAt) >= c.ttl {
		return zero, false
	}
	return c.value, true
}

// Peek returns the stored value regardless of age. ok is false only when
// nothing was ever stored (or it was invalidated).
func (c *TTL[T]) Peek() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.has
}

// Set stores v and restarts the window.
func (c *TTL[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	c.storedAt = c.now()
	c.has = true
	c.mu.Unlock()
}

// Invalidate drops the stored value so the next Get misses.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	var zero T
	c.value = zero
	c.storedAt = time.Time{}
	c.has = false
	c.mu.Unlock()
}

// Fresh reports whether a value is stored and inside the window.
func (c *TTL[T]) Fresh() bool {
	_, ok := c.Get()
	return ok
}

// Age returns how long ago the value was stored, or 0 if empty.
func (c *TTL[T]) Age() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.has {
		return 0
	}
	return c.now().Sub(c.storedAt)
}

// StoredAt returns when the value was stored.
func (c *TTL[T]) StoredAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storedAt
}

// Window returns the configured time-to-live.
func (c *TTL[T]) Window() time.Duration {
	return c.ttl
}
