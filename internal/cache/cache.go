// Marquee - Movie Recommendations and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"sync"
	"time"
)

// Entry is a cached value with the time it was stored.
type Entry[V any] struct {
	Value      V
	InsertedAt time.Time
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	TotalKeys int64
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for insertion and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Cache is a map of keys to entries that expire ttl after insertion.
// The lock is held only for map access.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]Entry[V]
	ttl     time.Duration
	now     func() time.Time
	stats   Stats
}

// New creates a cache whose entries expire ttl after they are stored.
// A non-positive ttl disables expiry.
func New[V any](ttl time.Duration, opts ...Option) *Cache[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		entries: make(map[string]Entry[V]),
		ttl:     ttl,
		now:     o.now,
	}
}

// Get returns the value for key if it is present and younger than the TTL.
// An expired entry is deleted and reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	if c.expired(entry) {
		delete(c.entries, key)
		c.stats.Misses++
		c.stats.Evictions++
		c.stats.TotalKeys = int64(len(c.entries))
		var zero V
		return zero, false
	}

	c.stats.Hits++
	return entry.Value, true
}

// Set stores value under key, replacing any previous entry.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry[V]{Value: value, InsertedAt: c.now()}
	c.stats.TotalKeys = int64(len(c.entries))
}

// Peek returns the value for key like Get but leaves the counters and the
// entry untouched. An expired entry is reported as absent.
func (c *Cache[V]) Peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.expired(entry) {
		var zero V
		return zero, false
	}
	return entry.Value, true
}

// Len returns the number of stored entries, including expired ones that
// have not been looked up since they expired.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the counters.
func (c *Cache[V]) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache[V]) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// expired must be called with mu held.
func (c *Cache[V]) expired(entry Entry[V]) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().Sub(entry.InsertedAt) >= c.ttl
}
