// Package cache provides a process-local TTL cache for read-heavy entity
// lists (posts, cabinets, contacts). The store owns the invalidation
// obligation: every write method invalidates its own entity kind, so callers
// never have to remember to do it.
package cache

import (
	"sync"
	"time"
)

// Entity kinds cached by the store.
const (
	KindPosts    = "posts"
	KindCabinets = "cabinets"
	KindContacts = "contacts"
)

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 30 * time.Second

type entry struct {
	value   any
	expires time.Time
}

// Cache is a TTL cache keyed by (entity kind, key). Expired entries are
// dropped lazily on read; there is no background eviction.
type Cache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]map[string]entry
}

// New creates a cache with the given TTL. A non-positive TTL falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]map[string]entry),
	}
}

// Get returns the cached value for (kind, key), or false if absent or expired.
func (c *Cache) Get(kind, key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kindEntries, ok := c.entries[kind]
	if !ok {
		return nil, false
	}
	e, ok := kindEntries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		delete(kindEntries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores a value for (kind, key), expiring after the cache TTL.
func (c *Cache) Set(kind, key string, value any) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kindEntries, ok := c.entries[kind]
	if !ok {
		kindEntries = make(map[string]entry)
		c.entries[kind] = kindEntries
	}
	kindEntries[key] = entry{value: value, expires: time.Now().Add(c.ttl)}
}

// Invalidate drops every cached entry of the given kind.
func (c *Cache) Invalidate(kind string) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, kind)
}
