// Package store is the storage access layer: CRUD for every entity plus the
// derived reads the dashboard needs (cabinet summaries, ordered cabinets).
// All validation of required fields happens here, at the storage boundary,
// so the API layer only shapes requests and responses.
package store

import (
	"database/sql"

	"github.com/avandijk/medstock/internal/cache"
)

// Store wraps the database handle and the read cache. Write methods
// invalidate the cache kinds they touch themselves; callers never manage
// cache consistency.
type Store struct {
	db    *sql.DB
	cache *cache.Cache

	// uniqueLocations enforces at most one item location per
	// (item, post, cabinet) triple. Configurable because the data model
	// also supports stocking the same item in several drawers of one
	// cabinet.
	uniqueLocations bool
}

// Option configures a Store.
type Option func(*Store)

// WithUniqueLocations toggles the (item, post, cabinet) uniqueness rule.
func WithUniqueLocations(on bool) Option {
	return func(s *Store) { s.uniqueLocations = on }
}

// New creates a Store. The cache may be nil, which disables read caching.
func New(db *sql.DB, c *cache.Cache, opts ...Option) *Store {
	s := &Store{
		db:              db,
		cache:           c,
		uniqueLocations: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
