package cache

import (
	"context"
	"time"
)

const (
	// DefaultTTL is applied to cached reads populated on a miss.
	DefaultTTL = 5 * time.Minute

	// Key prefixes per entity type. Writes invalidate by prefix: coarse on
	// purpose, a product write clears every product listing at once.
	ProductPrefix   = "product:"
	CategoryPrefix  = "category:"
	DashboardPrefix = "dashboard:"
)

// Cache is a string-keyed store with TTL and prefix invalidation. Backends
// that cannot scan keys may implement RemoveByPrefix as a no-op; callers
// treat invalidation as best-effort and never fail a write on it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
	RemoveByPrefix(ctx context.Context, prefix string) error
}
