package cache

import (
	"context"
	"time"
)

// Noop is a Cache that stores nothing. It is used when no cache backend is
// configured so read paths fall through to storage and writes skip
// invalidation without failing.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, nil
}

func (Noop) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}

func (Noop) Remove(ctx context.Context, key string) error {
	return nil
}

func (Noop) RemoveByPrefix(ctx context.Context, prefix string) error {
	return nil
}
