package core

import (
	"context"
	"time"
)

// Cache[T] is a TTL key-value store for read-mostly lookups such as common
// code groups and the shared user gauge counts.
type Cache[T any] interface {
	// Get returns ErrCacheMiss if the key does not exist or has expired.
	Get(ctx context.Context, key string) (T, error)

	Set(ctx context.Context, key string, value T, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error

	// Health reports whether the backend is reachable.
	Health(ctx context.Context) error

	// GetWithFetch returns the cached value, or calls fetchFunc on a miss and
	// stores its result. Concurrent misses on one key share a single fetch.
	GetWithFetch(
		ctx context.Context,
		key string,
		ttl time.Duration,
		fetchFunc func(ctx context.Context, key string) (T, error),
	) (T, error)
}
