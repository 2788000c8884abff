package cache

import (
	"context"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
)

// Compile-time interface check.
var _ core.Cache[struct{}] = (*InstrumentedCache[struct{}])(nil)

// InstrumentedCache records hit/miss counts for reads of an underlying cache.
type InstrumentedCache[T any] struct {
	core.Cache[T]
	name     string
	recorder core.Recorder
}

// NewInstrumentedCache wraps c; name labels the cache in metrics.
func NewInstrumentedCache[T any](c core.Cache[T], name string, recorder core.Recorder) *InstrumentedCache[T] {
	return &InstrumentedCache[T]{Cache: c, name: name, recorder: recorder}
}

func (c *InstrumentedCache[T]) Get(ctx context.Context, key string) (T, error) {
	value, err := c.Cache.Get(ctx, key)
	c.recorder.RecordCacheLookup(c.name, err == nil)
	return value, err
}

// GetWithFetch counts a miss when fetchFunc runs in this process.
func (c *InstrumentedCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	fetched := false
	value, err := c.Cache.GetWithFetch(ctx, key, ttl, func(ctx context.Context, key string) (T, error) {
		fetched = true
		return fetchFunc(ctx, key)
	})
	if err == nil {
		c.recorder.RecordCacheLookup(c.name, !fetched)
	}
	return value, err
}
