package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

type getSetter[T any] interface {
	Get(ctx context.Context, key string) (T, error)
	Set(ctx context.Context, key string, value T, ttl time.Duration) error
}

// fetchOnce serves key from c, or runs fetchFunc once for all concurrent
// callers missing the same key and stores the result.
func fetchOnce[T any](
	ctx context.Context,
	group *singleflight.Group,
	c getSetter[T],
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	if value, err := c.Get(ctx, key); err == nil {
		return value, nil
	}

	v, err, _ := group.Do(key, func() (any, error) {
		// Another caller may have filled the key while we waited
		if value, err := c.Get(ctx, key); err == nil {
			return value, nil
		}
		value, err := fetchFunc(ctx, key)
		if err != nil {
			return nil, err
		}
		_ = c.Set(ctx, key, value, ttl)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
