package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"

	"github.com/redis/rueidis"
	"golang.org/x/sync/singleflight"
)

var _ core.Cache[struct{}] = (*RueidisCache[struct{}])(nil)

// RueidisCache keeps entries in Redis only, so every replica sees the same
// comm codes and gauge counts. Concurrent misses inside one process share a
// fetch; misses on different replicas do not.
type RueidisCache[T any] struct {
	ks     redisKeyspace
	flight singleflight.Group
}

// NewRueidisCache connects without client-side caching and pings once.
func NewRueidisCache[T any](ctx context.Context, opts RedisOptions) (*RueidisCache[T], error) {
	co := opts.clientOption()
	co.DisableCache = true
	client, err := rueidis.NewClient(co)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	c := &RueidisCache[T]{ks: redisKeyspace{client: client, prefix: opts.KeyPrefix}}
	if err := c.ks.ping(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return c, nil
}

func (r *RueidisCache[T]) Get(ctx context.Context, key string) (T, error) {
	raw, err := r.ks.get(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeValue[T](raw)
}

func (r *RueidisCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	raw, err := encodeValue(value)
	if err != nil {
		return err
	}
	return r.ks.set(ctx, key, raw, ttl)
}

func (r *RueidisCache[T]) Delete(ctx context.Context, key string) error {
	return r.ks.del(ctx, key)
}

func (r *RueidisCache[T]) Close() error {
	r.ks.client.Close()
	return nil
}

func (r *RueidisCache[T]) Health(ctx context.Context) error {
	return r.ks.ping(ctx)
}

// GetWithFetch falls back to fetchFunc when Redis is down; the failed write
// afterwards is ignored.
func (r *RueidisCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	return fetchOnce(ctx, &r.flight, r, key, ttl, fetchFunc)
}
