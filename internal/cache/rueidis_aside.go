package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"

	"github.com/redis/rueidis/rueidisaside"
)

var _ core.Cache[struct{}] = (*RueidisAsideCache[struct{}])(nil)

// RueidisAsideCache serves hot lookups from a per-connection local copy kept
// coherent by RESP3 invalidation. rueidisaside locks the key in Redis while
// one replica fetches, so a cold code group hits the database once cluster-wide.
type RueidisAsideCache[T any] struct {
	aside     rueidisaside.CacheAsideClient
	ks        redisKeyspace
	clientTTL time.Duration
}

// NewRueidisAsideCache does not dial eagerly; callers should check Health.
// clientTTL bounds the local copy, sizePerConnMB its memory per connection.
func NewRueidisAsideCache[T any](
	opts RedisOptions,
	clientTTL time.Duration,
	sizePerConnMB int,
) (*RueidisAsideCache[T], error) {
	co := opts.clientOption()
	co.CacheSizeEachConn = sizePerConnMB * 1024 * 1024
	aside, err := rueidisaside.NewClient(rueidisaside.ClientOption{ClientOption: co})
	if err != nil {
		return nil, fmt.Errorf("failed to create rueidisaside client: %w", err)
	}

	return &RueidisAsideCache[T]{
		aside:     aside,
		ks:        redisKeyspace{client: aside.Client(), prefix: opts.KeyPrefix},
		clientTTL: clientTTL,
	}, nil
}

// Get never populates: a miss comes back as ErrCacheMiss.
func (r *RueidisAsideCache[T]) Get(ctx context.Context, key string) (T, error) {
	var zero T
	val, err := r.aside.Get(ctx, r.clientTTL, r.ks.key(key),
		func(context.Context, string) (string, error) { return "", ErrCacheMiss },
	)
	switch {
	case errors.Is(err, ErrCacheMiss), err == nil && val == "":
		return zero, ErrCacheMiss
	case err != nil:
		return zero, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return decodeValue[T]([]byte(val))
}

// GetWithFetch stores the fetched value for ttl in Redis; the local copy
// still expires after clientTTL.
func (r *RueidisAsideCache[T]) GetWithFetch(
	ctx context.Context,
	key string,
	ttl time.Duration,
	fetchFunc func(ctx context.Context, key string) (T, error),
) (T, error) {
	var zero T
	val, err := r.aside.Get(ctx, ttl, r.ks.key(key),
		func(ctx context.Context, _ string) (string, error) {
			value, err := fetchFunc(ctx, key)
			if err != nil {
				return "", err
			}
			raw, err := encodeValue(value)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		},
	)
	if err != nil {
		return zero, fmt.Errorf("failed to get with fetch: %w", err)
	}
	return decodeValue[T]([]byte(val))
}

func (r *RueidisAsideCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) error {
	raw, err := encodeValue(value)
	if err != nil {
		return err
	}
	return r.ks.set(ctx, key, raw, ttl)
}

// Delete also drops the local copies of other replicas through invalidation.
func (r *RueidisAsideCache[T]) Delete(ctx context.Context, key string) error {
	return r.ks.del(ctx, key)
}

func (r *RueidisAsideCache[T]) Close() error {
	r.aside.Close()
	return nil
}

func (r *RueidisAsideCache[T]) Health(ctx context.Context) error {
	return r.ks.ping(ctx)
}
