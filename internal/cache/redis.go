package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// RedisOptions locates the Redis instance shared by the redis-backed caches.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

func (o RedisOptions) clientOption() rueidis.ClientOption {
	return rueidis.ClientOption{
		InitAddress: []string{o.Addr},
		Password:    o.Password,
		SelectDB:    o.DB,
	}
}

// redisKeyspace runs the plain commands both redis caches need against one
// prefixed keyspace. Values travel as JSON.
type redisKeyspace struct {
	client rueidis.Client
	prefix string
}

func (k redisKeyspace) key(name string) string {
	return k.prefix + name
}

func (k redisKeyspace) get(ctx context.Context, name string) ([]byte, error) {
	raw, err := k.client.Do(ctx, k.client.B().Get().Key(k.key(name)).Build()).AsBytes()
	switch {
	case rueidis.IsRedisNil(err):
		return nil, ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return raw, nil
}

func (k redisKeyspace) set(ctx context.Context, name string, raw []byte, ttl time.Duration) error {
	cmd := k.client.B().Set().Key(k.key(name)).Value(rueidis.BinaryString(raw)).Ex(ttl).Build()
	return k.wrap(k.client.Do(ctx, cmd).Error())
}

func (k redisKeyspace) del(ctx context.Context, name string) error {
	return k.wrap(k.client.Do(ctx, k.client.B().Del().Key(k.key(name)).Build()).Error())
}

func (k redisKeyspace) ping(ctx context.Context) error {
	return k.wrap(k.client.Do(ctx, k.client.B().Ping().Build()).Error())
}

func (k redisKeyspace) wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
}

func encodeValue[T any](value T) ([]byte, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return raw, nil
}

func decodeValue[T any](raw []byte) (T, error) {
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return value, nil
}
