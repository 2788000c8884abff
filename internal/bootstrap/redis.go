package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/jiheejiheekim/monarch-Mobile/internal/config"

	"github.com/redis/go-redis/v9"
)

// initializeRateLimitRedisClient connects the go-redis client that backs the
// shared login and API counters. ulule/limiter's redis store only accepts
// go-redis, so the rueidis caches cannot share this connection.
// It is nil unless rate limiting uses the redis store.
func initializeRateLimitRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if !cfg.EnableRateLimit || cfg.RateLimitStore != config.RateLimitStoreRedis {
		return nil, nil //nolint:nilnil // not needed
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: cfg.RedisConnTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.RedisConnTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("rate limit redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Printf("Rate limit store: redis (addr=%s, db=%d)", cfg.RedisAddr, cfg.RedisDB)
	return client, nil
}
