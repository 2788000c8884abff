package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/cache"
	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/metrics"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
)

const (
	metricsCachePrefix  = "monarch:metrics:"
	commCodeCachePrefix = "monarch:comm_code:"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) metrics.Recorder {
	prometheusMetrics := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}
	return prometheusMetrics
}

// cacheSettings selects and configures one cache backend.
type cacheSettings struct {
	name          string
	cacheType     string
	prefix        string
	clientTTL     time.Duration
	sizePerConnMB int
}

// newCache builds a cache backend of the configured type.
func newCache[T any](
	ctx context.Context,
	cfg *config.Config,
	s cacheSettings,
) (core.Cache[T], error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CacheInitTimeout)
	defer cancel()

	redisOpts := cache.RedisOptions{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		KeyPrefix: s.prefix,
	}

	switch s.cacheType {
	case config.CommCodeCacheTypeRedisAside:
		c, err := cache.NewRueidisAsideCache[T](redisOpts, s.clientTTL, s.sizePerConnMB)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis-aside %s cache: %w", s.name, err)
		}
		if err := c.Health(ctx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("redis-aside %s cache is unreachable: %w", s.name, err)
		}
		log.Printf(
			"%s cache: redis-aside (addr=%s, db=%d, client_ttl=%s, cache_size_per_conn=%dMB)",
			s.name,
			cfg.RedisAddr,
			cfg.RedisDB,
			s.clientTTL,
			s.sizePerConnMB,
		)
		return c, nil

	case config.CommCodeCacheTypeRedis:
		c, err := cache.NewRueidisCache[T](ctx, redisOpts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis %s cache: %w", s.name, err)
		}
		log.Printf("%s cache: redis (addr=%s, db=%d)", s.name, cfg.RedisAddr, cfg.RedisDB)
		return c, nil

	default: // memory
		log.Printf("%s cache: memory (single instance only)", s.name)
		return cache.NewMemoryCache[T](), nil
	}
}

// initializeMetricsCache initializes the gauge count cache.
// Returns nil when the gauge job will not run.
func initializeMetricsCache(
	ctx context.Context,
	cfg *config.Config,
) (core.Cache[int64], func() error, error) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled {
		return nil, nil, nil
	}

	c, err := newCache[int64](ctx, cfg, cacheSettings{
		name:          "Metrics",
		cacheType:     cfg.MetricsCacheType,
		prefix:        metricsCachePrefix,
		clientTTL:     cfg.CommCodeCacheClientTTL,
		sizePerConnMB: cfg.CommCodeCacheSizePerConn,
	})
	if err != nil {
		return nil, nil, err
	}
	return c, c.Close, nil
}

// initializeCommCodeCache initializes the common code cache (always enabled, defaults to memory)
func initializeCommCodeCache(
	ctx context.Context,
	cfg *config.Config,
	recorder metrics.Recorder,
) (core.Cache[[]models.CommCode], func() error, error) {
	c, err := newCache[[]models.CommCode](ctx, cfg, cacheSettings{
		name:          "Comm code",
		cacheType:     cfg.CommCodeCacheType,
		prefix:        commCodeCachePrefix,
		clientTTL:     cfg.CommCodeCacheClientTTL,
		sizePerConnMB: cfg.CommCodeCacheSizePerConn,
	})
	if err != nil {
		return nil, nil, err
	}
	return cache.NewInstrumentedCache(c, "comm_code", recorder), c.Close, nil
}
