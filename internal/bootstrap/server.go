package bootstrap

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/metrics"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"

	"github.com/appleboy/graceful"
)

const auditCleanupInterval = 24 * time.Hour

func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// addServerRunningJob serves until the manager is signalled.
func addServerRunningJob(m *graceful.Manager, srv *http.Server) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// shutdownStep releases one resource. Steps run in order.
type shutdownStep struct {
	name string
	run  func() error
}

// runShutdown runs every step in order, logging failures and returning the
// first. A failed step does not stop the ones after it.
func runShutdown(steps []shutdownStep) error {
	var first error
	for _, step := range steps {
		if step.run == nil {
			continue
		}
		if err := step.run(); err != nil {
			log.Printf("Shutdown: %s failed: %v", step.name, err)
			if first == nil {
				first = err
			}
			continue
		}
		log.Printf("Shutdown: %s done", step.name)
	}
	return first
}

// shutdownSteps orders teardown: in-flight requests drain first, then the
// audit queue is flushed, and only then are the stores it writes to closed.
func (app *Application) shutdownSteps() []shutdownStep {
	steps := []shutdownStep{
		{"http server", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), app.Config.ServerShutdownTimeout)
			defer cancel()
			return app.Server.Shutdown(ctx)
		}},
		{"audit service", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), app.Config.AuditShutdownTimeout)
			defer cancel()
			return app.AuditService.Shutdown(ctx)
		}},
	}
	if app.RateLimitRedisClient != nil {
		steps = append(steps, shutdownStep{"rate limit redis client", app.RateLimitRedisClient.Close})
	}
	return append(steps,
		shutdownStep{"metrics cache", app.MetricsCacheCloser},
		shutdownStep{"comm code cache", app.CommCodeCacheCloser},
		shutdownStep{"database", app.DB.Close},
	)
}

// addPeriodicJob runs fn immediately and then every interval until shutdown.
func addPeriodicJob(m *graceful.Manager, interval time.Duration, fn func(ctx context.Context)) {
	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		fn(ctx)
		for {
			select {
			case <-ticker.C:
				fn(ctx)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// addAuditCleanupJob prunes entries older than the retention once a day.
func addAuditCleanupJob(m *graceful.Manager, cfg *config.Config, audit *services.AuditService) {
	if !audit.Enabled() || cfg.AuditLogRetention <= 0 {
		return
	}
	addPeriodicJob(m, auditCleanupInterval, func(ctx context.Context) {
		cleanupAuditLogs(ctx, audit, cfg.AuditLogRetention)
	})
}

func cleanupAuditLogs(ctx context.Context, audit *services.AuditService, retention time.Duration) {
	deleted, err := audit.CleanupOldLogs(ctx, retention)
	switch {
	case err != nil:
		log.Printf("[Audit] cleanup failed: %v", err)
	case deleted > 0:
		log.Printf("[Audit] removed %d entries older than %s", deleted, retention)
	}
}

// addUserGaugeJob refreshes the active and locked user gauges. The count cache
// TTL equals the interval, so replicas sharing Redis query M_USER once per tick.
func addUserGaugeJob(
	m *graceful.Manager,
	cfg *config.Config,
	db *store.Store,
	recorder metrics.Recorder,
	countCache core.Cache[int64],
) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled || countCache == nil {
		return
	}

	counts := metrics.NewCacheWrapper(db, countCache)
	addPeriodicJob(m, cfg.MetricsGaugeUpdateInterval, func(ctx context.Context) {
		metrics.UpdateUserGauges(
			ctx,
			counts,
			recorder,
			cfg.LockoutThreshold,
			cfg.MetricsGaugeUpdateInterval,
		)
	})
}
