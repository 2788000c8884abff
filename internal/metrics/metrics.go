package metrics

import (
	"sync"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder is the interface every metrics backend satisfies.
type Recorder = core.Recorder

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Authentication Metrics
	AuthAttemptsTotal    *prometheus.CounterVec
	AuthDecisionsTotal   *prometheus.CounterVec
	AuthLoginDuration    *prometheus.HistogramVec
	AuthLoginTotal       *prometheus.CounterVec
	AuthLogoutTotal      prometheus.Counter
	AccountsLockedTotal  prometheus.Counter
	UsersActive          prometheus.Gauge
	UsersLocked          prometheus.Gauge
	SessionsCreatedTotal prometheus.Counter
	SessionDuration      prometheus.Histogram
	CacheLookupsTotal    *prometheus.CounterVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag.
// Disabled metrics return NoopMetrics; Prometheus collectors are registered once.
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = newMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// newMetrics creates all collectors and registers them with reg
func newMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AuthAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_attempts_total",
				Help: "Total number of authentication attempts",
			},
			[]string{"provider", "result"}, // provider: bypass, local, http_api, none
		),
		AuthDecisionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_decisions_total",
				Help: "Terminal decisions returned by the provider chain",
			},
			// outcome: admitted, rejected; reason: user_not_found, account_locked, ...
			[]string{"provider", "outcome", "reason"},
		),
		AuthLoginDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auth_login_duration_seconds",
				Help:    "Time taken to resolve a login through the provider chain",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		AuthLoginTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_total",
				Help: "Total number of login requests",
			},
			[]string{"provider", "result"},
		),
		AuthLogoutTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_logout_total",
				Help: "Total number of logouts",
			},
		),
		AccountsLockedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_account_locked_total",
				Help: "Login attempts rejected because the account is locked",
			},
		),
		UsersActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "directory_users_active",
				Help: "Current number of active users in M_USER",
			},
		),
		UsersLocked: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "directory_users_locked",
				Help: "Current number of active users at or above the lockout threshold",
			},
		),
		SessionsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_created_total",
				Help: "Total number of sessions created",
			},
		),
		SessionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name: "session_duration_seconds",
				Help: "Duration of user sessions ended by logout",
				Buckets: []float64{
					60,
					300,
					600,
					1800,
					3600,
					7200,
					14400,
					28800,
				}, // 1m, 5m, 10m, 30m, 1h, 2h, 4h, 8h
			},
		),
		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Cache lookups by cache name and result",
			},
			[]string{"cache", "result"}, // result: hit, miss
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				Buckets: []float64{
					0.001,
					0.005,
					0.010,
					0.025,
					0.050,
					0.100,
					0.250,
					0.500,
					1.0,
					2.5,
					5.0,
					10.0,
				},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),

		DatabaseQueryErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors",
			},
			[]string{"operation"}, // count_active_users, count_locked_users, list_comm_codes
		),
	}
}
