package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
	resultHit     = "hit"
	resultMiss    = "miss"
)

// HTTPMetricsMiddleware creates a Gin middleware that records HTTP metrics
func HTTPMetricsMiddleware(m Recorder) gin.HandlerFunc {
	metrics, ok := m.(*Metrics)
	if !ok {
		// NoopMetrics or an unknown implementation
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// Skip metrics endpoint to avoid self-recording
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()

		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := normalizePath(c.FullPath()) // Use route pattern, not actual path
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

// normalizePath returns the route pattern, or "unknown" for unmatched routes
func normalizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}

func result(success bool) string {
	if success {
		return resultSuccess
	}
	return resultFailure
}

// RecordAuthAttempt records one pass through the provider chain
func (m *Metrics) RecordAuthAttempt(provider string, success bool, duration time.Duration) {
	m.AuthAttemptsTotal.WithLabelValues(provider, result(success)).Inc()
	m.AuthLoginDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordAuthDecision records the terminal decision and its reason kind
func (m *Metrics) RecordAuthDecision(provider, outcome, reason string) {
	m.AuthDecisionsTotal.WithLabelValues(provider, outcome, reason).Inc()
}

func (m *Metrics) RecordAccountLocked() {
	m.AccountsLockedTotal.Inc()
}

// RecordLogin records a login request and the session it creates
func (m *Metrics) RecordLogin(provider string, success bool) {
	m.AuthLoginTotal.WithLabelValues(provider, result(success)).Inc()
	if success {
		m.SessionsCreatedTotal.Inc()
	}
}

// RecordLogout records logout
func (m *Metrics) RecordLogout(sessionDuration time.Duration) {
	m.AuthLogoutTotal.Inc()
	if sessionDuration > 0 {
		m.SessionDuration.Observe(sessionDuration.Seconds())
	}
}

func (m *Metrics) RecordCacheLookup(cache string, hit bool) {
	r := resultMiss
	if hit {
		r = resultHit
	}
	m.CacheLookupsTotal.WithLabelValues(cache, r).Inc()
}

// SetUserCounts sets the directory gauges (for periodic updates)
func (m *Metrics) SetUserCounts(active, locked int64) {
	m.UsersActive.Set(float64(active))
	m.UsersLocked.Set(float64(locked))
}

// RecordDatabaseQueryError records a database query error
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
