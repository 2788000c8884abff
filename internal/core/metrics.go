package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Authentication
	RecordAuthAttempt(provider string, success bool, duration time.Duration)
	RecordAuthDecision(provider, outcome, reason string)
	RecordAccountLocked()
	RecordLogin(provider string, success bool)
	RecordLogout(sessionDuration time.Duration)

	// Lookup cache
	RecordCacheLookup(cache string, hit bool)

	// Gauges refreshed periodically from the store
	SetUserCounts(active, locked int64)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}
