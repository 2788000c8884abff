package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder.
// Used when METRICS_ENABLED is false.
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordAuthAttempt(provider string, success bool, duration time.Duration) {}
func (n *NoopMetrics) RecordAuthDecision(provider, outcome, reason string)                     {}
func (n *NoopMetrics) RecordAccountLocked()                                                    {}
func (n *NoopMetrics) RecordLogin(provider string, success bool)                               {}
func (n *NoopMetrics) RecordLogout(sessionDuration time.Duration)                              {}
func (n *NoopMetrics) RecordCacheLookup(cache string, hit bool)                                {}
func (n *NoopMetrics) SetUserCounts(active, locked int64)                                      {}
func (n *NoopMetrics) RecordDatabaseQueryError(operation string)                               {}
