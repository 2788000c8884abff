package metrics

import (
	"context"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
)

// userCounter is the store surface needed for the directory gauges.
type userCounter interface {
	CountActiveUsers(ctx context.Context) (int64, error)
	CountLockedUsers(ctx context.Context, threshold int64) (int64, error)
}

// CacheWrapper provides a read-through cache for gauge data so that several
// replicas sharing Redis do not each count M_USER on every tick.
type CacheWrapper struct {
	store userCounter
	cache core.Cache[int64]
}

// NewCacheWrapper creates a new cache wrapper for metrics.
func NewCacheWrapper(store userCounter, cache core.Cache[int64]) *CacheWrapper {
	return &CacheWrapper{
		store: store,
		cache: cache,
	}
}

// GetActiveUsersCount returns the number of active users.
func (m *CacheWrapper) GetActiveUsersCount(ctx context.Context, ttl time.Duration) (int64, error) {
	return m.cache.GetWithFetch(
		ctx,
		"users:active",
		ttl,
		func(ctx context.Context, _ string) (int64, error) {
			return m.store.CountActiveUsers(ctx)
		},
	)
}

// GetLockedUsersCount returns the number of active users at or above threshold.
func (m *CacheWrapper) GetLockedUsersCount(
	ctx context.Context,
	threshold int64,
	ttl time.Duration,
) (int64, error) {
	return m.cache.GetWithFetch(
		ctx,
		"users:locked",
		ttl,
		func(ctx context.Context, _ string) (int64, error) {
			return m.store.CountLockedUsers(ctx, threshold)
		},
	)
}

// UpdateUserGauges refreshes the directory gauges, recording query errors per operation.
func UpdateUserGauges(
	ctx context.Context,
	w *CacheWrapper,
	recorder Recorder,
	threshold int64,
	ttl time.Duration,
) {
	active, err := w.GetActiveUsersCount(ctx, ttl)
	if err != nil {
		recorder.RecordDatabaseQueryError("count_active_users")
		return
	}
	locked, err := w.GetLockedUsersCount(ctx, threshold, ttl)
	if err != nil {
		recorder.RecordDatabaseQueryError("count_locked_users")
		return
	}
	recorder.SetUserCounts(active, locked)
}
