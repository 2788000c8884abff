package services

import (
	"context"
	"testing"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/config"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	// Use in-memory SQLite database for testing
	cfg := &config.Config{
		DefaultAdminPassword: "", // Use random password in tests
		DefaultTenantID:      1,
	}
	s, err := store.New(context.Background(), "sqlite", ":memory:", cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// makeTestUser stores an active user with the given password and failure count.
func makeTestUser(t *testing.T, db *store.Store, password string, failures int64) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{
		UserCode:     "user-" + uuid.New().String()[:8],
		UserName:     "Test User",
		PasswordHash: string(hash),
		UseFlag:      models.UseFlagActive,
		UsiteNo:      1,
		UserLang:     "ko",
	}
	u.SetFailureCount(failures)
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

// callFetchFn is a DoAndReturn helper that invokes the cache fetch function,
// simulating a cache miss where the real DB fetch is executed.
func callFetchFn[T any](
	ctx context.Context,
	key string,
	_ time.Duration,
	fn func(context.Context, string) (T, error),
) (T, error) {
	return fn(ctx, key)
}
