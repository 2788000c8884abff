package cache

import "errors"

var (
	// ErrCacheMiss is returned by Get for absent or expired keys.
	ErrCacheMiss = errors.New("cache: miss")

	// ErrCacheUnavailable wraps backend failures; callers fall back to the store.
	ErrCacheUnavailable = errors.New("cache: backend unavailable")

	// ErrInvalidValue means a value could not be encoded or decoded as JSON.
	ErrInvalidValue = errors.New("cache: invalid value")
)
