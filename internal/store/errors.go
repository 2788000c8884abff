package store

import "errors"

var (
	// ErrUserCodeConflict is returned when a USER_CODE already exists
	ErrUserCodeConflict = errors.New("user code already exists")

	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")
)
