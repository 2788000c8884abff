package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"
)

// UserFinder is the store query backing the directory.
type UserFinder interface {
	FindActiveUserByCode(ctx context.Context, userCode string) (*models.User, error)
}

// StoreDirectory adapts the M_USER table to core.UserDirectory.
// Every call hits the store; nothing is cached.
type StoreDirectory struct {
	finder UserFinder
}

func NewStoreDirectory(finder UserFinder) *StoreDirectory {
	return &StoreDirectory{finder: finder}
}

// FindUserByIdentifier returns ErrUserNotFound for absent or inactive users and
// wraps any other store failure in ErrDirectoryUnavailable.
func (d *StoreDirectory) FindUserByIdentifier(
	ctx context.Context,
	identifier string,
) (*core.UserRecord, error) {
	user, err := d.finder.FindActiveUserByCode(ctx, identifier)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}
	if user == nil || !user.IsActive() {
		return nil, ErrUserNotFound
	}
	return ToUserRecord(user), nil
}

// ToUserRecord snapshots a stored user for one authentication attempt.
func ToUserRecord(u *models.User) *core.UserRecord {
	rec := &core.UserRecord{
		ID:             u.UserNo,
		Identifier:     u.UserCode,
		CredentialHash: u.PasswordHash,
		FailureCount:   u.FailureCount(),
		Active:         u.IsActive(),
		TenantID:       u.UsiteNo,
		Name:           u.UserName,
		Lang:           u.UserLang,
		Authorities:    AuthoritiesFor(u),
	}
	if u.ConnDur > 0 {
		rec.SessionDuration = time.Duration(u.ConnDur) * time.Minute
	}
	return rec
}

// AuthoritiesFor derives the capability tokens of a stored user.
func AuthoritiesFor(u *models.User) core.AuthoritySet {
	tokens := []string{AuthorityUser}
	if u.AuthNum != nil {
		tokens = append(tokens, "AUTH_"+strconv.Itoa(*u.AuthNum))
	}
	if u.IsAdmin() {
		tokens = append(tokens, AuthorityAdmin)
	}
	return core.NewAuthoritySet(tokens...)
}
