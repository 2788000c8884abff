package auth

import (
	"context"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"

	"golang.org/x/crypto/bcrypt"
)

// LocalAuthProvider verifies credentials against the bcrypt hash in USER_PASSWORD.
type LocalAuthProvider struct{}

func NewLocalAuthProvider() *LocalAuthProvider {
	return &LocalAuthProvider{}
}

// VerifyCredential compares the presented credential with the stored hash.
func (p *LocalAuthProvider) VerifyCredential(
	_ context.Context,
	user *core.UserRecord,
	credential string,
) error {
	if user == nil || user.CredentialHash == "" || credential == "" {
		return ErrCredentialMismatch
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.CredentialHash),
		[]byte(credential),
	); err != nil {
		return ErrCredentialMismatch
	}
	return nil
}

// Name returns provider name for logging
func (p *LocalAuthProvider) Name() string {
	return "local"
}
