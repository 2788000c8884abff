package auth

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
)

// CredentialAuthProvider is the default provider placed last in the chain:
// directory lookup, then lockout, then credential verification.
type CredentialAuthProvider struct {
	directory core.UserDirectory
	lockout   *LockoutPolicy
	verifier  core.CredentialVerifier
}

// NewCredentialAuthProvider wires a directory, a lockout policy and a verifier.
func NewCredentialAuthProvider(
	directory core.UserDirectory,
	lockout *LockoutPolicy,
	verifier core.CredentialVerifier,
) *CredentialAuthProvider {
	return &CredentialAuthProvider{
		directory: directory,
		lockout:   lockout,
		verifier:  verifier,
	}
}

// Name reports the verifier in use ("local" or "http_api").
func (p *CredentialAuthProvider) Name() string {
	return p.verifier.Name()
}

func (p *CredentialAuthProvider) Supports(kind core.RequestKind) bool {
	return kind == core.KindUsernamePassword
}

func (p *CredentialAuthProvider) Authenticate(
	ctx context.Context,
	req core.AuthRequest,
) core.Decision {
	user, err := p.directory.FindUserByIdentifier(ctx, req.Identifier)
	if err != nil {
		return core.Reject(err)
	}
	if user == nil {
		return core.Reject(ErrUserNotFound)
	}

	if p.lockout.Evaluate(req.Identifier, user) == LockoutLocked {
		log.Printf("[Lockout] %s locked (failures=%d)", req.Identifier, user.FailureCount)
		return core.Reject(ErrAccountLocked)
	}

	if err := p.verifier.VerifyCredential(ctx, user, req.Credential); err != nil {
		if !errors.Is(err, ErrCredentialMismatch) && !isVerifierFault(err) {
			err = fmt.Errorf("%w: %w", ErrCredentialMismatch, err)
		}
		return core.Reject(err)
	}

	return core.Admit(&core.Principal{
		User:        *user,
		Authorities: user.Authorities,
		Provider:    p.verifier.Name(),
	})
}

// isVerifierFault reports errors where the verifier could not reach a verdict.
func isVerifierFault(err error) bool {
	return errors.Is(err, ErrHTTPAPIConnection) || errors.Is(err, ErrHTTPAPIInvalidResp)
}
