package core

import (
	"context"
	"sort"
	"strings"
	"time"
)

// RequestKind identifies the shape of an authentication request.
type RequestKind string

// KindUsernamePassword is an identifier plus an optional presented credential.
const KindUsernamePassword RequestKind = "username_password"

// AuthRequest is a single login attempt.
type AuthRequest struct {
	Kind       RequestKind
	Identifier string
	Credential string // empty when absent
}

// NewUsernamePasswordRequest builds an identifier+credential request.
func NewUsernamePasswordRequest(identifier, credential string) AuthRequest {
	return AuthRequest{
		Kind:       KindUsernamePassword,
		Identifier: identifier,
		Credential: credential,
	}
}

// AuthoritySet is a set of capability tokens granted to a principal.
type AuthoritySet map[string]struct{}

// NewAuthoritySet builds a set from the given tokens, skipping blanks.
func NewAuthoritySet(tokens ...string) AuthoritySet {
	s := make(AuthoritySet, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Has reports whether token is in the set.
func (s AuthoritySet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Slice returns the tokens in sorted order.
func (s AuthoritySet) Slice() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// UserRecord is the read-only snapshot of a directory entry taken for one attempt.
type UserRecord struct {
	ID              int64
	Identifier      string
	CredentialHash  string
	FailureCount    int64
	Active          bool
	TenantID        int64
	Name            string
	Lang            string
	SessionDuration time.Duration // zero means use the configured default
	Authorities     AuthoritySet
}

// Principal is the identity handed to the session layer after admission.
type Principal struct {
	User        UserRecord
	Authorities AuthoritySet
	Provider    string // name of the provider that admitted it
}

// Outcome is the kind of an authentication decision.
type Outcome int

const (
	OutcomeDeferred Outcome = iota
	OutcomeAdmitted
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdmitted:
		return "admitted"
	case OutcomeRejected:
		return "rejected"
	default:
		return "deferred"
	}
}

// Decision is the result of consulting a provider.
// Admitted carries a Principal, Rejected carries a Reason.
type Decision struct {
	Outcome   Outcome
	Principal *Principal
	Reason    error
	Provider  string
}

// Admit returns an Admitted decision.
func Admit(p *Principal) Decision {
	return Decision{Outcome: OutcomeAdmitted, Principal: p}
}

// Defer returns a Deferred decision: the provider declines this request.
func Defer() Decision {
	return Decision{Outcome: OutcomeDeferred}
}

// Reject returns a Rejected decision with the given reason.
func Reject(reason error) Decision {
	return Decision{Outcome: OutcomeRejected, Reason: reason}
}

// IsTerminal reports whether the decision ends the chain.
func (d Decision) IsTerminal() bool {
	return d.Outcome != OutcomeDeferred
}

// Err returns the rejection reason, or nil for any other outcome.
func (d Decision) Err() error {
	if d.Outcome != OutcomeRejected {
		return nil
	}
	return d.Reason
}

// AuthProvider is one link of the provider chain.
type AuthProvider interface {
	Name() string
	Supports(kind RequestKind) bool
	Authenticate(ctx context.Context, req AuthRequest) Decision
}

// UserDirectory resolves a login identifier to at most one active user record.
type UserDirectory interface {
	FindUserByIdentifier(ctx context.Context, identifier string) (*UserRecord, error)
}

// CredentialVerifier checks a presented credential for a known user.
// Both LocalAuthProvider and HTTPAPIAuthProvider satisfy this interface.
type CredentialVerifier interface {
	VerifyCredential(ctx context.Context, user *UserRecord, credential string) error
	Name() string
}
