package auth

import "github.com/jiheejiheekim/monarch-Mobile/internal/core"

// LockoutStatus is the result of evaluating the lockout policy.
type LockoutStatus int

const (
	LockoutAllow LockoutStatus = iota
	LockoutLocked
)

func (s LockoutStatus) String() string {
	if s == LockoutLocked {
		return "locked"
	}
	return "allow"
}

// LockoutPolicy decides whether a user record may proceed to credential
// verification. It never mutates the failure counter.
type LockoutPolicy struct {
	allowList AllowList
	threshold int64
}

// NewLockoutPolicy returns a policy locking non-exempt accounts whose failure
// counter is at or above threshold.
func NewLockoutPolicy(allowList AllowList, threshold int64) *LockoutPolicy {
	return &LockoutPolicy{allowList: allowList, threshold: threshold}
}

// Evaluate applies the policy to a fresh directory snapshot.
func (p *LockoutPolicy) Evaluate(identifier string, user *core.UserRecord) LockoutStatus {
	if p.allowList.Contains(identifier) {
		return LockoutAllow
	}
	if user != nil && user.FailureCount >= p.threshold {
		return LockoutLocked
	}
	return LockoutAllow
}

// Threshold is the failure count at which an account locks.
func (p *LockoutPolicy) Threshold() int64 {
	return p.threshold
}
