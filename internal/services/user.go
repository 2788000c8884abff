package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/auth"
	"github.com/jiheejiheekim/monarch-Mobile/internal/core"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"
)

// providerNone labels attempts that no provider decided.
const providerNone = "none"

var ErrUserNotFound = errors.New("user not found")

// UserService is the login entry point: it runs the provider chain and records
// every terminal decision in metrics and the audit trail.
type UserService struct {
	store        *store.Store
	chain        *auth.ProviderChain
	auditService *AuditService
	metrics      core.Recorder
}

func NewUserService(
	s *store.Store,
	chain *auth.ProviderChain,
	auditService *AuditService,
	m core.Recorder,
) *UserService {
	return &UserService{
		store:        s,
		chain:        chain,
		auditService: auditService,
		metrics:      m,
	}
}

// Authenticate runs one login attempt. The returned error carries the
// rejection reason unchanged so callers can classify it with errors.Is.
func (s *UserService) Authenticate(
	ctx context.Context,
	username, password string,
) (*core.Principal, error) {
	start := time.Now()
	d := s.chain.Authenticate(ctx, core.NewUsernamePasswordRequest(username, password))
	duration := time.Since(start)

	provider := d.Provider
	if provider == "" {
		provider = providerNone
	}
	admitted := d.Outcome == core.OutcomeAdmitted && d.Principal != nil
	reason := auth.ReasonCode(d.Err())

	s.metrics.RecordAuthAttempt(provider, admitted, duration)
	s.metrics.RecordAuthDecision(provider, d.Outcome.String(), reason)
	if errors.Is(d.Err(), auth.ErrAccountLocked) {
		s.metrics.RecordAccountLocked()
	}

	s.auditDecision(ctx, username, provider, d, reason)

	if admitted {
		return d.Principal, nil
	}

	err := d.Err()
	if err == nil {
		// Admitted without a principal is a provider bug; never let it through.
		err = auth.ErrNoProviderAvailable
	}
	log.Printf("[Auth] Failed for user=%s provider=%s: %v", username, provider, err)
	return nil, err
}

func (s *UserService) auditDecision(
	ctx context.Context,
	username, provider string,
	d core.Decision,
	reason string,
) {
	if s.auditService == nil {
		return
	}

	entry := AuditLogEntry{
		ActorUserCode: username,
		ResourceType:  models.ResourceUser,
		ResourceID:    username,
		Provider:      provider,
		Details:       models.AuditDetails{"outcome": d.Outcome.String()},
	}

	switch {
	case d.Outcome == core.OutcomeAdmitted && d.Principal != nil:
		entry.ActorUserNo = d.Principal.User.ID
		entry.UsiteNo = d.Principal.User.TenantID
		entry.Success = true
		entry.Severity = models.SeverityInfo
		entry.EventType = models.EventAuthenticationSuccess
		entry.Action = "User logged in"
		if provider == auth.ProviderBypass {
			entry.EventType = models.EventAuthenticationBypass
			entry.Action = "User logged in without credential check"
			entry.Severity = models.SeverityWarning
		}
	case reason == auth.ReasonAccountLocked:
		entry.UsiteNo = s.tenantOf(ctx, username)
		entry.EventType = models.EventAccountLocked
		entry.Severity = models.SeverityWarning
		entry.Action = "Login refused: account locked"
	default:
		entry.UsiteNo = s.tenantOf(ctx, username)
		entry.EventType = models.EventAuthenticationFailure
		entry.Severity = models.SeverityWarning
		entry.Action = "Login failed"
		switch reason {
		case auth.ReasonDirectoryUnavailable, auth.ReasonNoProviderAvailable,
			auth.ReasonVerifierUnavailable, auth.ReasonInternalError:
			entry.Severity = models.SeverityError
		}
	}
	if err := d.Err(); err != nil {
		entry.ErrorMessage = err.Error()
		entry.Details["reason"] = reason
	}

	if entry.EventType == models.EventAccountLocked {
		// Lockouts are written before the response so an admin sees them at once.
		err := s.auditService.LogSync(ctx, entry)
		if err == nil {
			return
		}
		log.Printf("[Audit] lockout entry for user=%s queued after write error: %v", username, err)
	}
	s.auditService.Log(ctx, entry)
}

// tenantOf returns the tenant of a known identifier, or 0 when the identifier
// is unknown or the lookup fails.
func (s *UserService) tenantOf(ctx context.Context, username string) int64 {
	if s.store == nil {
		return 0
	}
	u, err := s.store.FindActiveUserByCode(ctx, username)
	if err != nil || u == nil {
		return 0
	}
	return u.UsiteNo
}

// GetUserByNo returns a user by M_USER_NO.
func (s *UserService) GetUserByNo(ctx context.Context, userNo int64) (*models.User, error) {
	user, err := s.store.GetUserByNo(ctx, userNo)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.metrics.RecordDatabaseQueryError("get_user_by_no")
		return nil, err
	}
	return user, nil
}

// LogLogout records the end of a session.
func (s *UserService) LogLogout(ctx context.Context, userNo int64, userCode string, sessionAge time.Duration) {
	s.metrics.RecordLogout(sessionAge)
	if s.auditService == nil {
		return
	}
	s.auditService.Log(ctx, AuditLogEntry{
		EventType:     models.EventLogout,
		Severity:      models.SeverityInfo,
		ActorUserNo:   userNo,
		ActorUserCode: userCode,
		ResourceType:  models.ResourceSession,
		ResourceID:    userCode,
		Action:        "User logged out",
		Success:       true,
	})
}
