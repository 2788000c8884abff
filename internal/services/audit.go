package services

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"
	"github.com/jiheejiheekim/monarch-Mobile/internal/util"

	"github.com/google/uuid"
)

const (
	auditBatchSize     = 100
	auditFlushInterval = time.Second
	auditWriteTimeout  = 5 * time.Second
)

// AuditLogEntry represents the data needed to create an audit log entry
type AuditLogEntry struct {
	EventType     models.EventType
	Severity      models.EventSeverity
	ActorUserNo   int64
	ActorUserCode string
	ActorIP       string
	UsiteNo       int64
	ResourceType  models.ResourceType
	ResourceID    string
	Action        string
	Provider      string
	Details       models.AuditDetails
	Success       bool
	ErrorMessage  string
	UserAgent     string
	RequestPath   string
	RequestMethod string
}

// AuditService persists audit entries. Log is fire-and-forget: entries are
// queued and a single worker writes them in batches of auditBatchSize or
// every auditFlushInterval, whichever comes first.
type AuditService struct {
	store   *store.Store
	enabled bool

	queue chan *models.AuditLog
	stop  chan struct{}
	done  chan struct{}

	stopOnce sync.Once
}

// NewAuditService starts the writer when enabled. bufferSize bounds the
// queue; entries beyond it are dropped with a warning.
func NewAuditService(s *store.Store, enabled bool, bufferSize int) *AuditService {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	svc := &AuditService{
		store:   s,
		enabled: enabled,
		queue:   make(chan *models.AuditLog, bufferSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	if !enabled {
		close(svc.done)
		log.Println("[Audit] service is disabled")
		return svc
	}

	go svc.run()
	log.Printf("[Audit] service started with buffer size %d", bufferSize)
	return svc
}

func (s *AuditService) Enabled() bool {
	return s.enabled
}

func (s *AuditService) run() {
	defer close(s.done)

	ticker := time.NewTicker(auditFlushInterval)
	defer ticker.Stop()

	batch := make([]*models.AuditLog, 0, auditBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		s.writeBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-s.queue:
			batch = append(batch, entry)
			if len(batch) >= auditBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stop:
			for {
				select {
				case entry := <-s.queue:
					batch = append(batch, entry)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *AuditService) writeBatch(batch []*models.AuditLog) {
	ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
	defer cancel()
	if err := s.store.CreateAuditLogBatch(ctx, batch); err != nil {
		log.Printf("[Audit] failed to write batch of %d: %v", len(batch), err)
	}
}

func (s *AuditService) buildLog(ctx context.Context, entry AuditLogEntry) *models.AuditLog {
	if entry.ActorIP == "" {
		entry.ActorIP = util.GetIPFromContext(ctx)
	}
	if entry.ActorUserCode == "" {
		entry.ActorUserCode = util.GetUserCodeFromContext(ctx)
	}
	if entry.Severity == "" {
		entry.Severity = models.SeverityInfo
	}

	now := time.Now()
	return &models.AuditLog{
		ID:            uuid.New().String(),
		EventType:     entry.EventType,
		EventTime:     now,
		Severity:      entry.Severity,
		ActorUserNo:   entry.ActorUserNo,
		ActorUserCode: entry.ActorUserCode,
		ActorIP:       entry.ActorIP,
		UsiteNo:       entry.UsiteNo,
		ResourceType:  entry.ResourceType,
		ResourceID:    entry.ResourceID,
		Action:        entry.Action,
		Provider:      entry.Provider,
		Details:       maskSensitiveDetails(entry.Details),
		Success:       entry.Success,
		ErrorMessage:  entry.ErrorMessage,
		UserAgent:     entry.UserAgent,
		RequestPath:   entry.RequestPath,
		RequestMethod: entry.RequestMethod,
		CreatedAt:     now,
	}
}

// Log records an audit log entry asynchronously. Events are dropped when the buffer is full.
func (s *AuditService) Log(ctx context.Context, entry AuditLogEntry) {
	if !s.enabled {
		return
	}

	auditLog := s.buildLog(ctx, entry)

	select {
	case s.queue <- auditLog:
	default:
		log.Printf("[Audit] WARNING: buffer full, dropping event: %s", entry.Action)
	}
}

// LogSync records an audit log entry synchronously (for critical events)
func (s *AuditService) LogSync(ctx context.Context, entry AuditLogEntry) error {
	if !s.enabled {
		return nil
	}
	return s.store.CreateAuditLog(ctx, s.buildLog(ctx, entry))
}

// GetAuditLogs retrieves audit logs with pagination and filtering
func (s *AuditService) GetAuditLogs(
	ctx context.Context,
	page store.PageRequest,
	filters store.AuditLogFilters,
) ([]models.AuditLog, store.PageInfo, error) {
	return s.store.GetAuditLogsPaginated(ctx, page, filters)
}

// CleanupOldLogs deletes audit logs older than the retention period
func (s *AuditService) CleanupOldLogs(ctx context.Context, retention time.Duration) (int64, error) {
	return s.store.DeleteOldAuditLogs(ctx, time.Now().Add(-retention))
}

// GetAuditLogStats returns statistics about the audit logs matching filters
func (s *AuditService) GetAuditLogStats(
	ctx context.Context,
	filters store.AuditLogFilters,
) (store.AuditLogStats, error) {
	return s.store.GetAuditLogStats(ctx, filters)
}

// Shutdown flushes queued entries and stops the writer. Safe to call more
// than once; entries logged afterwards are never written.
func (s *AuditService) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })

	select {
	case <-s.done:
		if s.enabled {
			log.Println("[Audit] service shut down gracefully")
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("audit service shutdown timeout: %w", ctx.Err())
	}
}

const redacted = "***REDACTED***"

// sensitiveKeyParts redact any details key containing one of them.
var sensitiveKeyParts = []string{"password", "credential", "secret", "token", "hash"}

func maskSensitiveDetails(details models.AuditDetails) models.AuditDetails {
	if details == nil {
		return nil
	}
	masked := make(models.AuditDetails, len(details))
	for key, value := range details {
		lower := strings.ToLower(key)
		if slices.ContainsFunc(sensitiveKeyParts, func(part string) bool {
			return strings.Contains(lower, part)
		}) {
			value = redacted
		}
		masked[key] = value
	}
	return masked
}
