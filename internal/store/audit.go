package store

import (
	"context"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/models"

	"gorm.io/gorm"
)

// CreateAuditLog writes a single audit entry
func (s *Store) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// CreateAuditLogBatch writes entries in one multi-row insert
func (s *Store) CreateAuditLogBatch(ctx context.Context, entries []*models.AuditLog) error {
	if len(entries) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(entries, 100).Error
}

func applyAuditFilters(q *gorm.DB, f AuditLogFilters) *gorm.DB {
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	if f.ActorUserCode != "" {
		q = q.Where("actor_user_code = ?", f.ActorUserCode)
	}
	if f.UsiteNo != 0 {
		q = q.Where("usite_no = ?", f.UsiteNo)
	}
	if f.Provider != "" {
		q = q.Where("provider = ?", f.Provider)
	}
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	if f.Success != nil {
		q = q.Where("success = ?", *f.Success)
	}
	if !f.StartTime.IsZero() {
		q = q.Where("event_time >= ?", f.StartTime)
	}
	if !f.EndTime.IsZero() {
		q = q.Where("event_time <= ?", f.EndTime)
	}
	if f.ActorIP != "" {
		q = q.Where("actor_ip = ?", f.ActorIP)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(
			"action LIKE ? OR actor_user_code LIKE ? OR error_message LIKE ?",
			like, like, like,
		)
	}
	return q
}

// GetAuditLogsPaginated returns one page of audit logs, newest first
func (s *Store) GetAuditLogsPaginated(
	ctx context.Context,
	page PageRequest,
	filters AuditLogFilters,
) ([]models.AuditLog, PageInfo, error) {
	var total int64
	countQuery := applyAuditFilters(s.db.WithContext(ctx).Model(&models.AuditLog{}), filters)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	var logs []models.AuditLog
	err := applyAuditFilters(s.db.WithContext(ctx).Model(&models.AuditLog{}), filters).
		Order("event_time DESC").
		Offset(page.offset()).
		Limit(page.PageSize).
		Find(&logs).Error
	if err != nil {
		return nil, PageInfo{}, err
	}

	return logs, NewPageInfo(total, page), nil
}

// DeleteOldAuditLogs removes entries created before cutoff
func (s *Store) DeleteOldAuditLogs(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}

// GetAuditLogStats aggregates the audit entries matching filters
func (s *Store) GetAuditLogStats(ctx context.Context, filters AuditLogFilters) (AuditLogStats, error) {
	stats := AuditLogStats{
		EventsByType:     make(map[models.EventType]int64),
		EventsBySeverity: make(map[models.EventSeverity]int64),
	}
	base := func() *gorm.DB {
		return applyAuditFilters(s.db.WithContext(ctx).Model(&models.AuditLog{}), filters)
	}

	if err := base().Count(&stats.TotalEvents).Error; err != nil {
		return stats, err
	}

	var byType []struct {
		EventType models.EventType
		Count     int64
	}
	if err := base().Select("event_type, COUNT(*) as count").
		Group("event_type").Scan(&byType).Error; err != nil {
		return stats, err
	}
	for _, r := range byType {
		stats.EventsByType[r.EventType] = r.Count
	}

	var bySeverity []struct {
		Severity models.EventSeverity
		Count    int64
	}
	if err := base().Select("severity, COUNT(*) as count").
		Group("severity").Scan(&bySeverity).Error; err != nil {
		return stats, err
	}
	for _, r := range bySeverity {
		stats.EventsBySeverity[r.Severity] = r.Count
	}

	if err := base().Where("success = ?", true).Count(&stats.SuccessCount).Error; err != nil {
		return stats, err
	}
	stats.FailureCount = stats.TotalEvents - stats.SuccessCount

	return stats, nil
}
