package handlers

import (
	"net/http"
	"time"

	"github.com/jiheejiheekim/monarch-Mobile/internal/middleware"
	"github.com/jiheejiheekim/monarch-Mobile/internal/models"
	"github.com/jiheejiheekim/monarch-Mobile/internal/services"
	"github.com/jiheejiheekim/monarch-Mobile/internal/store"

	"github.com/gin-gonic/gin"
)

const defaultStatsWindow = 30 * 24 * time.Hour

// AuditHandler exposes the login audit trail to administrators.
type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

type timeRangeQuery struct {
	StartTime time.Time `form:"start_time"`
	EndTime   time.Time `form:"end_time"`
}

type auditListQuery struct {
	timeRangeQuery
	Page          int    `form:"page"`
	PageSize      int    `form:"page_size"`
	EventType     string `form:"event_type"`
	ActorUserCode string `form:"actor_user_code"`
	Provider      string `form:"provider"`
	Severity      string `form:"severity"`
	ActorIP       string `form:"actor_ip"`
	Search        string `form:"search"`
	Success       *bool  `form:"success"`
}

func (q auditListQuery) filters(tenant int64) store.AuditLogFilters {
	return store.AuditLogFilters{
		UsiteNo:       tenant,
		EventType:     models.EventType(q.EventType),
		ActorUserCode: q.ActorUserCode,
		Provider:      q.Provider,
		Severity:      models.EventSeverity(q.Severity),
		ActorIP:       q.ActorIP,
		Search:        q.Search,
		Success:       q.Success,
		StartTime:     q.StartTime,
		EndTime:       q.EndTime,
	}
}

// ListLoginAudit handles GET /api/admin/login-audit.
// Times are RFC 3339; page_size is capped at store.MaxPageSize. Results are
// limited to the caller's tenant.
func (h *AuditHandler) ListLoginAudit(c *gin.Context) {
	var q auditListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondInvalidRequest(c, "Invalid audit query: "+err.Error())
		return
	}
	tenant := c.GetInt64(middleware.ContextUsiteNo)
	page := store.NewPageRequest(q.Page, q.PageSize)
	filters := q.filters(tenant)

	ctx := c.Request.Context()
	logs, info, err := h.auditService.GetAuditLogs(ctx, page, filters)
	if err != nil {
		respondServerError(c, "Failed to retrieve audit logs")
		return
	}

	h.auditService.Log(ctx, services.AuditLogEntry{
		EventType:     models.EventTypeAuditLogView,
		Severity:      models.SeverityInfo,
		ActorUserNo:   c.GetInt64(middleware.ContextUserNo),
		UsiteNo:       tenant,
		ResourceType:  models.ResourceAudit,
		Action:        "Viewed login audit",
		Details:       models.AuditDetails{"page": page.Page, "page_size": page.PageSize, "filters": filters},
		Success:       true,
		RequestPath:   c.Request.URL.Path,
		RequestMethod: c.Request.Method,
		UserAgent:     c.Request.UserAgent(),
	})

	c.JSON(http.StatusOK, gin.H{"logs": logs, "pagination": info})
}

// GetAuditLogStats handles GET /api/admin/login-audit/stats.
// Without a range it covers the last 30 days of the caller's tenant.
func (h *AuditHandler) GetAuditLogStats(c *gin.Context) {
	var q timeRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondInvalidRequest(c, "Invalid time range: "+err.Error())
		return
	}
	if q.StartTime.IsZero() && q.EndTime.IsZero() {
		q.EndTime = time.Now()
		q.StartTime = q.EndTime.Add(-defaultStatsWindow)
	}

	stats, err := h.auditService.GetAuditLogStats(c.Request.Context(), store.AuditLogFilters{
		UsiteNo:   c.GetInt64(middleware.ContextUsiteNo),
		StartTime: q.StartTime,
		EndTime:   q.EndTime,
	})
	if err != nil {
		respondServerError(c, "Failed to retrieve audit log statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":      stats,
		"start_time": q.StartTime,
		"end_time":   q.EndTime,
	})
}
