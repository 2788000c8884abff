package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EventType classifies an audit entry.
type EventType string

// Login outcomes. Rejections other than a lock share AUTHENTICATION_FAILURE
// and keep the reason code in Details["reason"].
const (
	EventAuthenticationSuccess EventType = "AUTHENTICATION_SUCCESS"
	EventAuthenticationFailure EventType = "AUTHENTICATION_FAILURE"
	EventAuthenticationBypass  EventType = "AUTHENTICATION_BYPASS"
	EventAccountLocked         EventType = "ACCOUNT_LOCKED"
	EventLogout                EventType = "LOGOUT"
)

const (
	EventRateLimitExceeded EventType = "RATE_LIMIT_EXCEEDED"
	EventTypeAuditLogView  EventType = "AUDIT_LOG_VIEWED"
)

type EventSeverity string

const (
	SeverityInfo     EventSeverity = "INFO"
	SeverityWarning  EventSeverity = "WARNING"
	SeverityError    EventSeverity = "ERROR"
	SeverityCritical EventSeverity = "CRITICAL"
)

// ResourceType names what an audited action touched.
type ResourceType string

const (
	ResourceUser    ResourceType = "USER"
	ResourceSession ResourceType = "SESSION"
	ResourceAudit   ResourceType = "AUDIT"
)

// AuditDetails is free-form context stored as a JSON column. A nil map is
// stored as SQL NULL.
type AuditDetails map[string]any

func (a AuditDetails) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil //nolint:nilnil // SQL NULL
	}
	return json.Marshal(a)
}

// Scan accepts the []byte or string a driver returns for a JSON column.
func (a *AuditDetails) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("audit details: unsupported column type %T", value)
	}

	var decoded AuditDetails
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("audit details: %w", err)
	}
	*a = decoded
	return nil
}

// AuditLog is an immutable record of a security-relevant event.
type AuditLog struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	EventType EventType     `gorm:"type:varchar(50);index;not null" json:"event_type"`
	EventTime time.Time     `gorm:"index;not null"                  json:"event_time"`
	Severity  EventSeverity `gorm:"type:varchar(20);not null"       json:"severity"`

	// Actor is the login identifier presented, which may not exist in M_USER.
	ActorUserNo   int64  `gorm:"index"                  json:"actor_user_no,omitempty"`
	ActorUserCode string `gorm:"type:varchar(50);index" json:"actor_user_code"`
	ActorIP       string `gorm:"type:varchar(45);index" json:"actor_ip"`
	UsiteNo       int64  `gorm:"index"                  json:"usite_no,omitempty"`

	ResourceType ResourceType `gorm:"type:varchar(50);index" json:"resource_type"`
	ResourceID   string       `gorm:"type:varchar(50);index" json:"resource_id"`

	Action       string       `gorm:"type:varchar(255);not null" json:"action"`
	Provider     string       `gorm:"type:varchar(50)"           json:"provider,omitempty"`
	Details      AuditDetails `gorm:"type:json"                  json:"details"`
	Success      bool         `gorm:"index;not null"             json:"success"`
	ErrorMessage string       `gorm:"type:text"                  json:"error_message,omitempty"`

	UserAgent     string `gorm:"type:varchar(500)" json:"user_agent,omitempty"`
	RequestPath   string `gorm:"type:varchar(500)" json:"request_path,omitempty"`
	RequestMethod string `gorm:"type:varchar(10)"  json:"request_method,omitempty"`

	CreatedAt time.Time `gorm:"index;not null" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
