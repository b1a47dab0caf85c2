package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemMeetingID scopes audit entries that are not tied to one meeting
// (retention sweeps and other operational events).
const SystemMeetingID = "system"

// Audit event types.
const (
	AuditEventVersionSaved   = "MINUTES_VERSION_SAVED"
	AuditEventRollback       = "MINUTES_ROLLBACK"
	AuditEventApproved       = "MINUTES_APPROVED"
	AuditEventExport         = "MINUTES_EXPORT"
	AuditEventRetentionSweep = "RETENTION_SWEEP"
)

// AuditEntry is one append-only audit record. Entries are never updated
// or deleted; listing preserves insertion order.
type AuditEntry struct {
	ID        string            `gorm:"type:varchar(64);primary_key" json:"id"`
	Seq       uint              `gorm:"auto_increment;uniqueIndex" json:"-"`
	MeetingID string            `gorm:"type:varchar(64);not null;index" json:"meeting_id"`
	EventType string            `gorm:"type:varchar(64);not null" json:"event_type"`
	Actor     string            `gorm:"type:varchar(255)" json:"actor"`
	Timestamp time.Time         `gorm:"default:now()" json:"timestamp"`
	Details   datatypes.JSONMap `gorm:"type:jsonb" json:"details"`
}

// TableName specifies the table name for AuditEntry.
func (AuditEntry) TableName() string {
	return "audit_entries"
}

// NewAuditEntryID generates an audit entry identifier.
func NewAuditEntryID() string {
	return fmt.Sprintf("audit_%s", uuid.New().String())
}
