package entities

import "time"

// DraftMinutes is the single current editable minutes text for one
// meeting. It is created lazily on the first successful write and its
// MinutesVersion always equals the highest MinutesVersion record.
type DraftMinutes struct {
	MeetingID      string    `gorm:"type:varchar(64);primary_key" json:"meeting_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	MinutesVersion int       `gorm:"not null" json:"minutes_version"`
	UpdatedBy      string    `gorm:"type:varchar(255)" json:"updated_by"`
	UpdatedAt      time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for DraftMinutes.
func (DraftMinutes) TableName() string {
	return "draft_minutes"
}

// MinutesVersion is an immutable content snapshot in the per-meeting
// version ledger. Versions start at 1 and increase without gaps; rows
// are never mutated or deleted.
type MinutesVersion struct {
	ID                  uint      `gorm:"primary_key;auto_increment" json:"-"`
	MeetingID           string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_meeting_version,priority:1" json:"meeting_id"`
	Version             int       `gorm:"not null;uniqueIndex:idx_meeting_version,priority:2" json:"version"`
	Content             string    `gorm:"type:text;not null" json:"content"`
	Actor               string    `gorm:"type:varchar(255)" json:"actor"`
	RollbackFromVersion *int      `json:"rollback_from_version,omitempty"`
	CreatedAt           time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for MinutesVersion.
func (MinutesVersion) TableName() string {
	return "minutes_versions"
}
