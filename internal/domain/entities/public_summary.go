package entities

import (
	"time"

	"gorm.io/datatypes"
)

// SummaryChecklist tracks the manual review steps a secretary must tick
// off before a public summary may be published.
type SummaryChecklist struct {
	NoConfidential  bool `gorm:"default:false" json:"no_confidential"`
	NamesApproved   bool `gorm:"default:false" json:"names_approved"`
	MotionsReviewed bool `gorm:"default:false" json:"motions_reviewed"`
	ActionsReviewed bool `gorm:"default:false" json:"actions_reviewed"`
	ChairApproved   bool `gorm:"default:false" json:"chair_approved"`
}

// Complete reports whether every review step has been confirmed.
func (c SummaryChecklist) Complete() bool {
	return c.NoConfidential &&
		c.NamesApproved &&
		c.MotionsReviewed &&
		c.ActionsReviewed &&
		c.ChairApproved
}

// PublicSummary is the plain-language meeting recap intended for the
// chamber's members and the public. At most one exists per meeting;
// publishing stamps it without freezing further edits.
type PublicSummary struct {
	MeetingID   string            `gorm:"type:varchar(64);primary_key" json:"meeting_id"`
	Content     string            `gorm:"type:text;not null" json:"content"`
	Fields      datatypes.JSONMap `gorm:"type:jsonb" json:"fields"`
	Checklist   SummaryChecklist  `gorm:"embedded;embeddedPrefix:checklist_" json:"checklist"`
	PublishedAt *time.Time        `json:"published_at"`
	PublishedBy *string           `gorm:"type:varchar(255)" json:"published_by"`
	UpdatedAt   time.Time         `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for PublicSummary.
func (PublicSummary) TableName() string {
	return "public_summaries"
}
