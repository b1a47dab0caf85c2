package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MeetingStatus represents the lifecycle stage of a meeting's minutes.
type MeetingStatus string

const (
	MeetingStatusCreated    MeetingStatus = "CREATED"
	MeetingStatusUploaded   MeetingStatus = "UPLOADED"
	MeetingStatusProcessing MeetingStatus = "PROCESSING"
	MeetingStatusDraftReady MeetingStatus = "DRAFT_READY"
	MeetingStatusApproved   MeetingStatus = "APPROVED"
)

// Meeting represents a chamber meeting whose minutes are being managed.
type Meeting struct {
	ID              string                      `gorm:"type:varchar(64);primary_key" json:"id"`
	Date            string                      `gorm:"type:varchar(10);not null" json:"date"`
	StartTime       string                      `gorm:"type:varchar(8);not null" json:"start_time"`
	EndTime         *string                     `gorm:"type:varchar(8)" json:"end_time,omitempty"`
	AdjournmentTime *string                     `gorm:"type:varchar(8)" json:"adjournment_time,omitempty"`
	Location        string                      `gorm:"type:varchar(255);not null" json:"location"`
	ChairName       *string                     `gorm:"type:varchar(255)" json:"chair_name,omitempty"`
	SecretaryName   *string                     `gorm:"type:varchar(255)" json:"secretary_name,omitempty"`
	Tags            datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Status          MeetingStatus               `gorm:"type:varchar(20);not null;default:'CREATED';index" json:"status"`

	// Structural-completeness override flags for the approval gate.
	NoMotions         bool `gorm:"default:false" json:"no_motions"`
	NoActionItems     bool `gorm:"default:false" json:"no_action_items"`
	NoAdjournmentTime bool `gorm:"default:false" json:"no_adjournment_time"`

	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	ApprovedBy    *string    `gorm:"type:varchar(255)" json:"approved_by,omitempty"`
	PipelineRunID *string    `gorm:"type:varchar(128)" json:"pipeline_run_id,omitempty"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting.
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeetingID generates a meeting identifier.
func NewMeetingID() string {
	return fmt.Sprintf("meeting_%s", uuid.New().String())
}

// IsApproved checks whether the minutes reached the terminal state.
func (m *Meeting) IsApproved() bool {
	return m.Status == MeetingStatusApproved
}

// HasAdjournment reports whether either adjournment marker is present.
func (m *Meeting) HasAdjournment() bool {
	return (m.EndTime != nil && *m.EndTime != "") ||
		(m.AdjournmentTime != nil && *m.AdjournmentTime != "")
}

// Approve marks the meeting minutes as approved.
func (m *Meeting) Approve(actor string, at time.Time) {
	m.Status = MeetingStatusApproved
	m.ApprovedAt = &at
	m.ApprovedBy = &actor
}
