package entities

import (
	"fmt"

	"github.com/google/uuid"
)

// Motion is a formal motion recorded in a meeting.
type Motion struct {
	ID           string  `gorm:"type:varchar(64);primary_key" json:"id"`
	MeetingID    string  `gorm:"type:varchar(64);not null;index" json:"meeting_id"`
	Text         string  `gorm:"type:text;not null" json:"text"`
	MoverName    *string `gorm:"type:varchar(255)" json:"mover_name,omitempty"`
	SeconderName *string `gorm:"type:varchar(255)" json:"seconder_name,omitempty"`
	VoteMethod   *string `gorm:"type:varchar(64)" json:"vote_method,omitempty"`
	Outcome      *string `gorm:"type:varchar(64)" json:"outcome,omitempty"`
}

// TableName specifies the table name for Motion.
func (Motion) TableName() string {
	return "motions"
}

// NewMotionID generates a motion identifier.
func NewMotionID() string {
	return fmt.Sprintf("motion_%s", uuid.New().String())
}
