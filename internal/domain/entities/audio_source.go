package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AudioSource is a registered audio file for a meeting.
type AudioSource struct {
	ID              string    `gorm:"type:varchar(64);primary_key" json:"id"`
	MeetingID       string    `gorm:"type:varchar(64);not null;index" json:"meeting_id"`
	Type            string    `gorm:"type:varchar(32);not null" json:"type"`
	ParticipantID   *string   `gorm:"type:varchar(64)" json:"participant_id,omitempty"`
	FileURI         string    `gorm:"type:varchar(512);not null" json:"file_uri"`
	DurationSeconds int       `gorm:"not null" json:"duration_seconds"`
	CreatedAt       time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for AudioSource.
func (AudioSource) TableName() string {
	return "audio_sources"
}

// NewAudioSourceID generates an audio source identifier.
func NewAudioSourceID() string {
	return fmt.Sprintf("audio_%s", uuid.New().String())
}

// HasSupportedFormat reports whether the file extension is accepted.
func (a *AudioSource) HasSupportedFormat() bool {
	return strings.HasSuffix(a.FileURI, ".mp3") || strings.HasSuffix(a.FileURI, ".wav")
}
