package repositories

import (
	"context"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
)

// MeetingRepository persists meetings.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindByID(ctx context.Context, id string) (*entities.Meeting, error)
	List(ctx context.Context) ([]entities.Meeting, error)
	ListByStatus(ctx context.Context, status entities.MeetingStatus) ([]entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
}

// MotionRepository persists motions; PUT semantics replace the whole
// set for a meeting.
type MotionRepository interface {
	Replace(ctx context.Context, meetingID string, motions []entities.Motion) error
	ListByMeeting(ctx context.Context, meetingID string) ([]entities.Motion, error)
}

// ActionItemRepository persists action items with the same wholesale
// replace semantics as motions.
type ActionItemRepository interface {
	Replace(ctx context.Context, meetingID string, items []entities.ActionItem) error
	ListByMeeting(ctx context.Context, meetingID string) ([]entities.ActionItem, error)
}

// AudioSourceRepository persists registered audio files.
type AudioSourceRepository interface {
	Create(ctx context.Context, source *entities.AudioSource) error
	ListByMeeting(ctx context.Context, meetingID string) ([]entities.AudioSource, error)
	Delete(ctx context.Context, id string) error
}

// TranscriptRepository persists processed transcript segments.
type TranscriptRepository interface {
	Replace(ctx context.Context, meetingID string, segments []entities.TranscriptSegment) error
	ListByMeeting(ctx context.Context, meetingID string) ([]entities.TranscriptSegment, error)
}

// PublicSummaryRepository persists the per-meeting public summary.
type PublicSummaryRepository interface {
	Upsert(ctx context.Context, summary *entities.PublicSummary) error
	FindByMeeting(ctx context.Context, meetingID string) (*entities.PublicSummary, error)
}

// AuditRepository is the append-only event sink.
type AuditRepository interface {
	Append(ctx context.Context, entry *entities.AuditEntry) error
	ListByMeeting(ctx context.Context, meetingID string) ([]entities.AuditEntry, error)
}

// SettingsRepository persists the singleton system settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*entities.Settings, error)
	Update(ctx context.Context, settings *entities.Settings) error
}
