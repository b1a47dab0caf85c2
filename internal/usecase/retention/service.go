package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	usecaseErrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

const (
	sweepLockKey = "retention:sweep:lock"
	sweepLockTTL = 5 * time.Minute
)

// ObjectStorage is the storage surface the sweep needs to remove audio
// objects; the MinIO client satisfies it.
type ObjectStorage interface {
	DeleteFile(ctx context.Context, objectName string) error
}

// settingsSource provides the current system settings.
type settingsSource interface {
	Get(ctx context.Context) (*entities.Settings, error)
}

// Service deletes audio of approved meetings once the retention window
// has passed. Only audio is swept; minutes, versions and the audit log
// are kept forever.
type Service struct {
	meetingRepo repositories.MeetingRepository
	audioRepo   repositories.AudioSourceRepository
	auditRepo   repositories.AuditRepository
	settings    settingsSource
	storage     ObjectStorage
	redisClient *redis.Client
	now         func() time.Time
}

// NewService creates a new retention service. redisClient may be nil,
// in which case sweeps run without the cross-process lock.
func NewService(
	meetingRepo repositories.MeetingRepository,
	audioRepo repositories.AudioSourceRepository,
	auditRepo repositories.AuditRepository,
	settings settingsSource,
	storage ObjectStorage,
	redisClient *redis.Client,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		audioRepo:   audioRepo,
		auditRepo:   auditRepo,
		settings:    settings,
		storage:     storage,
		redisClient: redisClient,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// DeletedAudio identifies one removed audio object.
type DeletedAudio struct {
	MeetingID string `json:"meeting_id"`
	AudioID   string `json:"audio_id"`
	FileURI   string `json:"file_uri"`
}

// SweepResult is the outcome of one retention sweep.
type SweepResult struct {
	Deleted []DeletedAudio `json:"deleted"`
}

// Sweep removes aged audio of approved meetings and writes one
// system-scoped audit entry summarizing the run.
func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	if s.redisClient != nil {
		acquired, err := s.redisClient.SetNX(ctx, sweepLockKey, "1", sweepLockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire sweep lock: %w", err)
		}
		if !acquired {
			return nil, usecaseErrors.ErrSweepInProgress
		}
		defer s.redisClient.Del(context.WithoutCancel(ctx), sweepLockKey)
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	cutoff := s.now().Add(-time.Duration(settings.RetentionDays) * 24 * time.Hour)

	meetings, err := s.meetingRepo.ListByStatus(ctx, entities.MeetingStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved meetings: %w", err)
	}

	result := &SweepResult{Deleted: make([]DeletedAudio, 0)}
	meetingIDs := make([]interface{}, 0)
	seen := make(map[string]bool)

	for _, meeting := range meetings {
		sources, err := s.audioRepo.ListByMeeting(ctx, meeting.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list audio sources: %w", err)
		}
		for _, source := range sources {
			if !source.CreatedAt.Before(cutoff) {
				continue
			}
			if err := s.storage.DeleteFile(ctx, source.FileURI); err != nil {
				return nil, fmt.Errorf("failed to delete audio object %s: %w", source.FileURI, err)
			}
			if err := s.audioRepo.Delete(ctx, source.ID); err != nil {
				return nil, fmt.Errorf("failed to delete audio source %s: %w", source.ID, err)
			}
			result.Deleted = append(result.Deleted, DeletedAudio{
				MeetingID: meeting.ID,
				AudioID:   source.ID,
				FileURI:   source.FileURI,
			})
			if !seen[meeting.ID] {
				seen[meeting.ID] = true
				meetingIDs = append(meetingIDs, meeting.ID)
			}
		}
	}

	entry := &entities.AuditEntry{
		ID:        entities.NewAuditEntryID(),
		MeetingID: entities.SystemMeetingID,
		EventType: entities.AuditEventRetentionSweep,
		Actor:     "system",
		Timestamp: s.now(),
		Details: datatypes.JSONMap{
			"deleted_count": len(result.Deleted),
			"meeting_ids":   meetingIDs,
		},
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	return result, nil
}
