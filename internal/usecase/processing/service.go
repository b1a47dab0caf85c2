package processing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	usecaseErrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
	"github.com/minutestack/chamber-minutes/internal/usecase/minutes"
)

// PipelineActor is recorded on drafts and audit entries written by the
// pipeline rather than a person.
const PipelineActor = "pipeline"

// draftWriter seeds the first draft; the minutes service satisfies it.
type draftWriter interface {
	Save(ctx context.Context, input minutes.SaveInput) (*entities.DraftMinutes, error)
}

// Service handles the batch processing lifecycle of a meeting. Start
// answers as soon as the meeting enters PROCESSING; the pipeline runs
// in the background and callers poll process-status.
type Service struct {
	meetingRepo    repositories.MeetingRepository
	audioRepo      repositories.AudioSourceRepository
	transcriptRepo repositories.TranscriptRepository
	motionRepo     repositories.MotionRepository
	actionItemRepo repositories.ActionItemRepository
	drafts         draftWriter
	pipeline       Pipeline
	logger         *zap.Logger
}

// NewService creates a new processing service.
func NewService(
	meetingRepo repositories.MeetingRepository,
	audioRepo repositories.AudioSourceRepository,
	transcriptRepo repositories.TranscriptRepository,
	motionRepo repositories.MotionRepository,
	actionItemRepo repositories.ActionItemRepository,
	drafts draftWriter,
	pipeline Pipeline,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo:    meetingRepo,
		audioRepo:      audioRepo,
		transcriptRepo: transcriptRepo,
		motionRepo:     motionRepo,
		actionItemRepo: actionItemRepo,
		drafts:         drafts,
		pipeline:       pipeline,
		logger:         logger,
	}
}

// StatusReport is the processing state of a meeting.
type StatusReport struct {
	Status        entities.MeetingStatus `json:"status"`
	PipelineRunID *string                `json:"pipeline_run_id"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// Start moves the meeting into PROCESSING and launches the pipeline.
// Validation failures surface here; pipeline failures later restore
// the status the meeting had before.
func (s *Service) Start(ctx context.Context, meetingID string) (*StatusReport, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	sources, err := s.audioRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audio sources: %w", err)
	}
	if len(sources) == 0 {
		return nil, usecaseErrors.ErrNoAudioSources
	}

	priorStatus := meeting.Status
	meeting.Status = entities.MeetingStatusProcessing
	meeting.UpdatedAt = time.Now().UTC()
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	go s.runPipeline(context.WithoutCancel(ctx), meetingID, priorStatus, sources)

	return &StatusReport{
		Status:        meeting.Status,
		PipelineRunID: meeting.PipelineRunID,
		UpdatedAt:     meeting.UpdatedAt,
	}, nil
}

// Status reports the current processing state of a meeting.
func (s *Service) Status(ctx context.Context, meetingID string) (*StatusReport, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return &StatusReport{
		Status:        meeting.Status,
		PipelineRunID: meeting.PipelineRunID,
		UpdatedAt:     meeting.UpdatedAt,
	}, nil
}

// runPipeline executes the pipeline and stores its output. On failure
// the meeting's prior status is restored so the caller can retry.
func (s *Service) runPipeline(ctx context.Context, meetingID string, priorStatus entities.MeetingStatus, sources []entities.AudioSource) {
	result, err := s.runAndStore(ctx, meetingID, sources)
	if err != nil {
		s.logger.Error("pipeline.run.failed",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
		s.restoreStatus(ctx, meetingID, priorStatus)
		return
	}

	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		s.logger.Error("pipeline.finalize.failed",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
		return
	}
	meeting.Status = entities.MeetingStatusDraftReady
	meeting.PipelineRunID = &result.PipelineRunID
	meeting.UpdatedAt = time.Now().UTC()
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		s.logger.Error("pipeline.finalize.failed",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("pipeline.run.completed",
		zap.String("meeting_id", meetingID),
		zap.String("pipeline_run_id", result.PipelineRunID),
	)
}

func (s *Service) runAndStore(ctx context.Context, meetingID string, sources []entities.AudioSource) (*Result, error) {
	result, err := s.pipeline.Run(ctx, meetingID, sources)
	if err != nil {
		return nil, err
	}

	if err := s.transcriptRepo.Replace(ctx, meetingID, result.Segments); err != nil {
		return nil, fmt.Errorf("failed to store transcript: %w", err)
	}
	if err := s.motionRepo.Replace(ctx, meetingID, result.Motions); err != nil {
		return nil, fmt.Errorf("failed to store motions: %w", err)
	}
	if err := s.actionItemRepo.Replace(ctx, meetingID, result.ActionItems); err != nil {
		return nil, fmt.Errorf("failed to store action items: %w", err)
	}

	// Unconditional write: the pipeline output becomes the next version
	// on top of whatever the secretary already saved.
	if _, err := s.drafts.Save(ctx, minutes.SaveInput{
		MeetingID: meetingID,
		Content:   result.DraftContent,
		Actor:     PipelineActor,
	}); err != nil {
		return nil, fmt.Errorf("failed to seed draft minutes: %w", err)
	}
	return result, nil
}

func (s *Service) restoreStatus(ctx context.Context, meetingID string, priorStatus entities.MeetingStatus) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		s.logger.Error("pipeline.restore.failed",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
		return
	}
	meeting.Status = priorStatus
	meeting.UpdatedAt = time.Now().UTC()
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		s.logger.Error("pipeline.restore.failed",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
	}
}
