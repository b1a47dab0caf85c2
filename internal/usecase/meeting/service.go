package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	usecaseErrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// settingsSource provides the current system settings; the settings
// usecase satisfies it.
type settingsSource interface {
	Get(ctx context.Context) (*entities.Settings, error)
}

// Service handles meeting lifecycle business logic.
type Service struct {
	meetingRepo    repositories.MeetingRepository
	motionRepo     repositories.MotionRepository
	actionItemRepo repositories.ActionItemRepository
	audioRepo      repositories.AudioSourceRepository
	settings       settingsSource
}

// NewService creates a new meeting service.
func NewService(
	meetingRepo repositories.MeetingRepository,
	motionRepo repositories.MotionRepository,
	actionItemRepo repositories.ActionItemRepository,
	audioRepo repositories.AudioSourceRepository,
	settings settingsSource,
) *Service {
	return &Service{
		meetingRepo:    meetingRepo,
		motionRepo:     motionRepo,
		actionItemRepo: actionItemRepo,
		audioRepo:      audioRepo,
		settings:       settings,
	}
}

// CreateInput represents input for creating a meeting.
type CreateInput struct {
	Date          string
	StartTime     string
	EndTime       *string
	Location      string
	ChairName     *string
	SecretaryName *string
	Tags          []string
}

// Create registers a new meeting in the CREATED state.
func (s *Service) Create(ctx context.Context, input CreateInput) (*entities.Meeting, error) {
	var missing []string
	if input.Date == "" {
		missing = append(missing, "date")
	}
	if input.StartTime == "" {
		missing = append(missing, "start_time")
	}
	if input.Location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return nil, &usecaseErrors.ValidationError{Fields: missing}
	}

	now := time.Now().UTC()
	meeting := &entities.Meeting{
		ID:            entities.NewMeetingID(),
		Date:          input.Date,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Location:      input.Location,
		ChairName:     input.ChairName,
		SecretaryName: input.SecretaryName,
		Tags:          datatypes.NewJSONSlice(NormalizeTags(input.Tags)),
		Status:        entities.MeetingStatusCreated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	return meeting, nil
}

// Get returns one meeting.
func (s *Service) Get(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	return s.meetingRepo.FindByID(ctx, meetingID)
}

// List returns all meetings in creation order.
func (s *Service) List(ctx context.Context) ([]entities.Meeting, error) {
	return s.meetingRepo.List(ctx)
}

// UpdateInput is a partial patch of meeting attributes. Nil fields are
// left unchanged.
type UpdateInput struct {
	Date              *string
	StartTime         *string
	EndTime           *string
	AdjournmentTime   *string
	Location          *string
	ChairName         *string
	SecretaryName     *string
	Tags              []string
	NoMotions         *bool
	NoActionItems     *bool
	NoAdjournmentTime *bool
}

// Update applies a partial patch to a meeting.
func (s *Service) Update(ctx context.Context, meetingID string, input UpdateInput) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		meeting.Date = *input.Date
	}
	if input.StartTime != nil {
		meeting.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		meeting.EndTime = input.EndTime
	}
	if input.AdjournmentTime != nil {
		meeting.AdjournmentTime = input.AdjournmentTime
	}
	if input.Location != nil {
		meeting.Location = *input.Location
	}
	if input.ChairName != nil {
		meeting.ChairName = input.ChairName
	}
	if input.SecretaryName != nil {
		meeting.SecretaryName = input.SecretaryName
	}
	if input.Tags != nil {
		meeting.Tags = datatypes.NewJSONSlice(NormalizeTags(input.Tags))
	}
	if input.NoMotions != nil {
		meeting.NoMotions = *input.NoMotions
	}
	if input.NoActionItems != nil {
		meeting.NoActionItems = *input.NoActionItems
	}
	if input.NoAdjournmentTime != nil {
		meeting.NoAdjournmentTime = *input.NoAdjournmentTime
	}
	meeting.UpdatedAt = time.Now().UTC()

	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	return meeting, nil
}

// RegisterAudioInput represents input for registering an audio source.
type RegisterAudioInput struct {
	Type            string
	ParticipantID   *string
	FileURI         string
	DurationSeconds int
}

// RegisterAudio validates and stores an audio source and moves the
// meeting into the UPLOADED state.
func (s *Service) RegisterAudio(ctx context.Context, meetingID string, input RegisterAudioInput) (*entities.AudioSource, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	var missing []string
	if input.Type == "" {
		missing = append(missing, "type")
	}
	if input.FileURI == "" {
		missing = append(missing, "file_uri")
	}
	if input.DurationSeconds <= 0 {
		missing = append(missing, "duration_seconds")
	}
	if len(missing) > 0 {
		return nil, &usecaseErrors.ValidationError{Fields: missing}
	}

	source := &entities.AudioSource{
		ID:              entities.NewAudioSourceID(),
		MeetingID:       meetingID,
		Type:            input.Type,
		ParticipantID:   input.ParticipantID,
		FileURI:         input.FileURI,
		DurationSeconds: input.DurationSeconds,
		CreatedAt:       time.Now().UTC(),
	}
	if !source.HasSupportedFormat() {
		return nil, usecaseErrors.ErrUnsupportedFormat
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if input.DurationSeconds > settings.MaxDurationSeconds {
		return nil, usecaseErrors.ErrDurationExceeded
	}

	if err := s.audioRepo.Create(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to create audio source: %w", err)
	}

	meeting.Status = entities.MeetingStatusUploaded
	meeting.UpdatedAt = time.Now().UTC()
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}
	return source, nil
}

// ListAudio returns the audio sources registered for a meeting.
func (s *Service) ListAudio(ctx context.Context, meetingID string) ([]entities.AudioSource, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.audioRepo.ListByMeeting(ctx, meetingID)
}

// MotionInput represents one motion in a full-set replacement.
type MotionInput struct {
	ID           string
	Text         string
	MoverName    *string
	SeconderName *string
	VoteMethod   *string
	Outcome      *string
}

// UpdateMotions replaces the motion set for a meeting. Inputs without
// an ID get a fresh one.
func (s *Service) UpdateMotions(ctx context.Context, meetingID string, inputs []MotionInput) ([]entities.Motion, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	motions := make([]entities.Motion, 0, len(inputs))
	for _, input := range inputs {
		id := input.ID
		if id == "" {
			id = entities.NewMotionID()
		}
		motions = append(motions, entities.Motion{
			ID:           id,
			MeetingID:    meetingID,
			Text:         input.Text,
			MoverName:    input.MoverName,
			SeconderName: input.SeconderName,
			VoteMethod:   input.VoteMethod,
			Outcome:      input.Outcome,
		})
	}
	if err := s.motionRepo.Replace(ctx, meetingID, motions); err != nil {
		return nil, fmt.Errorf("failed to replace motions: %w", err)
	}
	return motions, nil
}

// ListMotions returns the motions recorded for a meeting.
func (s *Service) ListMotions(ctx context.Context, meetingID string) ([]entities.Motion, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.motionRepo.ListByMeeting(ctx, meetingID)
}

// ActionItemInput represents one action item in a full-set replacement.
type ActionItemInput struct {
	ID          string
	Description string
	OwnerName   *string
	DueDate     *string
	Status      string
}

// UpdateActionItems replaces the action item set for a meeting.
func (s *Service) UpdateActionItems(ctx context.Context, meetingID string, inputs []ActionItemInput) ([]entities.ActionItem, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	items := make([]entities.ActionItem, 0, len(inputs))
	for _, input := range inputs {
		id := input.ID
		if id == "" {
			id = entities.NewActionItemID()
		}
		status := entities.ActionItemStatus(input.Status)
		if status != entities.ActionItemStatusDone {
			status = entities.ActionItemStatusOpen
		}
		items = append(items, entities.ActionItem{
			ID:          id,
			MeetingID:   meetingID,
			Description: input.Description,
			OwnerName:   input.OwnerName,
			DueDate:     input.DueDate,
			Status:      status,
		})
	}
	if err := s.actionItemRepo.Replace(ctx, meetingID, items); err != nil {
		return nil, fmt.Errorf("failed to replace action items: %w", err)
	}
	return items, nil
}

// ListActionItems returns the action items recorded for a meeting.
func (s *Service) ListActionItems(ctx context.Context, meetingID string) ([]entities.ActionItem, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	return s.actionItemRepo.ListByMeeting(ctx, meetingID)
}

// NormalizeTags trims every tag and drops empties. A single element
// containing commas is treated as a comma-separated list.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		for _, part := range strings.Split(tag, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
