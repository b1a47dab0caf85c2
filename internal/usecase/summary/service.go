package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// Service manages the public-facing meeting summary. The summary is a
// separate document from the minutes; it is drafted from meeting data,
// edited freely and only published once its review checklist is
// complete.
type Service struct {
	summaryRepo    repositories.PublicSummaryRepository
	meetingRepo    repositories.MeetingRepository
	motionRepo     repositories.MotionRepository
	actionItemRepo repositories.ActionItemRepository

	now func() time.Time
}

// NewService creates a new public summary service.
func NewService(
	summaryRepo repositories.PublicSummaryRepository,
	meetingRepo repositories.MeetingRepository,
	motionRepo repositories.MotionRepository,
	actionItemRepo repositories.ActionItemRepository,
) *Service {
	return &Service{
		summaryRepo:    summaryRepo,
		meetingRepo:    meetingRepo,
		motionRepo:     motionRepo,
		actionItemRepo: actionItemRepo,
		now:            time.Now,
	}
}

// Get returns the meeting's public summary.
func (s *Service) Get(ctx context.Context, meetingID string) (*entities.PublicSummary, error) {
	return s.summaryRepo.FindByMeeting(ctx, meetingID)
}

// UpdateInput replaces the editable parts of the summary.
type UpdateInput struct {
	Content   string
	Fields    map[string]interface{}
	Checklist entities.SummaryChecklist
}

// Update stores the edited summary. Publication stamps from an earlier
// publish survive the edit.
func (s *Service) Update(ctx context.Context, meetingID string, input UpdateInput) (*entities.PublicSummary, error) {
	summary := &entities.PublicSummary{
		MeetingID: meetingID,
		Content:   input.Content,
		Fields:    datatypes.JSONMap(input.Fields),
		Checklist: input.Checklist,
		UpdatedAt: s.now(),
	}
	if existing, err := s.summaryRepo.FindByMeeting(ctx, meetingID); err == nil {
		summary.PublishedAt = existing.PublishedAt
		summary.PublishedBy = existing.PublishedBy
	}
	if summary.Fields == nil {
		summary.Fields = datatypes.JSONMap{}
	}
	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to save public summary: %w", err)
	}
	return summary, nil
}

// Generate drafts the summary from the meeting record, its motions and
// its action items. The review checklist resets so the draft cannot be
// published unseen.
func (s *Service) Generate(ctx context.Context, meetingID string) (*entities.PublicSummary, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	motions, err := s.motionRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	items, err := s.actionItemRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	location := meeting.Location
	if location == "" {
		location = "the meeting location"
	}
	chair := ""
	if meeting.ChairName != nil {
		chair = *meeting.ChairName
	}

	fields := map[string]interface{}{
		"title":          fmt.Sprintf("Public summary for %s", meeting.Date),
		"highlights":     "No formal motions recorded.",
		"impact":         fmt.Sprintf("Meeting held at %s.", location),
		"motions":        "No motions recorded.",
		"actions":        "No action items recorded.",
		"attendance":     "",
		"call_to_action": "Minutes are available upon request.",
		"notes":          "",
	}
	if len(motions) > 0 {
		fields["highlights"] = fmt.Sprintf("Motions recorded: %d.", len(motions))
		fields["motions"] = "Motions reviewed and documented."
	}
	if len(items) > 0 {
		fields["actions"] = fmt.Sprintf("Action items captured: %d.", len(items))
	}
	if chair != "" {
		fields["attendance"] = fmt.Sprintf("Facilitated by %s.", chair)
	}

	return s.Update(ctx, meetingID, UpdateInput{
		Content: renderContent(fields),
		Fields:  fields,
	})
}

// Publish stamps the summary as published once every checklist item is
// confirmed.
func (s *Service) Publish(ctx context.Context, meetingID, actor string) (*entities.PublicSummary, error) {
	summary, err := s.summaryRepo.FindByMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !summary.Checklist.Complete() {
		return nil, uerrors.ErrPublishBlocked
	}

	now := s.now()
	summary.PublishedAt = &now
	summary.PublishedBy = &actor
	summary.UpdatedAt = now
	if err := s.summaryRepo.Upsert(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to publish public summary: %w", err)
	}
	return summary, nil
}

// renderContent joins the non-empty summary fields in reading order.
func renderContent(fields map[string]interface{}) string {
	order := []string{
		"title", "highlights", "impact", "motions",
		"actions", "attendance", "call_to_action", "notes",
	}
	parts := make([]string, 0, len(order))
	for _, key := range order {
		text, _ := fields[key].(string)
		text = strings.TrimSpace(text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}
