package approval

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	usecaseErrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// Service handles the approval gate: structural-completeness checks and
// the transition into the approved state.
type Service struct {
	meetingRepo    repositories.MeetingRepository
	motionRepo     repositories.MotionRepository
	actionItemRepo repositories.ActionItemRepository
	auditRepo      repositories.AuditRepository
}

// NewService creates a new approval service.
func NewService(
	meetingRepo repositories.MeetingRepository,
	motionRepo repositories.MotionRepository,
	actionItemRepo repositories.ActionItemRepository,
	auditRepo repositories.AuditRepository,
) *Service {
	return &Service{
		meetingRepo:    meetingRepo,
		motionRepo:     motionRepo,
		actionItemRepo: actionItemRepo,
		auditRepo:      auditRepo,
	}
}

// Status recomputes the approval gate from the meeting's current data.
// Nothing is cached; edits between calls always show up.
func (s *Service) Status(ctx context.Context, meetingID string) (*entities.ApprovalStatus, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	motions, err := s.motionRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list motions: %w", err)
	}
	actionItems, err := s.actionItemRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	status := entities.EvaluateApproval(meeting, motions, actionItems)
	return &status, nil
}

// Approve re-evaluates the gate at call time and, when it passes, moves
// the meeting into the approved state and records the audit event. A
// blocked approval returns the full status so the caller sees every
// failing rule at once.
func (s *Service) Approve(ctx context.Context, meetingID, actor string) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	motions, err := s.motionRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list motions: %w", err)
	}
	actionItems, err := s.actionItemRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}

	status := entities.EvaluateApproval(meeting, motions, actionItems)
	if !status.OK {
		return nil, &usecaseErrors.ApprovalBlockedError{Status: status}
	}

	meeting.Approve(actor, time.Now().UTC())
	if err := s.meetingRepo.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	entry := &entities.AuditEntry{
		ID:        entities.NewAuditEntryID(),
		MeetingID: meetingID,
		EventType: entities.AuditEventApproved,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Details:   datatypes.JSONMap{"meeting_id": meetingID},
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}
	return meeting, nil
}
