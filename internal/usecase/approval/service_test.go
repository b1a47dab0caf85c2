package approval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minutestack/chamber-minutes/internal/adapter/repository/memory"
	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

type approvalFixture struct {
	svc         *Service
	meetingRepo *memory.MeetingRepository
	motionRepo  *memory.MotionRepository
	itemRepo    *memory.ActionItemRepository
	auditRepo   *memory.AuditRepository
	meetingID   string
}

func setupApproval(t *testing.T, meeting *entities.Meeting) *approvalFixture {
	t.Helper()
	f := &approvalFixture{
		meetingRepo: memory.NewMeetingRepository(),
		motionRepo:  memory.NewMotionRepository(),
		itemRepo:    memory.NewActionItemRepository(),
		auditRepo:   memory.NewAuditRepository(),
	}
	f.svc = NewService(f.meetingRepo, f.motionRepo, f.itemRepo, f.auditRepo)
	require.NoError(t, f.meetingRepo.Create(context.Background(), meeting))
	f.meetingID = meeting.ID
	return f
}

func strPtr(s string) *string { return &s }

func TestApprove_BlockedReturnsFullStatus(t *testing.T) {
	f := setupApproval(t, &entities.Meeting{
		ID:        "meeting_1",
		Date:      "2026-09-01",
		StartTime: "18:00",
		Location:  "Chamber Hall",
		Status:    entities.MeetingStatusDraftReady,
	})

	_, err := f.svc.Approve(context.Background(), f.meetingID, "chair@demo.local")
	var blocked *uerrors.ApprovalBlockedError
	require.ErrorAs(t, err, &blocked)
	require.False(t, blocked.Status.OK)
	require.False(t, blocked.Status.HasMotions)
	require.False(t, blocked.Status.HasAdjournmentTime)

	meeting, err := f.meetingRepo.FindByID(context.Background(), f.meetingID)
	require.NoError(t, err)
	require.Equal(t, entities.MeetingStatusDraftReady, meeting.Status)
}

func TestApprove_GateIsRecomputedAtCallTime(t *testing.T) {
	ctx := context.Background()
	f := setupApproval(t, &entities.Meeting{
		ID:              "meeting_1",
		Date:            "2026-09-01",
		StartTime:       "18:00",
		AdjournmentTime: strPtr("19:15"),
		Location:        "Chamber Hall",
		Status:          entities.MeetingStatusDraftReady,
		NoActionItems:   true,
	})

	_, err := f.svc.Approve(ctx, f.meetingID, "chair@demo.local")
	var blocked *uerrors.ApprovalBlockedError
	require.ErrorAs(t, err, &blocked)

	// Adding a motion between calls flips the gate without any other change.
	require.NoError(t, f.motionRepo.Replace(ctx, f.meetingID, []entities.Motion{
		{ID: "motion_1", MeetingID: f.meetingID, Text: "approve budget"},
	}))

	meeting, err := f.svc.Approve(ctx, f.meetingID, "chair@demo.local")
	require.NoError(t, err)
	require.Equal(t, entities.MeetingStatusApproved, meeting.Status)
	require.NotNil(t, meeting.ApprovedAt)
	require.Equal(t, "chair@demo.local", *meeting.ApprovedBy)

	entries, err := f.auditRepo.ListByMeeting(ctx, f.meetingID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, entities.AuditEventApproved, entries[0].EventType)
}

func TestStatus_ReportsMissingActionItems(t *testing.T) {
	ctx := context.Background()
	f := setupApproval(t, &entities.Meeting{
		ID:              "meeting_1",
		Date:            "2026-09-01",
		StartTime:       "18:00",
		AdjournmentTime: strPtr("19:15"),
		Location:        "Chamber Hall",
		NoMotions:       true,
	})
	require.NoError(t, f.itemRepo.Replace(ctx, f.meetingID, []entities.ActionItem{
		{ID: "action_1", MeetingID: f.meetingID, Description: "no owner yet"},
	}))

	status, err := f.svc.Status(ctx, f.meetingID)
	require.NoError(t, err)
	require.False(t, status.OK)
	require.Len(t, status.MissingActionItems, 1)
	require.Equal(t, "action_1", status.MissingActionItems[0].ID)
}
