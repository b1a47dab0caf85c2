package meeting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/minutestack/chamber-minutes/internal/adapter/repository/memory"
	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/cache"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
	"github.com/minutestack/chamber-minutes/internal/usecase/settings"
)

func setupMeetingService(t *testing.T) *Service {
	t.Helper()
	settingsSvc := settings.NewService(memory.NewSettingsRepository(), cache.NewLocalStore())
	return NewService(
		memory.NewMeetingRepository(),
		memory.NewMotionRepository(),
		memory.NewActionItemRepository(),
		memory.NewAudioSourceRepository(),
		settingsSvc,
	)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreate_MissingFieldsListedTogether(t *testing.T) {
	svc := setupMeetingService(t)

	_, err := svc.Create(context.Background(), CreateInput{Date: "2026-09-01"})
	var validation *uerrors.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, []string{"start_time", "location"}, validation.Fields)
}

func TestCreate_NormalizesTags(t *testing.T) {
	svc := setupMeetingService(t)

	created, err := svc.Create(context.Background(), CreateInput{
		Date:      "2026-09-01",
		StartTime: "18:00",
		Location:  "Chamber Hall",
		Tags:      []string{" budget, events ", "", "board"},
	})
	require.NoError(t, err)
	require.Equal(t, entities.MeetingStatusCreated, created.Status)
	require.Equal(t, []string{"budget", "events", "board"}, []string(created.Tags))
}

func TestUpdate_NilFieldsLeaveValuesUntouched(t *testing.T) {
	svc := setupMeetingService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Date: "2026-09-01", StartTime: "18:00", Location: "Chamber Hall",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateInput{
		AdjournmentTime: strPtr("19:15"),
		NoMotions:       boolPtr(true),
	})
	require.NoError(t, err)
	require.Equal(t, "Chamber Hall", updated.Location)
	require.Equal(t, "18:00", updated.StartTime)
	require.Equal(t, "19:15", *updated.AdjournmentTime)
	require.True(t, updated.NoMotions)
	require.False(t, updated.NoActionItems)
}

func TestRegisterAudio_ValidatesFormatAndDuration(t *testing.T) {
	svc := setupMeetingService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Date: "2026-09-01", StartTime: "18:00", Location: "Chamber Hall",
	})
	require.NoError(t, err)

	_, err = svc.RegisterAudio(ctx, created.ID, RegisterAudioInput{
		Type: "room", FileURI: "audio/room.ogg", DurationSeconds: 60,
	})
	require.ErrorIs(t, err, uerrors.ErrUnsupportedFormat)

	_, err = svc.RegisterAudio(ctx, created.ID, RegisterAudioInput{
		Type: "room", FileURI: "audio/room.mp3", DurationSeconds: 99999,
	})
	require.ErrorIs(t, err, uerrors.ErrDurationExceeded)

	source, err := svc.RegisterAudio(ctx, created.ID, RegisterAudioInput{
		Type: "room", FileURI: "audio/room.wav", DurationSeconds: 3600,
	})
	require.NoError(t, err)
	require.NotEmpty(t, source.ID)

	meeting, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, entities.MeetingStatusUploaded, meeting.Status)
}

func TestUpdateMotions_AssignsIDsAndReplacesSet(t *testing.T) {
	svc := setupMeetingService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Date: "2026-09-01", StartTime: "18:00", Location: "Chamber Hall",
	})
	require.NoError(t, err)

	motions, err := svc.UpdateMotions(ctx, created.ID, []MotionInput{
		{Text: "approve budget", MoverName: strPtr("Okafor")},
		{ID: "motion_fixed", Text: "adjourn"},
	})
	require.NoError(t, err)
	require.Len(t, motions, 2)
	require.NotEmpty(t, motions[0].ID)
	require.Equal(t, "motion_fixed", motions[1].ID)

	// A second replacement drops everything not in the new set.
	motions, err = svc.UpdateMotions(ctx, created.ID, []MotionInput{{Text: "only one"}})
	require.NoError(t, err)
	require.Len(t, motions, 1)

	listed, err := svc.ListMotions(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestUpdateActionItems_NormalizesStatus(t *testing.T) {
	svc := setupMeetingService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateInput{
		Date: "2026-09-01", StartTime: "18:00", Location: "Chamber Hall",
	})
	require.NoError(t, err)

	items, err := svc.UpdateActionItems(ctx, created.ID, []ActionItemInput{
		{Description: "file permit", Status: "DONE"},
		{Description: "call vendor", Status: "bogus"},
		{Description: "book room"},
	})
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, entities.ActionItemStatusDone, items[0].Status)
	require.Equal(t, entities.ActionItemStatusOpen, items[1].Status)
	require.Equal(t, entities.ActionItemStatusOpen, items[2].Status)
}

func TestNormalizeTags(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, NormalizeTags([]string{"a,b", " c "}))
	require.Empty(t, NormalizeTags([]string{" ", ","}))
	require.Empty(t, NormalizeTags(nil))
}
