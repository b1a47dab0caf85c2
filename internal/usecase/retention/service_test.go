package retention

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/minutestack/chamber-minutes/internal/adapter/repository/memory"
	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/storage"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
	"github.com/minutestack/chamber-minutes/internal/usecase/settings"
)

type retentionFixture struct {
	svc         *Service
	meetingRepo *memory.MeetingRepository
	audioRepo   *memory.AudioSourceRepository
	auditRepo   *memory.AuditRepository
	objects     *storage.MemoryObjectStore
}

func setupRetention(t *testing.T, redisClient *redis.Client, now time.Time) *retentionFixture {
	t.Helper()
	f := &retentionFixture{
		meetingRepo: memory.NewMeetingRepository(),
		audioRepo:   memory.NewAudioSourceRepository(),
		auditRepo:   memory.NewAuditRepository(),
		objects:     storage.NewMemoryObjectStore(),
	}
	settingsSvc := settings.NewService(memory.NewSettingsRepository(), cacheStub{})
	f.svc = NewService(f.meetingRepo, f.audioRepo, f.auditRepo, settingsSvc, f.objects, redisClient)
	f.svc.now = func() time.Time { return now }
	return f
}

// cacheStub is a no-op cache so settings reads always hit the store.
type cacheStub struct{}

func (cacheStub) Get(ctx context.Context, key string) (string, bool, error) { return "", false, nil }
func (cacheStub) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}
func (cacheStub) Delete(ctx context.Context, key string) error { return nil }

func (f *retentionFixture) addMeeting(t *testing.T, id string, status entities.MeetingStatus) {
	t.Helper()
	require.NoError(t, f.meetingRepo.Create(context.Background(), &entities.Meeting{
		ID:        id,
		Date:      "2026-06-01",
		StartTime: "18:00",
		Location:  "Chamber Hall",
		Status:    status,
	}))
}

func (f *retentionFixture) addAudio(t *testing.T, meetingID, audioID string, createdAt time.Time) {
	t.Helper()
	ctx := context.Background()
	fileURI := "audio/" + meetingID + "/" + audioID + ".mp3"
	require.NoError(t, f.objects.UploadText(ctx, fileURI, "data", "audio/mpeg"))
	require.NoError(t, f.audioRepo.Create(ctx, &entities.AudioSource{
		ID:              audioID,
		MeetingID:       meetingID,
		Type:            "room",
		FileURI:         fileURI,
		DurationSeconds: 60,
		CreatedAt:       createdAt,
	}))
}

func TestSweep_DeletesOnlyAgedAudioOfApprovedMeetings(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f := setupRetention(t, nil, now)
	ctx := context.Background()

	// Aged audio on an approved meeting: swept.
	f.addMeeting(t, "meeting_old", entities.MeetingStatusApproved)
	f.addAudio(t, "meeting_old", "audio_old", now.Add(-61*24*time.Hour))

	// Fresh audio on an approved meeting: kept.
	f.addMeeting(t, "meeting_fresh", entities.MeetingStatusApproved)
	f.addAudio(t, "meeting_fresh", "audio_fresh", now.Add(-2*24*time.Hour))

	// Aged audio on an unapproved meeting: kept.
	f.addMeeting(t, "meeting_draft", entities.MeetingStatusDraftReady)
	f.addAudio(t, "meeting_draft", "audio_draft", now.Add(-90*24*time.Hour))

	result, err := f.svc.Sweep(ctx)
	require.NoError(t, err)
	require.Len(t, result.Deleted, 1)
	require.Equal(t, "meeting_old", result.Deleted[0].MeetingID)
	require.Equal(t, "audio_old", result.Deleted[0].AudioID)

	_, ok := f.objects.GetFile(ctx, result.Deleted[0].FileURI)
	require.False(t, ok)

	remaining, err := f.audioRepo.ListByMeeting(ctx, "meeting_fresh")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	kept, err := f.audioRepo.ListByMeeting(ctx, "meeting_draft")
	require.NoError(t, err)
	require.Len(t, kept, 1)
}

func TestSweep_WritesOneSystemAuditEntry(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f := setupRetention(t, nil, now)
	ctx := context.Background()

	f.addMeeting(t, "meeting_old", entities.MeetingStatusApproved)
	f.addAudio(t, "meeting_old", "audio_1", now.Add(-100*24*time.Hour))
	f.addAudio(t, "meeting_old", "audio_2", now.Add(-100*24*time.Hour))

	result, err := f.svc.Sweep(ctx)
	require.NoError(t, err)
	require.Len(t, result.Deleted, 2)

	entries, err := f.auditRepo.ListByMeeting(ctx, entities.SystemMeetingID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, entities.AuditEventRetentionSweep, entries[0].EventType)
	require.EqualValues(t, 2, entries[0].Details["deleted_count"])
}

func TestSweep_EmptyRunStillAudits(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f := setupRetention(t, nil, now)

	result, err := f.svc.Sweep(context.Background())
	require.NoError(t, err)
	require.Empty(t, result.Deleted)

	entries, err := f.auditRepo.ListByMeeting(context.Background(), entities.SystemMeetingID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestSweep_LockHeldRejectsSecondSweep(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	f := setupRetention(t, client, now)

	require.NoError(t, mr.Set("retention:sweep:lock", "1"))
	_, err := f.svc.Sweep(context.Background())
	require.ErrorIs(t, err, uerrors.ErrSweepInProgress)

	// Once the holder releases, the sweep proceeds and releases again.
	mr.Del("retention:sweep:lock")
	_, err = f.svc.Sweep(context.Background())
	require.NoError(t, err)
	require.False(t, mr.Exists("retention:sweep:lock"))
}
