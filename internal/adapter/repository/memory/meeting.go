package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// MeetingRepository is the in-memory meeting store.
type MeetingRepository struct {
	mu       sync.RWMutex
	meetings map[string]entities.Meeting
	order    []string
}

// NewMeetingRepository creates an empty store.
func NewMeetingRepository() *MeetingRepository {
	return &MeetingRepository{meetings: make(map[string]entities.Meeting)}
}

func (r *MeetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meetings[meeting.ID] = *meeting
	r.order = append(r.order, meeting.ID)
	return nil
}

func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meeting, ok := r.meetings[id]
	if !ok {
		return nil, uerrors.ErrMeetingNotFound
	}
	copied := meeting
	return &copied, nil
}

func (r *MeetingRepository) List(ctx context.Context) ([]entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Meeting, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.meetings[id])
	}
	return out, nil
}

func (r *MeetingRepository) ListByStatus(ctx context.Context, status entities.MeetingStatus) ([]entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Meeting, 0)
	for _, id := range r.order {
		if meeting := r.meetings[id]; meeting.Status == status {
			out = append(out, meeting)
		}
	}
	return out, nil
}

func (r *MeetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meetings[meeting.ID]; !ok {
		return uerrors.ErrMeetingNotFound
	}
	r.meetings[meeting.ID] = *meeting
	return nil
}

// MotionRepository is the in-memory motion store.
type MotionRepository struct {
	mu      sync.RWMutex
	motions map[string][]entities.Motion
}

// NewMotionRepository creates an empty store.
func NewMotionRepository() *MotionRepository {
	return &MotionRepository{motions: make(map[string][]entities.Motion)}
}

func (r *MotionRepository) Replace(ctx context.Context, meetingID string, motions []entities.Motion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]entities.Motion, len(motions))
	copy(copied, motions)
	r.motions[meetingID] = copied
	return nil
}

func (r *MotionRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.Motion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Motion, len(r.motions[meetingID]))
	copy(out, r.motions[meetingID])
	return out, nil
}

// ActionItemRepository is the in-memory action item store.
type ActionItemRepository struct {
	mu    sync.RWMutex
	items map[string][]entities.ActionItem
}

// NewActionItemRepository creates an empty store.
func NewActionItemRepository() *ActionItemRepository {
	return &ActionItemRepository{items: make(map[string][]entities.ActionItem)}
}

func (r *ActionItemRepository) Replace(ctx context.Context, meetingID string, items []entities.ActionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]entities.ActionItem, len(items))
	copy(copied, items)
	r.items[meetingID] = copied
	return nil
}

func (r *ActionItemRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.ActionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.ActionItem, len(r.items[meetingID]))
	copy(out, r.items[meetingID])
	return out, nil
}

// AudioSourceRepository is the in-memory audio source store.
type AudioSourceRepository struct {
	mu      sync.RWMutex
	sources map[string]entities.AudioSource
	order   []string
}

// NewAudioSourceRepository creates an empty store.
func NewAudioSourceRepository() *AudioSourceRepository {
	return &AudioSourceRepository{sources: make(map[string]entities.AudioSource)}
}

func (r *AudioSourceRepository) Create(ctx context.Context, source *entities.AudioSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source.ID] = *source
	r.order = append(r.order, source.ID)
	return nil
}

func (r *AudioSourceRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.AudioSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.AudioSource, 0)
	for _, id := range r.order {
		if source, ok := r.sources[id]; ok && source.MeetingID == meetingID {
			out = append(out, source)
		}
	}
	return out, nil
}

func (r *AudioSourceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sources, id)
	return nil
}

// TranscriptRepository is the in-memory transcript store.
type TranscriptRepository struct {
	mu       sync.RWMutex
	segments map[string][]entities.TranscriptSegment
}

// NewTranscriptRepository creates an empty store.
func NewTranscriptRepository() *TranscriptRepository {
	return &TranscriptRepository{segments: make(map[string][]entities.TranscriptSegment)}
}

func (r *TranscriptRepository) Replace(ctx context.Context, meetingID string, segments []entities.TranscriptSegment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := make([]entities.TranscriptSegment, len(segments))
	copy(copied, segments)
	sort.Slice(copied, func(i, j int) bool { return copied[i].Idx < copied[j].Idx })
	r.segments[meetingID] = copied
	return nil
}

func (r *TranscriptRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.TranscriptSegment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.TranscriptSegment, len(r.segments[meetingID]))
	copy(out, r.segments[meetingID])
	return out, nil
}
