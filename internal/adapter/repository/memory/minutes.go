package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// MinutesRepository is a mutex-guarded in-memory version ledger used by
// tests and by the in-memory development mode.
type MinutesRepository struct {
	mu       sync.RWMutex
	drafts   map[string]entities.DraftMinutes
	versions map[string][]entities.MinutesVersion
}

// NewMinutesRepository creates an empty ledger.
func NewMinutesRepository() *MinutesRepository {
	return &MinutesRepository{
		drafts:   make(map[string]entities.DraftMinutes),
		versions: make(map[string][]entities.MinutesVersion),
	}
}

// GetDraft returns the current draft or (nil, nil) when absent.
func (r *MinutesRepository) GetDraft(ctx context.Context, meetingID string) (*entities.DraftMinutes, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	draft, ok := r.drafts[meetingID]
	if !ok {
		return nil, nil
	}
	copied := draft
	return &copied, nil
}

// AppendVersion performs the conditional append. The compare and the
// insert happen under one lock so concurrent callers serialize here the
// same way the SQL implementation serializes on the conditional update.
func (r *MinutesRepository) AppendVersion(ctx context.Context, version *entities.MinutesVersion, expectedCurrent int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := 0
	if draft, ok := r.drafts[version.MeetingID]; ok {
		current = draft.MinutesVersion
	}
	if current != expectedCurrent {
		return uerrors.ErrVersionConflict
	}

	r.versions[version.MeetingID] = append(r.versions[version.MeetingID], *version)
	r.drafts[version.MeetingID] = entities.DraftMinutes{
		MeetingID:      version.MeetingID,
		Content:        version.Content,
		MinutesVersion: version.Version,
		UpdatedBy:      version.Actor,
		UpdatedAt:      version.CreatedAt,
	}
	return nil
}

// GetVersion returns one snapshot or (nil, nil) when absent.
func (r *MinutesRepository) GetVersion(ctx context.Context, meetingID string, version int) (*entities.MinutesVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.versions[meetingID] {
		if v.Version == version {
			copied := v
			return &copied, nil
		}
	}
	return nil, nil
}

// ListVersions returns a page in descending version order plus the live
// total at call time.
func (r *MinutesRepository) ListVersions(ctx context.Context, meetingID string, limit, offset int) ([]entities.MinutesVersion, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]entities.MinutesVersion, len(r.versions[meetingID]))
	copy(all, r.versions[meetingID])
	sort.Slice(all, func(i, j int) bool { return all[i].Version > all[j].Version })

	total := int64(len(all))
	if offset >= len(all) {
		return []entities.MinutesVersion{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}
