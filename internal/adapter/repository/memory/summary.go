package memory

import (
	"context"
	"sync"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// PublicSummaryRepository is the in-memory public summary store.
type PublicSummaryRepository struct {
	mu        sync.RWMutex
	summaries map[string]entities.PublicSummary
}

// NewPublicSummaryRepository creates an empty store.
func NewPublicSummaryRepository() *PublicSummaryRepository {
	return &PublicSummaryRepository{summaries: make(map[string]entities.PublicSummary)}
}

func (r *PublicSummaryRepository) Upsert(ctx context.Context, summary *entities.PublicSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries[summary.MeetingID] = *summary
	return nil
}

func (r *PublicSummaryRepository) FindByMeeting(ctx context.Context, meetingID string) (*entities.PublicSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary, ok := r.summaries[meetingID]
	if !ok {
		return nil, uerrors.ErrSummaryNotFound
	}
	copied := summary
	return &copied, nil
}
