package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// publicSummaryRepository implements PublicSummaryRepository on GORM.
type publicSummaryRepository struct {
	db *gorm.DB
}

// NewPublicSummaryRepository creates a new public summary repository.
func NewPublicSummaryRepository(db *gorm.DB) repositories.PublicSummaryRepository {
	return &publicSummaryRepository{db: db}
}

func (r *publicSummaryRepository) Upsert(ctx context.Context, summary *entities.PublicSummary) error {
	return r.db.WithContext(ctx).Save(summary).Error
}

func (r *publicSummaryRepository) FindByMeeting(ctx context.Context, meetingID string) (*entities.PublicSummary, error) {
	var summary entities.PublicSummary
	err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrSummaryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
