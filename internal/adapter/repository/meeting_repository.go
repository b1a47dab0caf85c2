package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// meetingRepository implements the MeetingRepository interface on GORM.
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository.
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepository) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, uerrors.ErrMeetingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) List(ctx context.Context) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&meetings).Error
	return meetings, err
}

func (r *meetingRepository) ListByStatus(ctx context.Context, status entities.MeetingStatus) ([]entities.Meeting, error) {
	var meetings []entities.Meeting
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&meetings).Error
	return meetings, err
}

func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}
