package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// minutesRepository implements the MinutesRepository interface on GORM.
type minutesRepository struct {
	db *gorm.DB
}

// NewMinutesRepository creates a new minutes repository.
func NewMinutesRepository(db *gorm.DB) repositories.MinutesRepository {
	return &minutesRepository{db: db}
}

// GetDraft retrieves the current draft for a meeting.
func (r *minutesRepository) GetDraft(ctx context.Context, meetingID string) (*entities.DraftMinutes, error) {
	var draft entities.DraftMinutes
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// AppendVersion inserts the version record and advances the draft in one
// transaction. The draft row carries the version counter; the guarded
// conditional update on it is what makes two same-base writers mutually
// exclusive across processes.
func (r *minutesRepository) AppendVersion(ctx context.Context, version *entities.MinutesVersion, expectedCurrent int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if expectedCurrent == 0 {
			draft := entities.DraftMinutes{
				MeetingID:      version.MeetingID,
				Content:        version.Content,
				MinutesVersion: version.Version,
				UpdatedBy:      version.Actor,
				UpdatedAt:      version.CreatedAt,
			}
			if err := tx.Create(&draft).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return uerrors.ErrVersionConflict
				}
				return err
			}
		} else {
			res := tx.Model(&entities.DraftMinutes{}).
				Where("meeting_id = ? AND minutes_version = ?", version.MeetingID, expectedCurrent).
				Updates(map[string]interface{}{
					"content":         version.Content,
					"minutes_version": version.Version,
					"updated_by":      version.Actor,
					"updated_at":      version.CreatedAt,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return uerrors.ErrVersionConflict
			}
		}

		return tx.Create(version).Error
	})
}

// GetVersion retrieves one snapshot.
func (r *minutesRepository) GetVersion(ctx context.Context, meetingID string, versionNum int) (*entities.MinutesVersion, error) {
	var version entities.MinutesVersion
	err := r.db.WithContext(ctx).
		Where("meeting_id = ? AND version = ?", meetingID, versionNum).
		First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// ListVersions retrieves a page of snapshots, newest first, with the
// live total.
func (r *minutesRepository) ListVersions(ctx context.Context, meetingID string, limit, offset int) ([]entities.MinutesVersion, int64, error) {
	var total int64
	query := r.db.WithContext(ctx).
		Model(&entities.MinutesVersion{}).
		Where("meeting_id = ?", meetingID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var versions []entities.MinutesVersion
	err := query.
		Order("version DESC").
		Limit(limit).
		Offset(offset).
		Find(&versions).Error
	if err != nil {
		return nil, 0, err
	}
	return versions, total, nil
}
