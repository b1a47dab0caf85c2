package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
)

// motionRepository implements the MotionRepository interface on GORM.
type motionRepository struct {
	db *gorm.DB
}

// NewMotionRepository creates a new motion repository.
func NewMotionRepository(db *gorm.DB) repositories.MotionRepository {
	return &motionRepository{db: db}
}

// Replace swaps the full motion set for a meeting in one transaction.
func (r *motionRepository) Replace(ctx context.Context, meetingID string, motions []entities.Motion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&entities.Motion{}).Error; err != nil {
			return err
		}
		if len(motions) == 0 {
			return nil
		}
		return tx.Create(&motions).Error
	})
}

func (r *motionRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.Motion, error) {
	var motions []entities.Motion
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Find(&motions).Error
	return motions, err
}

// actionItemRepository implements the ActionItemRepository interface.
type actionItemRepository struct {
	db *gorm.DB
}

// NewActionItemRepository creates a new action item repository.
func NewActionItemRepository(db *gorm.DB) repositories.ActionItemRepository {
	return &actionItemRepository{db: db}
}

func (r *actionItemRepository) Replace(ctx context.Context, meetingID string, items []entities.ActionItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&entities.ActionItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *actionItemRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.ActionItem, error) {
	var items []entities.ActionItem
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Find(&items).Error
	return items, err
}

// audioSourceRepository implements the AudioSourceRepository interface.
type audioSourceRepository struct {
	db *gorm.DB
}

// NewAudioSourceRepository creates a new audio source repository.
func NewAudioSourceRepository(db *gorm.DB) repositories.AudioSourceRepository {
	return &audioSourceRepository{db: db}
}

func (r *audioSourceRepository) Create(ctx context.Context, source *entities.AudioSource) error {
	return r.db.WithContext(ctx).Create(source).Error
}

func (r *audioSourceRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.AudioSource, error) {
	var sources []entities.AudioSource
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&sources).Error
	return sources, err
}

func (r *audioSourceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.AudioSource{}).Error
}

// transcriptRepository implements the TranscriptRepository interface.
type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository.
func NewTranscriptRepository(db *gorm.DB) repositories.TranscriptRepository {
	return &transcriptRepository{db: db}
}

func (r *transcriptRepository) Replace(ctx context.Context, meetingID string, segments []entities.TranscriptSegment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", meetingID).Delete(&entities.TranscriptSegment{}).Error; err != nil {
			return err
		}
		if len(segments) == 0 {
			return nil
		}
		return tx.Create(&segments).Error
	})
}

func (r *transcriptRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.TranscriptSegment, error) {
	var segments []entities.TranscriptSegment
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("idx ASC").
		Find(&segments).Error
	return segments, err
}
