package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
)

// auditRepository implements the AuditRepository interface on GORM. The
// table is append-only; seq is the database-assigned order.
type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *gorm.DB) repositories.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, entry *entities.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.AuditEntry, error) {
	var entries []entities.AuditEntry
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("seq ASC").
		Find(&entries).Error
	return entries, err
}

// settingsRepository implements the SettingsRepository interface. Settings
// live in a single row keyed by the fixed system ID.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *gorm.DB) repositories.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*entities.Settings, error) {
	var settings entities.Settings
	err := r.db.WithContext(ctx).
		Where("id = ?", entities.SettingsID).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *entities.Settings) error {
	settings.ID = entities.SettingsID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
}
