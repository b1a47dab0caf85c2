package entities

import "gorm.io/datatypes"

// SettingsID is the primary key of the singleton settings row.
const SettingsID = "system"

// Settings holds the operator-tunable system configuration.
type Settings struct {
	ID                 string            `gorm:"type:varchar(32);primary_key" json:"-"`
	RetentionDays      int               `gorm:"not null;default:60" json:"retentionDays"`
	MaxFileSizeMb      int               `gorm:"not null;default:500" json:"maxFileSizeMb"`
	MaxDurationSeconds int               `gorm:"not null;default:14400" json:"maxDurationSeconds"`
	FeatureFlags       datatypes.JSONMap `gorm:"type:jsonb" json:"featureFlags"`
}

// TableName specifies the table name for Settings.
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings returns the settings used before any operator update.
func DefaultSettings() *Settings {
	return &Settings{
		ID:                 SettingsID,
		RetentionDays:      60,
		MaxFileSizeMb:      500,
		MaxDurationSeconds: 4 * 60 * 60,
		FeatureFlags:       datatypes.JSONMap{},
	}
}
