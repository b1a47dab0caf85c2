package settings

// UpdateSettingsRequest is a partial settings patch.
type UpdateSettingsRequest struct {
	RetentionDays      *int                   `json:"retentionDays"`
	MaxFileSizeMb      *int                   `json:"maxFileSizeMb"`
	MaxDurationSeconds *int                   `json:"maxDurationSeconds"`
	FeatureFlags       map[string]interface{} `json:"featureFlags"`
}
