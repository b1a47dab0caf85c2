package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/cache"
)

const (
	cacheKey = "settings:system"
	cacheTTL = 30 * time.Second
)

// Service handles system settings with a cache in front of the store.
// Settings are read on every audio registration and retention sweep,
// so reads are cached; updates invalidate.
type Service struct {
	repo  repositories.SettingsRepository
	cache cache.Store
}

// NewService creates a new settings service.
func NewService(repo repositories.SettingsRepository, cacheStore cache.Store) *Service {
	return &Service{
		repo:  repo,
		cache: cacheStore,
	}
}

// Get returns the current settings, preferring the cache.
func (s *Service) Get(ctx context.Context) (*entities.Settings, error) {
	if cached, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
		var settings entities.Settings
		if err := json.Unmarshal([]byte(cached), &settings); err == nil {
			return &settings, nil
		}
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if encoded, err := json.Marshal(settings); err == nil {
		// A failed cache write only costs the next reader a DB trip.
		_ = s.cache.Set(ctx, cacheKey, string(encoded), cacheTTL)
	}
	return settings, nil
}

// UpdateInput is a partial settings patch. Nil fields are unchanged.
type UpdateInput struct {
	RetentionDays      *int
	MaxFileSizeMb      *int
	MaxDurationSeconds *int
	FeatureFlags       map[string]interface{}
}

// Update applies a patch, persists it and drops the cached copy.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*entities.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	if input.RetentionDays != nil {
		settings.RetentionDays = *input.RetentionDays
	}
	if input.MaxFileSizeMb != nil {
		settings.MaxFileSizeMb = *input.MaxFileSizeMb
	}
	if input.MaxDurationSeconds != nil {
		settings.MaxDurationSeconds = *input.MaxDurationSeconds
	}
	if input.FeatureFlags != nil {
		settings.FeatureFlags = datatypes.JSONMap(input.FeatureFlags)
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		return nil, fmt.Errorf("failed to invalidate settings cache: %w", err)
	}
	return settings, nil
}
