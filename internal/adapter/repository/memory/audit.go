package memory

import (
	"context"
	"sync"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
)

// AuditRepository is the in-memory append-only audit sink. Entries keep
// insertion order; nothing is ever updated or removed.
type AuditRepository struct {
	mu      sync.RWMutex
	entries []entities.AuditEntry
}

// NewAuditRepository creates an empty sink.
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Append(ctx context.Context, entry *entities.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.Seq = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *AuditRepository) ListByMeeting(ctx context.Context, meetingID string) ([]entities.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.AuditEntry, 0)
	for _, entry := range r.entries {
		if entry.MeetingID == meetingID {
			out = append(out, entry)
		}
	}
	return out, nil
}

// SettingsRepository is the in-memory settings store.
type SettingsRepository struct {
	mu       sync.RWMutex
	settings entities.Settings
}

// NewSettingsRepository creates a store seeded with defaults.
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{settings: *entities.DefaultSettings()}
}

func (r *SettingsRepository) Get(ctx context.Context) (*entities.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	copied := r.settings
	return &copied, nil
}

func (r *SettingsRepository) Update(ctx context.Context, settings *entities.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = *settings
	r.settings.ID = entities.SettingsID
	return nil
}
