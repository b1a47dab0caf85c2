package repositories

import (
	"context"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
)

// MinutesRepository is the append-only version ledger plus the current
// draft document for each meeting.
type MinutesRepository interface {
	// GetDraft returns the current draft, or ErrRecordNotFound-style
	// absence (nil, nil) when no draft exists yet.
	GetDraft(ctx context.Context, meetingID string) (*entities.DraftMinutes, error)

	// AppendVersion atomically verifies that the stored current version
	// equals expectedCurrent, inserts the version record, and updates
	// the draft document. expectedCurrent == 0 means "no draft exists
	// yet". Returns usecase ErrVersionConflict when the ledger moved.
	AppendVersion(ctx context.Context, version *entities.MinutesVersion, expectedCurrent int) error

	// GetVersion returns one immutable snapshot, or (nil, nil) when the
	// version does not exist.
	GetVersion(ctx context.Context, meetingID string, version int) (*entities.MinutesVersion, error)

	// ListVersions returns a page of snapshots in descending version
	// order together with the live total at call time.
	ListVersions(ctx context.Context, meetingID string, limit, offset int) ([]entities.MinutesVersion, int64, error)
}
