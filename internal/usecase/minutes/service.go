package minutes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/datatypes"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	usecaseErrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// Pagination bounds for the version history listing.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// Unconditional writes rebase onto whatever version is current, so a
// cross-process ledger race is retried rather than surfaced.
const unconditionalRetries = 4

// DraftService handles draft minutes business logic: conditional saves
// against the version ledger, history listing and rollback.
type DraftService struct {
	minutesRepo repositories.MinutesRepository
	meetingRepo repositories.MeetingRepository
	auditRepo   repositories.AuditRepository
	locks       *meetingLocks
}

// NewDraftService creates a new draft minutes service.
func NewDraftService(
	minutesRepo repositories.MinutesRepository,
	meetingRepo repositories.MeetingRepository,
	auditRepo repositories.AuditRepository,
) *DraftService {
	return &DraftService{
		minutesRepo: minutesRepo,
		meetingRepo: meetingRepo,
		auditRepo:   auditRepo,
		locks:       newMeetingLocks(),
	}
}

// GetDraft returns the current draft. A meeting with no saved draft yet
// reads as an empty document at version 0, which is also the base a
// first writer must present.
func (s *DraftService) GetDraft(ctx context.Context, meetingID string) (*entities.DraftMinutes, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	draft, err := s.minutesRepo.GetDraft(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft minutes: %w", err)
	}
	if draft == nil {
		return &entities.DraftMinutes{
			MeetingID:      meetingID,
			Content:        "",
			MinutesVersion: 0,
		}, nil
	}
	return draft, nil
}

// SaveInput represents input for saving draft minutes.
type SaveInput struct {
	MeetingID string
	Content   string
	// BaseVersion is the version the caller edited on top of. Nil means
	// an unconditional write that rebases onto the current version.
	BaseVersion *int
	Actor       string
}

// Save appends a new version and advances the draft. When BaseVersion
// is set and no longer matches the current version the write is
// rejected with a ConflictError carrying the winning state; the caller
// decides whether to rebase and retry.
func (s *DraftService) Save(ctx context.Context, input SaveInput) (*entities.DraftMinutes, error) {
	if _, err := s.meetingRepo.FindByID(ctx, input.MeetingID); err != nil {
		return nil, err
	}

	lock := s.locks.forMeeting(input.MeetingID)
	lock.Lock()
	defer lock.Unlock()

	if input.BaseVersion != nil {
		return s.saveAtBase(ctx, input, *input.BaseVersion)
	}

	var draft *entities.DraftMinutes
	operation := func() error {
		current, err := s.currentVersion(ctx, input.MeetingID)
		if err != nil {
			return backoff.Permanent(err)
		}
		d, err := s.append(ctx, input, current)
		if err != nil {
			if errors.Is(err, usecaseErrors.ErrVersionConflict) {
				return err
			}
			return backoff.Permanent(err)
		}
		draft = d
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), unconditionalRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return draft, nil
}

// Rollback restores the content of an earlier version by appending it
// as a brand new version. The ledger is never rewritten.
func (s *DraftService) Rollback(ctx context.Context, meetingID string, targetVersion int, actor string) (*entities.DraftMinutes, error) {
	if targetVersion <= 0 {
		return nil, usecaseErrors.ErrInvalidInput
	}
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	target, err := s.minutesRepo.GetVersion(ctx, meetingID, targetVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to get minutes version: %w", err)
	}
	if target == nil {
		return nil, usecaseErrors.ErrVersionNotFound
	}

	lock := s.locks.forMeeting(meetingID)
	lock.Lock()
	defer lock.Unlock()

	var draft *entities.DraftMinutes
	operation := func() error {
		current, err := s.currentVersion(ctx, meetingID)
		if err != nil {
			return backoff.Permanent(err)
		}
		version := &entities.MinutesVersion{
			MeetingID:           meetingID,
			Version:             current + 1,
			Content:             target.Content,
			Actor:               actor,
			RollbackFromVersion: &targetVersion,
			CreatedAt:           time.Now().UTC(),
		}
		if err := s.minutesRepo.AppendVersion(ctx, version, current); err != nil {
			if errors.Is(err, usecaseErrors.ErrVersionConflict) {
				return err
			}
			return backoff.Permanent(fmt.Errorf("failed to append rollback version: %w", err))
		}
		// from is the restored version, to is the new head it became.
		if err := s.writeAudit(ctx, meetingID, entities.AuditEventRollback, actor, datatypes.JSONMap{
			"from_version": targetVersion,
			"to_version":   version.Version,
		}); err != nil {
			return backoff.Permanent(err)
		}
		draft = &entities.DraftMinutes{
			MeetingID:      meetingID,
			Content:        version.Content,
			MinutesVersion: version.Version,
			UpdatedBy:      actor,
			UpdatedAt:      version.CreatedAt,
		}
		return nil
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), unconditionalRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return draft, nil
}

// VersionPage is one page of the version history, newest first.
type VersionPage struct {
	Items      []entities.MinutesVersion
	Total      int64
	Limit      int
	Offset     int
	NextOffset *int
	HasMore    bool
}

// ListVersions returns a page of the version ledger in descending
// version order. Limit is clamped to [1, MaxPageLimit] and a negative
// offset to 0; an offset past the end yields an empty page.
func (s *DraftService) ListVersions(ctx context.Context, meetingID string, limit, offset int) (*VersionPage, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.minutesRepo.ListVersions(ctx, meetingID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list minutes versions: %w", err)
	}

	page := &VersionPage{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	if len(items) > 0 && int64(offset+len(items)) < total {
		next := offset + len(items)
		page.NextOffset = &next
		page.HasMore = true
	}
	return page, nil
}

// GetVersion returns one immutable snapshot from the ledger.
func (s *DraftService) GetVersion(ctx context.Context, meetingID string, versionNum int) (*entities.MinutesVersion, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	version, err := s.minutesRepo.GetVersion(ctx, meetingID, versionNum)
	if err != nil {
		return nil, fmt.Errorf("failed to get minutes version: %w", err)
	}
	if version == nil {
		return nil, usecaseErrors.ErrVersionNotFound
	}
	return version, nil
}

// saveAtBase performs one compare-and-swap attempt against the given
// base. Conflicts are reported, never retried; the losing caller holds
// stale content only they can merge.
func (s *DraftService) saveAtBase(ctx context.Context, input SaveInput, base int) (*entities.DraftMinutes, error) {
	current, err := s.currentVersion(ctx, input.MeetingID)
	if err != nil {
		return nil, err
	}
	if base != current {
		return nil, s.conflict(ctx, input.MeetingID, current)
	}
	draft, err := s.append(ctx, input, current)
	if errors.Is(err, usecaseErrors.ErrVersionConflict) {
		// Another process advanced the ledger between our read and the
		// guarded update. Report the version that beat us.
		winner, cerr := s.currentVersion(ctx, input.MeetingID)
		if cerr != nil {
			return nil, cerr
		}
		return nil, s.conflict(ctx, input.MeetingID, winner)
	}
	return draft, err
}

// append inserts version current+1 and records the audit event.
func (s *DraftService) append(ctx context.Context, input SaveInput, current int) (*entities.DraftMinutes, error) {
	version := &entities.MinutesVersion{
		MeetingID: input.MeetingID,
		Version:   current + 1,
		Content:   input.Content,
		Actor:     input.Actor,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.minutesRepo.AppendVersion(ctx, version, current); err != nil {
		if errors.Is(err, usecaseErrors.ErrVersionConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to append minutes version: %w", err)
	}
	if err := s.writeAudit(ctx, input.MeetingID, entities.AuditEventVersionSaved, input.Actor, datatypes.JSONMap{
		"version": version.Version,
	}); err != nil {
		return nil, err
	}
	return &entities.DraftMinutes{
		MeetingID:      input.MeetingID,
		Content:        version.Content,
		MinutesVersion: version.Version,
		UpdatedBy:      input.Actor,
		UpdatedAt:      version.CreatedAt,
	}, nil
}

func (s *DraftService) currentVersion(ctx context.Context, meetingID string) (int, error) {
	draft, err := s.minutesRepo.GetDraft(ctx, meetingID)
	if err != nil {
		return 0, fmt.Errorf("failed to get draft minutes: %w", err)
	}
	if draft == nil {
		return 0, nil
	}
	return draft.MinutesVersion, nil
}

func (s *DraftService) conflict(ctx context.Context, meetingID string, current int) error {
	content := ""
	if draft, err := s.minutesRepo.GetDraft(ctx, meetingID); err == nil && draft != nil {
		content = draft.Content
	}
	return &usecaseErrors.ConflictError{
		CurrentVersion: current,
		CurrentContent: content,
	}
}

func (s *DraftService) writeAudit(ctx context.Context, meetingID, eventType, actor string, details datatypes.JSONMap) error {
	entry := &entities.AuditEntry{
		ID:        entities.NewAuditEntryID(),
		MeetingID: meetingID,
		EventType: eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}
