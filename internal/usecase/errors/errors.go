package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
)

// Common errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrForbidden         = errors.New("forbidden access")
	ErrMeetingNotFound   = errors.New("meeting not found")
	ErrVersionNotFound   = errors.New("minutes version not found")
	ErrVersionConflict   = errors.New("minutes version conflict")
	ErrNoAudioSources    = errors.New("no audio sources available for processing")
	ErrDraftNotFound     = errors.New("draft minutes not found")
	ErrSummaryNotFound   = errors.New("public summary not found")
	ErrPublishBlocked    = errors.New("publish blocked by incomplete checklist")
	ErrSweepInProgress   = errors.New("retention sweep already in progress")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrDurationExceeded  = errors.New("audio duration exceeds maximum")
)

// ValidationError reports required fields missing from an input payload.
type ValidationError struct {
	Fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Is makes ValidationError match ErrInvalidInput in errors.Is chains.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConflictError is returned by a rejected compare-and-swap write. It
// carries everything the losing writer needs to rebase without a second
// round trip.
type ConflictError struct {
	CurrentVersion int
	CurrentContent string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("draft minutes conflict: current version is %d", e.CurrentVersion)
}

// Is makes ConflictError match ErrVersionConflict in errors.Is chains.
func (e *ConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}

// ApprovalBlockedError is returned when the approval gate rejects the
// transition; it carries the full recomputed status.
type ApprovalBlockedError struct {
	Status entities.ApprovalStatus
}

// Error implements the error interface.
func (e *ApprovalBlockedError) Error() string {
	return "approval blocked by validation rules"
}
