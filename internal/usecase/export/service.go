package export

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	usecaseErrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// ObjectStorage is the storage surface exports need; the MinIO client
// satisfies it.
type ObjectStorage interface {
	UploadText(ctx context.Context, objectName string, content string, contentType string) error
}

// Service handles rendering the current draft minutes to object
// storage.
type Service struct {
	meetingRepo repositories.MeetingRepository
	minutesRepo repositories.MinutesRepository
	auditRepo   repositories.AuditRepository
	storage     ObjectStorage
}

// NewService creates a new export service.
func NewService(
	meetingRepo repositories.MeetingRepository,
	minutesRepo repositories.MinutesRepository,
	auditRepo repositories.AuditRepository,
	storage ObjectStorage,
) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		minutesRepo: minutesRepo,
		auditRepo:   auditRepo,
		storage:     storage,
	}
}

// ExportResult describes one produced export artifact.
type ExportResult struct {
	ID      string `json:"id"`
	Format  string `json:"format"`
	FileURI string `json:"file_uri"`
}

// Export uploads the current draft in the requested format and records
// the audit event.
func (s *Service) Export(ctx context.Context, meetingID, format, actor string) (*ExportResult, error) {
	if _, err := s.meetingRepo.FindByID(ctx, meetingID); err != nil {
		return nil, err
	}
	draft, err := s.minutesRepo.GetDraft(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft minutes: %w", err)
	}
	if draft == nil {
		return nil, usecaseErrors.ErrDraftNotFound
	}
	if format == "" {
		format = "pdf"
	}

	exportID := fmt.Sprintf("export_%s_%s_%d", meetingID, format, time.Now().UnixMilli())
	fileURI := fmt.Sprintf("exports/%s/%s.%s", meetingID, exportID, format)

	if err := s.storage.UploadText(ctx, fileURI, draft.Content, contentTypeFor(format)); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	entry := &entities.AuditEntry{
		ID:        entities.NewAuditEntryID(),
		MeetingID: meetingID,
		EventType: entities.AuditEventExport,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Details: datatypes.JSONMap{
			"format":   format,
			"file_uri": fileURI,
		},
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	return &ExportResult{
		ID:      exportID,
		Format:  format,
		FileURI: fileURI,
	}, nil
}

func contentTypeFor(format string) string {
	switch format {
	case "md":
		return "text/markdown"
	case "html":
		return "text/html"
	case "pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
