package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/minutestack/chamber-minutes/internal/adapter/repository/memory"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/cache"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/http/middleware"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/storage"
	"github.com/minutestack/chamber-minutes/internal/usecase/approval"
	"github.com/minutestack/chamber-minutes/internal/usecase/export"
	"github.com/minutestack/chamber-minutes/internal/usecase/meeting"
	"github.com/minutestack/chamber-minutes/internal/usecase/minutes"
	"github.com/minutestack/chamber-minutes/internal/usecase/processing"
	"github.com/minutestack/chamber-minutes/internal/usecase/retention"
	"github.com/minutestack/chamber-minutes/internal/usecase/settings"
	"github.com/minutestack/chamber-minutes/internal/usecase/summary"
	"github.com/minutestack/chamber-minutes/pkg/config"
	"github.com/minutestack/chamber-minutes/pkg/jwt"
	pkgvalidator "github.com/minutestack/chamber-minutes/pkg/validator"
)

// newTestServer wires the full route table over in-memory stores, the
// same shape main assembles for the demo mode.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	logger := zap.NewNop()

	meetingRepo := memory.NewMeetingRepository()
	minutesRepo := memory.NewMinutesRepository()
	motionRepo := memory.NewMotionRepository()
	actionItemRepo := memory.NewActionItemRepository()
	audioRepo := memory.NewAudioSourceRepository()
	transcriptRepo := memory.NewTranscriptRepository()
	auditRepo := memory.NewAuditRepository()
	settingsRepo := memory.NewSettingsRepository()
	objects := storage.NewMemoryObjectStore()

	settingsService := settings.NewService(settingsRepo, cache.NewLocalStore())
	meetingService := meeting.NewService(meetingRepo, motionRepo, actionItemRepo, audioRepo, settingsService)
	draftService := minutes.NewDraftService(minutesRepo, meetingRepo, auditRepo)
	approvalService := approval.NewService(meetingRepo, motionRepo, actionItemRepo, auditRepo)
	exportService := export.NewService(meetingRepo, minutesRepo, auditRepo, objects)
	retentionService := retention.NewService(meetingRepo, audioRepo, auditRepo, settingsService, objects, nil)
	summaryService := summary.NewService(memory.NewPublicSummaryRepository(), meetingRepo, motionRepo, actionItemRepo)
	processingService := processing.NewService(
		meetingRepo, audioRepo, transcriptRepo, motionRepo, actionItemRepo,
		draftService, processing.NewFixturePipeline("../../../fixtures"), logger,
	)

	jwtManager := jwt.NewManager("test-secret", time.Hour)

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.Use(middleware.NewAuthMiddleware(jwtManager, "test").EchoAuth())

	cfg := &config.Config{}
	cfg.Server.Environment = "test"
	NewRouter(
		cfg,
		NewAuth(jwtManager, "test", logger),
		NewMeeting(meetingService, logger),
		NewMinutes(draftService, exportService, logger),
		NewMotions(meetingService, logger),
		NewActionItems(meetingService, logger),
		NewApproval(approvalService, logger),
		NewProcessing(processingService, logger),
		NewAudit(auditRepo, logger),
		NewSettings(settingsService, logger),
		NewRetention(retentionService, logger),
		NewPublicSummary(summaryService, logger),
	).Setup(e)
	return e
}

// request performs one request as a demo secretary unless asGuest.
func request(t *testing.T, e *echo.Echo, method, path, body string, asGuest bool) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if !asGuest {
		req.Header.Set(echo.HeaderAuthorization, "Bearer demo")
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func createMeeting(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec, body := request(t, e, http.MethodPost, "/meetings",
		`{"date":"2026-09-01","start_time":"18:00","location":"Chamber Hall"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestHealthCheck(t *testing.T) {
	e := newTestServer(t)
	rec, body := request(t, e, http.MethodGet, "/health", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["ok"])
}

func TestCreateMeeting_MissingFieldsRejected(t *testing.T) {
	e := newTestServer(t)
	rec, body := request(t, e, http.MethodPost, "/meetings", `{"date":"2026-09-01"}`, false)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, body["error"], "start_time")
	require.Contains(t, body["error"], "location")
}

func TestSaveDraft_ConflictShape(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	draftPath := fmt.Sprintf("/meetings/%s/draft-minutes", meetingID)

	rec, body := request(t, e, http.MethodPut, draftPath, `{"content":"first","base_version":0}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, body["minutes_version"])

	rec, body = request(t, e, http.MethodPut, draftPath, `{"content":"stale","base_version":0}`, false)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.EqualValues(t, 1, body["current_version"])
	require.Equal(t, "first", body["current_content"])
	require.NotEmpty(t, body["error"])
}

func TestSaveDraft_GuestForbidden(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)

	rec, body := request(t, e, http.MethodPut,
		fmt.Sprintf("/meetings/%s/draft-minutes", meetingID),
		`{"content":"x","base_version":0}`, true)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "Forbidden", body["error"])
}

func TestListVersions_NonNumericParamsRejected(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	base := fmt.Sprintf("/meetings/%s/draft-minutes/versions", meetingID)

	rec, body := request(t, e, http.MethodGet, base+"?limit=abc", "", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "limit must be a number", body["error"])

	rec, body = request(t, e, http.MethodGet, base+"?offset=x", "", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "offset must be a number", body["error"])
}

func TestListVersions_PaginationOverHTTP(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	draftPath := fmt.Sprintf("/meetings/%s/draft-minutes", meetingID)

	for i := 0; i < 3; i++ {
		rec, _ := request(t, e, http.MethodPut, draftPath,
			fmt.Sprintf(`{"content":"v%d","base_version":%d}`, i+1, i), false)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := request(t, e, http.MethodGet,
		fmt.Sprintf("/meetings/%s/draft-minutes/versions?limit=2&offset=0", meetingID), "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 3, body["total"])
	require.Equal(t, true, body["has_more"])
	require.EqualValues(t, 2, body["next_offset"])
	items := body["items"].([]interface{})
	require.Len(t, items, 2)
	first := items[0].(map[string]interface{})
	require.EqualValues(t, 3, first["version"])

	// Out-of-range offset yields an empty page, not an error.
	rec, body = request(t, e, http.MethodGet,
		fmt.Sprintf("/meetings/%s/draft-minutes/versions?limit=1&offset=9999", meetingID), "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, body["items"])
	require.Equal(t, false, body["has_more"])
	require.Nil(t, body["next_offset"])
}

func TestRollback_ValidationAndUnknownVersion(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	rollbackPath := fmt.Sprintf("/meetings/%s/draft-minutes/rollback", meetingID)

	rec, body := request(t, e, http.MethodPost, rollbackPath, `{}`, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "version is required", body["error"])

	rec, body = request(t, e, http.MethodPost, rollbackPath, `{"version":42}`, false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Minutes version not found", body["error"])
}

func TestRollback_CreatesNewHeadVersion(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	draftPath := fmt.Sprintf("/meetings/%s/draft-minutes", meetingID)

	for i, content := range []string{"original", "revised"} {
		rec, _ := request(t, e, http.MethodPut, draftPath,
			fmt.Sprintf(`{"content":"%s","base_version":%d}`, content, i), false)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec, body := request(t, e, http.MethodPost,
		fmt.Sprintf("/meetings/%s/draft-minutes/rollback", meetingID), `{"version":1}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 3, body["minutes_version"])
	require.Equal(t, "original", body["content"])
}

func TestUnknownMeeting_NotFound(t *testing.T) {
	e := newTestServer(t)
	rec, body := request(t, e, http.MethodGet, "/meetings/meeting_missing/draft-minutes", "", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Meeting not found", body["error"])
}

func TestProcess_ReturnsProcessingImmediately(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)

	rec, _ := request(t, e, http.MethodPost,
		fmt.Sprintf("/meetings/%s/audio-sources", meetingID),
		`{"type":"room","file_uri":"audio/room.mp3","duration_seconds":120}`, false)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := request(t, e, http.MethodPost,
		fmt.Sprintf("/meetings/%s/process", meetingID), "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "PROCESSING", body["status"])

	require.Eventually(t, func() bool {
		_, status := request(t, e, http.MethodGet,
			fmt.Sprintf("/meetings/%s/process-status", meetingID), "", false)
		return status["status"] == "DRAFT_READY"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestProcess_NoAudioSources(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)

	rec, body := request(t, e, http.MethodPost,
		fmt.Sprintf("/meetings/%s/process", meetingID), "", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, body["error"])
}

func TestAudioSource_FormatAndDurationValidation(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	path := fmt.Sprintf("/meetings/%s/audio-sources", meetingID)

	rec, _ := request(t, e, http.MethodPost, path,
		`{"type":"room","file_uri":"audio/room.ogg","duration_seconds":60}`, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = request(t, e, http.MethodPost, path,
		`{"type":"room","file_uri":"audio/room.mp3","duration_seconds":99999}`, false)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = request(t, e, http.MethodPost, path, `{"type":"room"}`, false)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestApprove_BlockedThenApproved(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	approvePath := fmt.Sprintf("/meetings/%s/approve", meetingID)

	rec, body := request(t, e, http.MethodPost, approvePath, "", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	details := body["details"].(map[string]interface{})
	require.Equal(t, false, details["ok"])

	// Overrides plus an adjournment time satisfy every rule.
	rec, _ = request(t, e, http.MethodPut, fmt.Sprintf("/meetings/%s", meetingID),
		`{"no_motions":true,"no_action_items":true,"adjournment_time":"19:15"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = request(t, e, http.MethodPost, approvePath, "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "APPROVED", body["status"])
}

func TestSettings_UpdateRequiresCapability(t *testing.T) {
	e := newTestServer(t)

	rec, _ := request(t, e, http.MethodPut, "/settings", `{"retentionDays":30}`, true)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec, body := request(t, e, http.MethodPut, "/settings", `{"retentionDays":30}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 30, body["retentionDays"])

	rec, body = request(t, e, http.MethodGet, "/settings", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 30, body["retentionDays"])
}

func TestAuthToken_ViewerCannotWrite(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)

	rec, body := request(t, e, http.MethodPost, "/auth/token",
		`{"email":"viewer@demo.local","role":"viewer"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/meetings/%s/draft-minutes", meetingID),
		strings.NewReader(`{"content":"x","base_version":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestAuditLog_RecordsSavesInOrder(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	draftPath := fmt.Sprintf("/meetings/%s/draft-minutes", meetingID)

	for i := 0; i < 2; i++ {
		rec, _ := request(t, e, http.MethodPut, draftPath,
			fmt.Sprintf(`{"content":"v%d","base_version":%d}`, i+1, i), false)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/meetings/%s/audit-log", meetingID), nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer demo")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "MINUTES_VERSION_SAVED", entries[0]["event_type"])
	details := entries[1]["details"].(map[string]interface{})
	require.EqualValues(t, 2, details["version"])
}

func TestRetentionSweep_EndpointReturnsDeletedList(t *testing.T) {
	e := newTestServer(t)

	rec, body := request(t, e, http.MethodPost, "/retention/sweep", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	deleted, ok := body["deleted"].([]interface{})
	require.True(t, ok)
	require.Empty(t, deleted)

	rec, _ = request(t, e, http.MethodPost, "/retention/sweep", "", true)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExport_UploadsAndAudits(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	draftPath := fmt.Sprintf("/meetings/%s/draft-minutes", meetingID)

	rec, _ := request(t, e, http.MethodPut, draftPath, `{"content":"final","base_version":0}`, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := request(t, e, http.MethodPost,
		fmt.Sprintf("/meetings/%s/export", meetingID), `{"format":"md"}`, false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "md", body["format"])
	fileURI := body["file_uri"].(string)
	require.Contains(t, fileURI, "exports/"+meetingID+"/")
	require.True(t, strings.HasSuffix(fileURI, ".md"))
}

func TestExport_NoDraftIsNotFound(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)

	rec, _ := request(t, e, http.MethodPost,
		fmt.Sprintf("/meetings/%s/export", meetingID), `{"format":"pdf"}`, false)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicSummary_GenerateEditPublishFlow(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)
	base := fmt.Sprintf("/meetings/%s/public-summary", meetingID)

	// No summary yet answers null, not an error.
	rec, body := request(t, e, http.MethodGet, base, "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, body)

	rec, body = request(t, e, http.MethodPost, base+"/generate", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, body["content"], "Public summary for 2026-09-01")
	fields := body["fields"].(map[string]interface{})
	require.Equal(t, "No formal motions recorded.", fields["highlights"])

	// A fresh draft cannot be published.
	rec, body = request(t, e, http.MethodPost, base+"/publish", "", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Publish blocked by incomplete checklist", body["error"])

	checklist := `{"no_confidential":true,"names_approved":true,"motions_reviewed":true,"actions_reviewed":true,"chair_approved":true}`
	rec, _ = request(t, e, http.MethodPut, base,
		`{"content":"edited recap","fields":{"title":"edited"},"checklist":`+checklist+`}`, false)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = request(t, e, http.MethodPost, base+"/publish", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, body["published_at"])
	require.Equal(t, "secretary@demo.local", body["published_by"])

	// Guests cannot touch the editable surface.
	rec, _ = request(t, e, http.MethodPut, base, `{"content":"x"}`, true)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPublicSummary_PublishWithoutSummaryIsNotFound(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)

	rec, body := request(t, e, http.MethodPost,
		fmt.Sprintf("/meetings/%s/public-summary/publish", meetingID), "", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Public summary not found", body["error"])
}

func TestPublicSummary_GenerateUnknownMeetingIsNotFound(t *testing.T) {
	e := newTestServer(t)
	rec, _ := request(t, e, http.MethodPost,
		"/meetings/meeting_missing/public-summary/generate", "", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReadEndpoints_RequireAuthenticatedRole(t *testing.T) {
	e := newTestServer(t)
	meetingID := createMeeting(t, e)

	paths := []string{
		"/meetings",
		fmt.Sprintf("/meetings/%s", meetingID),
		fmt.Sprintf("/meetings/%s/draft-minutes", meetingID),
		fmt.Sprintf("/meetings/%s/draft-minutes/versions", meetingID),
		fmt.Sprintf("/meetings/%s/approval-status", meetingID),
		fmt.Sprintf("/meetings/%s/audit-log", meetingID),
		"/settings",
	}
	for _, path := range paths {
		rec, body := request(t, e, http.MethodGet, path, "", true)
		require.Equal(t, http.StatusForbidden, rec.Code, path)
		require.Equal(t, "Forbidden", body["error"], path)
	}

	// The public recap stays readable without a role.
	rec, _ := request(t, e, http.MethodGet,
		fmt.Sprintf("/meetings/%s/public-summary", meetingID), "", true)
	require.Equal(t, http.StatusOK, rec.Code)
}
