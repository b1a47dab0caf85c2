package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutestack/chamber-minutes/errors"
	minutesdto "github.com/minutestack/chamber-minutes/internal/adapter/dto/minutes"
	usecaseErrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
)

// errorBody is the error envelope every failing endpoint returns. The
// clients key off the "error" string; extras ride alongside it.
type errorBody map[string]interface{}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleError maps usecase errors onto the wire contract and logs them.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	logError(logger, c, err)

	var conflictErr *usecaseErrors.ConflictError
	if stdErrors.As(err, &conflictErr) {
		return c.JSON(http.StatusConflict, minutesdto.ConflictResponse{
			Error:          "Draft minutes were updated by someone else",
			CurrentVersion: conflictErr.CurrentVersion,
			CurrentContent: conflictErr.CurrentContent,
		})
	}

	var blockedErr *usecaseErrors.ApprovalBlockedError
	if stdErrors.As(err, &blockedErr) {
		return c.JSON(http.StatusBadRequest, errorBody{
			"error":   "Approval blocked by validation rules",
			"details": blockedErr.Status,
		})
	}

	var validationErr *usecaseErrors.ValidationError
	if stdErrors.As(err, &validationErr) {
		return c.JSON(http.StatusUnprocessableEntity, errorBody{
			"error": validationErr.Error(),
		})
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return c.JSON(http.StatusNotFound, errorBody{"error": "Meeting not found"})
	case stdErrors.Is(err, usecaseErrors.ErrVersionNotFound):
		return c.JSON(http.StatusNotFound, errorBody{"error": "Minutes version not found"})
	case stdErrors.Is(err, usecaseErrors.ErrDraftNotFound):
		return c.JSON(http.StatusNotFound, errorBody{"error": "Draft minutes not found"})
	case stdErrors.Is(err, usecaseErrors.ErrSummaryNotFound):
		return c.JSON(http.StatusNotFound, errorBody{"error": "Public summary not found"})
	case stdErrors.Is(err, usecaseErrors.ErrPublishBlocked):
		return c.JSON(http.StatusBadRequest, errorBody{"error": "Publish blocked by incomplete checklist"})
	case stdErrors.Is(err, usecaseErrors.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorBody{"error": "Forbidden"})
	case stdErrors.Is(err, usecaseErrors.ErrSweepInProgress):
		return c.JSON(http.StatusConflict, errorBody{"error": err.Error()})
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, usecaseErrors.ErrNoAudioSources),
		stdErrors.Is(err, usecaseErrors.ErrUnsupportedFormat),
		stdErrors.Is(err, usecaseErrors.ErrDurationExceeded):
		return c.JSON(http.StatusBadRequest, errorBody{"error": err.Error()})
	}

	var appErr apperrors.AppError
	if stdErrors.As(err, &appErr) {
		body := errorBody{"error": appErr.Message}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		return c.JSON(appErr.HTTPCode, body)
	}

	return c.JSON(http.StatusInternalServerError, errorBody{"error": "Internal server error"})
}

func logError(logger *zap.Logger, c echo.Context, err error) {
	if logger == nil {
		return
	}
	logger.Error("http.response.error",
		zap.String("request_id", getRequestID(c)),
		zap.String("path", c.Path()),
		zap.String("method", c.Request().Method),
		zap.Error(err),
	)
}
