package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutestack/chamber-minutes/errors"
	minutesdto "github.com/minutestack/chamber-minutes/internal/adapter/dto/minutes"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/http/middleware"
	"github.com/minutestack/chamber-minutes/internal/usecase/export"
	"github.com/minutestack/chamber-minutes/internal/usecase/minutes"
)

// Minutes handles draft minutes, version history and export endpoints.
type Minutes struct {
	drafts  *minutes.DraftService
	exports *export.Service
	logger  *zap.Logger
}

// NewMinutes creates a new minutes handler.
func NewMinutes(drafts *minutes.DraftService, exports *export.Service, logger *zap.Logger) *Minutes {
	return &Minutes{drafts: drafts, exports: exports, logger: logger}
}

// GetDraft handles GET /meetings/:id/draft-minutes
func (h *Minutes) GetDraft(c echo.Context) error {
	draft, err := h.drafts.GetDraft(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, draft)
}

// SaveDraft handles PUT /meetings/:id/draft-minutes
func (h *Minutes) SaveDraft(c echo.Context) error {
	var req minutesdto.SaveDraftRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}

	actor := middleware.GetActor(c)
	draft, err := h.drafts.Save(c.Request().Context(), minutes.SaveInput{
		MeetingID:   c.Param("id"),
		Content:     req.Content,
		BaseVersion: req.BaseVersion,
		Actor:       actor.Email,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("minutes.version.saved",
		zap.String("meeting_id", c.Param("id")),
		zap.Int("version", draft.MinutesVersion),
		zap.String("actor", actor.Email),
	)
	return c.JSON(http.StatusOK, draft)
}

// ListVersions handles GET /meetings/:id/draft-minutes/versions
func (h *Minutes) ListVersions(c echo.Context) error {
	limit := minutes.DefaultPageLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("limit must be a number"))
		}
		limit = parsed
	}
	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return HandleError(h.logger, c, apperrors.ErrInvalidArgument("offset must be a number"))
		}
		offset = parsed
	}

	page, err := h.drafts.ListVersions(c.Request().Context(), c.Param("id"), limit, offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, minutesdto.VersionPageResponse{
		Items:      page.Items,
		Offset:     page.Offset,
		Limit:      page.Limit,
		NextOffset: page.NextOffset,
		HasMore:    page.HasMore,
		Total:      page.Total,
	})
}

// GetVersion handles GET /meetings/:id/draft-minutes/versions/:version
func (h *Minutes) GetVersion(c echo.Context) error {
	versionNum, err := strconv.Atoi(c.Param("version"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("version must be a number"))
	}
	version, err := h.drafts.GetVersion(c.Request().Context(), c.Param("id"), versionNum)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, version)
}

// Rollback handles POST /meetings/:id/draft-minutes/rollback
func (h *Minutes) Rollback(c echo.Context) error {
	var req minutesdto.RollbackRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}
	if req.Version == nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("version is required"))
	}

	actor := middleware.GetActor(c)
	draft, err := h.drafts.Rollback(c.Request().Context(), c.Param("id"), *req.Version, actor.Email)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("minutes.rollback",
		zap.String("meeting_id", c.Param("id")),
		zap.Int("to_version", *req.Version),
		zap.Int("new_version", draft.MinutesVersion),
	)
	return c.JSON(http.StatusOK, draft)
}

// Export handles POST /meetings/:id/export
func (h *Minutes) Export(c echo.Context) error {
	var req minutesdto.ExportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}

	actor := middleware.GetActor(c)
	result, err := h.exports.Export(c.Request().Context(), c.Param("id"), req.Format, actor.Email)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, result)
}
