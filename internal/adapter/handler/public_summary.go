package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutestack/chamber-minutes/errors"
	summarydto "github.com/minutestack/chamber-minutes/internal/adapter/dto/summary"
	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/http/middleware"
	uerrors "github.com/minutestack/chamber-minutes/internal/usecase/errors"
	"github.com/minutestack/chamber-minutes/internal/usecase/summary"
)

// PublicSummary handles the public summary endpoints.
type PublicSummary struct {
	service *summary.Service
	logger  *zap.Logger
}

// NewPublicSummary creates a new public summary handler.
func NewPublicSummary(service *summary.Service, logger *zap.Logger) *PublicSummary {
	return &PublicSummary{service: service, logger: logger}
}

// Get handles GET /meetings/:id/public-summary
//
// A meeting without a summary answers a JSON null so clients can render
// the empty editor without treating it as an error.
func (h *PublicSummary) Get(c echo.Context) error {
	result, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if stdErrors.Is(err, uerrors.ErrSummaryNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Update handles PUT /meetings/:id/public-summary
func (h *PublicSummary) Update(c echo.Context) error {
	var req summarydto.UpdateSummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}

	result, err := h.service.Update(c.Request().Context(), c.Param("id"), summary.UpdateInput{
		Content: req.Content,
		Fields:  req.Fields,
		Checklist: entities.SummaryChecklist{
			NoConfidential:  req.Checklist.NoConfidential,
			NamesApproved:   req.Checklist.NamesApproved,
			MotionsReviewed: req.Checklist.MotionsReviewed,
			ActionsReviewed: req.Checklist.ActionsReviewed,
			ChairApproved:   req.Checklist.ChairApproved,
		},
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Generate handles POST /meetings/:id/public-summary/generate
func (h *PublicSummary) Generate(c echo.Context) error {
	result, err := h.service.Generate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Publish handles POST /meetings/:id/public-summary/publish
func (h *PublicSummary) Publish(c echo.Context) error {
	actor := middleware.GetActor(c)
	result, err := h.service.Publish(c.Request().Context(), c.Param("id"), actor.Email)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("public_summary.published",
		zap.String("meeting_id", c.Param("id")),
		zap.String("actor", actor.Email),
	)
	return c.JSON(http.StatusOK, result)
}
