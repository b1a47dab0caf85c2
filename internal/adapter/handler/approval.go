package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/minutestack/chamber-minutes/internal/infrastructure/http/middleware"
	"github.com/minutestack/chamber-minutes/internal/usecase/approval"
)

// Approval handles the approval gate endpoints.
type Approval struct {
	service *approval.Service
	logger  *zap.Logger
}

// NewApproval creates a new approval handler.
func NewApproval(service *approval.Service, logger *zap.Logger) *Approval {
	return &Approval{service: service, logger: logger}
}

// Status handles GET /meetings/:id/approval-status
func (h *Approval) Status(c echo.Context) error {
	status, err := h.service.Status(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// Approve handles POST /meetings/:id/approve
func (h *Approval) Approve(c echo.Context) error {
	actor := middleware.GetActor(c)
	meeting, err := h.service.Approve(c.Request().Context(), c.Param("id"), actor.Email)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("minutes.approved",
		zap.String("meeting_id", meeting.ID),
		zap.String("actor", actor.Email),
	)
	return c.JSON(http.StatusOK, meeting)
}
