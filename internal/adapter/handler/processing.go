package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/minutestack/chamber-minutes/internal/usecase/processing"
)

// Processing handles pipeline endpoints.
type Processing struct {
	service *processing.Service
	logger  *zap.Logger
}

// NewProcessing creates a new processing handler.
func NewProcessing(service *processing.Service, logger *zap.Logger) *Processing {
	return &Processing{service: service, logger: logger}
}

// Start handles POST /meetings/:id/process
func (h *Processing) Start(c echo.Context) error {
	report, err := h.service.Start(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("pipeline.started",
		zap.String("meeting_id", c.Param("id")),
	)
	return c.JSON(http.StatusOK, report)
}

// Status handles GET /meetings/:id/process-status
func (h *Processing) Status(c echo.Context) error {
	report, err := h.service.Status(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, report)
}
