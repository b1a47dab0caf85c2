package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/minutestack/chamber-minutes/internal/usecase/retention"
)

// Retention handles the retention sweep endpoint.
type Retention struct {
	service *retention.Service
	logger  *zap.Logger
}

// NewRetention creates a new retention handler.
func NewRetention(service *retention.Service, logger *zap.Logger) *Retention {
	return &Retention{service: service, logger: logger}
}

// Sweep handles POST /retention/sweep
func (h *Retention) Sweep(c echo.Context) error {
	result, err := h.service.Sweep(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("retention.sweep.completed",
		zap.Int("deleted_count", len(result.Deleted)),
	)
	return c.JSON(http.StatusOK, result)
}
