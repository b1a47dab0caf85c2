package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutestack/chamber-minutes/errors"
	settingsdto "github.com/minutestack/chamber-minutes/internal/adapter/dto/settings"
	"github.com/minutestack/chamber-minutes/internal/usecase/settings"
)

// Settings handles system settings endpoints.
type Settings struct {
	service *settings.Service
	logger  *zap.Logger
}

// NewSettings creates a new settings handler.
func NewSettings(service *settings.Service, logger *zap.Logger) *Settings {
	return &Settings{service: service, logger: logger}
}

// Get handles GET /settings
func (h *Settings) Get(c echo.Context) error {
	current, err := h.service.Get(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, current)
}

// Update handles PUT /settings
func (h *Settings) Update(c echo.Context) error {
	var req settingsdto.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}

	updated, err := h.service.Update(c.Request().Context(), settings.UpdateInput{
		RetentionDays:      req.RetentionDays,
		MaxFileSizeMb:      req.MaxFileSizeMb,
		MaxDurationSeconds: req.MaxDurationSeconds,
		FeatureFlags:       req.FeatureFlags,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("settings.updated",
		zap.Int("retention_days", updated.RetentionDays),
	)
	return c.JSON(http.StatusOK, updated)
}
