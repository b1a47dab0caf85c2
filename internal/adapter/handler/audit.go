package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
)

// Audit handles audit log reads. The log itself is written by the
// services; this surface is read-only.
type Audit struct {
	auditRepo repositories.AuditRepository
	logger    *zap.Logger
}

// NewAudit creates a new audit handler.
func NewAudit(auditRepo repositories.AuditRepository, logger *zap.Logger) *Audit {
	return &Audit{auditRepo: auditRepo, logger: logger}
}

// List handles GET /meetings/:id/audit-log. The reserved meeting id
// "system" lists operational events such as retention sweeps.
func (h *Audit) List(c echo.Context) error {
	entries, err := h.auditRepo.ListByMeeting(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
