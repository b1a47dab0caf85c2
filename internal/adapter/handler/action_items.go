package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutestack/chamber-minutes/errors"
	meetingdto "github.com/minutestack/chamber-minutes/internal/adapter/dto/meeting"
	"github.com/minutestack/chamber-minutes/internal/usecase/meeting"
)

// ActionItems handles action item endpoints.
type ActionItems struct {
	service *meeting.Service
	logger  *zap.Logger
}

// NewActionItems creates a new action items handler.
func NewActionItems(service *meeting.Service, logger *zap.Logger) *ActionItems {
	return &ActionItems{service: service, logger: logger}
}

// Update handles PUT /meetings/:id/action-items
func (h *ActionItems) Update(c echo.Context) error {
	var req meetingdto.UpdateActionItemsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}

	inputs := make([]meeting.ActionItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, meeting.ActionItemInput{
			ID:          item.ID,
			Description: item.Description,
			OwnerName:   item.OwnerName,
			DueDate:     item.DueDate,
			Status:      item.Status,
		})
	}

	items, err := h.service.UpdateActionItems(c.Request().Context(), c.Param("id"), inputs)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// List handles GET /meetings/:id/action-items
func (h *ActionItems) List(c echo.Context) error {
	items, err := h.service.ListActionItems(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// ExportCSV handles GET /meetings/:id/action-items/export/csv
func (h *ActionItems) ExportCSV(c echo.Context) error {
	items, err := h.service.ListActionItems(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	records := [][]string{{"description", "owner_name", "due_date", "status"}}
	for _, item := range items {
		owner := ""
		if item.OwnerName != nil {
			owner = *item.OwnerName
		}
		due := ""
		if item.DueDate != nil {
			due = *item.DueDate
		}
		records = append(records, []string{item.Description, owner, due, string(item.Status)})
	}
	if err := writer.WriteAll(records); err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
