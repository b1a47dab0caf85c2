package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutestack/chamber-minutes/errors"
	meetingdto "github.com/minutestack/chamber-minutes/internal/adapter/dto/meeting"
	"github.com/minutestack/chamber-minutes/internal/usecase/meeting"
)

// Motions handles motion endpoints.
type Motions struct {
	service *meeting.Service
	logger  *zap.Logger
}

// NewMotions creates a new motions handler.
func NewMotions(service *meeting.Service, logger *zap.Logger) *Motions {
	return &Motions{service: service, logger: logger}
}

// Update handles PUT /meetings/:id/motions
func (h *Motions) Update(c echo.Context) error {
	var req meetingdto.UpdateMotionsRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}

	inputs := make([]meeting.MotionInput, 0, len(req.Motions))
	for _, m := range req.Motions {
		inputs = append(inputs, meeting.MotionInput{
			ID:           m.ID,
			Text:         m.Text,
			MoverName:    m.MoverName,
			SeconderName: m.SeconderName,
			VoteMethod:   m.VoteMethod,
			Outcome:      m.Outcome,
		})
	}

	motions, err := h.service.UpdateMotions(c.Request().Context(), c.Param("id"), inputs)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, motions)
}

// List handles GET /meetings/:id/motions
func (h *Motions) List(c echo.Context) error {
	motions, err := h.service.ListMotions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, motions)
}
