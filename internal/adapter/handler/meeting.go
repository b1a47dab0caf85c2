package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutestack/chamber-minutes/errors"
	meetingdto "github.com/minutestack/chamber-minutes/internal/adapter/dto/meeting"
	"github.com/minutestack/chamber-minutes/internal/usecase/meeting"
)

// Meeting handles meeting lifecycle endpoints.
type Meeting struct {
	service *meeting.Service
	logger  *zap.Logger
}

// NewMeeting creates a new meeting handler.
func NewMeeting(service *meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{service: service, logger: logger}
}

// Create handles POST /meetings
func (h *Meeting) Create(c echo.Context) error {
	var req meetingdto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}

	created, err := h.service.Create(c.Request().Context(), meeting.CreateInput{
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Location:      req.Location,
		ChairName:     req.ChairName,
		SecretaryName: req.SecretaryName,
		Tags:          req.Tags,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("meeting.created",
		zap.String("meeting_id", created.ID),
		zap.String("location", created.Location),
	)
	return c.JSON(http.StatusCreated, created)
}

// List handles GET /meetings
func (h *Meeting) List(c echo.Context) error {
	meetings, err := h.service.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, meetings)
}

// Get handles GET /meetings/:id
func (h *Meeting) Get(c echo.Context) error {
	found, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, found)
}

// Update handles PUT /meetings/:id
func (h *Meeting) Update(c echo.Context) error {
	var req meetingdto.UpdateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), meeting.UpdateInput{
		Date:              req.Date,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		AdjournmentTime:   req.AdjournmentTime,
		Location:          req.Location,
		ChairName:         req.ChairName,
		SecretaryName:     req.SecretaryName,
		Tags:              req.Tags,
		NoMotions:         req.NoMotions,
		NoActionItems:     req.NoActionItems,
		NoAdjournmentTime: req.NoAdjournmentTime,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

// RegisterAudio handles POST /meetings/:id/audio-sources
func (h *Meeting) RegisterAudio(c echo.Context) error {
	var req meetingdto.RegisterAudioRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}

	source, err := h.service.RegisterAudio(c.Request().Context(), c.Param("id"), meeting.RegisterAudioInput{
		Type:            req.Type,
		ParticipantID:   req.ParticipantID,
		FileURI:         req.FileURI,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.logger.Info("audio.registered",
		zap.String("meeting_id", c.Param("id")),
		zap.String("audio_id", source.ID),
	)
	return c.JSON(http.StatusCreated, source)
}

// ListAudio handles GET /meetings/:id/audio-sources
func (h *Meeting) ListAudio(c echo.Context) error {
	sources, err := h.service.ListAudio(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, sources)
}
