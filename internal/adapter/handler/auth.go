package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/minutestack/chamber-minutes/errors"
	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/pkg/jwt"
)

// Auth issues demo tokens. The endpoint only exists outside production;
// real deployments plug in an external identity provider.
type Auth struct {
	jwtManager  *jwt.Manager
	environment string
	logger      *zap.Logger
}

// NewAuth creates a new auth handler.
func NewAuth(jwtManager *jwt.Manager, environment string, logger *zap.Logger) *Auth {
	return &Auth{jwtManager: jwtManager, environment: environment, logger: logger}
}

type tokenRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IssueToken handles POST /auth/token
func (h *Auth) IssueToken(c echo.Context) error {
	if h.environment == "production" {
		return HandleError(h.logger, c, apperrors.ErrForbidden("Token issuance is disabled in production"))
	}

	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("Invalid JSON"))
	}
	if req.Email == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("email is required"))
	}

	role := entities.ParseRole(req.Role)
	token, err := h.jwtManager.GenerateToken(req.Email, string(role))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":      token,
		"role":       role,
		"expires_in": int(h.jwtManager.GetExpiry().Seconds()),
	})
}
