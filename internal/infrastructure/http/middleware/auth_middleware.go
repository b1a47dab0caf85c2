package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/pkg/jwt"
)

// ActorContextKey is the echo context key for the resolved caller.
const ActorContextKey = "actor"

// AuthMiddleware resolves the caller identity for every request.
type AuthMiddleware struct {
	jwtManager  *jwt.Manager
	environment string
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *jwt.Manager, environment string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:  jwtManager,
		environment: environment,
	}
}

// EchoAuth returns an Echo middleware that resolves the caller. A valid
// JWT carries its own role. Outside production a bare bearer token acts
// as a demo secretary, with x-demo-email naming the account. Requests
// with no Authorization header degrade to guest instead of failing so
// read endpoints can decide for themselves.
func (m *AuthMiddleware) EchoAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := entities.Actor{Email: "anonymous", Role: entities.RoleGuest}

			token := extractToken(c.Request())
			if token != "" {
				if claims, err := m.jwtManager.ValidateToken(token); err == nil {
					actor = entities.Actor{
						Email: claims.Email,
						Role:  entities.ParseRole(claims.Role),
					}
				} else if m.environment != "production" {
					email := c.Request().Header.Get("x-demo-email")
					if email == "" {
						email = "secretary@demo.local"
					}
					actor = entities.Actor{Email: email, Role: entities.RoleSecretary}
				}
			}

			c.Set(ActorContextKey, actor)
			return next(c)
		}
	}
}

// RequireCapability rejects callers whose role lacks the capability.
func RequireCapability(capability entities.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := GetActor(c)
			if !actor.Role.Can(capability) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "Forbidden",
				})
			}
			return next(c)
		}
	}
}

// GetActor retrieves the resolved caller from the echo context.
func GetActor(c echo.Context) entities.Actor {
	if actor, ok := c.Get(ActorContextKey).(entities.Actor); ok {
		return actor
	}
	return entities.Actor{Email: "anonymous", Role: entities.RoleGuest}
}

func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
