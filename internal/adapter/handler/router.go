package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minutestack/chamber-minutes/internal/domain/entities"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/http/middleware"
	"github.com/minutestack/chamber-minutes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg         *config.Config
	auth        *Auth
	meetings    *Meeting
	minutes     *Minutes
	motions     *Motions
	actionItems *ActionItems
	approval    *Approval
	processing  *Processing
	audit       *Audit
	settings    *Settings
	retention   *Retention
	summary     *PublicSummary
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	auth *Auth,
	meetings *Meeting,
	minutes *Minutes,
	motions *Motions,
	actionItems *ActionItems,
	approval *Approval,
	processing *Processing,
	audit *Audit,
	settings *Settings,
	retention *Retention,
	summary *PublicSummary,
) *Router {
	return &Router{
		cfg:         cfg,
		auth:        auth,
		meetings:    meetings,
		minutes:     minutes,
		motions:     motions,
		actionItems: actionItems,
		approval:    approval,
		processing:  processing,
		audit:       audit,
		settings:    settings,
		retention:   retention,
		summary:     summary,
	}
}

// Setup configures all application routes. Paths sit at the root so
// existing clients keep working unchanged.
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	e.POST("/auth/token", rt.auth.IssueToken)

	read := middleware.RequireCapability(entities.CapabilityReadMinutes)
	write := middleware.RequireCapability(entities.CapabilityWriteMinutes)
	approve := middleware.RequireCapability(entities.CapabilityApproveMinutes)
	manage := middleware.RequireCapability(entities.CapabilityManageSettings)
	sweep := middleware.RequireCapability(entities.CapabilityRunRetention)

	meetings := e.Group("/meetings")
	meetings.POST("", rt.meetings.Create, write)
	meetings.GET("", rt.meetings.List, read)
	meetings.GET("/:id", rt.meetings.Get, read)
	meetings.PUT("/:id", rt.meetings.Update, write)

	meetings.POST("/:id/audio-sources", rt.meetings.RegisterAudio, write)
	meetings.GET("/:id/audio-sources", rt.meetings.ListAudio, read)

	meetings.POST("/:id/process", rt.processing.Start, write)
	meetings.GET("/:id/process-status", rt.processing.Status, read)

	meetings.GET("/:id/draft-minutes", rt.minutes.GetDraft, read)
	meetings.PUT("/:id/draft-minutes", rt.minutes.SaveDraft, write)
	meetings.GET("/:id/draft-minutes/versions", rt.minutes.ListVersions, read)
	meetings.GET("/:id/draft-minutes/versions/:version", rt.minutes.GetVersion, read)
	meetings.POST("/:id/draft-minutes/rollback", rt.minutes.Rollback, write)

	meetings.GET("/:id/motions", rt.motions.List, read)
	meetings.PUT("/:id/motions", rt.motions.Update, write)

	meetings.GET("/:id/action-items", rt.actionItems.List, read)
	meetings.PUT("/:id/action-items", rt.actionItems.Update, write)
	meetings.GET("/:id/action-items/export/csv", rt.actionItems.ExportCSV, read)

	meetings.GET("/:id/approval-status", rt.approval.Status, read)
	meetings.POST("/:id/approve", rt.approval.Approve, approve)

	// The published recap is the one meeting document guests may read.
	meetings.GET("/:id/public-summary", rt.summary.Get)
	meetings.PUT("/:id/public-summary", rt.summary.Update, write)
	meetings.POST("/:id/public-summary/generate", rt.summary.Generate, write)
	meetings.POST("/:id/public-summary/publish", rt.summary.Publish, write)

	meetings.GET("/:id/audit-log", rt.audit.List, read)

	meetings.POST("/:id/export", rt.minutes.Export, write)

	e.GET("/settings", rt.settings.Get, read)
	e.PUT("/settings", rt.settings.Update, manage)

	e.POST("/retention/sweep", rt.retention.Sweep, sweep)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":          true,
		"environment": rt.cfg.Server.Environment,
	})
}
