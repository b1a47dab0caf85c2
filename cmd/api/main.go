package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/minutestack/chamber-minutes/internal/adapter/handler"
	"github.com/minutestack/chamber-minutes/internal/adapter/repository"
	"github.com/minutestack/chamber-minutes/internal/adapter/repository/memory"
	"github.com/minutestack/chamber-minutes/internal/domain/repositories"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/cache"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/database"
	httpmw "github.com/minutestack/chamber-minutes/internal/infrastructure/http/middleware"
	"github.com/minutestack/chamber-minutes/internal/infrastructure/storage"
	"github.com/minutestack/chamber-minutes/internal/usecase/approval"
	"github.com/minutestack/chamber-minutes/internal/usecase/export"
	"github.com/minutestack/chamber-minutes/internal/usecase/meeting"
	"github.com/minutestack/chamber-minutes/internal/usecase/minutes"
	"github.com/minutestack/chamber-minutes/internal/usecase/processing"
	"github.com/minutestack/chamber-minutes/internal/usecase/retention"
	"github.com/minutestack/chamber-minutes/internal/usecase/settings"
	"github.com/minutestack/chamber-minutes/internal/usecase/summary"
	pkgai "github.com/minutestack/chamber-minutes/pkg/ai"
	"github.com/minutestack/chamber-minutes/pkg/config"
	"github.com/minutestack/chamber-minutes/pkg/jwt"
	pkgvalidator "github.com/minutestack/chamber-minutes/pkg/validator"
)

// objectStorage is the storage surface the services share.
type objectStorage interface {
	export.ObjectStorage
	retention.ObjectStorage
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if cfg.Server.Environment != "production" {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true

	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "x-demo-email"},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Repositories: Postgres in the full stack, in-process stores for
	// the dependency-free demo mode.
	var (
		meetingRepo    repositories.MeetingRepository
		minutesRepo    repositories.MinutesRepository
		motionRepo     repositories.MotionRepository
		actionItemRepo repositories.ActionItemRepository
		audioRepo      repositories.AudioSourceRepository
		transcriptRepo repositories.TranscriptRepository
		auditRepo      repositories.AuditRepository
		settingsRepo   repositories.SettingsRepository
		summaryRepo    repositories.PublicSummaryRepository
	)

	var redisClient *redis.Client
	var cacheStore cache.Store
	var objects objectStorage

	if cfg.Database.InMemory {
		log.Println("📦 Using in-memory repositories (DB_IN_MEMORY=true)")
		meetingRepo = memory.NewMeetingRepository()
		minutesRepo = memory.NewMinutesRepository()
		motionRepo = memory.NewMotionRepository()
		actionItemRepo = memory.NewActionItemRepository()
		audioRepo = memory.NewAudioSourceRepository()
		transcriptRepo = memory.NewTranscriptRepository()
		auditRepo = memory.NewAuditRepository()
		settingsRepo = memory.NewSettingsRepository()
		summaryRepo = memory.NewPublicSummaryRepository()
		cacheStore = cache.NewLocalStore()
		objects = storage.NewMemoryObjectStore()
	} else {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		meetingRepo = repository.NewMeetingRepository(db)
		minutesRepo = repository.NewMinutesRepository(db)
		motionRepo = repository.NewMotionRepository(db)
		actionItemRepo = repository.NewActionItemRepository(db)
		audioRepo = repository.NewAudioSourceRepository(db)
		transcriptRepo = repository.NewTranscriptRepository(db)
		auditRepo = repository.NewAuditRepository(db)
		settingsRepo = repository.NewSettingsRepository(db)
		summaryRepo = repository.NewPublicSummaryRepository(db)

		log.Println("📦 Connecting to Redis...")
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		cacheStore = cache.NewRedisStore(redisClient)

		log.Println("📦 Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		objects = minioClient
	}

	// Services
	log.Println("⚙️  Initializing services...")
	settingsService := settings.NewService(settingsRepo, cacheStore)
	meetingService := meeting.NewService(meetingRepo, motionRepo, actionItemRepo, audioRepo, settingsService)
	draftService := minutes.NewDraftService(minutesRepo, meetingRepo, auditRepo)
	approvalService := approval.NewService(meetingRepo, motionRepo, actionItemRepo, auditRepo)
	exportService := export.NewService(meetingRepo, minutesRepo, auditRepo, objects)
	retentionService := retention.NewService(meetingRepo, audioRepo, auditRepo, settingsService, objects, redisClient)
	summaryService := summary.NewService(summaryRepo, meetingRepo, motionRepo, actionItemRepo)

	var pipeline processing.Pipeline
	if cfg.Transcription.Provider == "assemblyai" {
		log.Println("🎙️  Using AssemblyAI transcription pipeline")
		pipeline = processing.NewTranscriptionPipeline(pkgai.NewAssemblyAITranscriber(cfg.Transcription.APIKey))
	} else {
		log.Printf("🎙️  Using fixture pipeline from %s", cfg.Transcription.FixturesDir)
		pipeline = processing.NewFixturePipeline(cfg.Transcription.FixturesDir)
	}
	processingService := processing.NewService(
		meetingRepo, audioRepo, transcriptRepo, motionRepo, actionItemRepo,
		draftService, pipeline, logger,
	)

	// JWT and auth middleware
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	authMW := httpmw.NewAuthMiddleware(jwtManager, cfg.Server.Environment)
	e.Use(authMW.EchoAuth())

	// Handlers and routes
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		handler.NewAuth(jwtManager, cfg.Server.Environment, logger),
		handler.NewMeeting(meetingService, logger),
		handler.NewMinutes(draftService, exportService, logger),
		handler.NewMotions(meetingService, logger),
		handler.NewActionItems(meetingService, logger),
		handler.NewApproval(approvalService, logger),
		handler.NewProcessing(processingService, logger),
		handler.NewAudit(auditRepo, logger),
		handler.NewSettings(settingsService, logger),
		handler.NewRetention(retentionService, logger),
		handler.NewPublicSummary(summaryService, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
