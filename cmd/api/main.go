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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"

	_ "github.com/johnquangdev/meeting-insights/docs"
	"github.com/johnquangdev/meeting-insights/internal/adapter/handler"
	"github.com/johnquangdev/meeting-insights/internal/adapter/repository"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
	insightuse "github.com/johnquangdev/meeting-insights/internal/usecase/insight"
	pkgai "github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// @title           Meeting Insights API
// @version         1.0
// @description     Ingests meeting transcripts, derives structured insight via LLM extraction and embeddings, and serves semantic search and analytics

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /api

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize the query-embedding cache: Redis when enabled, otherwise
	// an in-memory store
	var embeddingCache insightuse.EmbeddingCache
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		embeddingCache = redisStore
	} else {
		log.Println("📦 Redis disabled, using in-memory embedding cache")
		embeddingCache = cache.NewMemoryStore()
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	transcriptRepo := repository.NewTranscriptRepository(db)

	// Initialize AI clients
	log.Println("🤖 Initializing AI clients...")
	openaiClient := pkgai.NewOpenAIClient(&cfg.OpenAI)

	// Audio transcription is optional; a nil transcriber disables the
	// audio ingestion endpoint at the service level
	var transcriber insightuse.Transcriber
	if asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly); asmClient != nil {
		transcriber = asmClient
		log.Println("🎙️  AssemblyAI transcription enabled")
	} else {
		log.Println("⚠️  ASSEMBLYAI_API_KEY not set, audio ingestion disabled")
	}

	// Initialize insight service
	log.Println("✨ Initializing insight service...")
	insightService := insightuse.NewService(transcriptRepo, openaiClient, openaiClient, transcriber, embeddingCache, logger)
	insightController := handler.NewInsightController(insightService, logger)

	// Initialize storage handler for recording uploads (optional)
	var storageHandler *handler.StorageHandler
	if transcriber != nil {
		log.Println("🗄️  Initializing recording storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Printf("⚠️  Recording storage unavailable: %v", err)
		} else {
			storageHandler = handler.NewStorageHandler(minioClient, logger)
		}
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, insightController, storageHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

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
