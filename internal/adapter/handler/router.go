package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	insight        *InsightController
	storageHandler *StorageHandler
}

// NewRouter creates a new router with all handlers. storageHandler may be
// nil when object storage is not configured.
func NewRouter(cfg *config.Config, insight *InsightController, storageHandler *StorageHandler) *Router {
	return &Router{
		cfg:            cfg,
		insight:        insight,
		storageHandler: storageHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.POST("/ingest", rt.insight.Ingest)
	api.POST("/ingest/audio", rt.insight.IngestAudio)
	api.GET("/transcripts", rt.insight.List)
	api.GET("/transcripts/:id", rt.insight.Get)
	api.GET("/search", rt.insight.Search)
	api.GET("/analytics/topics", rt.insight.TopicAnalytics)
	api.GET("/analytics/participants", rt.insight.ParticipantAnalytics)

	if rt.storageHandler != nil {
		api.POST("/recordings", rt.storageHandler.UploadRecording)
	}
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
