package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Atharva080324/TrueScan/internal/config"
	"github.com/Atharva080324/TrueScan/internal/httpserver"
	"github.com/Atharva080324/TrueScan/internal/logger"
	"github.com/Atharva080324/TrueScan/internal/telemetry"
	"github.com/Atharva080324/TrueScan/web"
)

// ServerDeps bundles everything the HTTP server exposes besides the
// generation handlers.
type ServerDeps struct {
	Handler *Handler

	// Telemetry serves the /metrics endpoint. Optional.
	Telemetry *telemetry.Provider

	// Services maps dependency names to readiness flags for /health.
	Services map[string]func() bool

	// Checks holds live health probes (e.g. a Redis ping) for /health.
	Checks map[string]httpserver.HealthChecker
}

// NewServer creates the TrueScan HTTP server with all routes registered.
func NewServer(cfg *config.Config, deps ServerDeps, log logger.Logger) *httpserver.Server {
	serverCfg := &httpserver.Config{
		Port:           cfg.Service.Port,
		Debug:          cfg.Service.Debug,
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		CORS: httpserver.CORSConfig{
			Enabled:          cfg.CORS.Enabled,
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
		},
	}

	server := httpserver.NewServer(serverCfg, log, func(router *gin.Engine) {
		SetupRoutes(router, deps)
	})

	httpserver.RegisterHealthRoutes(server.Router(), httpserver.HealthOptions{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Services:       deps.Services,
		Checks:         deps.Checks,
	})

	return server
}

// SetupRoutes registers the service routes on a Gin router.
// Health routes are registered separately via httpserver.RegisterHealthRoutes.
func SetupRoutes(router *gin.Engine, deps ServerDeps) {
	h := deps.Handler

	router.GET("/", h.Root)
	router.POST("/generate-news-audio", h.Generate)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/clips", h.ListClips)
		v1.GET("/clips/:id", h.GetClip)
	}

	if deps.Telemetry != nil {
		router.GET("/metrics", gin.WrapH(deps.Telemetry.Handler()))
	}

	// Browser UI, embedded in the binary.
	router.StaticFS("/ui", http.FS(web.Static()))
}
