package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"suraksha/internal/config"
	"suraksha/internal/handlers"
	"suraksha/internal/middleware"
	"suraksha/internal/utils"
	"suraksha/pkg/logger"
	"suraksha/pkg/websocket"
)

// Handlers collects everything SetupRouter wires.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Report *handlers.ReportHandler
	SOS    *handlers.SOSHandler
	Query  *handlers.QueryHandler
	Chat   *handlers.ChatHandler
	WS     *websocket.Handler
}

// SetupRouter builds the gin engine with all middleware and routes.
// Application routes live under /api; /health and /ws sit at the root.
func SetupRouter(cfg *config.Config, log *logger.Logger, h *Handlers) *gin.Engine {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.LoggingMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    utils.AppName,
			"version": utils.AppVersion,
		})
	})

	router.GET(cfg.WebSocket.Path, middleware.AuthRequired(cfg.Security.JWTSecret), h.WS.HandleWebSocket)

	api := router.Group("/api")
	{
		SetupAuthRoutes(api, h.Auth)
		SetupUserRoutes(api, h.Auth)
		SetupReportRoutes(api, h.Report, cfg.Security.JWTSecret)
		SetupSOSRoutes(api, h.SOS, cfg.Security.JWTSecret)
		SetupQueryRoutes(api, h.Query, cfg.Security.JWTSecret)
		SetupChatRoutes(api, h.Chat)
	}

	return router
}
