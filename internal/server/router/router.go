package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aruizdev/tablero/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(occupancy *handlers.OccupancyHandler, assistant *handlers.AssistantHandler, dashboard *handlers.DashboardHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/occupancy/metrics", occupancy.Metrics)
		api.GET("/occupancy/alerts", occupancy.Alerts)
		api.GET("/occupancy/headline", occupancy.Headline)
		api.POST("/occupancy/export", occupancy.Export)
		api.POST("/insights/occupancy", occupancy.Insight)

		api.GET("/notifications", dashboard.Notifications)
		api.GET("/treasury/summary", dashboard.TreasurySummary)
		api.POST("/treasury/sync", dashboard.TreasurySync)

		api.GET("/assistant/webhook", assistant.Verify)
		api.POST("/assistant/webhook", assistant.Receive)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
