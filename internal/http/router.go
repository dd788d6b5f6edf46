package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lottery-secretary/internal/service"
)

// NewRouter wires middlewares and routes.
func NewRouter(
	logger *zap.Logger,
	webhookH *WebhookHandler,
	healthH *HealthHandler,
	adminH *AdminHandler,
	tokens *service.AdminTokenService,
) *gin.Engine {
	r := gin.New()
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())

	r.GET("/", healthH.Root)
	r.GET("/healthz", healthH.Healthz)

	r.POST("/telegram-bot", webhookH.TelegramWebhook)

	admin := r.Group("/admin", AdminAuthMiddleware(tokens))
	admin.GET("/statistics", adminH.ListStatistics)
	admin.GET("/statistics/:month", adminH.GetStatistic)
	admin.POST("/pricing/invalidate", adminH.InvalidatePricing)

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
