package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skillport_backend/internal/handlers"
	"skillport_backend/internal/middleware"
)

// Register wires the full HTTP surface onto the engine.
func Register(engine *gin.Engine, h *handlers.AppHandlers, allowedOrigins []string) {
	engine.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(allowedOrigins),
		gin.Recovery(),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	h.Auth.RegisterRoutes(api)
	h.User.RegisterRoutes(api)
	h.Course.RegisterRoutes(api)
	h.Job.RegisterRoutes(api)
	h.Application.RegisterRoutes(api)
	h.Message.RegisterRoutes(api)
	h.Notification.RegisterRoutes(api)
	h.Payment.RegisterRoutes(api)
	h.Moderation.RegisterRoutes(api)
	h.Upload.RegisterRoutes(api)
}
