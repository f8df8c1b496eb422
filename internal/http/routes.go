package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "github.com/Anirban2958/clapgrow/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	api := e.Group("/api")
	api.GET("/followups", h.ListFollowUps)
	api.POST("/followups", h.CreateFollowUp)
	api.GET("/followups/:id", h.GetFollowUp)
	api.PATCH("/followups/:id", h.UpdateFollowUp)
	api.DELETE("/followups/:id", h.DeleteFollowUp)
	api.POST("/trigger-notifications", h.TriggerCycle)
	api.GET("/health", h.Health)
}
