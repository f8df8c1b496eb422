package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/Anirban2958/clapgrow/internal/data_models"
	apperrors "github.com/Anirban2958/clapgrow/internal/errors"
	"github.com/Anirban2958/clapgrow/internal/http/validators"
	"github.com/Anirban2958/clapgrow/internal/services"
)

// HealthConfig is the configuration summary exposed by the health endpoint.
type HealthConfig struct {
	SMTPConfigured   bool
	DryRun           bool
	DefaultRecipient bool
}

type Handler struct {
	followUpService *services.FollowUpService
	automation      *services.AutomationService
	scheduler       *services.Scheduler
	health          HealthConfig
}

func NewHandler(
	followUpService *services.FollowUpService,
	automation *services.AutomationService,
	scheduler *services.Scheduler,
	health HealthConfig,
) *Handler {
	return &Handler{
		followUpService: followUpService,
		automation:      automation,
		scheduler:       scheduler,
		health:          health,
	}
}

func (h *Handler) CreateFollowUp(c echo.Context) error {
	var req dto.CreateFollowUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	in, err := validators.ParseCreate(&req)
	if err != nil {
		return httpError(err)
	}

	f, err := h.followUpService.Create(c.Request().Context(), in)
	if err != nil {
		return httpError(err)
	}

	c.Response().Header().Set("Location", "/api/followups/"+f.ID)
	return c.JSON(http.StatusCreated, echo.Map{"data": f})
}

func (h *Handler) GetFollowUp(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "follow-up id is required")
	}

	f, err := h.followUpService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"data": f})
}

func (h *Handler) ListFollowUps(c echo.Context) error {
	items, err := h.followUpService.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(items),
		"data":  items,
	})
}

func (h *Handler) UpdateFollowUp(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "follow-up id is required")
	}

	var req dto.UpdateFollowUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	in, err := validators.ParseUpdate(&req)
	if err != nil {
		return httpError(err)
	}

	f, err := h.followUpService.Update(c.Request().Context(), id, in)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": f})
}

func (h *Handler) DeleteFollowUp(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "follow-up id is required")
	}

	if err := h.followUpService.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "follow-up deleted"})
}

// TriggerCycle runs one automation cycle immediately. Operational testing
// entry point; the scheduler keeps running independently.
func (h *Handler) TriggerCycle(c echo.Context) error {
	stats, err := h.automation.RunCycle(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "stats": stats})
}

func (h *Handler) Health(c echo.Context) error {
	total, pending, err := h.followUpService.Counts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "error",
			"error":  "store unavailable",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "healthy",
		"data": echo.Map{
			"total_followups":   total,
			"pending_followups": pending,
		},
		"scheduler": echo.Map{
			"running": h.scheduler.Running(),
		},
		"config": echo.Map{
			"smtp_configured":       h.health.SMTPConfigured,
			"dry_run":               h.health.DryRun,
			"default_recipient_set": h.health.DefaultRecipient,
		},
	})
}

// httpError maps service errors onto HTTP responses: Exception values keep
// their message and status, anything else becomes an opaque 500.
func httpError(err error) error {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}
