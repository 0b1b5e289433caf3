package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vayva/payments-service/internal/domain/repository"
)

const defaultEventListLimit = 100

// WebhookEventsHandler serves the operator audit view over the event store.
type WebhookEventsHandler struct {
	events repository.WebhookRepository
	logger *zap.Logger
}

func NewWebhookEventsHandler(events repository.WebhookRepository, logger *zap.Logger) *WebhookEventsHandler {
	return &WebhookEventsHandler{
		events: events,
		logger: logger,
	}
}

// ListUnfinished returns events still awaiting a successful processing run.
// GET /api/v1/internal/webhook-events?limit=100
func (h *WebhookEventsHandler) ListUnfinished(c echo.Context) error {
	limit := defaultEventListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be a positive integer"})
		}
		limit = parsed
	}

	events, err := h.events.GetRetryable(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list webhook events", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list webhook events"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"events": events,
		"count":  len(events),
	})
}
