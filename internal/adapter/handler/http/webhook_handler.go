package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vayva/payments-service/internal/infrastructure/paystack"
	"github.com/vayva/payments-service/internal/usecase"
)

// WebhookHandler terminates provider callbacks. It only moves bytes: the raw
// body goes to the ingestion pipeline untouched, because the signature is
// computed over the exact bytes the provider sent.
type WebhookHandler struct {
	ingestion *usecase.WebhookService
	logger    *zap.Logger
}

func NewWebhookHandler(ingestion *usecase.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		ingestion: ingestion,
		logger:    logger,
	}
}

// HandlePaystack processes one Paystack delivery.
// POST /webhooks/paystack
func (h *WebhookHandler) HandlePaystack(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.logger.Error("Error reading webhook body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "error reading request body"})
	}

	signature := c.Request().Header.Get(paystack.SignatureHeader)

	result := h.ingestion.Ingest(c.Request().Context(), body, signature)
	return c.JSON(result.Status, result)
}
