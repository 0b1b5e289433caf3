package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vayva/payments-service/internal/config"
)

const defaultTimeout = 10 * time.Second

// Client calls the delivery service to dispatch a courier for a paid order.
// The delivery service deduplicates on the idempotency key, so replays of the
// same charge never book a second courier.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a delivery service client
func NewClient(cfg config.DeliveryConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type dispatchRequest struct {
	OrderID int64  `json:"order_id"`
	Source  string `json:"source"`
}

// AutoDispatch requests courier dispatch for an order.
// POST /v1/dispatches
func (c *Client) AutoDispatch(ctx context.Context, orderID int64, source, idempotencyKey string) error {
	jsonBody, err := json.Marshal(dispatchRequest{OrderID: orderID, Source: source})
	if err != nil {
		return fmt.Errorf("marshal dispatch request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/dispatches", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("create dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Delivery service rejected dispatch",
			zap.Int64("order_id", orderID),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response", body))
		return fmt.Errorf("delivery service returned %d", resp.StatusCode)
	}

	c.logger.Info("Delivery dispatch requested",
		zap.Int64("order_id", orderID),
		zap.String("idempotency_key", idempotencyKey))
	return nil
}
