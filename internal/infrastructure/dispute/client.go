package dispute

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vayva/payments-service/internal/config"
)

const defaultTimeout = 10 * time.Second

// Client forwards provider dispute events to the dispute-handling service.
// The raw event body is passed through untouched so the downstream service
// sees exactly what the provider sent.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a dispute service client
func NewClient(cfg config.DisputesConfig, logger *zap.Logger) *Client {
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

// HandleWebhookEvent forwards one dispute event.
// POST /v1/disputes/events
func (c *Client) HandleWebhookEvent(ctx context.Context, eventType string, payload []byte) error {
	url := fmt.Sprintf("%s/v1/disputes/events", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("create dispute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", eventType)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("dispute forward failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Dispute service rejected event",
			zap.String("event_type", eventType),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response", body))
		return fmt.Errorf("dispute service returned %d", resp.StatusCode)
	}

	c.logger.Info("Dispute event forwarded", zap.String("event_type", eventType))
	return nil
}
