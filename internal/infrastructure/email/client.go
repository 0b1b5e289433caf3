package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vayva/payments-service/internal/config"
)

const defaultTimeout = 10 * time.Second

// Client sends transactional email through the notifications service.
type Client struct {
	baseURL string
	from    string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a notifications service client
func NewClient(cfg config.NotificationsConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		from:    cfg.From,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type receiptRequest struct {
	To            string `json:"to"`
	From          string `json:"from,omitempty"`
	Template      string `json:"template"`
	Amount        string `json:"amount"`
	InvoiceNumber string `json:"invoice_number"`
	StoreName     string `json:"store_name,omitempty"`
}

// SendPaymentReceipt emails a payment receipt.
// POST /v1/emails
func (c *Client) SendPaymentReceipt(ctx context.Context, email string, amount decimal.Decimal, invoiceNumber, storeName string) error {
	jsonBody, err := json.Marshal(receiptRequest{
		To:            email,
		From:          c.from,
		Template:      "payment_receipt",
		Amount:        amount.StringFixed(2),
		InvoiceNumber: invoiceNumber,
		StoreName:     storeName,
	})
	if err != nil {
		return fmt.Errorf("marshal receipt request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/emails", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("create receipt request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("receipt request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("Notifications service rejected receipt",
			zap.String("invoice", invoiceNumber),
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("response", body))
		return fmt.Errorf("notifications service returned %d", resp.StatusCode)
	}

	c.logger.Info("Payment receipt sent",
		zap.String("invoice", invoiceNumber))
	return nil
}
