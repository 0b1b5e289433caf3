package config

import "time"

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	JWTSecret   string `yaml:"jwt_secret"`
	ClientURL   string `yaml:"client_url"`

	Paystack      PaystackConfig      `yaml:"paystack"`
	Delivery      DeliveryConfig      `yaml:"delivery"`
	Disputes      DisputesConfig      `yaml:"disputes"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Worker        WorkerConfig        `yaml:"worker"`
}

type PaystackConfig struct {
	WebhookSecret string `yaml:"webhook_secret"`
}

// DeliveryConfig points at the delivery service that fulfills auto-dispatch
// requests after a successful order charge.
type DeliveryConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type DisputesConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type NotificationsConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	From    string        `yaml:"from"`
}

// WorkerConfig sizes the in-process pool that runs fire-and-forget side
// effects off the webhook request path.
type WorkerConfig struct {
	Count       int           `yaml:"count"`
	QueueSize   int           `yaml:"queue_size"`
	TaskTimeout time.Duration `yaml:"task_timeout"`
}

// ReconciliationConfig tunes the reconciliation engine.
type ReconciliationConfig struct {
	// AmountTolerance is the |total - paid| difference, in currency units,
	// below which an order still counts as settled
	AmountTolerance float64 `yaml:"amount_tolerance"`
	MaxPageSize     int     `yaml:"max_page_size"`
	ExportMaxRows   int     `yaml:"export_max_rows"`
}
