package model

import (
	"database/sql/driver"
	"time"
)

// WebhookStatus represents the processing status of a webhook event
type WebhookStatus string

const (
	WebhookStatusReceived   WebhookStatus = "received"
	WebhookStatusProcessing WebhookStatus = "processing"
	WebhookStatusProcessed  WebhookStatus = "processed"
	WebhookStatusFailed     WebhookStatus = "failed"
)

// Scan implements sql.Scanner interface
func (w *WebhookStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*w = WebhookStatus(v)
	case []byte:
		*w = WebhookStatus(v)
	default:
		*w = WebhookStatusReceived
	}
	return nil
}

// Value implements driver.Valuer interface
func (w WebhookStatus) Value() (driver.Value, error) {
	return string(w), nil
}

// WebhookEvent is the durable record of one inbound provider notification.
// The (provider, provider_event_id) pair is unique; a second delivery of the
// same pair must never re-run side effects.
type WebhookEvent struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Provider        string        `gorm:"not null;size:50;uniqueIndex:uniq_webhook_provider_event" json:"provider"`
	ProviderEventID string        `gorm:"not null;size:255;uniqueIndex:uniq_webhook_provider_event" json:"provider_event_id"`
	EventType       string        `gorm:"not null;size:100;index" json:"event_type"`
	Status          WebhookStatus `gorm:"type:webhook_status;default:'received';index" json:"status"`
	Payload         JSONB         `gorm:"type:jsonb;not null" json:"payload"`
	Attempts        int           `gorm:"default:0" json:"attempts"`
	LastError       *string       `json:"last_error,omitempty"`
	ProcessedAt     *time.Time    `json:"processed_at,omitempty"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (WebhookEvent) TableName() string {
	return "webhook_events"
}
