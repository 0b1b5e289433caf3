package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of a platform invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDING"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusVoid    InvoiceStatus = "VOID"
)

// Invoice records a non-order platform charge (top-up, billing). Created by
// the ingestion pipeline for generic charge events, guarded by the originating
// webhook event id.
type Invoice struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"store_id"`
	Number          string          `gorm:"uniqueIndex;not null;size:40" json:"number"`
	Provider        string          `gorm:"size:50;not null" json:"provider"`
	ProviderEventID *string         `gorm:"size:255;uniqueIndex" json:"provider_event_id,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency        string          `gorm:"size:3;default:'NGN'" json:"currency"`
	Status          InvoiceStatus   `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Description     *string         `gorm:"size:255" json:"description,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}
