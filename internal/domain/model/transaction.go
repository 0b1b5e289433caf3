package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionStatus represents the provider-side outcome of a transaction
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
	TransactionStatusPending TransactionStatus = "PENDING"
)

// TransactionType distinguishes money in from money out
type TransactionType string

const (
	TransactionTypeCharge TransactionType = "CHARGE"
	TransactionTypeRefund TransactionType = "REFUND"
)

// Transaction is one immutable ledger entry for money that moved. OrderID is
// nil for non-order purchases (platform subscription, template purchase).
// ProviderEventID carries the webhook event that created the row, so replaying
// the same event cannot create a second transaction.
type Transaction struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID         uuid.UUID         `gorm:"type:uuid;not null;index:idx_transactions_store_created,priority:1" json:"store_id"`
	OrderID         *int64            `gorm:"index" json:"order_id,omitempty"`
	Reference       string            `gorm:"size:100;index" json:"reference"`
	Provider        string            `gorm:"size:50;not null" json:"provider"`
	ProviderEventID *string           `gorm:"size:255;uniqueIndex" json:"provider_event_id,omitempty"`
	Amount          decimal.Decimal   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency        string            `gorm:"size:3;default:'NGN'" json:"currency"`
	Status          TransactionStatus `gorm:"size:20;not null" json:"status"`
	Type            TransactionType   `gorm:"size:20;not null" json:"type"`
	CreatedAt       time.Time         `gorm:"autoCreateTime;index:idx_transactions_store_created,priority:2" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}
