package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RefundStatus represents the lifecycle of a refund request
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "PENDING"
	RefundStatusCompleted RefundStatus = "COMPLETED"
	RefundStatusFailed    RefundStatus = "FAILED"
)

// Refund records money returned to a customer. Only COMPLETED refunds count
// toward reconciliation totals.
type Refund struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_refunds_store_created,priority:1" json:"store_id"`
	OrderID   *int64          `gorm:"index" json:"order_id,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Status    RefundStatus    `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	Reason    *string         `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt time.Time       `gorm:"autoCreateTime;index:idx_refunds_store_created,priority:2" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Refund) TableName() string {
	return "refunds"
}
