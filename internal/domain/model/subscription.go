package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus represents the billing state of a store's platform plan
type SubscriptionStatus string

const (
	SubscriptionStatusInactive  SubscriptionStatus = "INACTIVE"
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusPastDue   SubscriptionStatus = "PAST_DUE"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription tracks one store's platform subscription. A store has at most
// one row; charge.success/charge.failed events move it between states.
type Subscription struct {
	ID             int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID        uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"store_id"`
	PlanCode       *string            `gorm:"size:50" json:"plan_code,omitempty"`
	Status         SubscriptionStatus `gorm:"size:20;not null;default:'INACTIVE';index" json:"status"`
	LastPaymentAt  *time.Time         `json:"last_payment_at,omitempty"`
	LastPaymentRef *string            `gorm:"size:100" json:"last_payment_ref,omitempty"`
	CreatedAt      time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}
