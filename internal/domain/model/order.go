package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of a storefront order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusFulfilled OrderStatus = "FULFILLED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentState represents the payment status of an order
type PaymentState string

const (
	PaymentStateInitiated PaymentState = "INITIATED"
	PaymentStateSuccess   PaymentState = "SUCCESS"
	PaymentStateFailed    PaymentState = "FAILED"
	PaymentStateRefunded  PaymentState = "REFUNDED"
)

// FulfillmentState represents the fulfillment status of an order
type FulfillmentState string

const (
	FulfillmentStateUnfulfilled FulfillmentState = "UNFULFILLED"
	FulfillmentStateInTransit   FulfillmentState = "IN_TRANSIT"
	FulfillmentStateDelivered   FulfillmentState = "DELIVERED"
	FulfillmentStateReturned    FulfillmentState = "RETURNED"
)

// Payment method codes used on orders. COD settles offline, so several
// reconciliation rules exempt it.
const (
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodCOD      = "COD"
)

// Order represents a storefront order for one store
type Order struct {
	ID                int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID           uuid.UUID        `gorm:"type:uuid;not null;index:idx_orders_store_created,priority:1" json:"store_id"`
	RefCode           string           `gorm:"uniqueIndex;not null;size:40" json:"ref_code"`
	CustomerID        *int64           `gorm:"index" json:"customer_id,omitempty"`
	Status            OrderStatus      `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	PaymentStatus     PaymentState     `gorm:"size:20;not null;default:'INITIATED'" json:"payment_status"`
	FulfillmentStatus FulfillmentState `gorm:"size:20;not null;default:'UNFULFILLED'" json:"fulfillment_status"`
	PaymentMethod     string           `gorm:"size:20;not null" json:"payment_method"`
	Total             decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"total"`
	Currency          string           `gorm:"size:3;default:'NGN'" json:"currency"`
	CreatedAt         time.Time        `gorm:"autoCreateTime;index:idx_orders_store_created,priority:2" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Customer     *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:OrderID" json:"transactions,omitempty"`
	Shipment     *Shipment     `gorm:"foreignKey:OrderID" json:"shipment,omitempty"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// Customer is the optional buyer reference on an order
type Customer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;index" json:"store_id"`
	FirstName string    `gorm:"size:100" json:"first_name"`
	LastName  string    `gorm:"size:100" json:"last_name"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// DisplayName resolves a human-readable customer name for reports.
func (c *Customer) DisplayName() string {
	if c == nil {
		return "Guest"
	}
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	if name == "" {
		if c.Phone != "" {
			return c.Phone
		}
		return "Unknown"
	}
	return name
}
