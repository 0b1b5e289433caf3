package model

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentStatus represents the delivery outcome of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "PENDING"
	ShipmentStatusInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
	ShipmentStatusFailed    ShipmentStatus = "FAILED"
	ShipmentStatusReturned  ShipmentStatus = "RETURNED"
)

// Shipment is the delivery-success signal for reconciliation. It is written by
// the delivery collaborator and only read here.
type Shipment struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_shipments_store_created,priority:1" json:"store_id"`
	OrderID     int64          `gorm:"not null;index" json:"order_id"`
	Status      ShipmentStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index:idx_shipments_store_created,priority:2" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}
