package model

import (
	"time"

	"github.com/google/uuid"
)

// Store is the tenant record. Only the fields the ingestion pipeline and
// reconciliation engine touch live here; the merchant CRUD service owns the
// rest.
type Store struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"size:120;not null" json:"name"`
	OwnerEmail *string   `gorm:"size:255" json:"owner_email,omitempty"`
	Currency   string    `gorm:"size:3;default:'NGN'" json:"currency"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// PurchasedTemplate is one template a store has bought. The composite unique
// index makes the append idempotent.
type PurchasedTemplate struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_store_template" json:"store_id"`
	TemplateID string    `gorm:"not null;size:64;uniqueIndex:uniq_store_template" json:"template_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (PurchasedTemplate) TableName() string {
	return "purchased_templates"
}
