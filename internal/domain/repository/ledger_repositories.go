package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vayva/payments-service/internal/domain/model"
)

// RefundRepository reads the refund ledger.
type RefundRepository interface {
	// ListCompletedInRange returns COMPLETED refunds created in the range
	ListCompletedInRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]model.Refund, error)
}

// ShipmentRepository reads the shipment ledger.
type ShipmentRepository interface {
	// ListInRange returns shipments created in the range
	ListInRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]model.Shipment, error)
}

// InvoiceRepository writes platform invoices for non-order charges.
type InvoiceRepository interface {
	// CreatePaid inserts a PAID invoice guarded by its provider event id
	CreatePaid(ctx context.Context, invoice *model.Invoice) error
}

// SubscriptionRepository mutates a store's platform subscription state.
type SubscriptionRepository interface {
	// MarkActive upserts the store's subscription to ACTIVE and records the
	// last successful payment
	MarkActive(ctx context.Context, storeID uuid.UUID, planCode, paymentRef string, paidAt time.Time) error

	// MarkPastDue moves the store's subscription to PAST_DUE
	MarkPastDue(ctx context.Context, storeID uuid.UUID) error

	// GetByStore retrieves the store's subscription, nil when absent
	GetByStore(ctx context.Context, storeID uuid.UUID) (*model.Subscription, error)
}

// StoreRepository reads tenant records and the purchased-templates set.
type StoreRepository interface {
	// GetByID retrieves one store, nil when absent
	GetByID(ctx context.Context, storeID uuid.UUID) (*model.Store, error)

	// AddPurchasedTemplate appends a template id to the store's set; appending
	// an already-owned template is a no-op
	AddPurchasedTemplate(ctx context.Context, storeID uuid.UUID, templateID string) error

	// ListPurchasedTemplates returns the store's owned template ids
	ListPurchasedTemplates(ctx context.Context, storeID uuid.UUID) ([]string, error)
}
