package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vayva/payments-service/internal/domain/model"
)

// OrderRepository reads and mutates the order ledger.
type OrderRepository interface {
	// GetByID retrieves one order scoped to a store, nil when absent
	GetByID(ctx context.Context, storeID uuid.UUID, orderID int64) (*model.Order, error)

	// MarkPaid moves an order to PAID with payment SUCCESS. The write is
	// idempotent: applying it twice yields the same terminal state.
	MarkPaid(ctx context.Context, storeID uuid.UUID, orderID int64) error

	// ListInRange returns non-draft, non-cancelled orders created in the range
	// for summary metrics
	ListInRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]model.Order, error)

	// ListPage returns up to limit non-draft orders with transactions, shipment
	// and customer preloaded, newest first. beforeID bounds the page for cursor
	// pagination; pass 0 for the first page.
	ListPage(ctx context.Context, storeID uuid.UUID, limit int, beforeID int64) ([]model.Order, error)
}
