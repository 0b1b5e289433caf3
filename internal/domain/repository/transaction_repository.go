package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vayva/payments-service/internal/domain/model"
)

// TransactionRepository appends to and reads the immutable transaction ledger.
type TransactionRepository interface {
	// CreateFromEvent inserts a transaction guarded by its provider event id:
	// replaying the same webhook event never creates a second row.
	CreateFromEvent(ctx context.Context, tx *model.Transaction) error

	// ListSucceededCharges returns SUCCESS CHARGE transactions in the range
	ListSucceededCharges(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]model.Transaction, error)
}
