package repository

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vayva/payments-service/internal/domain/model"
	domainRepo "github.com/vayva/payments-service/internal/domain/repository"
)

type invoiceRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates the invoice repository
func NewInvoiceRepository(db *gorm.DB, logger *zap.Logger) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db, logger: logger}
}

// CreatePaid inserts a PAID invoice. The unique provider_event_id index makes
// a replayed event a no-op.
func (r *invoiceRepository) CreatePaid(ctx context.Context, invoice *model.Invoice) error {
	now := time.Now()
	invoice.Status = model.InvoiceStatusPaid
	if invoice.PaidAt == nil {
		invoice.PaidAt = &now
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(invoice).Error

	if err != nil {
		r.logger.Error("Failed to create invoice",
			zap.String("store_id", invoice.StoreID.String()),
			zap.String("number", invoice.Number),
			zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return nil
}
