package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vayva/payments-service/internal/domain/model"
	domainRepo "github.com/vayva/payments-service/internal/domain/repository"
)

type transactionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTransactionRepository creates the transaction ledger repository
func NewTransactionRepository(db *gorm.DB, logger *zap.Logger) domainRepo.TransactionRepository {
	return &transactionRepository{db: db, logger: logger}
}

// CreateFromEvent inserts the transaction. The unique provider_event_id index
// plus ON CONFLICT DO NOTHING makes a replayed event a no-op instead of a
// double charge.
func (r *transactionRepository) CreateFromEvent(ctx context.Context, tx *model.Transaction) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(tx).Error

	if err != nil {
		r.logger.Error("Failed to create transaction",
			zap.String("store_id", tx.StoreID.String()),
			zap.String("reference", tx.Reference),
			zap.Error(err))
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

func (r *transactionRepository) ListSucceededCharges(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]model.Transaction, error) {
	var txs []model.Transaction

	err := r.db.WithContext(ctx).
		Where("store_id = ? AND created_at >= ? AND created_at <= ?", storeID, from, to).
		Where("status = ? AND type = ?", model.TransactionStatusSuccess, model.TransactionTypeCharge).
		Find(&txs).Error

	if err != nil {
		r.logger.Error("Failed to list succeeded charges",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list succeeded charges: %w", err)
	}

	return txs, nil
}
