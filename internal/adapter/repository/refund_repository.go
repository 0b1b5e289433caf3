package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vayva/payments-service/internal/domain/model"
	domainRepo "github.com/vayva/payments-service/internal/domain/repository"
)

type refundRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRefundRepository creates the refund ledger repository
func NewRefundRepository(db *gorm.DB, logger *zap.Logger) domainRepo.RefundRepository {
	return &refundRepository{db: db, logger: logger}
}

func (r *refundRepository) ListCompletedInRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]model.Refund, error) {
	var refunds []model.Refund

	err := r.db.WithContext(ctx).
		Where("store_id = ? AND created_at >= ? AND created_at <= ?", storeID, from, to).
		Where("status = ?", model.RefundStatusCompleted).
		Find(&refunds).Error

	if err != nil {
		r.logger.Error("Failed to list completed refunds",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list completed refunds: %w", err)
	}

	return refunds, nil
}
