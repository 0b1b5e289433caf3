package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vayva/payments-service/internal/domain/model"
	domainRepo "github.com/vayva/payments-service/internal/domain/repository"
)

type orderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewOrderRepository creates the order ledger repository
func NewOrderRepository(db *gorm.DB, logger *zap.Logger) domainRepo.OrderRepository {
	return &orderRepository{db: db, logger: logger}
}

func (r *orderRepository) GetByID(ctx context.Context, storeID uuid.UUID, orderID int64) (*model.Order, error) {
	var order model.Order

	err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, orderID).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get order",
			zap.String("store_id", storeID.String()),
			zap.Int64("order_id", orderID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &order, nil
}

// MarkPaid writes the PAID terminal state. Re-applying it on a retry produces
// the same row state, which is what makes at-least-once processing safe.
func (r *orderRepository) MarkPaid(ctx context.Context, storeID uuid.UUID, orderID int64) error {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("store_id = ? AND id = ?", storeID, orderID).
		Updates(map[string]interface{}{
			"status":         model.OrderStatusPaid,
			"payment_status": model.PaymentStateSuccess,
		})

	if result.Error != nil {
		r.logger.Error("Failed to mark order paid",
			zap.String("store_id", storeID.String()),
			zap.Int64("order_id", orderID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark order paid: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("order not found: %d", orderID)
	}

	return nil
}

func (r *orderRepository) ListInRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]model.Order, error) {
	var orders []model.Order

	err := r.db.WithContext(ctx).
		Where("store_id = ? AND created_at >= ? AND created_at <= ?", storeID, from, to).
		Where("status NOT IN (?, ?)", model.OrderStatusDraft, model.OrderStatusCancelled).
		Find(&orders).Error

	if err != nil {
		r.logger.Error("Failed to list orders in range",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list orders in range: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) ListPage(ctx context.Context, storeID uuid.UUID, limit int, beforeID int64) ([]model.Order, error) {
	var orders []model.Order

	query := r.db.WithContext(ctx).
		Preload("Transactions").
		Preload("Shipment").
		Preload("Customer").
		Where("store_id = ? AND status <> ?", storeID, model.OrderStatusDraft).
		Order("id DESC").
		Limit(limit)

	if beforeID > 0 {
		query = query.Where("id <= ?", beforeID)
	}

	if err := query.Find(&orders).Error; err != nil {
		r.logger.Error("Failed to list order page",
			zap.String("store_id", storeID.String()),
			zap.Int64("before_id", beforeID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list order page: %w", err)
	}

	return orders, nil
}
