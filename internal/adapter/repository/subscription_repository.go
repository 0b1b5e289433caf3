package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vayva/payments-service/internal/domain/model"
	domainRepo "github.com/vayva/payments-service/internal/domain/repository"
)

type subscriptionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewSubscriptionRepository creates the store subscription repository
func NewSubscriptionRepository(db *gorm.DB, logger *zap.Logger) domainRepo.SubscriptionRepository {
	return &subscriptionRepository{db: db, logger: logger}
}

// MarkActive upserts the store's single subscription row to ACTIVE. The same
// charge applied twice lands on the same terminal state.
func (r *subscriptionRepository) MarkActive(ctx context.Context, storeID uuid.UUID, planCode, paymentRef string, paidAt time.Time) error {
	sub := &model.Subscription{
		StoreID:        storeID,
		Status:         model.SubscriptionStatusActive,
		LastPaymentAt:  &paidAt,
		LastPaymentRef: &paymentRef,
	}
	if planCode != "" {
		sub.PlanCode = &planCode
	}

	assignments := map[string]interface{}{
		"status":           model.SubscriptionStatusActive,
		"last_payment_at":  &paidAt,
		"last_payment_ref": &paymentRef,
	}
	if planCode != "" {
		assignments["plan_code"] = planCode
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(sub).Error

	if err != nil {
		r.logger.Error("Failed to mark subscription active",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to mark subscription active: %w", err)
	}

	return nil
}

func (r *subscriptionRepository) MarkPastDue(ctx context.Context, storeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("store_id = ?", storeID).
		Update("status", model.SubscriptionStatusPastDue)

	if result.Error != nil {
		r.logger.Error("Failed to mark subscription past due",
			zap.String("store_id", storeID.String()),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark subscription past due: %w", result.Error)
	}

	// No row yet means the store never subscribed; nothing to flag
	return nil
}

func (r *subscriptionRepository) GetByStore(ctx context.Context, storeID uuid.UUID) (*model.Subscription, error) {
	var sub model.Subscription

	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		First(&sub).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get subscription",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &sub, nil
}
