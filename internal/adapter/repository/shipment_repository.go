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

type shipmentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewShipmentRepository creates the shipment ledger repository
func NewShipmentRepository(db *gorm.DB, logger *zap.Logger) domainRepo.ShipmentRepository {
	return &shipmentRepository{db: db, logger: logger}
}

func (r *shipmentRepository) ListInRange(ctx context.Context, storeID uuid.UUID, from, to time.Time) ([]model.Shipment, error) {
	var shipments []model.Shipment

	err := r.db.WithContext(ctx).
		Where("store_id = ? AND created_at >= ? AND created_at <= ?", storeID, from, to).
		Find(&shipments).Error

	if err != nil {
		r.logger.Error("Failed to list shipments in range",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list shipments in range: %w", err)
	}

	return shipments, nil
}
