package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vayva/payments-service/internal/domain/model"
	domainRepo "github.com/vayva/payments-service/internal/domain/repository"
)

type storeRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStoreRepository creates the store/tenant repository
func NewStoreRepository(db *gorm.DB, logger *zap.Logger) domainRepo.StoreRepository {
	return &storeRepository{db: db, logger: logger}
}

func (r *storeRepository) GetByID(ctx context.Context, storeID uuid.UUID) (*model.Store, error) {
	var store model.Store

	err := r.db.WithContext(ctx).
		Where("id = ?", storeID).
		First(&store).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get store",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	return &store, nil
}

// AddPurchasedTemplate appends to the store's set. The composite unique index
// turns a duplicate append into a no-op.
func (r *storeRepository) AddPurchasedTemplate(ctx context.Context, storeID uuid.UUID, templateID string) error {
	row := &model.PurchasedTemplate{
		StoreID:    storeID,
		TemplateID: templateID,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error

	if err != nil {
		r.logger.Error("Failed to add purchased template",
			zap.String("store_id", storeID.String()),
			zap.String("template_id", templateID),
			zap.Error(err))
		return fmt.Errorf("failed to add purchased template: %w", err)
	}

	return nil
}

func (r *storeRepository) ListPurchasedTemplates(ctx context.Context, storeID uuid.UUID) ([]string, error) {
	var templateIDs []string

	err := r.db.WithContext(ctx).
		Model(&model.PurchasedTemplate{}).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Pluck("template_id", &templateIDs).Error

	if err != nil {
		r.logger.Error("Failed to list purchased templates",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list purchased templates: %w", err)
	}

	return templateIDs, nil
}
