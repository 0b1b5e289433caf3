package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vayva/payments-service/internal/domain/model"
	domainRepo "github.com/vayva/payments-service/internal/domain/repository"
)

// DefaultStaleClaimAfter is how long a processing claim may sit before a retry
// delivery is allowed to take it over. Covers crashes mid-processing.
const DefaultStaleClaimAfter = 5 * time.Minute

type webhookRepository struct {
	db         *gorm.DB
	logger     *zap.Logger
	staleAfter time.Duration
}

// NewWebhookRepository creates the event store repository
func NewWebhookRepository(db *gorm.DB, logger *zap.Logger) domainRepo.WebhookRepository {
	return &webhookRepository{
		db:         db,
		logger:     logger,
		staleAfter: DefaultStaleClaimAfter,
	}
}

// Claim upserts the event row and transitions it to processing with a single
// conditional update. Two concurrent deliveries can both pass the insert (one
// row wins, the other no-ops on conflict), but only one update can match the
// status predicate, so only one caller ever observes ClaimAcquired.
func (r *webhookRepository) Claim(ctx context.Context, provider, eventID, eventType string, payload json.RawMessage) (domainRepo.ClaimOutcome, error) {
	var payloadData map[string]interface{}
	if err := json.Unmarshal(payload, &payloadData); err != nil {
		r.logger.Warn("Failed to parse event payload for storage",
			zap.String("provider", provider),
			zap.String("event_id", eventID),
			zap.Error(err))
	}

	event := &model.WebhookEvent{
		Provider:        provider,
		ProviderEventID: eventID,
		EventType:       eventType,
		Status:          model.WebhookStatusReceived,
		Payload:         model.JSONB(payloadData),
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event).Error; err != nil {
		r.logger.Error("Failed to save webhook event",
			zap.String("provider", provider),
			zap.String("event_id", eventID),
			zap.String("event_type", eventType),
			zap.Error(err))
		return domainRepo.ClaimInFlight, fmt.Errorf("failed to save webhook event: %w", err)
	}

	staleBefore := time.Now().Add(-r.staleAfter)
	result := r.db.WithContext(ctx).
		Model(&model.WebhookEvent{}).
		Where("provider = ? AND provider_event_id = ?", provider, eventID).
		Where("status IN (?, ?) OR (status = ? AND updated_at < ?)",
			model.WebhookStatusReceived,
			model.WebhookStatusFailed,
			model.WebhookStatusProcessing,
			staleBefore).
		Update("status", model.WebhookStatusProcessing)

	if result.Error != nil {
		r.logger.Error("Failed to claim webhook event",
			zap.String("provider", provider),
			zap.String("event_id", eventID),
			zap.Error(result.Error))
		return domainRepo.ClaimInFlight, fmt.Errorf("failed to claim webhook event: %w", result.Error)
	}

	if result.RowsAffected == 1 {
		return domainRepo.ClaimAcquired, nil
	}

	// Lost the claim: decide between a finished duplicate and a concurrent one
	existing, err := r.GetEvent(ctx, provider, eventID)
	if err != nil {
		return domainRepo.ClaimInFlight, err
	}
	if existing != nil && existing.Status == model.WebhookStatusProcessed {
		return domainRepo.ClaimAlreadyProcessed, nil
	}
	return domainRepo.ClaimInFlight, nil
}

// GetEvent retrieves a webhook event, nil when absent
func (r *webhookRepository) GetEvent(ctx context.Context, provider, eventID string) (*model.WebhookEvent, error) {
	var event model.WebhookEvent

	err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_event_id = ?", provider, eventID).
		First(&event).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get webhook event",
			zap.String("provider", provider),
			zap.String("event_id", eventID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get webhook event: %w", err)
	}

	return &event, nil
}

// MarkProcessed finalizes a claimed event as successfully processed
func (r *webhookRepository) MarkProcessed(ctx context.Context, provider, eventID string) error {
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&model.WebhookEvent{}).
		Where("provider = ? AND provider_event_id = ?", provider, eventID).
		Updates(map[string]interface{}{
			"status":       model.WebhookStatusProcessed,
			"processed_at": &now,
		})

	if result.Error != nil {
		r.logger.Error("Failed to mark webhook as processed",
			zap.String("provider", provider),
			zap.String("event_id", eventID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark webhook as processed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("webhook event not found: %s/%s", provider, eventID)
	}

	return nil
}

// MarkFailed records the failure so the provider retry re-enters the gate
func (r *webhookRepository) MarkFailed(ctx context.Context, provider, eventID string, cause error) error {
	errorMsg := cause.Error()

	result := r.db.WithContext(ctx).
		Model(&model.WebhookEvent{}).
		Where("provider = ? AND provider_event_id = ?", provider, eventID).
		Updates(map[string]interface{}{
			"status":     model.WebhookStatusFailed,
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": &errorMsg,
		})

	if result.Error != nil {
		r.logger.Error("Failed to mark webhook as failed",
			zap.String("provider", provider),
			zap.String("event_id", eventID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to mark webhook as failed: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("webhook event not found: %s/%s", provider, eventID)
	}

	return nil
}

// GetRetryable lists events awaiting or needing another processing attempt
func (r *webhookRepository) GetRetryable(ctx context.Context, limit int) ([]*model.WebhookEvent, error) {
	var events []*model.WebhookEvent

	query := r.db.WithContext(ctx).
		Where("status IN (?, ?)", model.WebhookStatusReceived, model.WebhookStatusFailed).
		Order("created_at ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&events).Error; err != nil {
		r.logger.Error("Failed to get retryable webhook events", zap.Error(err))
		return nil, fmt.Errorf("failed to get retryable webhook events: %w", err)
	}

	return events, nil
}
