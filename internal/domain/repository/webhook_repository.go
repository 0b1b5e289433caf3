package repository

import (
	"context"
	"encoding/json"

	"github.com/vayva/payments-service/internal/domain/model"
)

// ClaimOutcome is the result of the idempotency gate for one delivery.
type ClaimOutcome int

const (
	// ClaimAcquired means this delivery holds the gate and must run side effects
	ClaimAcquired ClaimOutcome = iota
	// ClaimAlreadyProcessed means a prior delivery finished; short-circuit to success
	ClaimAlreadyProcessed
	// ClaimInFlight means a concurrent delivery holds the gate; do nothing
	ClaimInFlight
)

// WebhookRepository is the event store for inbound provider notifications.
type WebhookRepository interface {
	// Claim upserts the event and atomically moves it to processing. Side
	// effects may only run when the outcome is ClaimAcquired; the check-and-set
	// is a single conditional write so two concurrent deliveries of the same
	// (provider, eventID) can never both acquire it.
	Claim(ctx context.Context, provider, eventID, eventType string, payload json.RawMessage) (ClaimOutcome, error)

	// MarkProcessed finalizes a claimed event on success
	MarkProcessed(ctx context.Context, provider, eventID string) error

	// MarkFailed records a processing failure so the provider retry can re-claim
	MarkFailed(ctx context.Context, provider, eventID string, cause error) error

	// GetEvent retrieves one event, nil when absent
	GetEvent(ctx context.Context, provider, eventID string) (*model.WebhookEvent, error)

	// GetRetryable lists received/failed events for the operator audit view
	GetRetryable(ctx context.Context, limit int) ([]*model.WebhookEvent, error)
}
