package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vayva/payments-service/internal/adapter/repository"
	"github.com/vayva/payments-service/internal/domain/model"
	domainRepo "github.com/vayva/payments-service/internal/domain/repository"
)

const testPayload = `{"event":"charge.success","data":{"id":99}}`

func TestClaim_FirstDeliveryAcquires(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewWebhookRepository(db, zap.NewNop())
	ctx := context.Background()

	outcome, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	assert.Equal(t, domainRepo.ClaimAcquired, outcome)

	event, err := repo.GetEvent(ctx, "paystack", "99")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, model.WebhookStatusProcessing, event.Status)
	assert.Equal(t, "charge.success", event.EventType)
}

func TestClaim_DuplicateWhileInFlight(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewWebhookRepository(db, zap.NewNop())
	ctx := context.Background()

	first, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	require.Equal(t, domainRepo.ClaimAcquired, first)

	// Same event again before the first claim finishes
	second, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	assert.Equal(t, domainRepo.ClaimInFlight, second)
}

func TestClaim_DuplicateAfterProcessed(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewWebhookRepository(db, zap.NewNop())
	ctx := context.Background()

	_, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	require.NoError(t, repo.MarkProcessed(ctx, "paystack", "99"))

	outcome, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	assert.Equal(t, domainRepo.ClaimAlreadyProcessed, outcome)

	// Still exactly one row for the event
	var count int64
	db.Model(&model.WebhookEvent{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestClaim_FailedEventReclaimable(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewWebhookRepository(db, zap.NewNop())
	ctx := context.Background()

	_, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	require.NoError(t, repo.MarkFailed(ctx, "paystack", "99", errors.New("ledger write failed")))

	outcome, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	assert.Equal(t, domainRepo.ClaimAcquired, outcome)

	event, err := repo.GetEvent(ctx, "paystack", "99")
	require.NoError(t, err)
	assert.Equal(t, 1, event.Attempts)
	require.NotNil(t, event.LastError)
	assert.Equal(t, "ledger write failed", *event.LastError)
}

func TestClaim_StaleProcessingTakenOver(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewWebhookRepository(db, zap.NewNop())
	ctx := context.Background()

	_, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)

	// Simulate a crash mid-processing: the claim sits in processing past the
	// stale cutoff
	stale := time.Now().Add(-10 * time.Minute)
	require.NoError(t, db.Model(&model.WebhookEvent{}).
		Where("provider_event_id = ?", "99").
		UpdateColumn("updated_at", stale).Error)

	outcome, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	assert.Equal(t, domainRepo.ClaimAcquired, outcome)
}

func TestClaim_DistinctProvidersDoNotCollide(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewWebhookRepository(db, zap.NewNop())
	ctx := context.Background()

	first, err := repo.Claim(ctx, "paystack", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	assert.Equal(t, domainRepo.ClaimAcquired, first)

	second, err := repo.Claim(ctx, "flutterwave", "99", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	assert.Equal(t, domainRepo.ClaimAcquired, second)
}

func TestMarkProcessed_UnknownEvent(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewWebhookRepository(db, zap.NewNop())

	err := repo.MarkProcessed(context.Background(), "paystack", "404")
	assert.Error(t, err)
}

func TestGetRetryable_ListsFailedEvents(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewWebhookRepository(db, zap.NewNop())
	ctx := context.Background()

	_, err := repo.Claim(ctx, "paystack", "1", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	require.NoError(t, repo.MarkFailed(ctx, "paystack", "1", errors.New("boom")))

	_, err = repo.Claim(ctx, "paystack", "2", "charge.success", []byte(testPayload))
	require.NoError(t, err)
	require.NoError(t, repo.MarkProcessed(ctx, "paystack", "2"))

	events, err := repo.GetRetryable(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].ProviderEventID)
	assert.Equal(t, model.WebhookStatusFailed, events[0].Status)
}
