package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vayva/payments-service/internal/adapter/repository"
	"github.com/vayva/payments-service/internal/domain/model"
)

func TestCreateFromEvent_ReplayIsNoOp(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewTransactionRepository(db, zap.NewNop())
	ctx := context.Background()

	storeID := uuid.New()
	eventID := "evt-1"
	tx := func() *model.Transaction {
		id := eventID
		return &model.Transaction{
			StoreID:         storeID,
			Reference:       "ref-1",
			Provider:        "paystack",
			ProviderEventID: &id,
			Amount:          decimal.NewFromInt(5000),
			Status:          model.TransactionStatusSuccess,
			Type:            model.TransactionTypeCharge,
		}
	}

	require.NoError(t, repo.CreateFromEvent(ctx, tx()))
	require.NoError(t, repo.CreateFromEvent(ctx, tx()))

	var count int64
	db.Model(&model.Transaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateFromEvent_DistinctEventsBothRecorded(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewTransactionRepository(db, zap.NewNop())
	ctx := context.Background()

	storeID := uuid.New()
	for _, eventID := range []string{"evt-1", "evt-2"} {
		id := eventID
		require.NoError(t, repo.CreateFromEvent(ctx, &model.Transaction{
			StoreID:         storeID,
			Reference:       "ref-" + eventID,
			Provider:        "paystack",
			ProviderEventID: &id,
			Amount:          decimal.NewFromInt(1000),
			Status:          model.TransactionStatusSuccess,
			Type:            model.TransactionTypeCharge,
		}))
	}

	var count int64
	db.Model(&model.Transaction{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestListSucceededCharges_FiltersStatusTypeAndRange(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewTransactionRepository(db, zap.NewNop())
	ctx := context.Background()

	storeID := uuid.New()
	mk := func(status model.TransactionStatus, txType model.TransactionType, amount int64) {
		require.NoError(t, db.Create(&model.Transaction{
			StoreID:  storeID,
			Provider: "paystack",
			Amount:   decimal.NewFromInt(amount),
			Status:   status,
			Type:     txType,
		}).Error)
	}

	mk(model.TransactionStatusSuccess, model.TransactionTypeCharge, 3000)
	mk(model.TransactionStatusFailed, model.TransactionTypeCharge, 500)
	mk(model.TransactionStatusSuccess, model.TransactionTypeRefund, 200)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	charges, err := repo.ListSucceededCharges(ctx, storeID, from, to)
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.True(t, charges[0].Amount.Equal(decimal.NewFromInt(3000)))
}
