package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vayva/payments-service/internal/adapter/repository"
	"github.com/vayva/payments-service/internal/domain/model"
)

func seedOrder(t *testing.T, db *gorm.DB, storeID uuid.UUID, refCode string, status model.OrderStatus, total int64) *model.Order {
	t.Helper()
	order := &model.Order{
		StoreID:       storeID,
		RefCode:       refCode,
		Status:        status,
		PaymentMethod: model.PaymentMethodCard,
		Total:         decimal.NewFromInt(total),
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestMarkPaid_Idempotent(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewOrderRepository(db, zap.NewNop())
	ctx := context.Background()

	storeID := uuid.New()
	order := seedOrder(t, db, storeID, "VYV-1", model.OrderStatusPending, 5000)

	require.NoError(t, repo.MarkPaid(ctx, storeID, order.ID))
	require.NoError(t, repo.MarkPaid(ctx, storeID, order.ID))

	got, err := repo.GetByID(ctx, storeID, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.OrderStatusPaid, got.Status)
	assert.Equal(t, model.PaymentStateSuccess, got.PaymentStatus)
}

func TestMarkPaid_WrongStoreScope(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewOrderRepository(db, zap.NewNop())
	ctx := context.Background()

	order := seedOrder(t, db, uuid.New(), "VYV-1", model.OrderStatusPending, 5000)

	err := repo.MarkPaid(ctx, uuid.New(), order.ID)
	assert.Error(t, err)
}

func TestListPage_NewestFirstWithCursor(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewOrderRepository(db, zap.NewNop())
	ctx := context.Background()

	storeID := uuid.New()
	for i := 1; i <= 5; i++ {
		seedOrder(t, db, storeID, "VYV-"+string(rune('0'+i)), model.OrderStatusPaid, int64(i*100))
	}
	// Drafts never appear in the reconciliation view
	seedOrder(t, db, storeID, "VYV-draft", model.OrderStatusDraft, 999)

	// First page: 3 requested, over-fetch handled by the caller
	page, err := repo.ListPage(ctx, storeID, 3, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Greater(t, page[0].ID, page[1].ID)
	assert.Greater(t, page[1].ID, page[2].ID)

	// Cursor is inclusive: the next page starts at the given id
	next, err := repo.ListPage(ctx, storeID, 3, page[2].ID)
	require.NoError(t, err)
	require.NotEmpty(t, next)
	assert.Equal(t, page[2].ID, next[0].ID)
}

func TestListPage_PreloadsRelations(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewOrderRepository(db, zap.NewNop())
	ctx := context.Background()

	storeID := uuid.New()
	customer := &model.Customer{StoreID: storeID, FirstName: "Ada", LastName: "Obi"}
	require.NoError(t, db.Create(customer).Error)

	order := seedOrder(t, db, storeID, "VYV-1", model.OrderStatusPaid, 5000)
	require.NoError(t, db.Model(order).Update("customer_id", customer.ID).Error)

	eventID := "evt-1"
	require.NoError(t, db.Create(&model.Transaction{
		StoreID:         storeID,
		OrderID:         &order.ID,
		Provider:        "paystack",
		ProviderEventID: &eventID,
		Amount:          decimal.NewFromInt(5000),
		Status:          model.TransactionStatusSuccess,
		Type:            model.TransactionTypeCharge,
	}).Error)
	require.NoError(t, db.Create(&model.Shipment{
		StoreID: storeID,
		OrderID: order.ID,
		Status:  model.ShipmentStatusDelivered,
	}).Error)

	page, err := repo.ListPage(ctx, storeID, 10, 0)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.NotNil(t, page[0].Customer)
	assert.Equal(t, "Ada Obi", page[0].Customer.DisplayName())
	require.Len(t, page[0].Transactions, 1)
	require.NotNil(t, page[0].Shipment)
	assert.Equal(t, model.ShipmentStatusDelivered, page[0].Shipment.Status)
}
