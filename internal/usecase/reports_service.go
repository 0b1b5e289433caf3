package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vayva/payments-service/internal/domain/entity"
	domainErrors "github.com/vayva/payments-service/internal/domain/errors"
	"github.com/vayva/payments-service/internal/domain/model"
	"github.com/vayva/payments-service/internal/domain/repository"
)

// Paging defaults for the reconciliation view
const (
	DefaultReconcilePageSize = 50
)

// ReportsServiceConfig carries the tunables of the reconciliation engine.
type ReportsServiceConfig struct {
	// AmountTolerance is the largest |total - paid| difference that still
	// counts as settled. One smallest currency unit by default.
	AmountTolerance decimal.Decimal

	// MaxPageSize caps the reconciliation page size
	MaxPageSize int

	// ExportMaxRows caps a single export
	ExportMaxRows int
}

// ReportsService computes store-level financial summaries and the per-order
// reconciliation view. Pure reads: every row is derived from the ledgers at
// query time and never stored.
type ReportsService struct {
	orders       repository.OrderRepository
	transactions repository.TransactionRepository
	refunds      repository.RefundRepository
	shipments    repository.ShipmentRepository
	cfg          ReportsServiceConfig
	logger       *zap.Logger
}

// NewReportsService creates the reconciliation engine
func NewReportsService(
	orders repository.OrderRepository,
	transactions repository.TransactionRepository,
	refunds repository.RefundRepository,
	shipments repository.ShipmentRepository,
	cfg ReportsServiceConfig,
	logger *zap.Logger,
) *ReportsService {
	if cfg.AmountTolerance.IsZero() {
		cfg.AmountTolerance = decimal.NewFromInt(1)
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	if cfg.ExportMaxRows <= 0 {
		cfg.ExportMaxRows = 1000
	}
	return &ReportsService{
		orders:       orders,
		transactions: transactions,
		refunds:      refunds,
		shipments:    shipments,
		cfg:          cfg,
		logger:       logger,
	}
}

// Summarize computes the financial summary for a store over a date range.
func (s *ReportsService) Summarize(ctx context.Context, storeID uuid.UUID, rng entity.DateRange) (*entity.SummaryMetrics, error) {
	orders, err := s.orders.ListInRange(ctx, storeID, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	grossSales := decimal.Zero
	ordersPaidCount := 0
	for _, o := range orders {
		grossSales = grossSales.Add(o.Total)
		if o.PaymentStatus == model.PaymentStateSuccess {
			ordersPaidCount++
		}
	}

	refunds, err := s.refunds.ListCompletedInRange(ctx, storeID, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("list refunds: %w", err)
	}
	refundsAmount := decimal.Zero
	for _, r := range refunds {
		refundsAmount = refundsAmount.Add(r.Amount)
	}

	charges, err := s.transactions.ListSucceededCharges(ctx, storeID, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("list charges: %w", err)
	}
	paymentsReceived := decimal.Zero
	for _, t := range charges {
		paymentsReceived = paymentsReceived.Add(t.Amount)
	}

	shipments, err := s.shipments.ListInRange(ctx, storeID, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}

	return &entity.SummaryMetrics{
		GrossSales:       grossSales,
		NetSales:         grossSales.Sub(refundsAmount),
		PaymentsReceived: paymentsReceived,
		RefundsAmount:    refundsAmount,
		OrdersPaidCount:  ordersPaidCount,
		RefundsCount:     len(refunds),
		Delivery:         deliveryMetrics(shipments),
	}, nil
}

func deliveryMetrics(shipments []model.Shipment) entity.DeliveryMetrics {
	m := entity.DeliveryMetrics{}
	for _, sh := range shipments {
		switch sh.Status {
		case model.ShipmentStatusDelivered:
			m.DeliveredCount++
		case model.ShipmentStatusFailed, model.ShipmentStatusReturned:
			m.FailedCount++
		}
	}
	// Zero shipments is a valid range, not a division error
	if len(shipments) > 0 {
		rate := float64(m.DeliveredCount) / float64(len(shipments)) * 100
		m.SuccessRate = math.Round(rate*100) / 100
	}
	return m
}

// Reconcile returns one cursor page of the per-order reconciliation view,
// newest order first.
func (s *ReportsService) Reconcile(ctx context.Context, storeID uuid.UUID, pageSize int, cursor string) (*entity.ReconciliationPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultReconcilePageSize
	}
	if pageSize > s.cfg.MaxPageSize {
		pageSize = s.cfg.MaxPageSize
	}

	beforeID, err := decodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	// Over-fetch one row: its presence means another page exists and its id
	// becomes the next cursor
	orders, err := s.orders.ListPage(ctx, storeID, pageSize+1, beforeID)
	if err != nil {
		return nil, fmt.Errorf("list orders page: %w", err)
	}

	page := &entity.ReconciliationPage{Items: make([]entity.ReconciliationRow, 0, pageSize)}
	if len(orders) > pageSize {
		page.NextCursor = strconv.FormatInt(orders[pageSize].ID, 10)
		orders = orders[:pageSize]
	}

	for i := range orders {
		page.Items = append(page.Items, s.buildRow(&orders[i]))
	}
	return page, nil
}

// ExportRows returns the reconciliation view for export, capped to keep a
// single request bounded on large stores.
func (s *ReportsService) ExportRows(ctx context.Context, storeID uuid.UUID) ([]entity.ReconciliationRow, error) {
	orders, err := s.orders.ListPage(ctx, storeID, s.cfg.ExportMaxRows, 0)
	if err != nil {
		return nil, fmt.Errorf("list orders for export: %w", err)
	}

	rows := make([]entity.ReconciliationRow, 0, len(orders))
	for i := range orders {
		rows = append(rows, s.buildRow(&orders[i]))
	}
	return rows, nil
}

// buildRow derives one reconciliation row from an order with its transactions,
// shipment and customer preloaded.
func (s *ReportsService) buildRow(o *model.Order) entity.ReconciliationRow {
	paid := decimal.Zero
	refunded := decimal.Zero
	for _, t := range o.Transactions {
		if t.Status != model.TransactionStatusSuccess {
			continue
		}
		switch t.Type {
		case model.TransactionTypeCharge:
			paid = paid.Add(t.Amount)
		case model.TransactionTypeRefund:
			refunded = refunded.Add(t.Amount)
		}
	}

	deliveryStatus := string(o.FulfillmentStatus)
	if o.Shipment != nil {
		deliveryStatus = string(o.Shipment.Status)
	}

	return entity.ReconciliationRow{
		OrderID:        o.ID,
		RefCode:        o.RefCode,
		Date:           o.CreatedAt,
		CustomerName:   o.Customer.DisplayName(),
		Status:         string(o.Status),
		Total:          o.Total,
		PaidAmount:     paid,
		RefundedAmount: refunded,
		PaymentStatus:  string(o.PaymentStatus),
		DeliveryStatus: deliveryStatus,
		Discrepancies:  s.discrepancies(o, paid, refunded),
	}
}

// discrepancies evaluates the rules independently, in fixed order, so a row's
// flag list is deterministic. COD orders settle offline and are exempt from
// the payment-shortfall rules.
func (s *ReportsService) discrepancies(o *model.Order, paid, refunded decimal.Decimal) []string {
	flags := []string{}

	if o.Status == model.OrderStatusCancelled && paid.GreaterThan(decimal.Zero) {
		flags = append(flags, entity.FlagCancelledButPaid)
	}

	if o.FulfillmentStatus == model.FulfillmentStateDelivered &&
		paid.LessThan(o.Total) &&
		o.PaymentMethod != model.PaymentMethodCOD {
		flags = append(flags, entity.FlagDeliveredUnpaid)
	}

	if refunded.GreaterThan(paid) {
		flags = append(flags, entity.FlagOverRefunded)
	}

	if o.Status == model.OrderStatusFulfilled &&
		o.Total.Sub(paid).Abs().GreaterThan(s.cfg.AmountTolerance) &&
		o.PaymentMethod != model.PaymentMethodCOD {
		if paid.LessThan(o.Total) {
			flags = append(flags, entity.FlagUnderpaid)
		} else {
			flags = append(flags, entity.FlagOverpaid)
		}
	}

	return flags
}

func decodeCursor(cursor string) (int64, error) {
	if cursor == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(cursor, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", domainErrors.ErrInvalidCursor, cursor)
	}
	return id, nil
}
