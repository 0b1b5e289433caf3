package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Discrepancy flags, in the fixed order they are evaluated. The strings are
// part of the operator-facing contract and must not change.
const (
	FlagCancelledButPaid = "Money held on Cancelled Order"
	FlagDeliveredUnpaid  = "Delivered but Unpaid"
	FlagOverRefunded     = "Over-refunded"
	FlagUnderpaid        = "Underpaid"
	FlagOverpaid         = "Overpaid"
)

// DateRange bounds a report query, inclusive on both ends.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// DeliveryMetrics summarizes shipment outcomes in a range.
type DeliveryMetrics struct {
	DeliveredCount int     `json:"delivered_count"`
	FailedCount    int     `json:"failed_count"`
	SuccessRate    float64 `json:"success_rate"`
}

// SummaryMetrics is the store-level financial summary for a range.
// PaymentsReceived is actual cash flow and may legitimately differ from
// GrossSales, which is order-total based.
type SummaryMetrics struct {
	GrossSales       decimal.Decimal `json:"gross_sales"`
	NetSales         decimal.Decimal `json:"net_sales"`
	PaymentsReceived decimal.Decimal `json:"payments_received"`
	RefundsAmount    decimal.Decimal `json:"refunds_amount"`
	OrdersPaidCount  int             `json:"orders_paid_count"`
	RefundsCount     int             `json:"refunds_count"`
	Delivery         DeliveryMetrics `json:"delivery"`
}

// ReconciliationRow is a computed projection for one order. It is derived on
// every read and never stored, so it cannot drift from the source ledgers.
type ReconciliationRow struct {
	OrderID        int64           `json:"order_id"`
	RefCode        string          `json:"ref_code"`
	Date           time.Time       `json:"date"`
	CustomerName   string          `json:"customer_name"`
	Status         string          `json:"status"`
	Total          decimal.Decimal `json:"total"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	RefundedAmount decimal.Decimal `json:"refunded_amount"`
	PaymentStatus  string          `json:"payment_status"`
	DeliveryStatus string          `json:"delivery_status"`
	Discrepancies  []string        `json:"discrepancies"`
}

// ReconciliationPage is one cursor page of rows. NextCursor is empty on the
// last page.
type ReconciliationPage struct {
	Items      []ReconciliationRow `json:"items"`
	NextCursor string              `json:"next_cursor,omitempty"`
}
