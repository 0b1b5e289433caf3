package event

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase type codes carried in charge metadata
const (
	PurchaseTypeSubscription    = "subscription"
	PurchaseTypeTemplate        = "template_purchase"
	PurchaseTypeStorefrontOrder = "storefront_order"
)

// Event type names the pipeline dispatches on
const (
	TypeChargeSuccess = "charge.success"
	TypeChargeFailed  = "charge.failed"
	TypeDisputePrefix = "dispute."
)

// Notification is the decoded provider callback envelope
type Notification struct {
	Event string     `json:"event"`
	Data  ChargeData `json:"data"`
}

// ChargeData is the provider payload for charge events
type ChargeData struct {
	ID        int64           `json:"id"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	PaidAt    string          `json:"paid_at,omitempty"`
	Customer  Customer        `json:"customer"`
	Metadata  Metadata        `json:"metadata"`
}

// Customer is the provider's view of the payer
type Customer struct {
	Email string `json:"email"`
}

// Metadata is written by the platform when a charge is initialized and echoed
// back by the provider. All values are strings on the wire.
type Metadata struct {
	StoreID       string `json:"store_id"`
	PurchaseType  string `json:"purchase_type"`
	OrderID       string `json:"order_id,omitempty"`
	TemplateID    string `json:"template_id,omitempty"`
	PlanCode      string `json:"plan_code,omitempty"`
	InvoiceNumber string `json:"invoice_number,omitempty"`
	Description   string `json:"description,omitempty"`
}

// Decode parses a raw provider body into a Notification.
func Decode(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}
	return &n, nil
}

// ProviderEventID returns the provider-assigned event id, or "" when absent.
func (n *Notification) ProviderEventID() string {
	if n.Data.ID == 0 {
		return ""
	}
	return strconv.FormatInt(n.Data.ID, 10)
}

// OrderID returns the order referenced by the charge metadata, if any.
// Any charge naming an order triggers delivery auto-dispatch, independent of
// its purchase type.
func (n *Notification) OrderID() (int64, bool) {
	if n.Data.Metadata.OrderID == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(n.Data.Metadata.OrderID, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// StoreID returns the store referenced by the charge metadata, if any.
func (n *Notification) StoreID() (uuid.UUID, bool) {
	id, err := uuid.Parse(n.Data.Metadata.StoreID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// PaidAtTime parses the provider paid_at timestamp, nil when absent or
// unparseable.
func (d ChargeData) PaidAtTime() *time.Time {
	if d.PaidAt == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, d.PaidAt)
	if err != nil {
		return nil
	}
	return &t
}

// Purchase is the narrowly-typed view of a charge.success payload. Each
// handler receives one concrete variant instead of re-checking optional
// metadata fields.
type Purchase interface {
	isPurchase()
}

// SubscriptionPurchase activates or renews a store's platform plan
type SubscriptionPurchase struct {
	StoreID   uuid.UUID
	PlanCode  string
	Reference string
	PaidAt    *time.Time
}

// TemplatePurchase appends one template to a store's purchased set
type TemplatePurchase struct {
	StoreID    uuid.UUID
	TemplateID string
}

// StorefrontOrderPurchase settles a customer order
type StorefrontOrderPurchase struct {
	StoreID   uuid.UUID
	OrderID   int64
	Amount    decimal.Decimal
	Currency  string
	Reference string
}

// GenericPurchase is a top-up or billing charge with no order behind it
type GenericPurchase struct {
	StoreID       uuid.UUID
	Amount        decimal.Decimal
	Currency      string
	Reference     string
	Email         string
	InvoiceNumber string
	Description   string
}

func (SubscriptionPurchase) isPurchase()    {}
func (TemplatePurchase) isPurchase()        {}
func (StorefrontOrderPurchase) isPurchase() {}
func (GenericPurchase) isPurchase()         {}

// Purchase decodes the metadata into its tagged variant. Unknown purchase
// types fall back to GenericPurchase.
func (d ChargeData) Purchase() (Purchase, error) {
	storeID, err := uuid.Parse(d.Metadata.StoreID)
	if err != nil {
		return nil, fmt.Errorf("parse store id %q: %w", d.Metadata.StoreID, err)
	}

	switch d.Metadata.PurchaseType {
	case PurchaseTypeSubscription:
		return SubscriptionPurchase{
			StoreID:   storeID,
			PlanCode:  d.Metadata.PlanCode,
			Reference: d.Reference,
			PaidAt:    d.PaidAtTime(),
		}, nil

	case PurchaseTypeTemplate:
		if d.Metadata.TemplateID == "" {
			return nil, fmt.Errorf("template purchase without template_id")
		}
		return TemplatePurchase{
			StoreID:    storeID,
			TemplateID: d.Metadata.TemplateID,
		}, nil

	case PurchaseTypeStorefrontOrder:
		orderID, err := strconv.ParseInt(d.Metadata.OrderID, 10, 64)
		if err != nil || orderID <= 0 {
			return nil, fmt.Errorf("storefront order with invalid order_id %q", d.Metadata.OrderID)
		}
		return StorefrontOrderPurchase{
			StoreID:   storeID,
			OrderID:   orderID,
			Amount:    d.Amount,
			Currency:  d.Currency,
			Reference: d.Reference,
		}, nil

	default:
		return GenericPurchase{
			StoreID:       storeID,
			Amount:        d.Amount,
			Currency:      d.Currency,
			Reference:     d.Reference,
			Email:         d.Customer.Email,
			InvoiceNumber: d.Metadata.InvoiceNumber,
			Description:   d.Metadata.Description,
		}, nil
	}
}
