package usecase

import (
	"context"

	"github.com/shopspring/decimal"
)

// DeliveryDispatcher triggers delivery logistics for a paid order. Dispatch
// has its own retry path; failures here are logged, never propagated.
type DeliveryDispatcher interface {
	AutoDispatch(ctx context.Context, orderID int64, source, idempotencyKey string) error
}

// DisputeHandler receives the full provider event for dispute.* notifications.
type DisputeHandler interface {
	HandleWebhookEvent(ctx context.Context, eventType string, payload []byte) error
}

// ReceiptEmailer sends a best-effort payment receipt.
type ReceiptEmailer interface {
	SendPaymentReceipt(ctx context.Context, email string, amount decimal.Decimal, invoiceNumber, storeName string) error
}

// EffectSubmitter hands a side effect to the background pool. A false return
// means the task was dropped (pool stopped or queue full); the caller logs it
// and the webhook response is unaffected.
type EffectSubmitter interface {
	Submit(name string, fn func(ctx context.Context) error) bool
}
