package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	domainErrors "github.com/vayva/payments-service/internal/domain/errors"
	"github.com/vayva/payments-service/internal/domain/event"
	"github.com/vayva/payments-service/internal/domain/model"
	"github.com/vayva/payments-service/internal/domain/repository"
	"github.com/vayva/payments-service/internal/infrastructure/paystack"
)

// IngestResult is what the webhook endpoint returns to the provider. Status
// drives the provider's retry behavior: 200 stops retries, 500 requests one.
type IngestResult struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	EventID string `json:"event_id,omitempty"`
}

// WebhookServiceDeps wires the ingestion pipeline.
type WebhookServiceDeps struct {
	Secret        string
	Events        repository.WebhookRepository
	Orders        repository.OrderRepository
	Transactions  repository.TransactionRepository
	Invoices      repository.InvoiceRepository
	Subscriptions repository.SubscriptionRepository
	Stores        repository.StoreRepository
	Dispatcher    DeliveryDispatcher
	Disputes      DisputeHandler
	Emailer       ReceiptEmailer
	Effects       EffectSubmitter
	Logger        *zap.Logger
}

// WebhookService is the payment-event ingestion pipeline: authenticity check,
// idempotency gate, dispatch by event type, finalize.
type WebhookService struct {
	deps WebhookServiceDeps
}

// NewWebhookService creates the ingestion pipeline
func NewWebhookService(deps WebhookServiceDeps) *WebhookService {
	return &WebhookService{deps: deps}
}

// Ingest processes one provider delivery. Safe under concurrent duplicate
// deliveries of the same event: side effects run only while this call holds
// the idempotency gate in processing.
func (s *WebhookService) Ingest(ctx context.Context, body []byte, signature string) IngestResult {
	log := s.deps.Logger

	// 1. Authenticity over the raw bytes; fail closed on missing secret
	if err := paystack.VerifySignature(s.deps.Secret, body, signature); err != nil {
		if errors.Is(err, domainErrors.ErrSecretNotConfigured) {
			log.Error("Webhook secret not configured")
			return IngestResult{Status: http.StatusInternalServerError, Message: "webhook secret not configured"}
		}
		log.Warn("Webhook signature verification failed", zap.Int("body_bytes", len(body)))
		return IngestResult{Status: http.StatusUnauthorized, Message: "invalid signature"}
	}

	n, err := event.Decode(body)
	if err != nil {
		log.Warn("Malformed webhook payload", zap.Error(err))
		return IngestResult{Status: http.StatusBadRequest, Message: "malformed payload"}
	}

	eventID := n.ProviderEventID()
	if eventID == "" {
		log.Warn("Webhook payload without provider event id", zap.String("event_type", n.Event))
		return IngestResult{Status: http.StatusBadRequest, Message: "missing provider event id"}
	}

	// 2. Idempotency gate
	outcome, err := s.deps.Events.Claim(ctx, paystack.Provider, eventID, n.Event, body)
	if err != nil {
		log.Error("Failed to claim webhook event",
			zap.String("event_id", eventID),
			zap.Error(err))
		return IngestResult{Status: http.StatusInternalServerError, Message: "event store unavailable", EventID: eventID}
	}

	switch outcome {
	case repository.ClaimAlreadyProcessed:
		log.Info("Duplicate webhook delivery, already processed",
			zap.String("event_id", eventID),
			zap.String("event_type", n.Event))
		return IngestResult{Status: http.StatusOK, Message: "already processed", EventID: eventID}
	case repository.ClaimInFlight:
		log.Info("Concurrent webhook delivery, processing elsewhere",
			zap.String("event_id", eventID),
			zap.String("event_type", n.Event))
		return IngestResult{Status: http.StatusOK, Message: "processing", EventID: eventID}
	}

	// 3. Dispatch by event type
	summary, err := s.dispatch(ctx, n, eventID, body)
	if err != nil {
		log.Error("Webhook processing failed",
			zap.String("event_id", eventID),
			zap.String("event_type", n.Event),
			zap.Error(err))
		if mfErr := s.deps.Events.MarkFailed(ctx, paystack.Provider, eventID, err); mfErr != nil {
			log.Error("Failed to record webhook failure",
				zap.String("event_id", eventID),
				zap.Error(mfErr))
		}
		return IngestResult{Status: http.StatusInternalServerError, Message: "processing failed", EventID: eventID}
	}

	// 4. Finalize
	if err := s.deps.Events.MarkProcessed(ctx, paystack.Provider, eventID); err != nil {
		// The provider will retry; domain effects are idempotent so the retry
		// converges on the same ledger state.
		log.Error("Failed to finalize webhook event",
			zap.String("event_id", eventID),
			zap.Error(err))
		return IngestResult{Status: http.StatusInternalServerError, Message: "finalize failed", EventID: eventID}
	}

	log.Info("Webhook processed",
		zap.String("event_id", eventID),
		zap.String("event_type", n.Event),
		zap.String("effect", summary))
	return IngestResult{Status: http.StatusOK, Message: summary, EventID: eventID}
}

func (s *WebhookService) dispatch(ctx context.Context, n *event.Notification, eventID string, body []byte) (string, error) {
	switch {
	case n.Event == event.TypeChargeSuccess:
		return s.handleChargeSuccess(ctx, n, eventID)

	case n.Event == event.TypeChargeFailed:
		return s.handleChargeFailed(ctx, n)

	case strings.HasPrefix(n.Event, event.TypeDisputePrefix):
		return s.forwardDispute(n, body), nil

	default:
		// Unknown but harmless; mark processed so the provider stops retrying
		s.deps.Logger.Info("Ignoring unhandled webhook event type",
			zap.String("event_type", n.Event),
			zap.String("event_id", eventID))
		return "ignored", nil
	}
}

func (s *WebhookService) handleChargeSuccess(ctx context.Context, n *event.Notification, eventID string) (string, error) {
	purchase, err := n.Data.Purchase()
	if err != nil {
		return "", fmt.Errorf("decode purchase: %w", err)
	}

	var summary string
	switch p := purchase.(type) {
	case event.SubscriptionPurchase:
		paidAt := time.Now()
		if p.PaidAt != nil {
			paidAt = *p.PaidAt
		}
		if err := s.deps.Subscriptions.MarkActive(ctx, p.StoreID, p.PlanCode, p.Reference, paidAt); err != nil {
			return "", err
		}
		summary = "subscription activated"

	case event.TemplatePurchase:
		if err := s.deps.Stores.AddPurchasedTemplate(ctx, p.StoreID, p.TemplateID); err != nil {
			return "", err
		}
		summary = "template purchase recorded"

	case event.StorefrontOrderPurchase:
		order, err := s.deps.Orders.GetByID(ctx, p.StoreID, p.OrderID)
		if err != nil {
			return "", err
		}
		if order == nil {
			return "", fmt.Errorf("%w: %d", domainErrors.ErrOrderNotFound, p.OrderID)
		}
		if err := s.deps.Orders.MarkPaid(ctx, p.StoreID, p.OrderID); err != nil {
			return "", err
		}
		providerEventID := eventID
		tx := &model.Transaction{
			StoreID:         p.StoreID,
			OrderID:         &p.OrderID,
			Reference:       p.Reference,
			Provider:        paystack.Provider,
			ProviderEventID: &providerEventID,
			Amount:          p.Amount,
			Currency:        p.Currency,
			Status:          model.TransactionStatusSuccess,
			Type:            model.TransactionTypeCharge,
		}
		if err := s.deps.Transactions.CreateFromEvent(ctx, tx); err != nil {
			return "", err
		}
		summary = "order settled"

	case event.GenericPurchase:
		providerEventID := eventID
		number := p.InvoiceNumber
		if number == "" {
			number = fmt.Sprintf("INV-%s-%s", paystack.Provider, eventID)
		}
		invoice := &model.Invoice{
			StoreID:         p.StoreID,
			Number:          number,
			Provider:        paystack.Provider,
			ProviderEventID: &providerEventID,
			Amount:          p.Amount,
			Currency:        p.Currency,
		}
		if p.Description != "" {
			desc := p.Description
			invoice.Description = &desc
		}
		if err := s.deps.Invoices.CreatePaid(ctx, invoice); err != nil {
			return "", err
		}
		s.sendReceipt(ctx, p, number)
		summary = "invoice recorded"
	}

	// Any charge naming an order triggers delivery auto-dispatch, guarded by
	// its own idempotency key downstream
	if orderID, ok := n.OrderID(); ok {
		s.autoDispatch(orderID)
	}

	return summary, nil
}

func (s *WebhookService) handleChargeFailed(ctx context.Context, n *event.Notification) (string, error) {
	storeID, ok := n.StoreID()
	if !ok {
		s.deps.Logger.Info("charge.failed without store id, nothing to flag")
		return "ignored", nil
	}

	if err := s.deps.Subscriptions.MarkPastDue(ctx, storeID); err != nil {
		return "", err
	}
	return "subscription past due", nil
}

// forwardDispute hands the full event to the dispute collaborator off the
// request path; its failures never become ingestion failures.
func (s *WebhookService) forwardDispute(n *event.Notification, body []byte) string {
	eventType := n.Event
	payload := make([]byte, len(body))
	copy(payload, body)

	ok := s.deps.Effects.Submit("dispute-forward", func(ctx context.Context) error {
		return s.deps.Disputes.HandleWebhookEvent(ctx, eventType, payload)
	})
	if !ok {
		s.deps.Logger.Warn("Dropped dispute forward", zap.String("event_type", eventType))
	}
	return "dispute forwarded"
}

func (s *WebhookService) autoDispatch(orderID int64) {
	key := fmt.Sprintf("%s:%d:dispatch", paystack.Provider, orderID)

	ok := s.deps.Effects.Submit("delivery-auto-dispatch", func(ctx context.Context) error {
		return s.deps.Dispatcher.AutoDispatch(ctx, orderID, paystack.Provider, key)
	})
	if !ok {
		s.deps.Logger.Warn("Dropped delivery auto-dispatch",
			zap.Int64("order_id", orderID),
			zap.String("idempotency_key", key))
	}
}

// sendReceipt resolves the recipient (store owner email wins over the payer
// email) and queues a best-effort receipt.
func (s *WebhookService) sendReceipt(ctx context.Context, p event.GenericPurchase, invoiceNumber string) {
	email := p.Email
	storeName := ""

	store, err := s.deps.Stores.GetByID(ctx, p.StoreID)
	if err != nil {
		s.deps.Logger.Warn("Failed to resolve store for receipt",
			zap.String("store_id", p.StoreID.String()),
			zap.Error(err))
	} else if store != nil {
		storeName = store.Name
		if store.OwnerEmail != nil && *store.OwnerEmail != "" {
			email = *store.OwnerEmail
		}
	}

	if email == "" {
		s.deps.Logger.Info("No resolvable email for receipt",
			zap.String("store_id", p.StoreID.String()),
			zap.String("invoice", invoiceNumber))
		return
	}

	amount := p.Amount
	name := storeName
	ok := s.deps.Effects.Submit("payment-receipt", func(ctx context.Context) error {
		return s.deps.Emailer.SendPaymentReceipt(ctx, email, amount, invoiceNumber, name)
	})
	if !ok {
		s.deps.Logger.Warn("Dropped payment receipt",
			zap.String("invoice", invoiceNumber))
	}
}
