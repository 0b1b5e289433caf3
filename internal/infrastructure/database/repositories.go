package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vayva/payments-service/internal/adapter/repository"
	domainRepo "github.com/vayva/payments-service/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Webhook      domainRepo.WebhookRepository
	Order        domainRepo.OrderRepository
	Transaction  domainRepo.TransactionRepository
	Refund       domainRepo.RefundRepository
	Shipment     domainRepo.ShipmentRepository
	Invoice      domainRepo.InvoiceRepository
	Subscription domainRepo.SubscriptionRepository
	Store        domainRepo.StoreRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Webhook:      repository.NewWebhookRepository(db, logger),
		Order:        repository.NewOrderRepository(db, logger),
		Transaction:  repository.NewTransactionRepository(db, logger),
		Refund:       repository.NewRefundRepository(db, logger),
		Shipment:     repository.NewShipmentRepository(db, logger),
		Invoice:      repository.NewInvoiceRepository(db, logger),
		Subscription: repository.NewSubscriptionRepository(db, logger),
		Store:        repository.NewStoreRepository(db, logger),
	}
}
