package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vayva/payments-service/internal/domain/model"
)

// Models returns every persisted model, in dependency order. Exposed so tests
// can migrate an in-memory database with the same schema the service uses.
func Models() []interface{} {
	return []interface{}{
		&model.Store{},
		&model.PurchasedTemplate{},
		&model.Customer{},
		&model.Order{},
		&model.Transaction{},
		&model.Refund{},
		&model.Shipment{},
		&model.Invoice{},
		&model.Subscription{},
		&model.WebhookEvent{},
	}
}

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	// Custom types must exist before auto-migrate references them
	if err := createCustomTypes(db); err != nil {
		logger.Error("Failed to create custom types", zap.Error(err))
		return err
	}

	logger.Info("Running GORM auto-migrations...")
	if err := db.AutoMigrate(Models()...); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}
	logger.Info("GORM auto-migrations completed successfully")

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomTypes creates custom PostgreSQL types. Skipped on other
// dialects, where the enum column degrades to text.
func createCustomTypes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	var exists bool
	db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'webhook_status')`).Scan(&exists)
	if !exists {
		if err := db.Exec(`CREATE TYPE webhook_status AS ENUM ('received', 'processing', 'processed', 'failed')`).Error; err != nil {
			return err
		}
	}

	return nil
}

// createCustomIndexes creates custom indexes that GORM doesn't handle
// automatically
func createCustomIndexes(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	// Partial index for the retry sweep over unfinished webhook events
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_webhook_events_unfinished ON webhook_events (updated_at) WHERE status IN ('received', 'processing', 'failed')`).Error; err != nil {
		return err
	}

	return nil
}
