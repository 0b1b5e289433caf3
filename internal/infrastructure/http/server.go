package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	handlers "github.com/vayva/payments-service/internal/adapter/handler/http"
	"github.com/vayva/payments-service/internal/config"
	"github.com/vayva/payments-service/internal/infrastructure/database"
	"github.com/vayva/payments-service/internal/infrastructure/delivery"
	"github.com/vayva/payments-service/internal/infrastructure/dispute"
	"github.com/vayva/payments-service/internal/infrastructure/email"
	"github.com/vayva/payments-service/internal/middleware/auth"
	"github.com/vayva/payments-service/internal/usecase"
)

type Server struct {
	config  *config.Config
	logger  *zap.Logger
	echo    *echo.Echo
	repos   *database.Repositories
	effects usecase.EffectSubmitter
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories, effects usecase.EffectSubmitter) *Server {
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
	}))

	return &Server{
		config:  cfg,
		logger:  logger,
		echo:    e,
		repos:   repos,
		effects: effects,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": "payments",
		})
	})

	// Collaborator clients for fire-and-forget side effects
	deliveryClient := delivery.NewClient(s.config.Service.Delivery, s.logger)
	disputeClient := dispute.NewClient(s.config.Service.Disputes, s.logger)
	emailClient := email.NewClient(s.config.Service.Notifications, s.logger)

	// Ingestion pipeline
	webhookService := usecase.NewWebhookService(usecase.WebhookServiceDeps{
		Secret:        s.config.Service.Paystack.WebhookSecret,
		Events:        s.repos.Webhook,
		Orders:        s.repos.Order,
		Transactions:  s.repos.Transaction,
		Invoices:      s.repos.Invoice,
		Subscriptions: s.repos.Subscription,
		Stores:        s.repos.Store,
		Dispatcher:    deliveryClient,
		Disputes:      disputeClient,
		Emailer:       emailClient,
		Effects:       s.effects,
		Logger:        s.logger,
	})

	// Reconciliation engine
	reportsService := usecase.NewReportsService(
		s.repos.Order,
		s.repos.Transaction,
		s.repos.Refund,
		s.repos.Shipment,
		usecase.ReportsServiceConfig{
			AmountTolerance: decimal.NewFromFloat(s.config.Reconciliation.AmountTolerance),
			MaxPageSize:     s.config.Reconciliation.MaxPageSize,
			ExportMaxRows:   s.config.Reconciliation.ExportMaxRows,
		},
		s.logger,
	)

	webhookHandler := handlers.NewWebhookHandler(webhookService, s.logger)
	reportsHandler := handlers.NewReportsHandler(reportsService, s.logger)
	eventsHandler := handlers.NewWebhookEventsHandler(s.repos.Webhook, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.Service.JWTSecret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/webhooks",
			"/api/v1/internal/webhook-events",
		},
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Protected routes (require JWT authentication and store scope)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	reports := protected.Group("/reports")
	reports.GET("/summary", reportsHandler.GetSummary)
	reports.GET("/reconciliation", reportsHandler.GetReconciliation)
	reports.GET("/reconciliation/export", reportsHandler.ExportReconciliation)

	// Internal/Debug routes
	internal := v1.Group("/internal")
	internal.GET("/webhook-events", eventsHandler.ListUnfinished)

	// Provider callbacks (outside API versioning, authenticated by signature)
	s.echo.POST("/webhooks/paystack", webhookHandler.HandlePaystack)
}
