package http

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/vayva/payments-service/internal/domain/entity"
	domainErrors "github.com/vayva/payments-service/internal/domain/errors"
	"github.com/vayva/payments-service/internal/middleware/auth"
	"github.com/vayva/payments-service/internal/usecase"
)

const dateLayout = "2006-01-02"

// ReportsHandler exposes the reconciliation engine over HTTP. All routes are
// store-scoped through the auth middleware.
type ReportsHandler struct {
	reports  *usecase.ReportsService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewReportsHandler(reports *usecase.ReportsService, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{
		reports:  reports,
		validate: validator.New(),
		logger:   logger,
	}
}

type summaryQuery struct {
	From string `query:"from" validate:"required,datetime=2006-01-02"`
	To   string `query:"to" validate:"required,datetime=2006-01-02"`
}

// GetSummary returns the financial summary for a date range.
// GET /api/v1/reports/summary?from=2026-01-01&to=2026-01-31
func (h *ReportsHandler) GetSummary(c echo.Context) error {
	storeID, err := auth.GetStoreID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var q summaryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query parameters"})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "from and to are required as YYYY-MM-DD dates",
		})
	}

	rng, err := parseRange(q.From, q.To)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	summary, err := h.reports.Summarize(c.Request().Context(), storeID, rng)
	if err != nil {
		h.logger.Error("Failed to compute summary",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute summary"})
	}

	return c.JSON(http.StatusOK, summary)
}

type reconcileQuery struct {
	PageSize int    `query:"page_size" validate:"omitempty,min=1"`
	Cursor   string `query:"cursor"`
}

// GetReconciliation returns one cursor page of the reconciliation view.
// GET /api/v1/reports/reconciliation?page_size=50&cursor=123
func (h *ReportsHandler) GetReconciliation(c echo.Context) error {
	storeID, err := auth.GetStoreID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var q reconcileQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query parameters"})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "page_size must be a positive integer"})
	}

	page, err := h.reports.Reconcile(c.Request().Context(), storeID, q.PageSize, q.Cursor)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCursor) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cursor"})
		}
		h.logger.Error("Failed to compute reconciliation page",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to compute reconciliation"})
	}

	return c.JSON(http.StatusOK, page)
}

// ExportReconciliation streams the reconciliation view as CSV.
// GET /api/v1/reports/reconciliation/export
func (h *ReportsHandler) ExportReconciliation(c echo.Context) error {
	storeID, err := auth.GetStoreID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	rows, err := h.reports.ExportRows(c.Request().Context(), storeID)
	if err != nil {
		h.logger.Error("Failed to export reconciliation",
			zap.String("store_id", storeID.String()),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to export reconciliation"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="reconciliation.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{
		"order_id", "ref_code", "date", "customer", "status",
		"total", "paid_amount", "refunded_amount",
		"payment_status", "delivery_status", "discrepancies",
	}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(csvRecord(row)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func csvRecord(row entity.ReconciliationRow) []string {
	return []string{
		fmt.Sprintf("%d", row.OrderID),
		row.RefCode,
		row.Date.Format(dateLayout),
		row.CustomerName,
		row.Status,
		row.Total.StringFixed(2),
		row.PaidAmount.StringFixed(2),
		row.RefundedAmount.StringFixed(2),
		row.PaymentStatus,
		row.DeliveryStatus,
		strings.Join(row.Discrepancies, "; "),
	}
}

// parseRange interprets from/to as inclusive calendar dates.
func parseRange(from, to string) (entity.DateRange, error) {
	fromT, err := time.Parse(dateLayout, from)
	if err != nil {
		return entity.DateRange{}, fmt.Errorf("invalid from date %q", from)
	}
	toT, err := time.Parse(dateLayout, to)
	if err != nil {
		return entity.DateRange{}, fmt.Errorf("invalid to date %q", to)
	}
	if toT.Before(fromT) {
		return entity.DateRange{}, fmt.Errorf("to date precedes from date")
	}

	// Extend to the end of the "to" day so both ends are inclusive
	return entity.DateRange{
		From: fromT,
		To:   toT.Add(24*time.Hour - time.Nanosecond),
	}, nil
}
