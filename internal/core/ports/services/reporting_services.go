package services

import (
	"context"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
)

// ReportingSvcFacade defines operations for the derived dashboard views.
type ReportingSvcFacade interface {
	// Dashboard computes (or serves from cache) every derived view model
	// for the given reference month.
	Dashboard(ctx context.Context, userID string, refMonth time.Time) (*domain.MonthDashboard, error)

	// MonthTransactions returns the month's transactions plus their summary,
	// the inputs the export surfaces are derived from.
	MonthTransactions(ctx context.Context, userID string, refMonth time.Time) ([]domain.Transaction, domain.MonthlySummary, error)
}
