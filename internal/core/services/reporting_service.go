package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/utils/aggregation"
)

const defaultReportCacheTTL = 10 * time.Minute

type reportingService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepository
	reportCache portsrepo.ReportCache
	cacheTTL    time.Duration
}

// ReportingServiceOption configures the reporting service.
type ReportingServiceOption func(*reportingService)

// WithReportCacheTTL overrides how long cached dashboards live.
func WithReportCacheTTL(ttl time.Duration) ReportingServiceOption {
	return func(s *reportingService) { s.cacheTTL = ttl }
}

// NewReportingService creates the dashboard aggregation service.
func NewReportingService(txnRepo portsrepo.TransactionRepository, reportCache portsrepo.ReportCache, opts ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	s := &reportingService{
		txnRepo:     txnRepo,
		reportCache: reportCache,
		cacheTTL:    defaultReportCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Dashboard computes every derived view for the reference month. Results are
// cached per (user, month); any transaction write invalidates the user's
// cached months.
func (s *reportingService) Dashboard(ctx context.Context, userID string, refMonth time.Time) (*domain.MonthDashboard, error) {
	monthKey := refMonth.Format("2006-01")

	if s.reportCache != nil {
		if payload, err := s.reportCache.Get(ctx, userID, monthKey); err != nil {
			s.LogError(ctx, err, "report cache read failed", "user_id", userID)
		} else if payload != nil {
			var cached domain.MonthDashboard
			if err := json.Unmarshal(payload, &cached); err == nil {
				s.LogDebug(ctx, "dashboard served from cache", "month", monthKey)
				return &cached, nil
			}
			// Corrupt entry: fall through and recompute.
		}
	}

	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	monthData := aggregation.MonthData(txns, refMonth)
	dashboard := &domain.MonthDashboard{
		Month:      monthKey,
		Summary:    aggregation.MonthSummary(monthData),
		Daily:      aggregation.DailyBreakdown(monthData),
		Categories: aggregation.CategoryBreakdown(monthData),
		Trend:      aggregation.MonthlyTrend(txns, refMonth),
		Comparison: aggregation.LastMonthComparison(txns, refMonth),
		Top:        aggregation.TopTransactions(monthData, aggregation.TopTransactionCount),
		Notable:    aggregation.NotableDates(monthData),
	}

	if s.reportCache != nil {
		if payload, err := json.Marshal(dashboard); err == nil {
			if err := s.reportCache.Set(ctx, userID, monthKey, payload, s.cacheTTL); err != nil {
				s.LogError(ctx, err, "report cache write failed", "user_id", userID)
			}
		}
	}

	return dashboard, nil
}

// MonthTransactions returns the month's rows plus their summary, the inputs
// for the export surfaces.
func (s *reportingService) MonthTransactions(ctx context.Context, userID string, refMonth time.Time) ([]domain.Transaction, domain.MonthlySummary, error) {
	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, domain.MonthlySummary{}, err
	}
	monthData := aggregation.MonthData(txns, refMonth)
	return monthData, aggregation.MonthSummary(monthData), nil
}
