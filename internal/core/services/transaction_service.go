package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/apperrors"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/ShopLedgerTH/shop_ledger_app/internal/core/ports/services"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/dto"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/utils/aggregation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultUndoWindow = 5 * time.Second

// stagedDelete holds a transaction that has been removed from the store but
// can still be restored until the grace window elapses.
type stagedDelete struct {
	txn      domain.Transaction
	deadline time.Time
	timer    *time.Timer
}

type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepository
	settingsRepo portsrepo.SettingsRepository
	reportCache  portsrepo.ReportCache

	undoWindow time.Duration
	now        func() time.Time

	mu     sync.Mutex
	staged map[string]*stagedDelete // key: userID + "/" + transactionID
}

// TransactionServiceOption configures the transaction service.
type TransactionServiceOption func(*transactionService)

// WithUndoWindow overrides the undo grace window.
func WithUndoWindow(d time.Duration) TransactionServiceOption {
	return func(s *transactionService) { s.undoWindow = d }
}

// WithNowFunc overrides the clock, for tests.
func WithNowFunc(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) { s.now = now }
}

// NewTransactionService creates the transaction recording service.
func NewTransactionService(txnRepo portsrepo.TransactionRepository, settingsRepo portsrepo.SettingsRepository, reportCache portsrepo.ReportCache, opts ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	s := &transactionService{
		txnRepo:      txnRepo,
		settingsRepo: settingsRepo,
		reportCache:  reportCache,
		undoWindow:   defaultUndoWindow,
		now:          time.Now,
		staged:       make(map[string]*stagedDelete),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func stagedKey(userID, transactionID string) string {
	return userID + "/" + transactionID
}

// validateTransactionRequest checks the semantic rules the binding layer
// cannot express: positive amount, category membership for the type.
func validateTransactionRequest(req dto.CreateTransactionRequest) (domain.TransactionType, time.Time, error) {
	txnType := domain.TransactionType(req.Type)
	if txnType != domain.Income && txnType != domain.Expense {
		return "", time.Time{}, apperrors.NewAppError(400, "type must be income or expense", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return "", time.Time{}, apperrors.NewAppError(400, "amount must be positive", apperrors.ErrValidation)
	}
	if !domain.IsValidCategory(txnType, req.Category) {
		return "", time.Time{}, apperrors.NewAppError(400, fmt.Sprintf("unknown %s category: %s", req.Type, req.Category), apperrors.ErrValidation)
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return "", time.Time{}, apperrors.NewAppError(400, "date must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	return txnType, date, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, *domain.GoalNotice, error) {
	txnType, date, err := validateTransactionRequest(req)
	if err != nil {
		return nil, nil, err
	}

	priorBalance, goal, err := s.monthBalance(ctx, userID, date)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          txnType,
		Description:   req.Description,
		Amount:        req.Amount,
		Category:      req.Category,
		Date:          date,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		return nil, nil, err
	}
	s.invalidateReports(ctx, userID)

	notice := goalNotice(priorBalance, applyToBalance(priorBalance, txn, 1), goal)
	s.LogInfo(ctx, "transaction recorded", "transaction_id", txn.TransactionID, "type", string(txn.Type))
	return &txn, notice, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, *domain.GoalNotice, error) {
	txnType, date, err := validateTransactionRequest(req)
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, nil, err
	}

	priorBalance, goal, err := s.monthBalance(ctx, userID, date)
	if err != nil {
		return nil, nil, err
	}
	// The old version may already sit inside the same month; the notice
	// should reflect the net effect of the edit.
	balanceWithoutOld := priorBalance
	if sameMonth(existing.Date, date) {
		balanceWithoutOld = applyToBalance(priorBalance, *existing, -1)
	}

	updated := *existing
	updated.Type = txnType
	updated.Description = req.Description
	updated.Amount = req.Amount
	updated.Category = req.Category
	updated.Date = date
	updated.LastUpdatedAt = s.now()
	updated.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, updated); err != nil {
		return nil, nil, err
	}
	s.invalidateReports(ctx, userID)

	notice := goalNotice(priorBalance, applyToBalance(balanceWithoutOld, updated, 1), goal)
	return &updated, notice, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregation.FilterTransactions(txns, filter, s.now()), nil
}

// StageDelete removes the transaction immediately and keeps a restorable
// copy until the grace window elapses.
func (s *transactionService) StageDelete(ctx context.Context, userID, transactionID string) (time.Time, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return time.Time{}, err
	}
	if err := s.txnRepo.DeleteTransaction(ctx, userID, transactionID); err != nil {
		return time.Time{}, err
	}
	s.invalidateReports(ctx, userID)

	key := stagedKey(userID, transactionID)
	deadline := s.now().Add(s.undoWindow)

	s.mu.Lock()
	defer s.mu.Unlock()
	if prior, ok := s.staged[key]; ok {
		prior.timer.Stop()
	}
	entry := &stagedDelete{txn: *txn, deadline: deadline}
	entry.timer = time.AfterFunc(s.undoWindow, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.staged[key] == entry {
			delete(s.staged, key)
		}
	})
	s.staged[key] = entry

	s.LogInfo(ctx, "transaction delete staged", "transaction_id", transactionID)
	return deadline, nil
}

// UndoDelete restores a staged delete within the grace window.
func (s *transactionService) UndoDelete(ctx context.Context, userID, transactionID string) error {
	key := stagedKey(userID, transactionID)

	s.mu.Lock()
	entry, ok := s.staged[key]
	if ok {
		entry.timer.Stop()
		delete(s.staged, key)
	}
	s.mu.Unlock()

	if !ok {
		return apperrors.ErrUndoExpired
	}
	if s.now().After(entry.deadline) {
		return apperrors.ErrUndoExpired
	}

	if err := s.txnRepo.SaveTransaction(ctx, entry.txn); err != nil {
		return fmt.Errorf("failed to restore transaction: %w", err)
	}
	s.invalidateReports(ctx, userID)

	s.LogInfo(ctx, "transaction delete undone", "transaction_id", transactionID)
	return nil
}

func (s *transactionService) invalidateReports(ctx context.Context, userID string) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.Invalidate(ctx, userID); err != nil {
		// Stale reads are tolerable; the write already succeeded.
		s.LogError(ctx, err, "failed to invalidate report cache", "user_id", userID)
	}
}

// monthBalance computes the user's balance for the month containing date,
// along with their monthly goal.
func (s *transactionService) monthBalance(ctx context.Context, userID string, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	summary := aggregation.MonthSummary(aggregation.MonthData(txns, date))

	goal := decimal.Zero
	if s.settingsRepo != nil {
		settings, err := s.settingsRepo.GetSettings(ctx, userID)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		goal = settings.MonthlyGoal
	}
	return summary.Balance, goal, nil
}

func sameMonth(a, b time.Time) bool {
	ay, am, _ := a.Local().Date()
	by, bm, _ := b.Local().Date()
	return ay == by && am == bm
}

// applyToBalance returns the balance after adding (sign=+1) or removing
// (sign=-1) the transaction's contribution.
func applyToBalance(balance decimal.Decimal, txn domain.Transaction, sign int64) decimal.Decimal {
	delta := txn.Amount.Mul(decimal.NewFromInt(sign))
	if txn.Type == domain.Expense {
		delta = delta.Neg()
	}
	return balance.Add(delta)
}

// goalNotice raises a declarative notification when the write crossed a goal
// threshold: upward past the goal, or downward past minus twice the goal.
// A zero or negative goal disables both.
func goalNotice(before, after, goal decimal.Decimal) *domain.GoalNotice {
	if !goal.IsPositive() {
		return nil
	}
	if before.LessThan(goal) && after.GreaterThanOrEqual(goal) {
		return &domain.GoalNotice{Kind: domain.NoticeGoalReached, Balance: after, Goal: goal}
	}
	lossFloor := goal.Mul(decimal.NewFromInt(-2))
	if before.GreaterThanOrEqual(lossFloor) && after.LessThan(lossFloor) {
		return &domain.GoalNotice{Kind: domain.NoticeLossWarning, Balance: after, Goal: goal}
	}
	return nil
}
