package services

import (
	"context"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	"github.com/ShopLedgerTH/shop_ledger_app/internal/dto"
)

// TransactionSvcFacade defines operations for recording and listing
// transactions. Create/Update validate before any write and return a goal
// notice when the month balance crosses the user's goal thresholds.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, *domain.GoalNotice, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, *domain.GoalNotice, error)
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns the user's snapshot (date descending) with
	// the filter pipeline applied.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// StageDelete removes the transaction optimistically and schedules the
	// destructive write after the undo grace window. It returns the moment
	// the window elapses.
	StageDelete(ctx context.Context, userID, transactionID string) (time.Time, error)
	// UndoDelete cancels a staged delete within the grace window.
	UndoDelete(ctx context.Context, userID, transactionID string) error
}
