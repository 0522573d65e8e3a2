package repositories

import (
	"context"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
)

// TransactionRepository defines persistence operations for transactions.
// ListByUser returns the full current set ordered by date descending, the
// same ordering the store's change subscription would deliver.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
}
