package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence shape of a ledger entry.
// Amount is stored as NUMERIC and must be positive.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	UserID        string          `db:"user_id"`
	Type          string          `db:"type"` // income or expense
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Category      string          `db:"category"`
	Date          time.Time       `db:"date"`
	AuditFields
}
