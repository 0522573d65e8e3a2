package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or subtracts from the balance.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction represents a single income or expense record.
// Amount is always positive; the sign applied to the running balance is derived
// from Type and never stored.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	UserID        string          `json:"userID"`        // FK -> User.userID (Not Null)
	Type          TransactionType `json:"type"`          // income or expense (Not Null)
	Description   string          `json:"description"`   // Non-empty label
	Amount        decimal.Decimal `json:"amount"`        // Positive value; precise decimal type
	Category      string          `json:"category"`      // Drawn from the fixed set for Type
	Date          time.Time       `json:"date"`          // Calendar date of the transaction
	AuditFields
}
