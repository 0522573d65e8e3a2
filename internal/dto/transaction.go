package dto

import (
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the payload for recording a new transaction.
// Amount must be strictly positive; Category must belong to the fixed set
// for Type (checked in the service so the error carries field context).
type CreateTransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=income expense"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// UpdateTransactionRequest mirrors the create payload; updates replace every
// editable field.
type UpdateTransactionRequest = CreateTransactionRequest

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Type          string          `json:"type"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Date          string          `json:"date"` // YYYY-MM-DD
	CreatedAt     time.Time       `json:"createdAt"`
}

// GoalNoticeResponse is the declarative notification raised by a write that
// crossed one of the monthly goal thresholds.
type GoalNoticeResponse struct {
	Kind    string          `json:"kind"`
	Balance decimal.Decimal `json:"balance"`
	Goal    decimal.Decimal `json:"goal"`
}

// CreateTransactionResponse returns the stored transaction plus an optional
// goal notice for the presentation layer's notification queue.
type CreateTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Notice      *GoalNoticeResponse `json:"notice,omitempty"`
}

// StageDeleteResponse reports when the undo grace window elapses.
type StageDeleteResponse struct {
	TransactionID string    `json:"transactionID"`
	UndoDeadline  time.Time `json:"undoDeadline"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          string(txn.Type),
		Description:   txn.Description,
		Amount:        txn.Amount,
		Category:      txn.Category,
		Date:          txn.Date.Format("2006-01-02"),
		CreatedAt:     txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}

// ToGoalNoticeResponse converts an optional domain notice.
func ToGoalNoticeResponse(n *domain.GoalNotice) *GoalNoticeResponse {
	if n == nil {
		return nil
	}
	return &GoalNoticeResponse{
		Kind:    string(n.Kind),
		Balance: n.Balance,
		Goal:    n.Goal,
	}
}
