package domain

import "github.com/shopspring/decimal"

// Favorite is a saved transaction template for quick re-entry.
// Two favorites with the same (Description, Category) pair are treated as the
// same favorite for toggle purposes.
type Favorite struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
}

// SameAs reports whether the two favorites share the toggle uniqueness key.
func (f Favorite) SameAs(other Favorite) bool {
	return f.Description == other.Description && f.Category == other.Category
}
