package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the persistence shape of a user's preferences.
// Favorites are stored as a JSONB document.
type Settings struct {
	UserID      string          `db:"user_id"`
	MonthlyGoal decimal.Decimal `db:"monthly_goal"`
	Favorites   []byte          `db:"favorites"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// FavoriteEntry is one element of the favorites JSONB document.
type FavoriteEntry struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Type        string `json:"type"`
}

// Pin stores the bcrypt hash of a user's 6-digit lock PIN.
type Pin struct {
	Username  string    `db:"username"`
	PinHash   string    `db:"pin_hash"`
	UpdatedAt time.Time `db:"updated_at"`
}
