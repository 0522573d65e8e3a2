package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds the per-user key-value settings document.
// Writes use merge semantics: updating the goal never clobbers favorites and
// vice versa.
type Settings struct {
	UserID      string          `json:"userID"`
	MonthlyGoal decimal.Decimal `json:"monthlyGoal"` // target net balance for the current month
	Favorites   []Favorite      `json:"favorites"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NoticeKind classifies a goal notice raised after a transaction write.
type NoticeKind string

const (
	// NoticeGoalReached fires when the month balance crosses the goal upward.
	NoticeGoalReached NoticeKind = "goal_reached"
	// NoticeLossWarning fires when the month balance falls below minus twice the goal.
	NoticeLossWarning NoticeKind = "loss_warning"
)

// GoalNotice is declarative view state for the presentation layer's
// notification queue; raising one has no side effects here.
type GoalNotice struct {
	Kind    NoticeKind      `json:"kind"`
	Balance decimal.Decimal `json:"balance"`
	Goal    decimal.Decimal `json:"goal"`
}
