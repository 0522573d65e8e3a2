package domain

import (
	"github.com/shopspring/decimal"
)

// MonthlySummary holds the income/expense/balance totals for one calendar month.
type MonthlySummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"` // Income minus Expense
}

// DailyTotal is one row of the per-day rollup for a month.
type DailyTotal struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryTotal is one slice of the expense-by-category breakdown.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// TrendPoint is one month of the trailing six month trend.
type TrendPoint struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

// MonthComparison compares a month's summary against the prior calendar month.
// Percentage changes use the prior month's value as denominator; when that
// value is zero (non-positive for balance) the change is defined as zero.
type MonthComparison struct {
	IncomeChange  decimal.Decimal `json:"incomeChange"` // percent
	ExpenseChange decimal.Decimal `json:"expenseChange"`
	BalanceChange decimal.Decimal `json:"balanceChange"`
	IncomeDiff    decimal.Decimal `json:"incomeDiff"` // absolute
	ExpenseDiff   decimal.Decimal `json:"expenseDiff"`
	BalanceDiff   decimal.Decimal `json:"balanceDiff"`
}

// DayActivity groups a single calendar date's transactions with its totals,
// retained in full for drill-down display.
type DayActivity struct {
	Date         string          `json:"date"` // YYYY-MM-DD
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	Transactions []Transaction   `json:"transactions"`
}

// Profit is the day's income minus expense.
func (d DayActivity) Profit() decimal.Decimal {
	return d.Income.Sub(d.Expense)
}

// NotableDates picks out the standout days of a month.
type NotableDates struct {
	BestSalesDay      DayActivity `json:"bestSalesDay"`
	HighestExpenseDay DayActivity `json:"highestExpenseDay"`
	BestProfitDay     DayActivity `json:"bestProfitDay"`
}

// MonthDashboard bundles every derived view model for one reference month.
// It is ephemeral: recomputed in full from the transaction snapshot on every
// request (or served from the report cache until the snapshot changes).
type MonthDashboard struct {
	Month      string          `json:"month"` // YYYY-MM
	Summary    MonthlySummary  `json:"summary"`
	Daily      []DailyTotal    `json:"daily"`
	Categories []CategoryTotal `json:"categories"`
	Trend      []TrendPoint    `json:"trend"`
	Comparison MonthComparison `json:"comparison"`
	Top        []Transaction   `json:"topTransactions"`
	Notable    *NotableDates   `json:"notableDates,omitempty"`
}

// SortOrder selects how filtered transaction lists are ordered.
type SortOrder string

const (
	SortNewest  SortOrder = "newest"
	SortOldest  SortOrder = "oldest"
	SortHighest SortOrder = "highest"
	SortLowest  SortOrder = "lowest"
)

// PeriodFilter selects a relative date window anchored at "now".
type PeriodFilter string

const (
	PeriodAll   PeriodFilter = "all"
	PeriodToday PeriodFilter = "today"
	PeriodWeek  PeriodFilter = "week"  // last 7 days
	PeriodMonth PeriodFilter = "month" // last 30 days
)

// TransactionFilter holds the list-screen filter controls.
// TypeFilter is "all", "income" or "expense".
type TransactionFilter struct {
	SearchTerm string       `json:"searchTerm"`
	TypeFilter string       `json:"typeFilter"`
	Period     PeriodFilter `json:"period"`
	SortBy     SortOrder    `json:"sortBy"`
}
