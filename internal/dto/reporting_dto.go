package dto

import (
	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlySummaryResponse holds one month's totals.
type MonthlySummaryResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// DailyTotalResponse is one per-day rollup row.
type DailyTotalResponse struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryTotalResponse is one expense-category slice.
type CategoryTotalResponse struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// TrendPointResponse is one month of the six month trend.
type TrendPointResponse struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Profit  decimal.Decimal `json:"profit"`
}

// MonthComparisonResponse compares the month against the prior one.
type MonthComparisonResponse struct {
	IncomeChange  decimal.Decimal `json:"incomeChange"`
	ExpenseChange decimal.Decimal `json:"expenseChange"`
	BalanceChange decimal.Decimal `json:"balanceChange"`
	IncomeDiff    decimal.Decimal `json:"incomeDiff"`
	ExpenseDiff   decimal.Decimal `json:"expenseDiff"`
	BalanceDiff   decimal.Decimal `json:"balanceDiff"`
}

// DayActivityResponse is a notable day with its drill-down transactions.
type DayActivityResponse struct {
	Date         string                `json:"date"`
	Income       decimal.Decimal       `json:"income"`
	Expense      decimal.Decimal       `json:"expense"`
	Transactions []TransactionResponse `json:"transactions"`
}

// NotableDatesResponse carries the month's standout days.
type NotableDatesResponse struct {
	BestSalesDay      DayActivityResponse `json:"bestSalesDay"`
	HighestExpenseDay DayActivityResponse `json:"highestExpenseDay"`
	BestProfitDay     DayActivityResponse `json:"bestProfitDay"`
}

// DashboardResponse is the full derived view model for one reference month.
type DashboardResponse struct {
	Month      string                  `json:"month"`
	Summary    MonthlySummaryResponse  `json:"summary"`
	Daily      []DailyTotalResponse    `json:"daily"`
	Categories []CategoryTotalResponse `json:"categories"`
	Trend      []TrendPointResponse    `json:"trend"`
	Comparison MonthComparisonResponse `json:"comparison"`
	Top        []TransactionResponse   `json:"topTransactions"`
	Notable    *NotableDatesResponse   `json:"notableDates,omitempty"`
}

// ToMonthlySummaryResponse converts a domain summary to its DTO.
func ToMonthlySummaryResponse(s domain.MonthlySummary) MonthlySummaryResponse {
	return MonthlySummaryResponse{Income: s.Income, Expense: s.Expense, Balance: s.Balance}
}

func toDayActivityResponse(d domain.DayActivity) DayActivityResponse {
	return DayActivityResponse{
		Date:         d.Date,
		Income:       d.Income,
		Expense:      d.Expense,
		Transactions: ToTransactionResponses(d.Transactions),
	}
}

// ToDashboardResponse converts a domain dashboard to its DTO.
func ToDashboardResponse(d *domain.MonthDashboard) DashboardResponse {
	resp := DashboardResponse{
		Month:   d.Month,
		Summary: ToMonthlySummaryResponse(d.Summary),
		Comparison: MonthComparisonResponse{
			IncomeChange:  d.Comparison.IncomeChange,
			ExpenseChange: d.Comparison.ExpenseChange,
			BalanceChange: d.Comparison.BalanceChange,
			IncomeDiff:    d.Comparison.IncomeDiff,
			ExpenseDiff:   d.Comparison.ExpenseDiff,
			BalanceDiff:   d.Comparison.BalanceDiff,
		},
		Daily:      make([]DailyTotalResponse, len(d.Daily)),
		Categories: make([]CategoryTotalResponse, len(d.Categories)),
		Trend:      make([]TrendPointResponse, len(d.Trend)),
		Top:        ToTransactionResponses(d.Top),
	}

	for i, row := range d.Daily {
		resp.Daily[i] = DailyTotalResponse{Date: row.Date, Income: row.Income, Expense: row.Expense}
	}
	for i, row := range d.Categories {
		resp.Categories[i] = CategoryTotalResponse{Name: row.Name, Value: row.Value, Color: row.Color}
	}
	for i, row := range d.Trend {
		resp.Trend[i] = TrendPointResponse{Month: row.Month, Income: row.Income, Expense: row.Expense, Profit: row.Profit}
	}

	if d.Notable != nil {
		resp.Notable = &NotableDatesResponse{
			BestSalesDay:      toDayActivityResponse(d.Notable.BestSalesDay),
			HighestExpenseDay: toDayActivityResponse(d.Notable.HighestExpenseDay),
			BestProfitDay:     toDayActivityResponse(d.Notable.BestProfitDay),
		}
	}
	return resp
}
