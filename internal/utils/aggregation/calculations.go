// Package aggregation computes the derived dashboard view models from an
// in-memory snapshot of a user's transactions. Every function is a pure,
// total function of its inputs: the snapshot is never mutated, time anchors
// are explicit arguments, and empty input yields empty (or zero) output.
package aggregation

import (
	"sort"
	"strings"
	"time"

	"github.com/ShopLedgerTH/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const dayKeyLayout = "2006-01-02"

// TopTransactionCount is the default size of the top-transactions ranking.
const TopTransactionCount = 5

// PeriodNone lets callers leave the window unset; it behaves like PeriodAll.
const PeriodNone = domain.PeriodFilter("")

var hundred = decimal.NewFromInt(100)

// dayOf truncates a timestamp to its local calendar day.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// monthBounds returns the first calendar day of refMonth's month and the
// first day of the following month, both local midnight.
func monthBounds(refMonth time.Time) (time.Time, time.Time) {
	y, m, _ := refMonth.Local().Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

// MonthData filters transactions to those whose date falls within the
// calendar month of refMonth, inclusive of both the first and last day.
func MonthData(txns []domain.Transaction, refMonth time.Time) []domain.Transaction {
	start, next := monthBounds(refMonth)
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		day := dayOf(t.Date)
		if !day.Before(start) && day.Before(next) {
			out = append(out, t)
		}
	}
	return out
}

// MonthSummary sums amounts by type. Zero transactions yields all zeros.
func MonthSummary(monthData []domain.Transaction) domain.MonthlySummary {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range monthData {
		if t.Type == domain.Income {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return domain.MonthlySummary{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// DailyBreakdown groups the month's transactions by calendar date and
// accumulates income/expense per day, sorted descending by date.
func DailyBreakdown(monthData []domain.Transaction) []domain.DailyTotal {
	byDay := make(map[string]*domain.DailyTotal)
	for _, t := range monthData {
		key := dayOf(t.Date).Format(dayKeyLayout)
		row, ok := byDay[key]
		if !ok {
			row = &domain.DailyTotal{Date: key, Income: decimal.Zero, Expense: decimal.Zero}
			byDay[key] = row
		}
		if t.Type == domain.Income {
			row.Income = row.Income.Add(t.Amount)
		} else {
			row.Expense = row.Expense.Add(t.Amount)
		}
	}

	out := make([]domain.DailyTotal, 0, len(byDay))
	for _, row := range byDay {
		out = append(out, *row)
	}
	// ISO date keys sort lexicographically.
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// CategoryBreakdown sums expense-type transactions by category. Unknown
// categories resolve to the fallback color rather than failing. Entries are
// ordered by value descending (name ascending on ties) for determinism.
func CategoryBreakdown(monthData []domain.Transaction) []domain.CategoryTotal {
	byCategory := make(map[string]decimal.Decimal)
	for _, t := range monthData {
		if t.Type != domain.Expense {
			continue
		}
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}

	out := make([]domain.CategoryTotal, 0, len(byCategory))
	for name, value := range byCategory {
		out = append(out, domain.CategoryTotal{
			Name:  name,
			Value: value,
			Color: domain.CategoryColor(name),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// MonthlyTrend computes one summary per calendar month for the six months
// ending at refDate's month, oldest first. Always exactly six entries;
// months with no data contribute zeros.
func MonthlyTrend(txns []domain.Transaction, refDate time.Time) []domain.TrendPoint {
	base, _ := monthBounds(refDate)
	out := make([]domain.TrendPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		month := base.AddDate(0, -i, 0)
		summary := MonthSummary(MonthData(txns, month))
		out = append(out, domain.TrendPoint{
			Month:   month.Format("2006-01"),
			Income:  summary.Income,
			Expense: summary.Expense,
			Profit:  summary.Balance,
		})
	}
	return out
}

// percentChange returns (current-prior)/prior*100, defined as zero when the
// denominator would be zero. The zero-denominator policy is deliberate: a
// month with no prior data shows "no change" rather than failing.
func percentChange(current, prior decimal.Decimal) decimal.Decimal {
	if prior.IsZero() {
		return decimal.Zero
	}
	return current.Sub(prior).Div(prior).Mul(hundred)
}

// LastMonthComparison compares refMonth's summary against the prior calendar
// month's. Percentage changes use the prior month's value as denominator;
// zero (non-positive, for balance) denominators yield a zero percent change
// while the absolute diffs are still computed normally.
func LastMonthComparison(txns []domain.Transaction, refMonth time.Time) domain.MonthComparison {
	start, _ := monthBounds(refMonth)
	prior := MonthSummary(MonthData(txns, start.AddDate(0, -1, 0)))
	current := MonthSummary(MonthData(txns, refMonth))

	balanceChange := decimal.Zero
	if prior.Balance.IsPositive() {
		balanceChange = percentChange(current.Balance, prior.Balance)
	}

	return domain.MonthComparison{
		IncomeChange:  percentChange(current.Income, prior.Income),
		ExpenseChange: percentChange(current.Expense, prior.Expense),
		BalanceChange: balanceChange,
		IncomeDiff:    current.Income.Sub(prior.Income),
		ExpenseDiff:   current.Expense.Sub(prior.Expense),
		BalanceDiff:   current.Balance.Sub(prior.Balance),
	}
}

// TopTransactions returns the n largest transactions by amount, descending.
// The sort is stable: equal amounts preserve their original relative order.
func TopTransactions(monthData []domain.Transaction, n int) []domain.Transaction {
	out := make([]domain.Transaction, len(monthData))
	copy(out, monthData)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// NotableDates groups the month by date and selects the day with the highest
// income sum, the highest expense sum, and the best income-expense profit.
// Each selected day retains its full transaction list for drill-down.
// Returns nil for an empty month.
func NotableDates(monthData []domain.Transaction) *domain.NotableDates {
	if len(monthData) == 0 {
		return nil
	}

	byDay := make(map[string]*domain.DayActivity)
	for _, t := range monthData {
		key := dayOf(t.Date).Format(dayKeyLayout)
		day, ok := byDay[key]
		if !ok {
			day = &domain.DayActivity{Date: key, Income: decimal.Zero, Expense: decimal.Zero}
			byDay[key] = day
		}
		day.Transactions = append(day.Transactions, t)
		if t.Type == domain.Income {
			day.Income = day.Income.Add(t.Amount)
		} else {
			day.Expense = day.Expense.Add(t.Amount)
		}
	}

	days := make([]domain.DayActivity, 0, len(byDay))
	for _, day := range byDay {
		days = append(days, *day)
	}
	// Ascending date order so strict comparisons resolve ties to the
	// earliest day deterministically.
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	best := days[0]
	highestExpense := days[0]
	bestProfit := days[0]
	for _, day := range days[1:] {
		if day.Income.GreaterThan(best.Income) {
			best = day
		}
		if day.Expense.GreaterThan(highestExpense.Expense) {
			highestExpense = day
		}
		if day.Profit().GreaterThan(bestProfit.Profit()) {
			bestProfit = day
		}
	}

	return &domain.NotableDates{
		BestSalesDay:      best,
		HighestExpenseDay: highestExpense,
		BestProfitDay:     bestProfit,
	}
}

// FilterTransactions applies, in order: a case-insensitive substring search
// over description OR category, an exact type filter, a relative date-window
// filter anchored at now, and a stable sort. Each filter is a strict subset
// operation; the whole pipeline is a pure function of its arguments.
func FilterTransactions(txns []domain.Transaction, filter domain.TransactionFilter, now time.Time) []domain.Transaction {
	out := make([]domain.Transaction, len(txns))
	copy(out, txns)

	if term := strings.ToLower(strings.TrimSpace(filter.SearchTerm)); term != "" {
		out = keep(out, func(t domain.Transaction) bool {
			return strings.Contains(strings.ToLower(t.Description), term) ||
				strings.Contains(strings.ToLower(t.Category), term)
		})
	}

	if filter.TypeFilter != "" && filter.TypeFilter != "all" {
		out = keep(out, func(t domain.Transaction) bool {
			return string(t.Type) == filter.TypeFilter
		})
	}

	switch filter.Period {
	case PeriodNone, domain.PeriodAll:
		// no window
	case domain.PeriodToday:
		today := dayOf(now)
		out = keep(out, func(t domain.Transaction) bool {
			return dayOf(t.Date).Equal(today)
		})
	case domain.PeriodWeek:
		cutoff := dayOf(now).AddDate(0, 0, -7)
		out = keep(out, func(t domain.Transaction) bool {
			return !dayOf(t.Date).Before(cutoff)
		})
	case domain.PeriodMonth:
		cutoff := dayOf(now).AddDate(0, 0, -30)
		out = keep(out, func(t domain.Transaction) bool {
			return !dayOf(t.Date).Before(cutoff)
		})
	}

	switch filter.SortBy {
	case domain.SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	case domain.SortOldest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	case domain.SortHighest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.GreaterThan(out[j].Amount) })
	case domain.SortLowest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Amount.LessThan(out[j].Amount) })
	}

	return out
}

func keep(txns []domain.Transaction, pred func(domain.Transaction) bool) []domain.Transaction {
	out := txns[:0]
	for _, t := range txns {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
