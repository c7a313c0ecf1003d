package core

import (
	"github.com/shopspring/decimal"
)

const (
	StatusOnTrack    = "on_track"
	StatusOverBudget = "over_budget"
)

// BudgetStatus is the derived spend-versus-target comparison for one budget.
// It is recomputed on every request and never stored.
type BudgetStatus struct {
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentage_used"`
	Status      string          `json:"status"`
}

// CalculateBudgetStatus sums the amounts of transactions whose category
// matches the budget's category and compares the total against the target.
// The caller is responsible for filtering the transaction window and type;
// no type filtering happens here. A zero target yields a zero percentage
// rather than a division by zero.
func CalculateBudgetStatus(budget Budget, transactions []Transaction) BudgetStatus {
	spent := decimal.Zero
	for _, tx := range transactions {
		if tx.Category == budget.Category {
			spent = spent.Add(tx.Amount)
		}
	}

	remaining := budget.Amount.Sub(spent)

	percent := decimal.Zero
	if !budget.Amount.IsZero() {
		percent = spent.Div(budget.Amount).Mul(hundred)
	}

	status := StatusOnTrack
	if remaining.IsNegative() {
		status = StatusOverBudget
	}

	return BudgetStatus{
		Spent:       spent,
		Remaining:   remaining,
		PercentUsed: percent,
		Status:      status,
	}
}

// MonthComparison is one month of spend measured against a budget target.
type MonthComparison struct {
	Month       string          `json:"month"`
	Spent       decimal.Decimal `json:"spent"`
	Difference  decimal.Decimal `json:"difference"`
	PercentUsed decimal.Decimal `json:"percent_used"`
}

// BudgetAnalysis cross-tabulates one budget against per-month spending.
type BudgetAnalysis struct {
	Category        string            `json:"category"`
	BudgetAmount    decimal.Decimal   `json:"budget_amount"`
	MonthlySpending []MonthComparison `json:"monthly_spending"`
}

// AnalyzeBudgets sums the supplied transactions per (month, category) pair and
// emits, for every budget and every observed month, the spend in that budget's
// category, the difference to the target and the percentage used (zero for a
// zero target). Transactions without a category count under "Other". Months
// appear in first-encounter order, not calendar order; callers wanting
// calendar order must sort. The caller pre-filters the window and type
// (typically expenses over a multi-month lookback).
func AnalyzeBudgets(budgets []Budget, transactions []Transaction) []BudgetAnalysis {
	var monthOrder []string
	spending := make(map[string]map[string]decimal.Decimal)

	for _, tx := range transactions {
		month := MonthKey(tx.Date)
		category := tx.Category
		if category == "" {
			category = "Other"
		}

		byCategory, ok := spending[month]
		if !ok {
			byCategory = make(map[string]decimal.Decimal)
			spending[month] = byCategory
			monthOrder = append(monthOrder, month)
		}
		byCategory[category] = byCategory[category].Add(tx.Amount)
	}

	analysis := make([]BudgetAnalysis, 0, len(budgets))
	for _, budget := range budgets {
		entry := BudgetAnalysis{
			Category:        budget.Category,
			BudgetAmount:    budget.Amount,
			MonthlySpending: make([]MonthComparison, 0, len(monthOrder)),
		}

		for _, month := range monthOrder {
			spent := spending[month][budget.Category]

			percent := decimal.Zero
			if !budget.Amount.IsZero() {
				percent = spent.Div(budget.Amount).Mul(hundred)
			}

			entry.MonthlySpending = append(entry.MonthlySpending, MonthComparison{
				Month:       month,
				Spent:       spent,
				Difference:  budget.Amount.Sub(spent),
				PercentUsed: percent,
			})
		}

		analysis = append(analysis, entry)
	}

	return analysis
}
