package core

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoTransactions is the sentinel returned when a trend analysis is asked
// for an empty transaction set. Callers surface it as a "no data" response
// rather than an empty report.
var ErrNoTransactions = errors.New("no transaction data available")

// UnknownMonth is the bucket used for transactions whose date is not a real
// calendar timestamp.
const UnknownMonth = "unknown"

// CategoryTotal is an amount summed over one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// TrendReport summarizes spending over a transaction window.
type TrendReport struct {
	TopCategories    []CategoryTotal            `json:"top_categories"`
	MonthlyTotals    map[string]decimal.Decimal `json:"monthly_totals"`
	TransactionCount int                        `json:"transaction_count"`
}

// MonthKey derives the "YYYY-MM" bucket for a transaction date. A zero date
// degrades to the literal "unknown" bucket instead of failing.
func MonthKey(date time.Time) string {
	if date.IsZero() {
		return UnknownMonth
	}
	return date.Format("2006-01")
}

// AnalyzeTrends accumulates category and month totals over the supplied
// transactions and reports the top three categories by summed amount. No type
// filtering is applied; the caller pre-filters if expense-only semantics are
// wanted. Ties keep first-encounter order (the sort is stable). Empty input
// returns ErrNoTransactions.
func AnalyzeTrends(transactions []Transaction) (TrendReport, error) {
	if len(transactions) == 0 {
		return TrendReport{}, ErrNoTransactions
	}

	var order []string
	categoryTotals := make(map[string]decimal.Decimal)
	monthlyTotals := make(map[string]decimal.Decimal)

	for _, tx := range transactions {
		if _, seen := categoryTotals[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		categoryTotals[tx.Category] = categoryTotals[tx.Category].Add(tx.Amount)

		month := MonthKey(tx.Date)
		monthlyTotals[month] = monthlyTotals[month].Add(tx.Amount)
	}

	ranked := make([]CategoryTotal, 0, len(order))
	for _, category := range order {
		ranked = append(ranked, CategoryTotal{Category: category, Total: categoryTotals[category]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	return TrendReport{
		TopCategories:    ranked,
		MonthlyTotals:    monthlyTotals,
		TransactionCount: len(transactions),
	}, nil
}
