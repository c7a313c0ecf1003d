package services

import (
	"context"
	"fmt"
	"time"

	"wonderfinance/internal/core"
	"wonderfinance/internal/storage"
)

// Analysis looks back this many whole months of expense history.
const analysisLookbackMonths = 3

// BudgetService handles budget definitions and their derived reports.
type BudgetService struct {
	repo *storage.Repository
}

func NewBudgetService(repo *storage.Repository) *BudgetService {
	return &BudgetService{repo: repo}
}

// BudgetOverview pairs a budget with its current month-to-date status.
type BudgetOverview struct {
	Budget core.Budget
	Status core.BudgetStatus
}

func (s *BudgetService) Create(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return s.repo.CreateBudget(ctx, b)
}

func (s *BudgetService) Update(ctx context.Context, email, category string, upd storage.BudgetUpdate) error {
	if upd.Amount != nil && !upd.Amount.IsPositive() {
		return core.ErrAmountNotPositive
	}
	if upd.Period != nil && !upd.Period.Valid() {
		return core.ErrInvalidPeriod
	}
	return s.repo.UpdateBudget(ctx, email, category, upd)
}

func (s *BudgetService) Delete(ctx context.Context, email, category string) error {
	return s.repo.DeleteBudget(ctx, email, category)
}

// Overview returns every budget with its month-to-date expense status.
func (s *BudgetService) Overview(ctx context.Context, email string) ([]BudgetOverview, error) {
	budgets, err := s.repo.ListBudgets(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	if len(budgets) == 0 {
		return nil, nil
	}

	w := core.MonthToDate(time.Now())
	expenses, err := s.repo.ListTransactions(ctx, storage.TransactionFilter{
		UserEmail: email,
		Types:     []core.TransactionType{core.TypeExpense},
		Window:    &w,
	})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	overview := make([]BudgetOverview, 0, len(budgets))
	for _, b := range budgets {
		overview = append(overview, BudgetOverview{
			Budget: b,
			Status: core.CalculateBudgetStatus(b, expenses),
		})
	}
	return overview, nil
}

// Analysis compares each budget against per-month expense spending over the
// lookback window.
func (s *BudgetService) Analysis(ctx context.Context, email string) ([]core.BudgetAnalysis, error) {
	budgets, err := s.repo.ListBudgets(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}

	w := core.LastMonths(time.Now(), analysisLookbackMonths)
	expenses, err := s.repo.ListTransactions(ctx, storage.TransactionFilter{
		UserEmail: email,
		Types:     []core.TransactionType{core.TypeExpense},
		Window:    &w,
	})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	return core.AnalyzeBudgets(budgets, expenses), nil
}
