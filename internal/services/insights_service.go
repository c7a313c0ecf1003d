package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wonderfinance/internal/core"
	"wonderfinance/internal/storage"
)

// fallbackAdvice is returned when the advisor is unreachable. Callers get a
// useful answer instead of an error.
const fallbackAdvice = "Personalized advice is temporarily unavailable. " +
	"As a rule of thumb: keep essential spending under 50% of income, " +
	"save at least 20%, and review category budgets monthly."

// Advisor generates free-form financial guidance from a prompt.
type Advisor interface {
	Advise(ctx context.Context, prompt string) (string, error)
}

// InsightsService builds prompts from the user's financial data and asks the
// advisor. Advisor failures degrade to canned advice, never to an error.
type InsightsService struct {
	repo    *storage.Repository
	advisor Advisor
}

func NewInsightsService(repo *storage.Repository, advisor Advisor) *InsightsService {
	return &InsightsService{repo: repo, advisor: advisor}
}

// Suggest answers a free-form question with the user's profile and recent
// spending as context.
func (s *InsightsService) Suggest(ctx context.Context, email, question string) (string, error) {
	var b strings.Builder
	s.writeProfile(ctx, &b, email)
	s.writeSpending(ctx, &b, email)
	fmt.Fprintf(&b, "\nQuestion: %s\n", question)

	return s.advise(ctx, b.String()), nil
}

// AnalyzeTransaction comments on a single transaction in the context of the
// user's budgets.
func (s *InsightsService) AnalyzeTransaction(ctx context.Context, email string, tx core.Transaction) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this transaction for %s:\n", email)
	fmt.Fprintf(&b, "- amount: %s\n- category: %s\n- type: %s\n",
		core.FormatCurrency(tx.Amount), tx.Category, tx.Type)
	if tx.Description != "" {
		fmt.Fprintf(&b, "- description: %s\n", tx.Description)
	}
	s.writeBudgets(ctx, &b, email)
	b.WriteString("\nIs this purchase reasonable given the budgets? Answer briefly.\n")

	return s.advise(ctx, b.String()), nil
}

// BudgetInsights reviews the user's budgets against current spending.
func (s *InsightsService) BudgetInsights(ctx context.Context, email string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Review the monthly budgets for %s and suggest adjustments.\n", email)
	s.writeBudgets(ctx, &b, email)
	s.writeSpending(ctx, &b, email)

	return s.advise(ctx, b.String()), nil
}

func (s *InsightsService) advise(ctx context.Context, prompt string) string {
	answer, err := s.advisor.Advise(ctx, prompt)
	if err != nil {
		slog.WarnContext(ctx, "Advisor unavailable, serving fallback", "error", err)
		return fallbackAdvice
	}
	return answer
}

func (s *InsightsService) writeProfile(ctx context.Context, b *strings.Builder, email string) {
	user, err := s.repo.GetUser(ctx, email)
	if err != nil {
		return
	}
	fmt.Fprintf(b, "User profile:\n- monthly income: %s\n- risk tolerance: %d/10\n",
		core.FormatCurrency(user.MonthlyIncome), user.RiskTolerance)
	if user.Goals != "" {
		fmt.Fprintf(b, "- goals: %s\n", user.Goals)
	}
}

func (s *InsightsService) writeBudgets(ctx context.Context, b *strings.Builder, email string) {
	budgets, err := s.repo.ListBudgets(ctx, email)
	if err != nil || len(budgets) == 0 {
		return
	}
	b.WriteString("Budgets:\n")
	for _, budget := range budgets {
		fmt.Fprintf(b, "- %s: %s per %s\n",
			budget.Category, core.FormatCurrency(budget.Amount), budget.Period)
	}
}

func (s *InsightsService) writeSpending(ctx context.Context, b *strings.Builder, email string) {
	w := core.LastDays(time.Now(), 30)
	txs, err := s.repo.ListTransactions(ctx, storage.TransactionFilter{
		UserEmail: email,
		Types:     []core.TransactionType{core.TypeExpense},
		Window:    &w,
	})
	if err != nil {
		return
	}
	report, err := core.AnalyzeTrends(txs)
	if err != nil {
		return
	}
	b.WriteString("Top spending categories in the last 30 days:\n")
	for _, ct := range report.TopCategories {
		fmt.Fprintf(b, "- %s: %s\n", ct.Category, core.FormatCurrency(ct.Total))
	}
}
