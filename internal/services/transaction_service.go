// Package services orchestrates domain operations across storage, market
// data, messaging and the AI advisor.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"wonderfinance/internal/amqp"
	"wonderfinance/internal/core"
	"wonderfinance/internal/storage"
)

// Budget alerts fire once a category reaches this share of its target.
var alertThreshold = decimal.NewFromInt(80)

// AlertPublisher sends budget alerts to the notification queue.
type AlertPublisher interface {
	PublishBudgetAlert(ctx context.Context, alert *amqp.BudgetAlert) error
}

// TransactionService handles transaction logging and spending trends.
type TransactionService struct {
	repo   *storage.Repository
	alerts AlertPublisher
}

func NewTransactionService(repo *storage.Repository, alerts AlertPublisher) *TransactionService {
	return &TransactionService{repo: repo, alerts: alerts}
}

// Create validates and persists a transaction. Expenses additionally get a
// budget check; a queue alert goes out when the category crosses the
// threshold. Alert failures never fail the request.
func (s *TransactionService) Create(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	tx := draft.Transaction(time.Now())
	id, err := s.repo.CreateTransaction(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	tx.ID = id

	if tx.Type == core.TypeExpense {
		s.checkBudgetAlert(ctx, tx)
	}

	return tx, nil
}

// List returns the owner's transactions, optionally narrowed by category,
// day lookback and limit.
func (s *TransactionService) List(ctx context.Context, email, category string, days, limit int) ([]core.Transaction, error) {
	filter := storage.TransactionFilter{
		UserEmail: email,
		Category:  category,
		Limit:     limit,
	}
	if days > 0 {
		w := core.LastDays(time.Now(), days)
		filter.Window = &w
	}

	txs, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// Delete removes a transaction if it belongs to the caller.
func (s *TransactionService) Delete(ctx context.Context, email string, id int64) error {
	return s.repo.DeleteTransaction(ctx, email, id)
}

// Trends analyzes the owner's spending over the last days (all history when
// days is zero).
func (s *TransactionService) Trends(ctx context.Context, email string, days int) (core.TrendReport, error) {
	filter := storage.TransactionFilter{UserEmail: email}
	if days > 0 {
		w := core.LastDays(time.Now(), days)
		filter.Window = &w
	}

	txs, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return core.TrendReport{}, fmt.Errorf("list transactions: %w", err)
	}
	return core.AnalyzeTrends(txs)
}

func (s *TransactionService) checkBudgetAlert(ctx context.Context, tx core.Transaction) {
	if s.alerts == nil {
		return
	}

	budgets, err := s.repo.ListBudgets(ctx, tx.UserEmail)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load budgets for alert check",
			"email", tx.UserEmail, "error", err)
		return
	}

	var budget *core.Budget
	for i := range budgets {
		if budgets[i].Category == tx.Category {
			budget = &budgets[i]
			break
		}
	}
	if budget == nil {
		return
	}

	w := core.MonthToDate(time.Now())
	expenses, err := s.repo.ListTransactions(ctx, storage.TransactionFilter{
		UserEmail: tx.UserEmail,
		Category:  tx.Category,
		Types:     []core.TransactionType{core.TypeExpense},
		Window:    &w,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load spending for alert check",
			"email", tx.UserEmail, "category", tx.Category, "error", err)
		return
	}

	status := core.CalculateBudgetStatus(*budget, expenses)
	if status.PercentUsed.LessThan(alertThreshold) {
		return
	}

	alert := &amqp.BudgetAlert{
		UserEmail:   tx.UserEmail,
		Category:    tx.Category,
		Spent:       status.Spent,
		Limit:       budget.Amount,
		PercentUsed: status.PercentUsed,
		Status:      status.Status,
		Timestamp:   time.Now(),
	}
	if err := s.alerts.PublishBudgetAlert(ctx, alert); err != nil {
		slog.ErrorContext(ctx, "Failed to publish budget alert",
			"email", tx.UserEmail, "category", tx.Category, "error", err)
	}
}
