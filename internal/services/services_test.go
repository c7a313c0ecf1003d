package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"wonderfinance/internal/amqp"
	"wonderfinance/internal/core"
	"wonderfinance/internal/storage"
)

const testEmail = "jane@example.com"

func testRepo(t *testing.T) *storage.Repository {
	t.Helper()
	repo, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	err = repo.CreateUser(context.Background(), core.User{
		Email:         testEmail,
		PasswordHash:  "hash",
		RiskTolerance: 5,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return repo
}

type capturingPublisher struct {
	alerts []*amqp.BudgetAlert
}

func (p *capturingPublisher) PublishBudgetAlert(ctx context.Context, alert *amqp.BudgetAlert) error {
	p.alerts = append(p.alerts, alert)
	return nil
}

func draft(amount, category string, txType core.TransactionType) core.TransactionDraft {
	a := decimal.RequireFromString(amount)
	return core.TransactionDraft{
		UserEmail: testEmail,
		Amount:    &a,
		Category:  category,
		Type:      txType,
		Date:      time.Now(),
	}
}

func seedBudget(t *testing.T, repo *storage.Repository, category, amount string) {
	t.Helper()
	err := repo.CreateBudget(context.Background(), core.Budget{
		UserEmail: testEmail,
		Category:  category,
		Amount:    decimal.RequireFromString(amount),
		Period:    core.PeriodMonthly,
	})
	if err != nil {
		t.Fatalf("seed budget: %v", err)
	}
}
