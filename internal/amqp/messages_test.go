package amqp

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBudgetAlertRoundTrip(t *testing.T) {
	alert := &BudgetAlert{
		UserEmail:   "jane@example.com",
		Category:    "groceries",
		Spent:       decimal.RequireFromString("950.50"),
		Limit:       decimal.RequireFromString("1000"),
		PercentUsed: decimal.RequireFromString("95.05"),
		Status:      "on_track",
		Timestamp:   time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}

	data, err := alert.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := BudgetAlertFromJSON(data)
	if err != nil {
		t.Fatalf("BudgetAlertFromJSON: %v", err)
	}
	if got.UserEmail != alert.UserEmail || got.Category != alert.Category {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.Spent.Equal(alert.Spent) || !got.PercentUsed.Equal(alert.PercentUsed) {
		t.Fatalf("decimal fields mismatch: %+v", got)
	}
}

func TestBudgetAlertFromJSONRejectsGarbage(t *testing.T) {
	if _, err := BudgetAlertFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
