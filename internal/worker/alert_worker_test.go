package worker

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"wonderfinance/internal/amqp"
	"wonderfinance/internal/core"
)

type capturingNotifier struct {
	emails   []string
	subjects []string
	bodies   []string
	err      error
}

func (n *capturingNotifier) Notify(ctx context.Context, email, subject, body string) error {
	if n.err != nil {
		return n.err
	}
	n.emails = append(n.emails, email)
	n.subjects = append(n.subjects, subject)
	n.bodies = append(n.bodies, body)
	return nil
}

func alert(status, spent, limit, percent string) *amqp.BudgetAlert {
	return &amqp.BudgetAlert{
		UserEmail:   "jane@example.com",
		Category:    "groceries",
		Spent:       decimal.RequireFromString(spent),
		Limit:       decimal.RequireFromString(limit),
		PercentUsed: decimal.RequireFromString(percent),
		Status:      status,
	}
}

func TestHandleAlertDelivers(t *testing.T) {
	notifier := &capturingNotifier{}
	w := NewAlertWorker(notifier)

	err := w.HandleAlert(context.Background(), alert(core.StatusOnTrack, "850", "1000", "85"))
	if err != nil {
		t.Fatalf("HandleAlert: %v", err)
	}
	if len(notifier.emails) != 1 || notifier.emails[0] != "jane@example.com" {
		t.Fatalf("unexpected deliveries %v", notifier.emails)
	}
	if !strings.HasPrefix(notifier.subjects[0], "Budget warning") {
		t.Fatalf("subject = %q", notifier.subjects[0])
	}
	if !strings.Contains(notifier.bodies[0], "₹850.00") {
		t.Fatalf("body missing spend: %q", notifier.bodies[0])
	}
}

func TestHandleAlertOverBudgetSubject(t *testing.T) {
	notifier := &capturingNotifier{}
	w := NewAlertWorker(notifier)

	err := w.HandleAlert(context.Background(), alert(core.StatusOverBudget, "1200", "1000", "120"))
	if err != nil {
		t.Fatalf("HandleAlert: %v", err)
	}
	if !strings.HasPrefix(notifier.subjects[0], "Budget exceeded") {
		t.Fatalf("subject = %q", notifier.subjects[0])
	}
	if !strings.Contains(notifier.bodies[0], "₹200.00 over") {
		t.Fatalf("body missing overage: %q", notifier.bodies[0])
	}
}

func TestHandleAlertPropagatesDeliveryFailure(t *testing.T) {
	w := NewAlertWorker(&capturingNotifier{err: errors.New("smtp down")})

	err := w.HandleAlert(context.Background(), alert(core.StatusOnTrack, "850", "1000", "85"))
	if err == nil {
		t.Fatal("delivery failure should requeue the alert")
	}
}
