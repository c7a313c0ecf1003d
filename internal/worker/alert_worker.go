// Package worker turns queued budget alerts into user notifications.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"wonderfinance/internal/amqp"
	"wonderfinance/internal/core"
)

// Notifier delivers a formatted alert message to a user.
type Notifier interface {
	Notify(ctx context.Context, email, subject, body string) error
}

// LogNotifier writes notifications to the structured log. It stands in when
// no mail or push channel is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, email, subject, body string) error {
	slog.InfoContext(ctx, "Budget notification",
		"email", email,
		"subject", subject,
		"body", body)
	return nil
}

// AlertWorker consumes budget alerts and hands them to the notifier.
type AlertWorker struct {
	notifier Notifier
}

func NewAlertWorker(notifier Notifier) *AlertWorker {
	return &AlertWorker{notifier: notifier}
}

// HandleAlert formats one alert and delivers it. Returning an error requeues
// the message.
func (w *AlertWorker) HandleAlert(ctx context.Context, alert *amqp.BudgetAlert) error {
	subject, body := FormatAlert(alert)
	if err := w.notifier.Notify(ctx, alert.UserEmail, subject, body); err != nil {
		return fmt.Errorf("deliver notification: %w", err)
	}
	return nil
}

// FormatAlert renders a human-readable subject and body for an alert.
func FormatAlert(alert *amqp.BudgetAlert) (subject, body string) {
	if alert.Status == core.StatusOverBudget {
		subject = fmt.Sprintf("Budget exceeded: %s", alert.Category)
	} else {
		subject = fmt.Sprintf("Budget warning: %s", alert.Category)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have spent %s of your %s budget for %s (%s%%).",
		core.FormatCurrency(alert.Spent),
		core.FormatCurrency(alert.Limit),
		alert.Category,
		alert.PercentUsed.Round(1))
	if alert.Status == core.StatusOverBudget {
		over := alert.Spent.Sub(alert.Limit)
		fmt.Fprintf(&b, " You are %s over the limit.", core.FormatCurrency(over))
	}
	return subject, b.String()
}
