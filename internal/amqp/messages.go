package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetAlert is published when an expense pushes a category near or past
// its budget. The worker formats and delivers the notification.
type BudgetAlert struct {
	UserEmail   string          `json:"user_email"`
	Category    string          `json:"category"`
	Spent       decimal.Decimal `json:"spent"`
	Limit       decimal.Decimal `json:"limit"`
	PercentUsed decimal.Decimal `json:"percent_used"`
	Status      string          `json:"status"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (m *BudgetAlert) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertFromJSON(data []byte) (*BudgetAlert, error) {
	var msg BudgetAlert
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
