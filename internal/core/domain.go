package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeInvestment TransactionType = "investment"
	TypeTransfer   TransactionType = "transfer"
)

const (
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodYearly  BudgetPeriod = "yearly"
)

const (
	AssetStock  = "stock"
	AssetCrypto = "crypto"
)

type (
	TransactionType string
	BudgetPeriod    string

	// Transaction is a single recorded movement of money. Immutable once
	// persisted; removed only by an explicit delete with a matching owner.
	Transaction struct {
		ID          int64
		UserEmail   string
		Amount      decimal.Decimal
		Category    string
		Type        TransactionType
		Date        time.Time
		Description string
		Tags        []string
		Symbol      string
		Quantity    decimal.Decimal
		AssetType   string
	}

	// TransactionDraft is a candidate transaction before validation. Amount is
	// a pointer so that an absent field and a present-but-zero field produce
	// different validation errors.
	TransactionDraft struct {
		UserEmail   string
		Amount      *decimal.Decimal
		Category    string
		Type        TransactionType
		Date        time.Time
		Description string
		Tags        []string
		Symbol      string
		Quantity    decimal.Decimal
		AssetType   string
	}

	// Budget is a spending target for one category. At most one budget exists
	// per (owner, category) pair.
	Budget struct {
		UserEmail string
		Category  string
		Amount    decimal.Decimal
		Period    BudgetPeriod
		StartDate time.Time
		EndDate   time.Time
	}

	// User holds the account record and optional profile fields.
	User struct {
		Email               string
		PasswordHash        string
		MonthlyIncome       decimal.Decimal
		RiskTolerance       int // 1-10
		Goals               string
		PreferredCategories []string
	}
)

var (
	ErrMissingAmount     = errors.New("missing field: amount")
	ErrMissingCategory   = errors.New("missing field: category")
	ErrMissingType       = errors.New("missing field: transaction_type")
	ErrMissingUser       = errors.New("missing field: user_email")
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrInvalidType       = errors.New("invalid transaction type")
	ErrEmptyCategory     = errors.New("empty category")
	ErrInvalidPeriod     = errors.New("invalid budget period")
	ErrInvalidRisk       = errors.New("risk tolerance must be between 1 and 10")
)

// Valid reports whether t is one of the closed set of transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeInvestment, TypeTransfer:
		return true
	}
	return false
}

// Valid reports whether p is one of the closed set of budget periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodMonthly, PeriodWeekly, PeriodYearly:
		return true
	}
	return false
}

// Validate checks the draft against the required-field and positivity rules.
// The check order is fixed: amount, category, transaction_type, user_email,
// then amount positivity, then type membership. The first failure wins so
// equivalent inputs always produce identical error messages.
func (d TransactionDraft) Validate() error {
	if d.Amount == nil {
		return ErrMissingAmount
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrMissingCategory
	}
	if d.Type == "" {
		return ErrMissingType
	}
	if strings.TrimSpace(d.UserEmail) == "" {
		return ErrMissingUser
	}
	if !d.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if !d.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// Transaction converts a validated draft into a Transaction. A zero date
// defaults to now so undated submissions still land in the current month.
func (d TransactionDraft) Transaction(now time.Time) Transaction {
	date := d.Date
	if date.IsZero() {
		date = now
	}
	return Transaction{
		UserEmail:   d.UserEmail,
		Amount:      *d.Amount,
		Category:    d.Category,
		Type:        d.Type,
		Date:        date,
		Description: d.Description,
		Tags:        d.Tags,
		Symbol:      d.Symbol,
		Quantity:    d.Quantity,
		AssetType:   d.AssetType,
	}
}

// Validate checks a budget definition before it is persisted.
func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if !b.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if !b.Period.Valid() {
		return ErrInvalidPeriod
	}
	return nil
}
