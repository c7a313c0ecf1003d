// Package storage persists users, budgets and transactions in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"wonderfinance/internal/core"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateUser   = errors.New("user already exists")
	ErrDuplicateBudget = errors.New("budget already exists for category")
)

// ListTransactions caps result sets at this many rows regardless of the
// requested limit.
const maxListLimit = 1000

type Repository struct {
	db *sql.DB
}

func New(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ---- users ----

func (r *Repository) CreateUser(ctx context.Context, u core.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, monthly_income, risk_tolerance, goals, preferred_categories)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Email, u.PasswordHash, u.MonthlyIncome.String(), u.RiskTolerance, u.Goals, joinList(u.PreferredCategories))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "email", u.Email)
	return nil
}

func (r *Repository) GetUser(ctx context.Context, email string) (core.User, error) {
	var (
		u          core.User
		income     string
		categories string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT email, password_hash, monthly_income, risk_tolerance, goals, preferred_categories
		FROM users WHERE email = ?`, email).
		Scan(&u.Email, &u.PasswordHash, &income, &u.RiskTolerance, &u.Goals, &categories)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}

	if u.MonthlyIncome, err = decimal.NewFromString(income); err != nil {
		return core.User{}, fmt.Errorf("parse monthly income for %s: %w", email, err)
	}
	u.PreferredCategories = splitList(categories)
	return u, nil
}

// ProfileUpdate carries the optional fields of a profile patch. Nil fields
// are left unchanged.
type ProfileUpdate struct {
	MonthlyIncome       *decimal.Decimal
	RiskTolerance       *int
	Goals               *string
	PreferredCategories []string
}

func (r *Repository) UpdateProfile(ctx context.Context, email string, upd ProfileUpdate) error {
	var (
		sets []string
		args []any
	)
	if upd.MonthlyIncome != nil {
		sets = append(sets, "monthly_income = ?")
		args = append(args, upd.MonthlyIncome.String())
	}
	if upd.RiskTolerance != nil {
		sets = append(sets, "risk_tolerance = ?")
		args = append(args, *upd.RiskTolerance)
	}
	if upd.Goals != nil {
		sets = append(sets, "goals = ?")
		args = append(args, *upd.Goals)
	}
	if upd.PreferredCategories != nil {
		sets = append(sets, "preferred_categories = ?")
		args = append(args, joinList(upd.PreferredCategories))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, email)
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE email = ?", args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- budgets ----

func (r *Repository) CreateBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (user_email, category, amount, period, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		b.UserEmail, b.Category, b.Amount.String(), string(b.Period),
		nullableTime(b.StartDate), nullableTime(b.EndDate))
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateBudget
		}
		return fmt.Errorf("create budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget created", "email", b.UserEmail, "category", b.Category)
	return nil
}

func (r *Repository) ListBudgets(ctx context.Context, email string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_email, category, amount, period, start_date, end_date
		FROM budgets WHERE user_email = ? ORDER BY category`, email)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		var (
			b          core.Budget
			amount     string
			start, end sql.NullTime
		)
		if err := rows.Scan(&b.UserEmail, &b.Category, &amount, &b.Period, &start, &end); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse budget amount for %s/%s: %w", email, b.Category, err)
		}
		b.StartDate, b.EndDate = start.Time, end.Time
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// BudgetUpdate carries the optional fields of a budget patch.
type BudgetUpdate struct {
	Amount *decimal.Decimal
	Period *core.BudgetPeriod
}

func (r *Repository) UpdateBudget(ctx context.Context, email, category string, upd BudgetUpdate) error {
	var (
		sets []string
		args []any
	)
	if upd.Amount != nil {
		sets = append(sets, "amount = ?")
		args = append(args, upd.Amount.String())
	}
	if upd.Period != nil {
		sets = append(sets, "period = ?")
		args = append(args, string(*upd.Period))
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, email, category)
	res, err := r.db.ExecContext(ctx,
		"UPDATE budgets SET "+strings.Join(sets, ", ")+" WHERE user_email = ? AND category = ?", args...)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteBudget(ctx context.Context, email, category string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE user_email = ? AND category = ?", email, category)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- transactions ----

func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (user_email, amount, category, description, transaction_type,
			occurred_at, tags, symbol, asset_type, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserEmail, t.Amount.String(), t.Category, t.Description, string(t.Type),
		t.Date.UTC(), joinList(t.Tags), t.Symbol, t.AssetType, t.Quantity.String())
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"email", t.UserEmail,
		"category", t.Category,
		"type", t.Type)
	return id, nil
}

// TransactionFilter narrows a transaction listing. UserEmail is required;
// everything else is optional.
type TransactionFilter struct {
	UserEmail string
	Category  string
	Types     []core.TransactionType
	Window    *core.Window
	Limit     int
}

func (r *Repository) ListTransactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error) {
	query := `
		SELECT id, user_email, amount, category, description, transaction_type,
			occurred_at, tags, symbol, asset_type, quantity
		FROM transactions WHERE user_email = ?`
	args := []any{f.UserEmail}

	if f.Category != "" {
		query += " AND category = ?"
		args = append(args, f.Category)
	}
	if len(f.Types) > 0 {
		placeholders := make([]string, len(f.Types))
		for i, t := range f.Types {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		query += " AND transaction_type IN (" + strings.Join(placeholders, ", ") + ")"
	}
	if f.Window != nil {
		query += " AND occurred_at >= ? AND occurred_at <= ?"
		args = append(args, f.Window.Start.UTC(), f.Window.End.UTC())
	}

	limit := f.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	query += " ORDER BY occurred_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *Repository) DeleteTransaction(ctx context.Context, email string, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_email = ?", id, email)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- helpers ----

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var (
		t                core.Transaction
		amount, quantity string
		tags             string
		occurredAt       time.Time
	)
	err := rows.Scan(&t.ID, &t.UserEmail, &amount, &t.Category, &t.Description, &t.Type,
		&occurredAt, &tags, &t.Symbol, &t.AssetType, &quantity)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction amount: %w", err)
	}
	if t.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction quantity: %w", err)
	}
	t.Date = occurredAt
	t.Tags = splitList(tags)
	return t, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

func joinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
