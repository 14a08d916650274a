package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

type TransactionInsert struct {
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description *string
	Type        string
}

func (r *TransactionRepo) Insert(ctx context.Context, in TransactionInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (date, amount, category, description, transaction_type)
		VALUES (?, ?, ?, ?, ?)
	`, fmtDate(in.Date), in.Amount.String(), in.Category, in.Description, in.Type)
	if err != nil {
		return 0, fmt.Errorf("transaction insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction last insert id: %w", err)
	}
	return id, nil
}

func (r *TransactionRepo) Get(ctx context.Context, id int64) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, amount, category, description, transaction_type, created_at
		FROM transactions
		WHERE id = ?
	`, id)
	return scanTransaction(row)
}

// List returns transactions newest-first, optionally filtered to one
// calendar month and/or category.
func (r *TransactionRepo) List(ctx context.Context, year int, month time.Month, category *string) ([]Transaction, error) {
	query := `
		SELECT id, date, amount, category, description, transaction_type, created_at
		FROM transactions
		WHERE 1=1`
	var args []any
	if year != 0 {
		// Date is stored as YYYY-MM-DD text, so a month is a prefix match.
		query += ` AND date LIKE ?`
		args = append(args, fmt.Sprintf("%04d-%02d-%%", year, int(month)))
	}
	if category != nil {
		query += ` AND category = ?`
		args = append(args, *category)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("transaction list: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// Since returns all transactions dated on or after the given date.
func (r *TransactionRepo) Since(ctx context.Context, since time.Time) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, amount, category, description, transaction_type, created_at
		FROM transactions
		WHERE date >= ?
		ORDER BY date ASC
	`, fmtDate(since))
	if err != nil {
		return nil, fmt.Errorf("transaction since: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *TransactionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("transaction delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("transaction delete rows affected: %w", err)
	}
	return n > 0, nil
}

func collectTransactions(rows *sql.Rows) ([]Transaction, error) {
	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transaction rows: %w", err)
	}
	return out, nil
}

func scanTransaction(row scanner) (*Transaction, error) {
	var (
		t           Transaction
		rawDate     string
		rawAmount   string
		description sql.NullString
	)
	if err := row.Scan(&t.ID, &rawDate, &rawAmount, &t.Category, &description, &t.Type, &t.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("transaction scan: %w", err)
	}
	d, err := parseDate(rawDate)
	if err != nil {
		return nil, err
	}
	amt, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", rawAmount, err)
	}
	t.Date = d
	t.Amount = amt
	t.Description = nullStr(description)
	return &t, nil
}

type BudgetRepo struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepo {
	return &BudgetRepo{db: db}
}

func (r *BudgetRepo) Insert(ctx context.Context, category string, monthlyLimit decimal.Decimal) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (category, monthly_limit) VALUES (?, ?)
	`, category, monthlyLimit.String())
	if err != nil {
		return 0, fmt.Errorf("budget insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("budget last insert id: %w", err)
	}
	return id, nil
}

func (r *BudgetRepo) Get(ctx context.Context, id int64) (*Budget, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, category, monthly_limit, created_at FROM budgets WHERE id = ?
	`, id)
	return scanBudget(row)
}

func (r *BudgetRepo) GetByCategory(ctx context.Context, category string) (*Budget, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, category, monthly_limit, created_at FROM budgets WHERE category = ?
	`, category)
	return scanBudget(row)
}

func (r *BudgetRepo) List(ctx context.Context) ([]Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category, monthly_limit, created_at FROM budgets ORDER BY category ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("budget list: %w", err)
	}
	defer rows.Close()

	var out []Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("budget rows: %w", err)
	}
	return out, nil
}

func (r *BudgetRepo) Update(ctx context.Context, b *Budget) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE budgets SET category = ?, monthly_limit = ? WHERE id = ?
	`, b.Category, b.MonthlyLimit.String(), b.ID)
	if err != nil {
		return fmt.Errorf("budget update: %w", err)
	}
	return nil
}

func (r *BudgetRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("budget delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("budget delete rows affected: %w", err)
	}
	return n > 0, nil
}

func scanBudget(row scanner) (*Budget, error) {
	var (
		b        Budget
		rawLimit string
	)
	if err := row.Scan(&b.ID, &b.Category, &rawLimit, &b.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("budget scan: %w", err)
	}
	limit, err := decimal.NewFromString(rawLimit)
	if err != nil {
		return nil, fmt.Errorf("parse monthly limit %q: %w", rawLimit, err)
	}
	b.MonthlyLimit = limit
	return &b, nil
}
