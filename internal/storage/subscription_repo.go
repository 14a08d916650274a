package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionRepo struct {
	db *sql.DB
}

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

type SubscriptionInsert struct {
	Name         string
	Cost         decimal.Decimal
	BillingCycle string
	NextRenewal  time.Time
	Category     *string
	Active       bool
	Notes        *string
}

func (r *SubscriptionRepo) Insert(ctx context.Context, in SubscriptionInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (name, cost, billing_cycle, next_renewal, category, active, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Cost.String(), in.BillingCycle, fmtDate(in.NextRenewal), in.Category, boolToInt(in.Active), in.Notes)
	if err != nil {
		return 0, fmt.Errorf("subscription insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("subscription last insert id: %w", err)
	}
	return id, nil
}

func (r *SubscriptionRepo) Get(ctx context.Context, id int64) (*Subscription, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, cost, billing_cycle, next_renewal, category, active, notes, created_at
		FROM subscriptions
		WHERE id = ?
	`, id)
	return scanSubscription(row)
}

// List returns subscriptions ordered by name, optionally filtered by active
// flag.
func (r *SubscriptionRepo) List(ctx context.Context, active *bool) ([]Subscription, error) {
	query := `
		SELECT id, name, cost, billing_cycle, next_renewal, category, active, notes, created_at
		FROM subscriptions`
	var args []any
	if active != nil {
		query += ` WHERE active = ?`
		args = append(args, boolToInt(*active))
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("subscription list: %w", err)
	}
	defer rows.Close()

	var out []Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("subscription rows: %w", err)
	}
	return out, nil
}

func (r *SubscriptionRepo) Update(ctx context.Context, s *Subscription) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE subscriptions
		SET name = ?, cost = ?, billing_cycle = ?, next_renewal = ?, category = ?, active = ?, notes = ?
		WHERE id = ?
	`, s.Name, s.Cost.String(), s.BillingCycle, fmtDate(s.NextRenewal), s.Category, boolToInt(s.Active), s.Notes, s.ID)
	if err != nil {
		return fmt.Errorf("subscription update: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("subscription delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("subscription delete rows affected: %w", err)
	}
	return n > 0, nil
}

func scanSubscription(row scanner) (*Subscription, error) {
	var (
		s          Subscription
		rawCost    string
		rawRenewal string
		category   sql.NullString
		active     int
		notes      sql.NullString
	)
	if err := row.Scan(&s.ID, &s.Name, &rawCost, &s.BillingCycle, &rawRenewal, &category, &active, &notes, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("subscription scan: %w", err)
	}
	cost, err := decimal.NewFromString(rawCost)
	if err != nil {
		return nil, fmt.Errorf("parse cost %q: %w", rawCost, err)
	}
	renewal, err := parseDate(rawRenewal)
	if err != nil {
		return nil, err
	}
	s.Cost = cost
	s.NextRenewal = renewal
	s.Category = nullStr(category)
	s.Active = active != 0
	s.Notes = nullStr(notes)
	return &s, nil
}
