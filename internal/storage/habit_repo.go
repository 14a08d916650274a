package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type HabitRepo struct {
	db *sql.DB
}

func NewHabitRepo(db *sql.DB) *HabitRepo {
	return &HabitRepo{db: db}
}

type HabitInsert struct {
	Name            string
	Category        *string
	Icon            *string
	TargetFrequency *string
	Active          bool
}

func (r *HabitRepo) Insert(ctx context.Context, in HabitInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (name, category, icon, target_frequency, active)
		VALUES (?, ?, ?, ?, ?)
	`, in.Name, in.Category, in.Icon, in.TargetFrequency, boolToInt(in.Active))
	if err != nil {
		return 0, fmt.Errorf("habit insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("habit last insert id: %w", err)
	}
	return id, nil
}

func (r *HabitRepo) Get(ctx context.Context, id int64) (*Habit, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, icon, target_frequency, active, created_at
		FROM habits
		WHERE id = ?
	`, id)
	return scanHabit(row)
}

// List returns habits newest-first, optionally filtered by category and/or
// active flag.
func (r *HabitRepo) List(ctx context.Context, category *string, active *bool) ([]Habit, error) {
	query := `
		SELECT id, name, category, icon, target_frequency, active, created_at
		FROM habits
		WHERE 1=1`
	var args []any
	if category != nil {
		query += ` AND category = ?`
		args = append(args, *category)
	}
	if active != nil {
		query += ` AND active = ?`
		args = append(args, boolToInt(*active))
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	defer rows.Close()

	var out []Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit list rows: %w", err)
	}
	return out, nil
}

func (r *HabitRepo) ActiveIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM habits WHERE active = 1`)
	if err != nil {
		return nil, fmt.Errorf("habit active ids: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("habit active id scan: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit active ids rows: %w", err)
	}
	return out, nil
}

func (r *HabitRepo) Counts(ctx context.Context) (total, active int, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(active), 0) FROM habits`)
	if err := row.Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("habit counts: %w", err)
	}
	return total, active, nil
}

func (r *HabitRepo) Update(ctx context.Context, h *Habit) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE habits
		SET name = ?, category = ?, icon = ?, target_frequency = ?, active = ?
		WHERE id = ?
	`, h.Name, h.Category, h.Icon, h.TargetFrequency, boolToInt(h.Active), h.ID)
	if err != nil {
		return fmt.Errorf("habit update: %w", err)
	}
	return nil
}

// Delete removes a habit and its logs atomically.
func (r *HabitRepo) Delete(ctx context.Context, id int64) error {
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM habit_logs WHERE habit_id = ?`, id); err != nil {
			return fmt.Errorf("habit logs delete: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id); err != nil {
			return fmt.Errorf("habit delete: %w", err)
		}
		return nil
	})
}

type HabitLogUpsert struct {
	HabitID   int64
	Date      time.Time
	Completed bool
	Value     *float64
}

// UpsertLog records a completion for one date; logging an already-logged date
// updates the row in place.
func (r *HabitRepo) UpsertLog(ctx context.Context, in HabitLogUpsert) (*HabitLog, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO habit_logs (habit_id, date, completed, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(habit_id, date) DO UPDATE SET completed = excluded.completed, value = excluded.value
	`, in.HabitID, fmtDate(in.Date), boolToInt(in.Completed), in.Value)
	if err != nil {
		return nil, fmt.Errorf("habit log upsert: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, habit_id, date, completed, value, created_at
		FROM habit_logs
		WHERE habit_id = ? AND date = ?
	`, in.HabitID, fmtDate(in.Date))
	return scanHabitLog(row)
}

// ListLogs returns a habit's logs on or after since, newest-first.
func (r *HabitRepo) ListLogs(ctx context.Context, habitID int64, since time.Time) ([]HabitLog, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, habit_id, date, completed, value, created_at
		FROM habit_logs
		WHERE habit_id = ? AND date >= ?
		ORDER BY date DESC
	`, habitID, fmtDate(since))
	if err != nil {
		return nil, fmt.Errorf("habit log list: %w", err)
	}
	defer rows.Close()

	var out []HabitLog
	for rows.Next() {
		l, err := scanHabitLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit log rows: %w", err)
	}
	return out, nil
}

// CompletedDates returns every date on which the habit was marked complete.
func (r *HabitRepo) CompletedDates(ctx context.Context, habitID int64) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date FROM habit_logs
		WHERE habit_id = ? AND completed = 1
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("habit completed dates: %w", err)
	}
	defer rows.Close()
	return collectDates(rows, "habit completed dates")
}

// CompletionsSince returns (habit, date) completion pairs on or after since,
// across all habits.
func (r *HabitRepo) CompletionsSince(ctx context.Context, since time.Time) (ids []int64, dates []time.Time, err error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT habit_id, date FROM habit_logs
		WHERE completed = 1 AND date >= ?
	`, fmtDate(since))
	if err != nil {
		return nil, nil, fmt.Errorf("habit completions since: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, nil, fmt.Errorf("habit completion scan: %w", err)
		}
		d, err := parseDate(raw)
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("habit completions rows: %w", err)
	}
	return ids, dates, nil
}

func collectDates(rows *sql.Rows, op string) ([]time.Time, error) {
	var out []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		d, err := parseDate(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}

func scanHabit(row scanner) (*Habit, error) {
	var (
		h         Habit
		category  sql.NullString
		icon      sql.NullString
		frequency sql.NullString
		active    int
	)
	if err := row.Scan(&h.ID, &h.Name, &category, &icon, &frequency, &active, &h.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("habit scan: %w", err)
	}
	h.Category = nullStr(category)
	h.Icon = nullStr(icon)
	h.TargetFrequency = nullStr(frequency)
	h.Active = active != 0
	return &h, nil
}

func scanHabitLog(row scanner) (*HabitLog, error) {
	var (
		l         HabitLog
		raw       string
		completed int
		value     sql.NullFloat64
	)
	if err := row.Scan(&l.ID, &l.HabitID, &raw, &completed, &value, &l.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("habit log scan: %w", err)
	}
	d, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	l.Date = d
	l.Completed = completed != 0
	l.Value = nullFloat(value)
	return &l, nil
}
