package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

type TaskInsert struct {
	Title            string
	Description      *string
	Status           string
	Priority         string
	DueDate          *time.Time
	Recurring        bool
	RecurringPattern *string
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	var due *string
	if in.DueDate != nil {
		s := fmtDate(*in.DueDate)
		due = &s
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (title, description, status, priority, due_date, recurring, recurring_pattern)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Title, in.Description, in.Status, in.Priority, due, boolToInt(in.Recurring), in.RecurringPattern)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, status, priority, due_date, completed_at, recurring, recurring_pattern, created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, id)
	return scanTask(row)
}

// List returns tasks newest-first, optionally filtered by status and/or
// priority.
func (r *TaskRepo) List(ctx context.Context, status, priority *string) ([]Task, error) {
	query := `
		SELECT id, title, description, status, priority, due_date, completed_at, recurring, recurring_pattern, created_at, updated_at
		FROM tasks
		WHERE 1=1`
	var args []any
	if status != nil {
		query += ` AND status = ?`
		args = append(args, *status)
	}
	if priority != nil {
		query += ` AND priority = ?`
		args = append(args, *priority)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

// ListOverdue returns unfinished tasks due strictly before the given date,
// soonest-due first.
func (r *TaskRepo) ListOverdue(ctx context.Context, before time.Time) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, status, priority, due_date, completed_at, recurring, recurring_pattern, created_at, updated_at
		FROM tasks
		WHERE status != 'done' AND due_date IS NOT NULL AND due_date < ?
		ORDER BY due_date ASC
	`, fmtDate(before))
	if err != nil {
		return nil, fmt.Errorf("task overdue list: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *TaskRepo) Update(ctx context.Context, t *Task) error {
	var due *string
	if t.DueDate != nil {
		s := fmtDate(*t.DueDate)
		due = &s
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, due_date = ?,
			completed_at = ?, recurring = ?, recurring_pattern = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, t.Title, t.Description, t.Status, t.Priority, due, t.CompletedAt, boolToInt(t.Recurring), t.RecurringPattern, t.ID)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("task delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("task delete rows affected: %w", err)
	}
	return n > 0, nil
}

func collectTasks(rows *sql.Rows) ([]Task, error) {
	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task rows: %w", err)
	}
	return out, nil
}

func scanTask(row scanner) (*Task, error) {
	var (
		t           Task
		description sql.NullString
		rawDue      sql.NullString
		completedAt sql.NullTime
		recurring   int
		pattern     sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Title, &description, &t.Status, &t.Priority, &rawDue, &completedAt, &recurring, &pattern, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}
	t.Description = nullStr(description)
	if rawDue.Valid {
		d, err := parseDate(rawDue.String)
		if err != nil {
			return nil, err
		}
		t.DueDate = &d
	}
	t.CompletedAt = nullTime(completedAt)
	t.Recurring = recurring != 0
	t.RecurringPattern = nullStr(pattern)
	return &t, nil
}
