package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type WorkoutRepo struct {
	db *sql.DB
}

func NewWorkoutRepo(db *sql.DB) *WorkoutRepo {
	return &WorkoutRepo{db: db}
}

type WorkoutInsert struct {
	Date            time.Time
	WorkoutType     string
	Name            string
	DurationMinutes *int
	Notes           *string
}

func (r *WorkoutRepo) Insert(ctx context.Context, in WorkoutInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO workouts (date, workout_type, name, duration_minutes, notes)
		VALUES (?, ?, ?, ?, ?)
	`, fmtDate(in.Date), in.WorkoutType, in.Name, in.DurationMinutes, in.Notes)
	if err != nil {
		return 0, fmt.Errorf("workout insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("workout last insert id: %w", err)
	}
	return id, nil
}

func (r *WorkoutRepo) Get(ctx context.Context, id int64) (*Workout, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, workout_type, name, duration_minutes, notes, created_at
		FROM workouts
		WHERE id = ?
	`, id)
	return scanWorkout(row)
}

// List returns workouts newest-first, up to limit.
func (r *WorkoutRepo) List(ctx context.Context, limit int) ([]Workout, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, workout_type, name, duration_minutes, notes, created_at
		FROM workouts
		ORDER BY date DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("workout list: %w", err)
	}
	defer rows.Close()

	var out []Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workout rows: %w", err)
	}
	return out, nil
}

// Dates returns every date with at least one workout.
func (r *WorkoutRepo) Dates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT date FROM workouts`)
	if err != nil {
		return nil, fmt.Errorf("workout dates: %w", err)
	}
	defer rows.Close()
	return collectDates(rows, "workout dates")
}

func (r *WorkoutRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("workout count: %w", err)
	}
	return n, nil
}

func (r *WorkoutRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts WHERE date >= ?`, fmtDate(since))
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("workout count since: %w", err)
	}
	return n, nil
}

func (r *WorkoutRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("workout delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("workout delete rows affected: %w", err)
	}
	return n > 0, nil
}

func scanWorkout(row scanner) (*Workout, error) {
	var (
		w        Workout
		raw      string
		duration sql.NullInt64
		notes    sql.NullString
	)
	if err := row.Scan(&w.ID, &raw, &w.WorkoutType, &w.Name, &duration, &notes, &w.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("workout scan: %w", err)
	}
	d, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	w.Date = d
	w.DurationMinutes = nullInt(duration)
	w.Notes = nullStr(notes)
	return &w, nil
}
