package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type SleepRepo struct {
	db *sql.DB
}

func NewSleepRepo(db *sql.DB) *SleepRepo {
	return &SleepRepo{db: db}
}

type SleepInsert struct {
	Date          time.Time
	Bedtime       *time.Time
	WakeTime      *time.Time
	DurationHours *float64
	Quality       *int
	Notes         *string
}

func (r *SleepRepo) Insert(ctx context.Context, in SleepInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO sleep_entries (date, bedtime, wake_time, duration_hours, quality, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, fmtDate(in.Date), in.Bedtime, in.WakeTime, in.DurationHours, in.Quality, in.Notes)
	if err != nil {
		return 0, fmt.Errorf("sleep insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sleep last insert id: %w", err)
	}
	return id, nil
}

func (r *SleepRepo) GetByDate(ctx context.Context, date time.Time) (*SleepEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, bedtime, wake_time, duration_hours, quality, notes, created_at, updated_at
		FROM sleep_entries
		WHERE date = ?
	`, fmtDate(date))
	return scanSleep(row)
}

// List returns entries newest-first, up to limit.
func (r *SleepRepo) List(ctx context.Context, limit int) ([]SleepEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, bedtime, wake_time, duration_hours, quality, notes, created_at, updated_at
		FROM sleep_entries
		ORDER BY date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("sleep list: %w", err)
	}
	defer rows.Close()
	return collectSleep(rows)
}

// Since returns entries on or after the given date, newest-first.
func (r *SleepRepo) Since(ctx context.Context, since time.Time) ([]SleepEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, bedtime, wake_time, duration_hours, quality, notes, created_at, updated_at
		FROM sleep_entries
		WHERE date >= ?
		ORDER BY date DESC
	`, fmtDate(since))
	if err != nil {
		return nil, fmt.Errorf("sleep since: %w", err)
	}
	defer rows.Close()
	return collectSleep(rows)
}

func (r *SleepRepo) Update(ctx context.Context, e *SleepEntry) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sleep_entries
		SET bedtime = ?, wake_time = ?, duration_hours = ?, quality = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, e.Bedtime, e.WakeTime, e.DurationHours, e.Quality, e.Notes, e.ID)
	if err != nil {
		return fmt.Errorf("sleep update: %w", err)
	}
	return nil
}

func collectSleep(rows *sql.Rows) ([]SleepEntry, error) {
	var out []SleepEntry
	for rows.Next() {
		e, err := scanSleep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sleep rows: %w", err)
	}
	return out, nil
}

func scanSleep(row scanner) (*SleepEntry, error) {
	var (
		e        SleepEntry
		raw      string
		bedtime  sql.NullTime
		wakeTime sql.NullTime
		duration sql.NullFloat64
		quality  sql.NullInt64
		notes    sql.NullString
	)
	if err := row.Scan(&e.ID, &raw, &bedtime, &wakeTime, &duration, &quality, &notes, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("sleep scan: %w", err)
	}
	d, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	e.Date = d
	e.Bedtime = nullTime(bedtime)
	e.WakeTime = nullTime(wakeTime)
	e.DurationHours = nullFloat(duration)
	e.Quality = nullInt(quality)
	e.Notes = nullStr(notes)
	return &e, nil
}
