package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type DailyRepo struct {
	db *sql.DB
}

func NewDailyRepo(db *sql.DB) *DailyRepo {
	return &DailyRepo{db: db}
}

type DailyInsert struct {
	Date       time.Time
	Mood       *int
	Energy     *int
	Note       *string
	Highlights *string
}

func (r *DailyRepo) Insert(ctx context.Context, in DailyInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_notes (date, mood, energy, note, highlights)
		VALUES (?, ?, ?, ?, ?)
	`, fmtDate(in.Date), in.Mood, in.Energy, in.Note, in.Highlights)
	if err != nil {
		return 0, fmt.Errorf("daily insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("daily last insert id: %w", err)
	}
	return id, nil
}

func (r *DailyRepo) GetByDate(ctx context.Context, date time.Time) (*DailyNote, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, date, mood, energy, note, highlights, created_at, updated_at
		FROM daily_notes
		WHERE date = ?
	`, fmtDate(date))
	return scanDaily(row)
}

// List returns entries newest-first, up to limit.
func (r *DailyRepo) List(ctx context.Context, limit int) ([]DailyNote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, mood, energy, note, highlights, created_at, updated_at
		FROM daily_notes
		ORDER BY date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("daily list: %w", err)
	}
	defer rows.Close()

	var out []DailyNote
	for rows.Next() {
		n, err := scanDaily(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily rows: %w", err)
	}
	return out, nil
}

func (r *DailyRepo) Update(ctx context.Context, n *DailyNote) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE daily_notes
		SET mood = ?, energy = ?, note = ?, highlights = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, n.Mood, n.Energy, n.Note, n.Highlights, n.ID)
	if err != nil {
		return fmt.Errorf("daily update: %w", err)
	}
	return nil
}

func scanDaily(row scanner) (*DailyNote, error) {
	var (
		n          DailyNote
		raw        string
		mood       sql.NullInt64
		energy     sql.NullInt64
		note       sql.NullString
		highlights sql.NullString
	)
	if err := row.Scan(&n.ID, &raw, &mood, &energy, &note, &highlights, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("daily scan: %w", err)
	}
	d, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	n.Date = d
	n.Mood = nullInt(mood)
	n.Energy = nullInt(energy)
	n.Note = nullStr(note)
	n.Highlights = nullStr(highlights)
	return &n, nil
}
