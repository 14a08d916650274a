package engine

import (
	"context"
	"fmt"

	"github.com/madspljoensson/life-dashboard/internal/storage"
)

// DailyUpdate carries partial daily-note updates; nil fields are left
// unchanged.
type DailyUpdate struct {
	Mood       *int
	Energy     *int
	Note       *string
	Highlights *string
}

func validRating(v *int) error {
	if v != nil && (*v < 1 || *v > 5) {
		return fmt.Errorf("rating %d out of range 1-5", *v)
	}
	return nil
}

func (s *Service) CreateDailyNote(ctx context.Context, in storage.DailyInsert) (*storage.DailyNote, error) {
	if err := validRating(in.Mood); err != nil {
		return nil, fmt.Errorf("mood: %w", err)
	}
	if err := validRating(in.Energy); err != nil {
		return nil, fmt.Errorf("energy: %w", err)
	}
	if _, err := s.daily.Insert(ctx, in); err != nil {
		return nil, err
	}
	return s.daily.GetByDate(ctx, in.Date)
}

func (s *Service) DailyNote(ctx context.Context, date string) (*storage.DailyNote, error) {
	d, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	return s.daily.GetByDate(ctx, d)
}

// TodayNote returns today's note, or nil when none was written yet.
func (s *Service) TodayNote(ctx context.Context) (*storage.DailyNote, error) {
	return s.daily.GetByDate(ctx, s.today())
}

func (s *Service) DailyNotes(ctx context.Context, limit int) ([]storage.DailyNote, error) {
	notes, err := s.daily.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []storage.DailyNote{}
	}
	return notes, nil
}

func (s *Service) UpdateDailyNote(ctx context.Context, date string, patch DailyUpdate) (*storage.DailyNote, error) {
	d, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	n, err := s.daily.GetByDate(ctx, d)
	if err != nil || n == nil {
		return nil, err
	}
	if patch.Mood != nil {
		if err := validRating(patch.Mood); err != nil {
			return nil, fmt.Errorf("mood: %w", err)
		}
		n.Mood = patch.Mood
	}
	if patch.Energy != nil {
		if err := validRating(patch.Energy); err != nil {
			return nil, fmt.Errorf("energy: %w", err)
		}
		n.Energy = patch.Energy
	}
	if patch.Note != nil {
		n.Note = patch.Note
	}
	if patch.Highlights != nil {
		n.Highlights = patch.Highlights
	}
	if err := s.daily.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
