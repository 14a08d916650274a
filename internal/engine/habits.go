package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/madspljoensson/life-dashboard/internal/analytics"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

// Trailing windows for the habit completion rates.
const (
	rateWindowShort = 7
	rateWindowLong  = 30
)

// HabitStats is the dashboard-level habit overview. The rates are nil when
// there are no active habits: "no data" is not the same as 0%.
type HabitStats struct {
	TotalHabits       int      `json:"total_habits"`
	ActiveHabits      int      `json:"active_habits"`
	CompletionRate7d  *float64 `json:"completion_rate_7d"`
	CompletionRate30d *float64 `json:"completion_rate_30d"`
	ActiveStreaks     int      `json:"active_streaks"`
}

// HabitPatch carries partial habit updates; nil fields are left unchanged.
type HabitPatch struct {
	Name            *string
	Category        *string
	Icon            *string
	TargetFrequency *string
	Active          *bool
}

func (s *Service) CreateHabit(ctx context.Context, in storage.HabitInsert) (*storage.Habit, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	in.Name = name

	id, err := s.habits.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.habits.Get(ctx, id)
}

func (s *Service) Habit(ctx context.Context, id int64) (*storage.Habit, error) {
	return s.habits.Get(ctx, id)
}

func (s *Service) Habits(ctx context.Context, category *string, active *bool) ([]storage.Habit, error) {
	return s.habits.List(ctx, category, active)
}

func (s *Service) UpdateHabit(ctx context.Context, id int64, patch HabitPatch) (*storage.Habit, error) {
	h, err := s.habits.Get(ctx, id)
	if err != nil || h == nil {
		return nil, err
	}
	if patch.Name != nil {
		name, err := normalizeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		h.Name = name
	}
	if patch.Category != nil {
		h.Category = patch.Category
	}
	if patch.Icon != nil {
		h.Icon = patch.Icon
	}
	if patch.TargetFrequency != nil {
		h.TargetFrequency = patch.TargetFrequency
	}
	if patch.Active != nil {
		h.Active = *patch.Active
	}
	if err := s.habits.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *Service) DeleteHabit(ctx context.Context, id int64) (bool, error) {
	h, err := s.habits.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if h == nil {
		return false, nil
	}
	return true, s.habits.Delete(ctx, id)
}

// LogHabit records a completion for one date; re-logging the same date
// updates the existing entry.
func (s *Service) LogHabit(ctx context.Context, habitID int64, date time.Time, completed bool, value *float64) (*storage.HabitLog, error) {
	h, err := s.habits.Get(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	return s.habits.UpsertLog(ctx, storage.HabitLogUpsert{
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
		Value:     value,
	})
}

// HabitLogs returns a habit's logs over the trailing days-day window,
// newest-first. Returns nil when the habit does not exist.
func (s *Service) HabitLogs(ctx context.Context, habitID int64, days int) ([]storage.HabitLog, error) {
	h, err := s.habits.Get(ctx, habitID)
	if err != nil || h == nil {
		return nil, err
	}
	since := s.today().AddDate(0, 0, -days)
	logs, err := s.habits.ListLogs(ctx, habitID, since)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []storage.HabitLog{}
	}
	return logs, nil
}

// HabitStreak returns the habit's current and longest consecutive-day runs,
// or nil when the habit does not exist.
func (s *Service) HabitStreak(ctx context.Context, habitID int64) (*analytics.StreakResult, error) {
	h, err := s.habits.Get(ctx, habitID)
	if err != nil || h == nil {
		return nil, err
	}
	dates, err := s.habits.CompletedDates(ctx, habitID)
	if err != nil {
		return nil, err
	}
	res := analytics.Streaks(analytics.NewDateSet(dates...), s.today())
	return &res, nil
}

// HabitHeatmap buckets completions per day over the trailing window, across
// all habits.
func (s *Service) HabitHeatmap(ctx context.Context, days int) ([]analytics.HeatmapEntry, error) {
	today := s.today()
	_, dates, err := s.habits.CompletionsSince(ctx, today.AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	return analytics.Heatmap(days, dates, today), nil
}

func (s *Service) HabitStats(ctx context.Context) (*HabitStats, error) {
	total, active, err := s.habits.Counts(ctx)
	if err != nil {
		return nil, err
	}
	stats := &HabitStats{TotalHabits: total, ActiveHabits: active}

	activeIDs, err := s.habits.ActiveIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(activeIDs) == 0 {
		return stats, nil
	}

	today := s.today()
	ids, dates, err := s.habits.CompletionsSince(ctx, today.AddDate(0, 0, -rateWindowLong))
	if err != nil {
		return nil, err
	}
	comps := make([]analytics.Completion, len(ids))
	for i := range ids {
		comps[i] = analytics.Completion{ItemID: ids[i], Date: dates[i]}
	}
	stats.CompletionRate7d = analytics.WindowedRate(rateWindowShort, activeIDs, comps, today)
	stats.CompletionRate30d = analytics.WindowedRate(rateWindowLong, activeIDs, comps, today)

	for _, id := range activeIDs {
		completed, err := s.habits.CompletedDates(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("streak for habit %d: %w", id, err)
		}
		if analytics.Streaks(analytics.NewDateSet(completed...), today).Current > 0 {
			stats.ActiveStreaks++
		}
	}
	return stats, nil
}
