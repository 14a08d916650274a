package engine

import (
	"context"
	"fmt"

	"github.com/madspljoensson/life-dashboard/internal/analytics"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

// FitnessStats is the workout overview: lifetime count, trailing-week count,
// and the consecutive-day workout streak.
type FitnessStats struct {
	TotalWorkouts int `json:"total_workouts"`
	ThisWeek      int `json:"this_week"`
	Streak        int `json:"streak"`
}

func (s *Service) LogWorkout(ctx context.Context, in storage.WorkoutInsert) (*storage.Workout, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	in.Name = name
	if in.WorkoutType == "" {
		return nil, fmt.Errorf("workout type is required")
	}

	id, err := s.workouts.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.workouts.Get(ctx, id)
}

func (s *Service) Workouts(ctx context.Context, limit int) ([]storage.Workout, error) {
	ws, err := s.workouts.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		ws = []storage.Workout{}
	}
	return ws, nil
}

func (s *Service) DeleteWorkout(ctx context.Context, id int64) (bool, error) {
	return s.workouts.Delete(ctx, id)
}

func (s *Service) FitnessStats(ctx context.Context) (*FitnessStats, error) {
	total, err := s.workouts.Count(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	thisWeek, err := s.workouts.CountSince(ctx, today.AddDate(0, 0, -6))
	if err != nil {
		return nil, err
	}
	dates, err := s.workouts.Dates(ctx)
	if err != nil {
		return nil, err
	}
	streak := analytics.Streaks(analytics.NewDateSet(dates...), today)

	return &FitnessStats{
		TotalWorkouts: total,
		ThisWeek:      thisWeek,
		Streak:        streak.Current,
	}, nil
}
