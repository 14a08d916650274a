package engine

import (
	"context"
	"math"
	"time"

	"github.com/madspljoensson/life-dashboard/internal/analytics"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

const sleepTargetKey = "sleep_target_hours"

// WeeklySleepStats summarizes the trailing seven days of sleep entries.
// Averages are nil when no entry carries the field.
type WeeklySleepStats struct {
	Entries     int                  `json:"entries"`
	AvgDuration *float64             `json:"avg_duration"`
	AvgQuality  *float64             `json:"avg_quality"`
	Data        []storage.SleepEntry `json:"data"`
}

// SleepUpdate carries partial sleep-entry updates; nil fields are left
// unchanged. Updating bedtime or wake time without an explicit duration
// re-derives it.
type SleepUpdate struct {
	Bedtime       *time.Time
	WakeTime      *time.Time
	DurationHours *float64
	Quality       *int
	Notes         *string
}

// deriveDuration is the bedtime-to-wake gap in hours, rounded to two
// decimals. A wake time at or before bedtime crosses midnight.
func deriveDuration(bedtime, wake time.Time) float64 {
	if !wake.After(bedtime) {
		wake = wake.Add(24 * time.Hour)
	}
	hours := wake.Sub(bedtime).Hours()
	return math.Round(hours*100) / 100
}

// LogSleep records one night's sleep. When no duration is given but both
// bedtime and wake time are, it is derived; wake times at or before bedtime
// are treated as crossing midnight.
func (s *Service) LogSleep(ctx context.Context, in storage.SleepInsert) (*storage.SleepEntry, error) {
	if in.DurationHours == nil && in.Bedtime != nil && in.WakeTime != nil {
		d := deriveDuration(*in.Bedtime, *in.WakeTime)
		in.DurationHours = &d
	}
	if _, err := s.sleep.Insert(ctx, in); err != nil {
		return nil, err
	}
	return s.sleep.GetByDate(ctx, in.Date)
}

func (s *Service) SleepEntries(ctx context.Context, limit int) ([]storage.SleepEntry, error) {
	return s.sleep.List(ctx, limit)
}

func (s *Service) SleepEntry(ctx context.Context, date string) (*storage.SleepEntry, error) {
	d, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	return s.sleep.GetByDate(ctx, d)
}

func (s *Service) UpdateSleep(ctx context.Context, date string, patch SleepUpdate) (*storage.SleepEntry, error) {
	d, err := parseDay(date)
	if err != nil {
		return nil, err
	}
	e, err := s.sleep.GetByDate(ctx, d)
	if err != nil || e == nil {
		return nil, err
	}
	if patch.Bedtime != nil {
		e.Bedtime = patch.Bedtime
	}
	if patch.WakeTime != nil {
		e.WakeTime = patch.WakeTime
	}
	if patch.DurationHours != nil {
		e.DurationHours = patch.DurationHours
	} else if (patch.Bedtime != nil || patch.WakeTime != nil) && e.Bedtime != nil && e.WakeTime != nil {
		dur := deriveDuration(*e.Bedtime, *e.WakeTime)
		e.DurationHours = &dur
	}
	if patch.Quality != nil {
		e.Quality = patch.Quality
	}
	if patch.Notes != nil {
		e.Notes = patch.Notes
	}
	if err := s.sleep.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// WeeklySleepStats covers the trailing seven days ending today.
func (s *Service) WeeklySleepStats(ctx context.Context) (*WeeklySleepStats, error) {
	since := s.today().AddDate(0, 0, -6)
	entries, err := s.sleep.Since(ctx, since)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []storage.SleepEntry{}
	}
	stats := &WeeklySleepStats{Entries: len(entries), Data: entries}

	var durSum float64
	var durN int
	var qualSum int
	var qualN int
	for _, e := range entries {
		if e.DurationHours != nil {
			durSum += *e.DurationHours
			durN++
		}
		if e.Quality != nil {
			qualSum += *e.Quality
			qualN++
		}
	}
	if durN > 0 {
		avg := math.Round(durSum/float64(durN)*100) / 100
		stats.AvgDuration = &avg
	}
	if qualN > 0 {
		avg := math.Round(float64(qualSum)/float64(qualN)*10) / 10
		stats.AvgQuality = &avg
	}
	return stats, nil
}

// SleepScore grades the trailing seven days against the configured nightly
// target.
func (s *Service) SleepScore(ctx context.Context) (*analytics.SleepScoreResult, error) {
	target, err := s.SleepTarget(ctx)
	if err != nil {
		return nil, err
	}
	since := s.today().AddDate(0, 0, -6)
	entries, err := s.sleep.Since(ctx, since)
	if err != nil {
		return nil, err
	}
	samples := make([]analytics.SleepSample, len(entries))
	for i, e := range entries {
		samples[i] = analytics.SleepSample{Duration: e.DurationHours, Quality: e.Quality}
	}
	res := analytics.SleepScore(samples, target)
	return &res, nil
}
