package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/madspljoensson/life-dashboard/internal/analytics"
)

func (s *Service) Settings(ctx context.Context) (map[string]string, error) {
	return s.settings.All(ctx)
}

func (s *Service) Setting(ctx context.Context, key string) (*string, error) {
	return s.settings.Get(ctx, key)
}

func (s *Service) SetSetting(ctx context.Context, key, value string) error {
	k, err := normalizeName(key)
	if err != nil {
		return fmt.Errorf("key: %w", err)
	}
	return s.settings.Set(ctx, k, value)
}

// SleepTarget is the configured nightly duration target in hours, falling
// back to the default when unset or unparseable.
func (s *Service) SleepTarget(ctx context.Context) (float64, error) {
	v, err := s.settings.Get(ctx, sleepTargetKey)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return analytics.DefaultSleepTarget, nil
	}
	target, err := strconv.ParseFloat(*v, 64)
	if err != nil || target <= 0 {
		return analytics.DefaultSleepTarget, nil
	}
	return target, nil
}

func (s *Service) SetSleepTarget(ctx context.Context, hours float64) error {
	if hours <= 0 || hours > 24 {
		return fmt.Errorf("sleep target %.1f out of range", hours)
	}
	return s.settings.Set(ctx, sleepTargetKey, strconv.FormatFloat(hours, 'f', -1, 64))
}
