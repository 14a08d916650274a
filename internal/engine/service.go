// Package engine is the request-facing service layer: it fetches records
// through the storage repos, hands them to the analytics package, and returns
// plain result structs for the API layer to serialize.
package engine

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/madspljoensson/life-dashboard/internal/analytics"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

type Service struct {
	db            *sql.DB
	habits        *storage.HabitRepo
	sleep         *storage.SleepRepo
	transactions  *storage.TransactionRepo
	budgets       *storage.BudgetRepo
	subscriptions *storage.SubscriptionRepo
	tasks         *storage.TaskRepo
	workouts      *storage.WorkoutRepo
	daily         *storage.DailyRepo
	settings      *storage.SettingRepo

	// now is the service clock. All analytics calls derive their reference
	// date from it; tests pin it for deterministic windows.
	now func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:            db,
		habits:        storage.NewHabitRepo(db),
		sleep:         storage.NewSleepRepo(db),
		transactions:  storage.NewTransactionRepo(db),
		budgets:       storage.NewBudgetRepo(db),
		subscriptions: storage.NewSubscriptionRepo(db),
		tasks:         storage.NewTaskRepo(db),
		workouts:      storage.NewWorkoutRepo(db),
		daily:         storage.NewDailyRepo(db),
		settings:      storage.NewSettingRepo(db),
		now:           time.Now,
	}
}

// SetNow overrides the service clock.
func (s *Service) SetNow(now func() time.Time) { s.now = now }

// today is the whole-day reference date for every engine calculation.
func (s *Service) today() time.Time {
	return analytics.Day(s.now().UTC())
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", errors.New("name is required")
	}
	return n, nil
}

// parseDay parses a YYYY-MM-DD date string.
func parseDay(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}
