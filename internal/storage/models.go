package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

type Habit struct {
	ID              int64
	Name            string
	Category        *string
	Icon            *string
	TargetFrequency *string
	Active          bool
	CreatedAt       time.Time
}

type HabitLog struct {
	ID        int64
	HabitID   int64
	Date      time.Time
	Completed bool
	Value     *float64
	CreatedAt time.Time
}

type SleepEntry struct {
	ID            int64
	Date          time.Time
	Bedtime       *time.Time
	WakeTime      *time.Time
	DurationHours *float64
	Quality       *int
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Transaction struct {
	ID          int64
	Date        time.Time
	Amount      decimal.Decimal
	Category    string
	Description *string
	Type        string // income | expense
	CreatedAt   time.Time
}

type Budget struct {
	ID           int64
	Category     string
	MonthlyLimit decimal.Decimal
	CreatedAt    time.Time
}

type Subscription struct {
	ID           int64
	Name         string
	Cost         decimal.Decimal
	BillingCycle string // weekly | monthly | yearly
	NextRenewal  time.Time
	Category     *string
	Active       bool
	Notes        *string
	CreatedAt    time.Time
}

type Task struct {
	ID               int64
	Title            string
	Description      *string
	Status           string // todo | in_progress | done
	Priority         string // low | medium | high | urgent
	DueDate          *time.Time
	CompletedAt      *time.Time
	Recurring        bool
	RecurringPattern *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Workout struct {
	ID              int64
	Date            time.Time
	WorkoutType     string
	Name            string
	DurationMinutes *int
	Notes           *string
	CreatedAt       time.Time
}

type DailyNote struct {
	ID         int64
	Date       time.Time
	Mood       *int
	Energy     *int
	Note       *string
	Highlights *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
