package analytics

import (
	"math"
	"time"
)

// Completion records one completed occurrence of a tracked item on a date.
type Completion struct {
	ItemID int64
	Date   time.Time
}

// WindowedRate computes the actual/expected completion percentage over the
// trailing windowDays-day window ending at today, rounded to one decimal.
//
// Every active item is expected to complete once per day in the window,
// regardless of its own declared frequency. Completions for inactive items,
// outside [today-windowDays, today], or duplicated per (item, date) pair are
// ignored.
//
// Returns nil when there are no active items: "no data" is distinct from 0%.
func WindowedRate(windowDays int, activeItems []int64, completions []Completion, today time.Time) *float64 {
	active := make(map[int64]bool, len(activeItems))
	for _, id := range activeItems {
		active[id] = true
	}
	expected := len(active) * windowDays
	if expected == 0 {
		return nil
	}

	day := Day(today)
	start := day.AddDate(0, 0, -windowDays)

	type occurrence struct {
		item int64
		date time.Time
	}
	seen := make(map[occurrence]bool, len(completions))
	count := 0
	for _, c := range completions {
		d := Day(c.Date)
		if !active[c.ItemID] || d.Before(start) || d.After(day) {
			continue
		}
		occ := occurrence{c.ItemID, d}
		if seen[occ] {
			continue
		}
		seen[occ] = true
		count++
	}

	rate := math.Round(float64(count)/float64(expected)*100*10) / 10
	return &rate
}
