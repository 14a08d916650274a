package analytics

import "time"

// StreakResult holds the consecutive-day runs for one tracked entity.
type StreakResult struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// Streaks computes the current and longest consecutive-day runs over the set
// of completed dates, relative to today.
//
// The current streak starts at today when today is completed, otherwise at
// yesterday (today is allowed to be "not yet logged" without breaking the
// run), and walks backward until the first gap. The longest streak is a
// single ascending scan; it is never reported smaller than the current one.
func Streaks(completed DateSet, today time.Time) StreakResult {
	if completed.Len() == 0 {
		return StreakResult{}
	}

	check := Day(today)
	if !completed.Contains(check) {
		check = check.AddDate(0, 0, -1)
	}
	current := 0
	for completed.Contains(check) {
		current++
		check = check.AddDate(0, 0, -1)
	}

	days := completed.Sorted()
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	if current > longest {
		longest = current
	}
	return StreakResult{Current: current, Longest: longest}
}
