// Package analytics turns sparse, date-keyed tracking records into derived
// signals: streaks, windowed completion rates, heatmaps, composite scores,
// month rollups and billing-cycle normalization. Every function is pure and
// takes its reference date as an explicit parameter; nothing in this package
// reads the clock or does I/O.
package analytics

import (
	"sort"
	"time"
)

// Day truncates t to a pure calendar date (midnight UTC). All engine
// arithmetic operates on whole days.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateSet is an ordered set of calendar dates: sorted ascending, deduplicated,
// normalized to midnight UTC. Membership checks are O(log n).
type DateSet struct {
	days []time.Time
}

// NewDateSet builds a DateSet from dates in any order, with duplicates and
// time-of-day components discarded.
func NewDateSet(dates ...time.Time) DateSet {
	if len(dates) == 0 {
		return DateSet{}
	}
	norm := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		norm = append(norm, Day(d))
	}
	sort.Slice(norm, func(i, j int) bool { return norm[i].Before(norm[j]) })

	out := norm[:1]
	for _, d := range norm[1:] {
		if !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return DateSet{days: out}
}

func (s DateSet) Len() int { return len(s.days) }

func (s DateSet) Contains(d time.Time) bool {
	d = Day(d)
	i := sort.Search(len(s.days), func(i int) bool { return !s.days[i].Before(d) })
	return i < len(s.days) && s.days[i].Equal(d)
}

// Sorted returns the dates ascending. The slice is shared with the set and
// must not be modified by the caller.
func (s DateSet) Sorted() []time.Time { return s.days }
