package analytics

import (
	"sort"
	"time"
)

// HeatmapEntry is one calendar day's qualifying-event count.
type HeatmapEntry struct {
	Date  time.Time
	Count int
}

// Heatmap buckets event counts per calendar day within the trailing
// windowDays-day window ending at today. Days with no events are omitted;
// callers render missing days as zero. Events strictly before the window
// start are excluded.
func Heatmap(windowDays int, events []time.Time, today time.Time) []HeatmapEntry {
	start := Day(today).AddDate(0, 0, -windowDays)

	counts := make(map[time.Time]int)
	for _, e := range events {
		d := Day(e)
		if d.Before(start) {
			continue
		}
		counts[d]++
	}

	out := make([]HeatmapEntry, 0, len(counts))
	for d, n := range counts {
		out = append(out, HeatmapEntry{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
