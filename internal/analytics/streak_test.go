package analytics

import (
	"math/rand"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStreaksEmpty(t *testing.T) {
	got := Streaks(NewDateSet(), date(2025, time.March, 10))
	if got.Current != 0 || got.Longest != 0 {
		t.Fatalf("Streaks(empty) = %+v, want {0 0}", got)
	}
}

func TestStreaksTodayOnly(t *testing.T) {
	today := date(2025, time.March, 10)
	got := Streaks(NewDateSet(today), today)
	if got.Current != 1 || got.Longest != 1 {
		t.Fatalf("Streaks({today}) = %+v, want {1 1}", got)
	}
}

func TestStreaksTodayNotYetLogged(t *testing.T) {
	today := date(2025, time.March, 10)
	set := NewDateSet(today.AddDate(0, 0, -1), today.AddDate(0, 0, -2))
	got := Streaks(set, today)
	if got.Current != 2 || got.Longest != 2 {
		t.Fatalf("Streaks({today-1, today-2}) = %+v, want {2 2}", got)
	}
}

func TestStreaksGapBreaksRun(t *testing.T) {
	today := date(2025, time.March, 10)
	set := NewDateSet(today, today.AddDate(0, 0, -1), today.AddDate(0, 0, -3))
	got := Streaks(set, today)
	if got.Current != 2 || got.Longest != 2 {
		t.Fatalf("Streaks({today, today-1, today-3}) = %+v, want {2 2}", got)
	}
}

func TestStreaksLongestInThePast(t *testing.T) {
	today := date(2025, time.March, 10)
	set := NewDateSet(
		today,
		date(2025, time.February, 1),
		date(2025, time.February, 2),
		date(2025, time.February, 3),
		date(2025, time.February, 4),
	)
	got := Streaks(set, today)
	if got.Current != 1 {
		t.Fatalf("current = %d, want 1", got.Current)
	}
	if got.Longest != 4 {
		t.Fatalf("longest = %d, want 4", got.Longest)
	}
}

func TestStreaksLongestAtLeastCurrent(t *testing.T) {
	today := date(2025, time.June, 15)
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		var dates []time.Time
		for i := 0; i < 40; i++ {
			if rng.Intn(2) == 0 {
				dates = append(dates, today.AddDate(0, 0, -i))
			}
		}
		got := Streaks(NewDateSet(dates...), today)
		if got.Current < 0 || got.Longest < got.Current {
			t.Fatalf("trial %d: got %+v, want longest >= current >= 0", trial, got)
		}
	}
}

func TestStreaksOrderIndependent(t *testing.T) {
	today := date(2025, time.March, 10)
	dates := []time.Time{
		today, today.AddDate(0, 0, -1), today.AddDate(0, 0, -2),
		date(2025, time.January, 5), date(2025, time.January, 6),
		// Duplicates must be tolerated.
		today, date(2025, time.January, 5),
	}
	want := Streaks(NewDateSet(dates...), today)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		perm := make([]time.Time, len(dates))
		copy(perm, dates)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		if got := Streaks(NewDateSet(perm...), today); got != want {
			t.Fatalf("trial %d: got %+v, want %+v", trial, got, want)
		}
	}
}

func TestDateSetNormalizesTimeOfDay(t *testing.T) {
	set := NewDateSet(time.Date(2025, time.March, 10, 23, 45, 0, 0, time.UTC))
	if !set.Contains(date(2025, time.March, 10)) {
		t.Fatalf("expected midnight lookup to hit a late-evening entry")
	}
	if set.Len() != 1 {
		t.Fatalf("len = %d, want 1", set.Len())
	}
}
