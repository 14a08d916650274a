package analytics

import (
	"math/rand"
	"testing"
	"time"
)

func TestWindowedRateNoActiveItems(t *testing.T) {
	today := date(2025, time.March, 10)
	comps := []Completion{{ItemID: 1, Date: today}}
	if got := WindowedRate(7, nil, comps, today); got != nil {
		t.Fatalf("rate with no active items = %v, want nil", *got)
	}
}

func TestWindowedRateHalf(t *testing.T) {
	today := date(2025, time.March, 10)
	var comps []Completion
	for i := 0; i < 7; i++ {
		id := int64(1)
		if i%2 == 0 {
			id = 2
		}
		comps = append(comps, Completion{ItemID: id, Date: today.AddDate(0, 0, -i)})
	}
	got := WindowedRate(7, []int64{1, 2}, comps, today)
	if got == nil || *got != 50.0 {
		t.Fatalf("rate = %v, want 50.0", got)
	}
}

func TestWindowedRateIgnoresInactiveAndOutOfWindow(t *testing.T) {
	today := date(2025, time.March, 10)
	comps := []Completion{
		{ItemID: 1, Date: today},
		{ItemID: 1, Date: today}, // duplicate (item, date)
		{ItemID: 1, Date: today.AddDate(0, 0, -8)}, // before window
		{ItemID: 9, Date: today},                   // inactive item
	}
	got := WindowedRate(7, []int64{1}, comps, today)
	want := 14.3 // 1 completion / 7 expected
	if got == nil || *got != want {
		t.Fatalf("rate = %v, want %.1f", got, want)
	}
}

func TestWindowedRateOrderIndependent(t *testing.T) {
	today := date(2025, time.March, 10)
	comps := []Completion{
		{ItemID: 1, Date: today},
		{ItemID: 2, Date: today.AddDate(0, 0, -1)},
		{ItemID: 2, Date: today.AddDate(0, 0, -3)},
		{ItemID: 1, Date: today.AddDate(0, 0, -5)},
	}
	want := WindowedRate(7, []int64{1, 2}, comps, today)

	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 20; trial++ {
		perm := make([]Completion, len(comps))
		copy(perm, comps)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		got := WindowedRate(7, []int64{2, 1}, perm, today)
		if got == nil || *got != *want {
			t.Fatalf("trial %d: got %v, want %v", trial, got, want)
		}
	}
}
