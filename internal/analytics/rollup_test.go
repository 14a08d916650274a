package analytics

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMonthlyRollupJanuaryWraparound(t *testing.T) {
	today := date(2026, time.January, 15)
	got := MonthlyRollup(14, nil, today)
	if len(got) != 14 {
		t.Fatalf("len = %d, want 14", len(got))
	}
	if got[0].Month != "2024-12" {
		t.Fatalf("earliest bucket = %s, want 2024-12", got[0].Month)
	}
	if got[len(got)-1].Month != "2026-01" {
		t.Fatalf("latest bucket = %s, want 2026-01", got[len(got)-1].Month)
	}

	seen := map[string]bool{}
	for i, b := range got {
		if seen[b.Month] {
			t.Fatalf("duplicate month key %s", b.Month)
		}
		seen[b.Month] = true
		if i == 0 {
			continue
		}
		prev, _ := time.Parse("2006-01", got[i-1].Month)
		cur, _ := time.Parse("2006-01", b.Month)
		if !cur.Equal(prev.AddDate(0, 1, 0)) {
			t.Fatalf("month keys not consecutive: %s -> %s", got[i-1].Month, b.Month)
		}
	}
}

func TestMonthlyRollupPartitionsByKind(t *testing.T) {
	today := date(2025, time.March, 10)
	events := []AmountEvent{
		{Date: date(2025, time.March, 1), Amount: amount("2500"), Kind: KindIncome},
		{Date: date(2025, time.March, 5), Amount: amount("300.50"), Kind: KindExpense, Category: "food"},
		{Date: date(2025, time.February, 20), Amount: amount("99.99"), Kind: KindExpense, Category: "tech"},
		{Date: date(2024, time.March, 5), Amount: amount("1000"), Kind: KindIncome}, // wrong year, same month
	}
	got := MonthlyRollup(2, events, today)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	feb, mar := got[0], got[1]
	if feb.Month != "2025-02" || feb.Income != 0 || feb.Expenses != 99.99 {
		t.Fatalf("feb = %+v", feb)
	}
	if mar.Month != "2025-03" || mar.Income != 2500 || mar.Expenses != 300.50 {
		t.Fatalf("mar = %+v", mar)
	}
}

func TestMonthlyRollupRoundsAtOutputOnly(t *testing.T) {
	// Three thirds of a cent accumulate exactly in decimal; rounding the
	// running sums individually would drift.
	today := date(2025, time.March, 10)
	events := []AmountEvent{
		{Date: date(2025, time.March, 1), Amount: amount("0.333"), Kind: KindExpense, Category: "x"},
		{Date: date(2025, time.March, 2), Amount: amount("0.333"), Kind: KindExpense, Category: "x"},
		{Date: date(2025, time.March, 3), Amount: amount("0.334"), Kind: KindExpense, Category: "x"},
	}
	got := MonthlyRollup(1, events, today)
	if got[0].Expenses != 1.00 {
		t.Fatalf("expenses = %v, want 1.00", got[0].Expenses)
	}
}

func TestMonthlyRollupZeroMonths(t *testing.T) {
	if got := MonthlyRollup(0, nil, date(2025, time.March, 10)); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestMonthlyCategoryRollup(t *testing.T) {
	today := date(2025, time.March, 10)
	events := []AmountEvent{
		{Date: date(2025, time.March, 2), Amount: amount("40"), Kind: KindExpense, Category: "food"},
		{Date: date(2025, time.March, 9), Amount: amount("60"), Kind: KindExpense, Category: "food"},
		{Date: date(2025, time.March, 4), Amount: amount("15"), Kind: KindExpense, Category: "transport"},
		{Date: date(2025, time.March, 1), Amount: amount("5000"), Kind: KindIncome, Category: "salary"},
	}
	got := MonthlyCategoryRollup(1, events, today)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	cats := got[0].ByCategory
	if cats["food"] != 100 || cats["transport"] != 15 {
		t.Fatalf("categories = %v", cats)
	}
	if _, ok := cats["salary"]; ok {
		t.Fatalf("income events must not appear in the category breakdown")
	}
}

func TestSummarizeMonth(t *testing.T) {
	events := []AmountEvent{
		{Date: date(2025, time.March, 1), Amount: amount("3000"), Kind: KindIncome},
		{Date: date(2025, time.March, 3), Amount: amount("120.25"), Kind: KindExpense, Category: "food"},
		{Date: date(2025, time.March, 8), Amount: amount("79.75"), Kind: KindExpense, Category: "fun"},
		{Date: date(2025, time.April, 1), Amount: amount("999"), Kind: KindExpense, Category: "food"},
	}
	got := SummarizeMonth(events, 2025, time.March)
	if got.Income != 3000 || got.Expenses != 200 || got.Net != 2800 {
		t.Fatalf("summary = %+v", got)
	}
	if got.ByCategory["food"] != 120.25 || got.ByCategory["fun"] != 79.75 {
		t.Fatalf("by category = %v", got.ByCategory)
	}
}

func TestMonthlyRollupOrderIndependent(t *testing.T) {
	today := date(2025, time.June, 30)
	events := []AmountEvent{
		{Date: date(2025, time.June, 1), Amount: amount("10.10"), Kind: KindIncome},
		{Date: date(2025, time.May, 2), Amount: amount("20.20"), Kind: KindExpense, Category: "a"},
		{Date: date(2025, time.June, 3), Amount: amount("30.30"), Kind: KindExpense, Category: "b"},
		{Date: date(2025, time.April, 4), Amount: amount("40.40"), Kind: KindIncome},
	}
	want := MonthlyRollup(3, events, today)

	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 20; trial++ {
		perm := make([]AmountEvent, len(events))
		copy(perm, events)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
		got := MonthlyRollup(3, perm, today)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("trial %d bucket %d: got %+v, want %+v", trial, i, got[i], want[i])
			}
		}
	}
}
