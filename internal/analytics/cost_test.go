package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNormalizeCostYearly(t *testing.T) {
	got := NormalizeCost(RecurringCost{Amount: decimal.NewFromInt(1200), Cycle: CycleYearly})
	if got.Monthly != 100.0 {
		t.Fatalf("monthly = %v, want 100.0", got.Monthly)
	}
	if got.Yearly != 1200.0 {
		t.Fatalf("yearly = %v, want 1200.0", got.Yearly)
	}
}

func TestNormalizeCostMonthly(t *testing.T) {
	got := NormalizeCost(RecurringCost{Amount: amount("9.99"), Cycle: CycleMonthly})
	if got.Monthly != 9.99 || got.Yearly != 119.88 {
		t.Fatalf("got %+v, want {9.99 119.88}", got)
	}
}

func TestNormalizeCostWeekly(t *testing.T) {
	got := NormalizeCost(RecurringCost{Amount: decimal.NewFromInt(50), Cycle: CycleWeekly})
	if math.Abs(got.Monthly-216.67) > 0.01 {
		t.Fatalf("monthly = %v, want 216.67 +/- 0.01", got.Monthly)
	}
	// Yearly derives from the unrounded monthly figure: 50 * 52 = 2600.
	if got.Yearly != 2600.0 {
		t.Fatalf("yearly = %v, want 2600.0", got.Yearly)
	}
}

func TestTotalMonthlyCost(t *testing.T) {
	costs := []RecurringCost{
		{Amount: amount("9.99"), Cycle: CycleMonthly},
		{Amount: decimal.NewFromInt(120), Cycle: CycleYearly},
	}
	got := TotalMonthlyCost(costs)
	if got.Monthly != 19.99 {
		t.Fatalf("monthly = %v, want 19.99", got.Monthly)
	}
	if got.Yearly != 239.88 {
		t.Fatalf("yearly = %v, want 239.88", got.Yearly)
	}
}

func TestParseBillingCycle(t *testing.T) {
	if c, err := ParseBillingCycle(" Weekly "); err != nil || c != CycleWeekly {
		t.Fatalf("ParseBillingCycle(Weekly) = %v, %v", c, err)
	}
	if _, err := ParseBillingCycle("fortnightly"); err == nil {
		t.Fatalf("expected error for unknown cycle")
	}
}

func TestRenewsWithinInclusiveBounds(t *testing.T) {
	today := date(2025, time.March, 10)
	horizon := 30

	if !RenewsWithin(today, today, horizon) {
		t.Fatalf("today itself must be within the horizon")
	}
	if !RenewsWithin(today.AddDate(0, 0, 30), today, horizon) {
		t.Fatalf("the horizon end must be inclusive")
	}
	if RenewsWithin(today.AddDate(0, 0, 31), today, horizon) {
		t.Fatalf("one day past the horizon must be excluded")
	}
	if RenewsWithin(today.AddDate(0, 0, -1), today, horizon) {
		t.Fatalf("past renewals must be excluded")
	}
}
