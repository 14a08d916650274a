package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BillingCycle is the recurrence period of a subscription cost.
type BillingCycle string

const (
	CycleWeekly  BillingCycle = "weekly"
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) IsValid() bool {
	switch c {
	case CycleWeekly, CycleMonthly, CycleYearly:
		return true
	default:
		return false
	}
}

func ParseBillingCycle(input string) (BillingCycle, error) {
	c := BillingCycle(strings.TrimSpace(strings.ToLower(input)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid billing cycle: %q", input)
	}
	return c, nil
}

// RecurringCost is a non-negative cost expressed in some billing cadence.
type RecurringCost struct {
	Amount decimal.Decimal
	Cycle  BillingCycle
}

// NormalizedCost is a recurring cost expressed per month and per year,
// rounded to 2 decimals.
type NormalizedCost struct {
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

var (
	twelve        = decimal.NewFromInt(12)
	weeksPerMonth = decimal.NewFromInt(52).Div(twelve)
)

// monthlyAmount converts a cost to an unrounded per-month figure.
func monthlyAmount(c RecurringCost) decimal.Decimal {
	switch c.Cycle {
	case CycleYearly:
		return c.Amount.Div(twelve)
	case CycleWeekly:
		return c.Amount.Mul(weeksPerMonth)
	default:
		return c.Amount
	}
}

// NormalizeCost converts a recurring cost to canonical monthly and yearly
// figures. Yearly is always derived from the unrounded monthly figure, never
// recomputed from the original cadence, so the two outputs stay mutually
// consistent.
func NormalizeCost(c RecurringCost) NormalizedCost {
	m := monthlyAmount(c)
	return NormalizedCost{Monthly: round2(m), Yearly: round2(m.Mul(twelve))}
}

// TotalMonthlyCost normalizes and sums a set of recurring costs without
// intermediate rounding.
func TotalMonthlyCost(costs []RecurringCost) NormalizedCost {
	total := decimal.Zero
	for _, c := range costs {
		total = total.Add(monthlyAmount(c))
	}
	return NormalizedCost{Monthly: round2(total), Yearly: round2(total.Mul(twelve))}
}

// RenewsWithin reports whether next falls within horizonDays of today,
// inclusive of both ends.
func RenewsWithin(next, today time.Time, horizonDays int) bool {
	n, d := Day(next), Day(today)
	return !n.Before(d) && !n.After(d.AddDate(0, 0, horizonDays))
}
