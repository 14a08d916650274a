package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EventKind partitions amount events into income and expenses.
type EventKind string

const (
	KindIncome  EventKind = "income"
	KindExpense EventKind = "expense"
)

// AmountEvent is one dated monetary event.
type AmountEvent struct {
	Date     time.Time
	Amount   decimal.Decimal
	Kind     EventKind
	Category string
}

// MonthBucket holds one calendar month's income and expense totals, rounded
// to 2 decimals at output.
type MonthBucket struct {
	Month    string  `json:"month"` // YYYY-MM
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// CategoryBucket is the expense-by-category variant of a month bucket.
// Categories with no events in the month are absent from the map.
type CategoryBucket struct {
	Month      string             `json:"month"`
	ByCategory map[string]float64 `json:"by_category"`
}

// MonthSummaryResult aggregates a single calendar month.
type MonthSummaryResult struct {
	Income     float64            `json:"income"`
	Expenses   float64            `json:"expenses"`
	Net        float64            `json:"net"`
	ByCategory map[string]float64 `json:"by_category"`
}

// monthKeys returns the YYYY-MM keys for the n consecutive months ending at
// today's month, oldest first. Walking backward past January wraps to
// December of the prior year, once per month of underflow, so multi-year
// windows stay correct.
func monthKeys(n int, today time.Time) []string {
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		year := today.Year()
		month := int(today.Month()) - i
		for month <= 0 {
			month += 12
			year--
		}
		keys = append(keys, fmt.Sprintf("%04d-%02d", year, month))
	}
	return keys
}

func monthKey(d time.Time) string {
	return d.Format("2006-01")
}

// MonthlyRollup aggregates events into the months consecutive month buckets
// ending at today's month. Sums accumulate in decimal and are rounded only
// at output.
func MonthlyRollup(months int, events []AmountEvent, today time.Time) []MonthBucket {
	if months <= 0 {
		return nil
	}

	income := make(map[string]decimal.Decimal)
	expenses := make(map[string]decimal.Decimal)
	for _, e := range events {
		k := monthKey(e.Date)
		switch e.Kind {
		case KindIncome:
			income[k] = income[k].Add(e.Amount)
		case KindExpense:
			expenses[k] = expenses[k].Add(e.Amount)
		}
	}

	keys := monthKeys(months, Day(today))
	out := make([]MonthBucket, 0, months)
	for _, k := range keys {
		out = append(out, MonthBucket{
			Month:    k,
			Income:   round2(income[k]),
			Expenses: round2(expenses[k]),
		})
	}
	return out
}

// MonthlyCategoryRollup is MonthlyRollup's category variant: expense-kind
// events partitioned by category within each month bucket.
func MonthlyCategoryRollup(months int, events []AmountEvent, today time.Time) []CategoryBucket {
	if months <= 0 {
		return nil
	}

	byMonth := make(map[string]map[string]decimal.Decimal)
	for _, e := range events {
		if e.Kind != KindExpense {
			continue
		}
		k := monthKey(e.Date)
		if byMonth[k] == nil {
			byMonth[k] = make(map[string]decimal.Decimal)
		}
		byMonth[k][e.Category] = byMonth[k][e.Category].Add(e.Amount)
	}

	keys := monthKeys(months, Day(today))
	out := make([]CategoryBucket, 0, months)
	for _, k := range keys {
		cats := make(map[string]float64, len(byMonth[k]))
		for c, sum := range byMonth[k] {
			cats[c] = round2(sum)
		}
		out = append(out, CategoryBucket{Month: k, ByCategory: cats})
	}
	return out
}

// SummarizeMonth aggregates the events of one calendar month: income and
// expense totals, their net, and expense totals by category.
func SummarizeMonth(events []AmountEvent, year int, month time.Month) MonthSummaryResult {
	income := decimal.Zero
	expenses := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range events {
		if e.Date.Year() != year || e.Date.Month() != month {
			continue
		}
		switch e.Kind {
		case KindIncome:
			income = income.Add(e.Amount)
		case KindExpense:
			expenses = expenses.Add(e.Amount)
			byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		}
	}

	cats := make(map[string]float64, len(byCategory))
	for c, sum := range byCategory {
		cats[c] = round2(sum)
	}
	return MonthSummaryResult{
		Income:     round2(income),
		Expenses:   round2(expenses),
		Net:        round2(income.Sub(expenses)),
		ByCategory: cats,
	}
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
