package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/madspljoensson/life-dashboard/internal/analytics"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

const trendMonthsDefault = 6

func (s *Service) CreateTransaction(ctx context.Context, in storage.TransactionInsert) (*storage.Transaction, error) {
	if in.Type != "income" && in.Type != "expense" {
		return nil, fmt.Errorf("invalid transaction type %q: want income or expense", in.Type)
	}
	category, err := normalizeName(in.Category)
	if err != nil {
		return nil, fmt.Errorf("category: %w", err)
	}
	in.Category = category

	id, err := s.transactions.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.transactions.Get(ctx, id)
}

// Transactions lists one month's transactions, newest-first. month is
// "YYYY-MM"; empty means the current month.
func (s *Service) Transactions(ctx context.Context, month string, category *string) ([]storage.Transaction, error) {
	year, m, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	txs, err := s.transactions.List(ctx, year, m, category)
	if err != nil {
		return nil, err
	}
	if txs == nil {
		txs = []storage.Transaction{}
	}
	return txs, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	return s.transactions.Delete(ctx, id)
}

// MonthSummary totals one month's income and expenses. month is "YYYY-MM";
// empty means the current month.
func (s *Service) MonthSummary(ctx context.Context, month string) (*analytics.MonthSummaryResult, error) {
	year, m, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	txs, err := s.transactions.List(ctx, year, m, nil)
	if err != nil {
		return nil, err
	}
	res := analytics.SummarizeMonth(amountEvents(txs), year, m)
	return &res, nil
}

// Trends returns per-month income and expense totals over the trailing
// months, oldest-first. months <= 0 falls back to the default span.
func (s *Service) Trends(ctx context.Context, months int) ([]analytics.MonthBucket, error) {
	events, today, months, err := s.trendEvents(ctx, months)
	if err != nil {
		return nil, err
	}
	return analytics.MonthlyRollup(months, events, today), nil
}

// CategoryTrends returns per-month expense totals by category over the
// trailing months, oldest-first.
func (s *Service) CategoryTrends(ctx context.Context, months int) ([]analytics.CategoryBucket, error) {
	events, today, months, err := s.trendEvents(ctx, months)
	if err != nil {
		return nil, err
	}
	return analytics.MonthlyCategoryRollup(months, events, today), nil
}

func (s *Service) trendEvents(ctx context.Context, months int) ([]analytics.AmountEvent, time.Time, int, error) {
	if months <= 0 {
		months = trendMonthsDefault
	}
	today := s.today()
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	since := firstOfMonth.AddDate(0, -(months - 1), 0)
	txs, err := s.transactions.Since(ctx, since)
	if err != nil {
		return nil, time.Time{}, 0, err
	}
	return amountEvents(txs), today, months, nil
}

func amountEvents(txs []storage.Transaction) []analytics.AmountEvent {
	events := make([]analytics.AmountEvent, len(txs))
	for i, tx := range txs {
		kind := analytics.KindExpense
		if tx.Type == "income" {
			kind = analytics.KindIncome
		}
		events[i] = analytics.AmountEvent{
			Date:     tx.Date,
			Amount:   tx.Amount,
			Kind:     kind,
			Category: tx.Category,
		}
	}
	return events
}

// resolveMonth parses a "YYYY-MM" month string, defaulting to the current
// month when empty.
func (s *Service) resolveMonth(month string) (int, time.Month, error) {
	if month == "" {
		today := s.today()
		return today.Year(), today.Month(), nil
	}
	d, err := time.Parse("2006-01", month)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: want YYYY-MM", month)
	}
	return d.Year(), d.Month(), nil
}

// ErrDuplicateBudget reports an existing budget for the same category.
type ErrDuplicateBudget struct {
	Category string
}

func (e ErrDuplicateBudget) Error() string {
	return fmt.Sprintf("budget for category %q already exists", e.Category)
}

func (s *Service) CreateBudget(ctx context.Context, category string, monthlyLimit decimal.Decimal) (*storage.Budget, error) {
	category, err := normalizeName(category)
	if err != nil {
		return nil, fmt.Errorf("category: %w", err)
	}
	existing, err := s.budgets.GetByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateBudget{Category: category}
	}
	id, err := s.budgets.Insert(ctx, category, monthlyLimit)
	if err != nil {
		return nil, err
	}
	return s.budgets.Get(ctx, id)
}

func (s *Service) Budgets(ctx context.Context) ([]storage.Budget, error) {
	bs, err := s.budgets.List(ctx)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		bs = []storage.Budget{}
	}
	return bs, nil
}

func (s *Service) UpdateBudget(ctx context.Context, id int64, monthlyLimit decimal.Decimal) (*storage.Budget, error) {
	b, err := s.budgets.Get(ctx, id)
	if err != nil || b == nil {
		return nil, err
	}
	b.MonthlyLimit = monthlyLimit
	if err := s.budgets.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBudget(ctx context.Context, id int64) (bool, error) {
	return s.budgets.Delete(ctx, id)
}
