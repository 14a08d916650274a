package engine

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/madspljoensson/life-dashboard/internal/analytics"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

const renewalHorizonDays = 30

// SubscriptionStats sums the active subscriptions' recurring cost and lists
// the ones renewing within the next month.
type SubscriptionStats struct {
	ActiveCount  int                    `json:"active_count"`
	MonthlyTotal float64                `json:"monthly_total"`
	YearlyTotal  float64                `json:"yearly_total"`
	Upcoming     []storage.Subscription `json:"upcoming_renewals"`
}

// SubscriptionUpdate carries partial subscription updates; nil fields are
// left unchanged.
type SubscriptionUpdate struct {
	Name         *string
	Cost         *decimal.Decimal
	BillingCycle *string
	NextRenewal  *time.Time
	Category     *string
	Active       *bool
	Notes        *string
}

func (s *Service) CreateSubscription(ctx context.Context, in storage.SubscriptionInsert) (*storage.Subscription, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	in.Name = name
	cycle, err := analytics.ParseBillingCycle(in.BillingCycle)
	if err != nil {
		return nil, err
	}
	in.BillingCycle = string(cycle)

	id, err := s.subscriptions.Insert(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.subscriptions.Get(ctx, id)
}

func (s *Service) Subscription(ctx context.Context, id int64) (*storage.Subscription, error) {
	return s.subscriptions.Get(ctx, id)
}

func (s *Service) Subscriptions(ctx context.Context, active *bool) ([]storage.Subscription, error) {
	subs, err := s.subscriptions.List(ctx, active)
	if err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []storage.Subscription{}
	}
	return subs, nil
}

func (s *Service) UpdateSubscription(ctx context.Context, id int64, patch SubscriptionUpdate) (*storage.Subscription, error) {
	sub, err := s.subscriptions.Get(ctx, id)
	if err != nil || sub == nil {
		return nil, err
	}
	if patch.Name != nil {
		name, err := normalizeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		sub.Name = name
	}
	if patch.Cost != nil {
		sub.Cost = *patch.Cost
	}
	if patch.BillingCycle != nil {
		cycle, err := analytics.ParseBillingCycle(*patch.BillingCycle)
		if err != nil {
			return nil, err
		}
		sub.BillingCycle = string(cycle)
	}
	if patch.NextRenewal != nil {
		sub.NextRenewal = *patch.NextRenewal
	}
	if patch.Category != nil {
		sub.Category = patch.Category
	}
	if patch.Active != nil {
		sub.Active = *patch.Active
	}
	if patch.Notes != nil {
		sub.Notes = patch.Notes
	}
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) DeleteSubscription(ctx context.Context, id int64) (bool, error) {
	return s.subscriptions.Delete(ctx, id)
}

func (s *Service) SubscriptionStats(ctx context.Context) (*SubscriptionStats, error) {
	activeOnly := true
	subs, err := s.subscriptions.List(ctx, &activeOnly)
	if err != nil {
		return nil, err
	}

	costs := make([]analytics.RecurringCost, len(subs))
	for i, sub := range subs {
		costs[i] = analytics.RecurringCost{
			Amount: sub.Cost,
			Cycle:  analytics.BillingCycle(sub.BillingCycle),
		}
	}
	total := analytics.TotalMonthlyCost(costs)

	today := s.today()
	upcoming := make([]storage.Subscription, 0)
	for _, sub := range subs {
		if analytics.RenewsWithin(sub.NextRenewal, today, renewalHorizonDays) {
			upcoming = append(upcoming, sub)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].NextRenewal.Before(upcoming[j].NextRenewal)
	})

	return &SubscriptionStats{
		ActiveCount:  len(subs),
		MonthlyTotal: total.Monthly,
		YearlyTotal:  total.Yearly,
		Upcoming:     upcoming,
	}, nil
}
