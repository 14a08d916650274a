package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/madspljoensson/life-dashboard/internal/engine"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

func (s *Server) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.svc.Subscriptions(r.Context(), queryBool(r, "active"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionViews(subs))
}

func (s *Server) createSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string          `json:"name"`
		Cost         decimal.Decimal `json:"cost"`
		BillingCycle string          `json:"billing_cycle"`
		NextRenewal  string          `json:"next_renewal"`
		Category     *string         `json:"category"`
		Active       *bool           `json:"active"`
		Notes        *string         `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	renewal, err := time.Parse(dateLayout, req.NextRenewal)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid next_renewal; want YYYY-MM-DD")
		return
	}
	in := storage.SubscriptionInsert{
		Name:         req.Name,
		Cost:         req.Cost,
		BillingCycle: req.BillingCycle,
		NextRenewal:  renewal,
		Category:     req.Category,
		Active:       true,
		Notes:        req.Notes,
	}
	if req.Active != nil {
		in.Active = *req.Active
	}
	sub, err := s.svc.CreateSubscription(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toSubscriptionView(*sub))
}

func (s *Server) getSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	sub, err := s.svc.Subscription(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if sub == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionView(*sub))
}

func (s *Server) updateSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Name         *string          `json:"name"`
		Cost         *decimal.Decimal `json:"cost"`
		BillingCycle *string          `json:"billing_cycle"`
		NextRenewal  *string          `json:"next_renewal"`
		Category     *string          `json:"category"`
		Active       *bool            `json:"active"`
		Notes        *string          `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	patch := engine.SubscriptionUpdate{
		Name:         req.Name,
		Cost:         req.Cost,
		BillingCycle: req.BillingCycle,
		Category:     req.Category,
		Active:       req.Active,
		Notes:        req.Notes,
	}
	if req.NextRenewal != nil {
		renewal, err := time.Parse(dateLayout, *req.NextRenewal)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid next_renewal; want YYYY-MM-DD")
			return
		}
		patch.NextRenewal = &renewal
	}
	sub, err := s.svc.UpdateSubscription(r.Context(), id, patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if sub == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionView(*sub))
}

func (s *Server) deleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := s.svc.DeleteSubscription(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !deleted {
		notFound(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) subscriptionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.SubscriptionStats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ActiveCount  int                `json:"active_count"`
		MonthlyTotal float64            `json:"monthly_total"`
		YearlyTotal  float64            `json:"yearly_total"`
		Upcoming     []subscriptionView `json:"upcoming_renewals"`
	}{
		ActiveCount:  stats.ActiveCount,
		MonthlyTotal: stats.MonthlyTotal,
		YearlyTotal:  stats.YearlyTotal,
		Upcoming:     toSubscriptionViews(stats.Upcoming),
	})
}
