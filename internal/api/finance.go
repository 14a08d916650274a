package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/madspljoensson/life-dashboard/internal/engine"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	txs, err := s.svc.Transactions(r.Context(), month, queryStr(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toTransactionViews(txs))
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        string          `json:"date"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Description *string         `json:"description"`
		Type        string          `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date; want YYYY-MM-DD")
		return
	}
	tx, err := s.svc.CreateTransaction(r.Context(), storage.TransactionInsert{
		Date:        date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionView(*tx))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := s.svc.DeleteTransaction(r.Context(), id)
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

func (s *Server) monthSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.MonthSummary(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) trends(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.svc.Trends(r.Context(), queryInt(r, "months", 0))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) categoryTrends(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.svc.CategoryTrends(r.Context(), queryInt(r, "months", 0))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.svc.Budgets(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetViews(budgets))
}

func (s *Server) createBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category     string          `json:"category"`
		MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := s.svc.CreateBudget(r.Context(), req.Category, req.MonthlyLimit)
	if err != nil {
		var dup engine.ErrDuplicateBudget
		if errors.As(err, &dup) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetView(*b))
}

func (s *Server) updateBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		MonthlyLimit decimal.Decimal `json:"monthly_limit"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := s.svc.UpdateBudget(r.Context(), id, req.MonthlyLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if b == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetView(*b))
}

func (s *Server) deleteBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := s.svc.DeleteBudget(r.Context(), id)
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
