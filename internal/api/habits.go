package api

import (
	"net/http"
	"time"

	"github.com/madspljoensson/life-dashboard/internal/engine"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.svc.Habits(r.Context(), queryStr(r, "category"), queryBool(r, "active"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitViews(habits))
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string  `json:"name"`
		Category        *string `json:"category"`
		Icon            *string `json:"icon"`
		TargetFrequency *string `json:"target_frequency"`
		Active          *bool   `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	in := storage.HabitInsert{
		Name:            req.Name,
		Category:        req.Category,
		Icon:            req.Icon,
		TargetFrequency: req.TargetFrequency,
		Active:          true,
	}
	if req.Active != nil {
		in.Active = *req.Active
	}
	h, err := s.svc.CreateHabit(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toHabitView(*h))
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	h, err := s.svc.Habit(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if h == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toHabitView(*h))
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Name            *string `json:"name"`
		Category        *string `json:"category"`
		Icon            *string `json:"icon"`
		TargetFrequency *string `json:"target_frequency"`
		Active          *bool   `json:"active"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	h, err := s.svc.UpdateHabit(r.Context(), id, engine.HabitPatch{
		Name:            req.Name,
		Category:        req.Category,
		Icon:            req.Icon,
		TargetFrequency: req.TargetFrequency,
		Active:          req.Active,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if h == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toHabitView(*h))
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := s.svc.DeleteHabit(r.Context(), id)
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

func (s *Server) logHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Date      string   `json:"date"`
		Completed *bool    `json:"completed"`
		Value     *float64 `json:"value"`
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
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}
	l, err := s.svc.LogHabit(r.Context(), id, date, completed, req.Value)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if l == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusCreated, toHabitLogView(*l))
}

func (s *Server) habitLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	logs, err := s.svc.HabitLogs(r.Context(), id, queryInt(r, "days", 30))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if logs == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toHabitLogViews(logs))
}

func (s *Server) habitStreak(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	res, err := s.svc.HabitStreak(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if res == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) habitStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.HabitStats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) habitHeatmap(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.HabitHeatmap(r.Context(), queryInt(r, "days", 90))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	type entryView struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	out := make([]entryView, len(entries))
	for i, e := range entries {
		out[i] = entryView{Date: fmtDay(e.Date), Count: e.Count}
	}
	writeJSON(w, http.StatusOK, out)
}
