package api

import (
	"net/http"
	"time"

	"github.com/madspljoensson/life-dashboard/internal/engine"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

// parseClockTime accepts either RFC3339 or a bare HH:MM clock time anchored
// to the entry's date.
func parseClockTime(raw string, date time.Time) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("15:04", raw); err == nil {
		return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func (s *Server) listSleep(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.SleepEntries(r.Context(), queryInt(r, "limit", 30))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSleepViews(entries))
}

func (s *Server) logSleep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date          string   `json:"date"`
		Bedtime       *string  `json:"bedtime"`
		WakeTime      *string  `json:"wake_time"`
		DurationHours *float64 `json:"duration_hours"`
		Quality       *int     `json:"quality"`
		Notes         *string  `json:"notes"`
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
	in := storage.SleepInsert{
		Date:          date,
		DurationHours: req.DurationHours,
		Quality:       req.Quality,
		Notes:         req.Notes,
	}
	if req.Bedtime != nil {
		t, ok := parseClockTime(*req.Bedtime, date.AddDate(0, 0, -1))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid bedtime")
			return
		}
		in.Bedtime = &t
	}
	if req.WakeTime != nil {
		t, ok := parseClockTime(*req.WakeTime, date)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid wake_time")
			return
		}
		in.WakeTime = &t
	}
	e, err := s.svc.LogSleep(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toSleepView(*e))
}

func (s *Server) getSleep(w http.ResponseWriter, r *http.Request) {
	e, err := s.svc.SleepEntry(r.Context(), pathDate(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if e == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toSleepView(*e))
}

func (s *Server) updateSleep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Bedtime       *string  `json:"bedtime"`
		WakeTime      *string  `json:"wake_time"`
		DurationHours *float64 `json:"duration_hours"`
		Quality       *int     `json:"quality"`
		Notes         *string  `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	raw := pathDate(r)
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date; want YYYY-MM-DD")
		return
	}
	patch := engine.SleepUpdate{
		DurationHours: req.DurationHours,
		Quality:       req.Quality,
		Notes:         req.Notes,
	}
	if req.Bedtime != nil {
		t, ok := parseClockTime(*req.Bedtime, date.AddDate(0, 0, -1))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid bedtime")
			return
		}
		patch.Bedtime = &t
	}
	if req.WakeTime != nil {
		t, ok := parseClockTime(*req.WakeTime, date)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid wake_time")
			return
		}
		patch.WakeTime = &t
	}
	e, err := s.svc.UpdateSleep(r.Context(), raw, patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if e == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toSleepView(*e))
}

func (s *Server) weeklySleepStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.WeeklySleepStats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Entries     int         `json:"entries"`
		AvgDuration *float64    `json:"avg_duration"`
		AvgQuality  *float64    `json:"avg_quality"`
		Data        []sleepView `json:"data"`
	}{
		Entries:     stats.Entries,
		AvgDuration: stats.AvgDuration,
		AvgQuality:  stats.AvgQuality,
		Data:        toSleepViews(stats.Data),
	})
}

func (s *Server) sleepScore(w http.ResponseWriter, r *http.Request) {
	res, err := s.svc.SleepScore(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
