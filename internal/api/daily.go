package api

import (
	"net/http"
	"time"

	"github.com/madspljoensson/life-dashboard/internal/engine"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

func (s *Server) listDailyNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.svc.DailyNotes(r.Context(), queryInt(r, "limit", 30))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDailyViews(notes))
}

func (s *Server) createDailyNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date       string  `json:"date"`
		Mood       *int    `json:"mood"`
		Energy     *int    `json:"energy"`
		Note       *string `json:"note"`
		Highlights *string `json:"highlights"`
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
	note, err := s.svc.CreateDailyNote(r.Context(), storage.DailyInsert{
		Date:       date,
		Mood:       req.Mood,
		Energy:     req.Energy,
		Note:       req.Note,
		Highlights: req.Highlights,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toDailyView(*note))
}

func (s *Server) getDailyNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.svc.DailyNote(r.Context(), pathDate(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if note == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toDailyView(*note))
}

func (s *Server) todayNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.svc.TodayNote(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if note == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toDailyView(*note))
}

func (s *Server) updateDailyNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood       *int    `json:"mood"`
		Energy     *int    `json:"energy"`
		Note       *string `json:"note"`
		Highlights *string `json:"highlights"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	note, err := s.svc.UpdateDailyNote(r.Context(), pathDate(r), engine.DailyUpdate{
		Mood:       req.Mood,
		Energy:     req.Energy,
		Note:       req.Note,
		Highlights: req.Highlights,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if note == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toDailyView(*note))
}
