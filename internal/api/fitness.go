package api

import (
	"net/http"
	"time"

	"github.com/madspljoensson/life-dashboard/internal/storage"
)

func (s *Server) listWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.svc.Workouts(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkoutViews(workouts))
}

func (s *Server) logWorkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date            string  `json:"date"`
		WorkoutType     string  `json:"workout_type"`
		Name            string  `json:"name"`
		DurationMinutes *int    `json:"duration_minutes"`
		Notes           *string `json:"notes"`
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
	workout, err := s.svc.LogWorkout(r.Context(), storage.WorkoutInsert{
		Date:            date,
		WorkoutType:     req.WorkoutType,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toWorkoutView(*workout))
}

func (s *Server) deleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := s.svc.DeleteWorkout(r.Context(), id)
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

func (s *Server) fitnessStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.FitnessStats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
