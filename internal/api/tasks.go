package api

import (
	"net/http"
	"time"

	"github.com/madspljoensson/life-dashboard/internal/engine"
	"github.com/madspljoensson/life-dashboard/internal/storage"
)

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.Tasks(r.Context(), queryStr(r, "status"), queryStr(r, "priority"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskViews(tasks))
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title            string  `json:"title"`
		Description      *string `json:"description"`
		Status           string  `json:"status"`
		Priority         string  `json:"priority"`
		DueDate          *string `json:"due_date"`
		Recurring        bool    `json:"recurring"`
		RecurringPattern *string `json:"recurring_pattern"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	in := storage.TaskInsert{
		Title:            req.Title,
		Description:      req.Description,
		Status:           req.Status,
		Priority:         req.Priority,
		Recurring:        req.Recurring,
		RecurringPattern: req.RecurringPattern,
	}
	if req.DueDate != nil {
		due, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid due_date; want YYYY-MM-DD")
			return
		}
		in.DueDate = &due
	}
	task, err := s.svc.CreateTask(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, toTaskView(*task))
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	task, err := s.svc.Task(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if task == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toTaskView(*task))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Title            *string `json:"title"`
		Description      *string `json:"description"`
		Status           *string `json:"status"`
		Priority         *string `json:"priority"`
		DueDate          *string `json:"due_date"`
		Recurring        *bool   `json:"recurring"`
		RecurringPattern *string `json:"recurring_pattern"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	patch := engine.TaskUpdate{
		Title:            req.Title,
		Description:      req.Description,
		Status:           req.Status,
		Priority:         req.Priority,
		Recurring:        req.Recurring,
		RecurringPattern: req.RecurringPattern,
	}
	if req.DueDate != nil {
		due, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid due_date; want YYYY-MM-DD")
			return
		}
		patch.DueDate = &due
	}
	task, err := s.svc.UpdateTask(r.Context(), id, patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if task == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, toTaskView(*task))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	deleted, err := s.svc.DeleteTask(r.Context(), id)
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

func (s *Server) overdueTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.svc.OverdueTasks(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskViews(tasks))
}
