// Package api is the HTTP surface: a gorilla/mux router over the engine
// service, JSON in and out.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/madspljoensson/life-dashboard/internal/engine"
)

type Server struct {
	svc     *engine.Service
	log     *slog.Logger
	metrics *metrics
}

func NewServer(svc *engine.Service, log *slog.Logger) *Server {
	return &Server{svc: svc, log: log, metrics: newMetrics()}
}

// Handler builds the full route tree. corsOrigins is the allowed-origin
// list; empty disables CORS headers.
func (s *Server) Handler(corsOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.log))
	r.Use(s.metrics.instrument)

	r.HandleFunc("/api/ping", s.ping).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	h := r.PathPrefix("/api/habits").Subrouter()
	h.HandleFunc("", s.listHabits).Methods(http.MethodGet)
	h.HandleFunc("", s.createHabit).Methods(http.MethodPost)
	h.HandleFunc("/stats", s.habitStats).Methods(http.MethodGet)
	h.HandleFunc("/heatmap", s.habitHeatmap).Methods(http.MethodGet)
	h.HandleFunc("/{id}", s.getHabit).Methods(http.MethodGet)
	h.HandleFunc("/{id}", s.updateHabit).Methods(http.MethodPut)
	h.HandleFunc("/{id}", s.deleteHabit).Methods(http.MethodDelete)
	h.HandleFunc("/{id}/log", s.logHabit).Methods(http.MethodPost)
	h.HandleFunc("/{id}/logs", s.habitLogs).Methods(http.MethodGet)
	h.HandleFunc("/{id}/streak", s.habitStreak).Methods(http.MethodGet)

	sl := r.PathPrefix("/api/sleep").Subrouter()
	sl.HandleFunc("", s.listSleep).Methods(http.MethodGet)
	sl.HandleFunc("", s.logSleep).Methods(http.MethodPost)
	sl.HandleFunc("/stats", s.weeklySleepStats).Methods(http.MethodGet)
	sl.HandleFunc("/score", s.sleepScore).Methods(http.MethodGet)
	sl.HandleFunc("/{date}", s.getSleep).Methods(http.MethodGet)
	sl.HandleFunc("/{date}", s.updateSleep).Methods(http.MethodPut)

	f := r.PathPrefix("/api/finance").Subrouter()
	f.HandleFunc("/transactions", s.listTransactions).Methods(http.MethodGet)
	f.HandleFunc("/transactions", s.createTransaction).Methods(http.MethodPost)
	f.HandleFunc("/transactions/{id}", s.deleteTransaction).Methods(http.MethodDelete)
	f.HandleFunc("/summary", s.monthSummary).Methods(http.MethodGet)
	f.HandleFunc("/trends", s.trends).Methods(http.MethodGet)
	f.HandleFunc("/trends/categories", s.categoryTrends).Methods(http.MethodGet)
	f.HandleFunc("/budgets", s.listBudgets).Methods(http.MethodGet)
	f.HandleFunc("/budgets", s.createBudget).Methods(http.MethodPost)
	f.HandleFunc("/budgets/{id}", s.updateBudget).Methods(http.MethodPut)
	f.HandleFunc("/budgets/{id}", s.deleteBudget).Methods(http.MethodDelete)

	sub := r.PathPrefix("/api/subscriptions").Subrouter()
	sub.HandleFunc("", s.listSubscriptions).Methods(http.MethodGet)
	sub.HandleFunc("", s.createSubscription).Methods(http.MethodPost)
	sub.HandleFunc("/stats", s.subscriptionStats).Methods(http.MethodGet)
	sub.HandleFunc("/{id}", s.getSubscription).Methods(http.MethodGet)
	sub.HandleFunc("/{id}", s.updateSubscription).Methods(http.MethodPut)
	sub.HandleFunc("/{id}", s.deleteSubscription).Methods(http.MethodDelete)

	t := r.PathPrefix("/api/tasks").Subrouter()
	t.HandleFunc("", s.listTasks).Methods(http.MethodGet)
	t.HandleFunc("", s.createTask).Methods(http.MethodPost)
	t.HandleFunc("/overdue", s.overdueTasks).Methods(http.MethodGet)
	t.HandleFunc("/{id}", s.getTask).Methods(http.MethodGet)
	t.HandleFunc("/{id}", s.updateTask).Methods(http.MethodPut)
	t.HandleFunc("/{id}", s.deleteTask).Methods(http.MethodDelete)

	fit := r.PathPrefix("/api/fitness").Subrouter()
	fit.HandleFunc("/workouts", s.listWorkouts).Methods(http.MethodGet)
	fit.HandleFunc("/workouts", s.logWorkout).Methods(http.MethodPost)
	fit.HandleFunc("/workouts/{id}", s.deleteWorkout).Methods(http.MethodDelete)
	fit.HandleFunc("/stats", s.fitnessStats).Methods(http.MethodGet)

	d := r.PathPrefix("/api/daily").Subrouter()
	d.HandleFunc("", s.listDailyNotes).Methods(http.MethodGet)
	d.HandleFunc("", s.createDailyNote).Methods(http.MethodPost)
	d.HandleFunc("/today", s.todayNote).Methods(http.MethodGet)
	d.HandleFunc("/{date}", s.getDailyNote).Methods(http.MethodGet)
	d.HandleFunc("/{date}", s.updateDailyNote).Methods(http.MethodPut)

	st := r.PathPrefix("/api/settings").Subrouter()
	st.HandleFunc("", s.listSettings).Methods(http.MethodGet)
	st.HandleFunc("/{key}", s.getSetting).Methods(http.MethodGet)
	st.HandleFunc("/{key}", s.putSetting).Methods(http.MethodPut)

	var handler http.Handler = r
	if len(corsOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(corsOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		)(handler)
	}
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
}

func (s *Server) ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail logs an unexpected error and answers 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", r.Header.Get(requestIDHeader)),
		slog.Any("error", err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}
