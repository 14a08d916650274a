package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) listSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.svc.Settings(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if settings == nil {
		settings = map[string]string{}
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) getSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	value, err := s.svc.Setting(r.Context(), key)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if value == nil {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": *value})
}

func (s *Server) putSetting(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	var req struct {
		Value string `json:"value"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := s.svc.SetSetting(r.Context(), key, req.Value); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}
