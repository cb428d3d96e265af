package server

import (
	"encoding/json"
	"net/http"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := s.db.Ping(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
		s.log.Error().Err(err).Msg("Health check database ping failed")
	}

	s.writeJSON(w, code, map[string]interface{}{
		"status":  status,
		"service": "karobuddy-dfg",
		"version": "1.0.0",
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
