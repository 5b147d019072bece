package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// IndexHandler serves the static admin console page.
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "./web/index.html")
}

// @Summary      Health check
// @Description  Reports whether the tenant database is reachable.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {string}  string "Service Unavailable"
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		http.Error(w, "Database unreachable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
