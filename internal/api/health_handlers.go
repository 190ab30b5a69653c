package api

import (
	"net/http"
	"time"

	"github.com/readupapp/readup-server/internal/http/response"
)

// HealthResponse contains health check data.
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// handleHealthCheck reports server liveness.
// GET /health
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, HealthResponse{
		Status: "healthy",
		Time:   time.Now(),
	}, s.logger)
}
