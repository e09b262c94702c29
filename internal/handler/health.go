package handler

import (
	"net/http"
	"time"

	"trackthething/internal/httputil"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

// HealthCheck reports liveness
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, HealthResponse{Status: "ok", Time: time.Now().UTC()})
}
