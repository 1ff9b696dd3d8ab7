package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/fundledger/internal/adapter/http/dto"
)

// readinessTimeout bounds all readiness checks together.
const readinessTimeout = 5 * time.Second

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	checks []HealthCheck
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, "ok", map[string]string{"status": "ok"})
}

// Readiness returns 200 if every dependency answers.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status := map[string]string{}
	var failed []string
	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			status[c.Name] = err.Error()
			failed = append(failed, c.Name)
			continue
		}
		status[c.Name] = "ok"
	}

	if len(failed) > 0 {
		env := dto.Failure(http.StatusServiceUnavailable, "service not ready", &dto.ErrorDetail{
			Fields:  failed,
			Message: "dependency check failed",
		})
		env.Data = status
		writeJSON(w, http.StatusServiceUnavailable, env)
		return
	}

	respond(w, http.StatusOK, "ready", status)
}
