package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/TaskQuest_Go/internal/database"
	"github.com/osse101/TaskQuest_Go/internal/logger"
)

const (
	readinessTimeout = 2 * time.Second

	checkOK            = "ok"
	checkUnreachable   = "unreachable"
	checkNotConfigured = "not configured"
)

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HandleHealthz reports that the process is up
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: checkOK})
	}
}

// HandleReadyz reports whether TaskQuest can serve character and quest
// requests, which today means the database answers a ping.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(dbPool database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{"database": pingDatabase(r.Context(), dbPool)}

		for name, state := range checks {
			if state == checkOK {
				continue
			}
			logger.FromContext(r.Context()).Error("Readiness check failed", "check", name, "state", state)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: ErrMsgDatabaseUnavailable,
				Checks:  checks,
			})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: checkOK, Checks: checks})
	}
}

func pingDatabase(ctx context.Context, dbPool database.Pool) string {
	if dbPool == nil {
		return checkNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	if err := dbPool.Ping(ctx); err != nil {
		logger.FromContext(ctx).Warn("Database ping failed", "error", err)
		return checkUnreachable
	}
	return checkOK
}
