package handler

import (
	"net/http"

	"github.com/osse101/TaskQuest_Go/internal/stats"
)

// HandleGetStats returns billing, time and completion statistics
// @Summary Get statistics
// @Description Billing totals, hours, completion rates and a twelve month breakdown
// @Tags stats
// @Produce json
// @Success 200 {object} domain.Stats
// @Failure 500 {object} ErrorResponse
// @Router /stats [get]
func HandleGetStats(svc stats.Service, userID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.GetStats(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "Get stats", err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
