package handlers

import (
	"net/http"

	"wordpath/internal/service"
)

// AdminHandler handles operational endpoints.
type AdminHandler struct {
	difficultyService *service.DifficultyService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(difficultyService *service.DifficultyService) *AdminHandler {
	return &AdminHandler{difficultyService: difficultyService}
}

// RecalculateDifficulty runs the crowd-sourced difficulty aggregation on
// demand, outside the nightly schedule.
// POST /api/v1/admin/difficulty/recalculate
func (h *AdminHandler) RecalculateDifficulty(w http.ResponseWriter, r *http.Request) {
	summary, err := h.difficultyService.RecalculateAll(r.Context())
	if err != nil {
		respondServiceError(w, "Error recalculating difficulty", err)
		return
	}

	respondJSON(w, http.StatusOK, aggregationSummaryResponse{
		TotalWords:     summary.TotalWords,
		UpdatedCount:   summary.UpdatedCount,
		NoDataCount:    summary.NoDataCount,
		LevelHistogram: summary.LevelHistogram,
	})
}
