package handlers

import (
	"encoding/json"
	"net/http"

	"wordpath/internal/service"
)

// TriageHandler handles the known/unknown word triage and the user-facing
// progress stats.
type TriageHandler struct {
	triageService *service.TriageService
}

// NewTriageHandler creates a new triage handler.
func NewTriageHandler(triageService *service.TriageService) *TriageHandler {
	return &TriageHandler{triageService: triageService}
}

type triageRequest struct {
	WordID  int64 `json:"word_id"`
	IsKnown bool  `json:"is_known"`
}

// Triage classifies one word as known or unknown.
// POST /api/v1/users/{userID}/triage
func (h *TriageHandler) Triage(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	var req triageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	outcome, err := h.triageService.Triage(userID, req.WordID, req.IsKnown)
	if err != nil {
		respondServiceError(w, "Error triaging word", err)
		return
	}

	respondJSON(w, http.StatusOK, triageOutcomeResponse{
		Status:  outcome.Status,
		Created: outcome.Created,
		Message: outcome.Message,
	})
}

// NextTriageWord offers the next untriaged word. An explicit level query
// parameter overrides the user's stored level.
// GET /api/v1/users/{userID}/triage/next?level=N
func (h *TriageHandler) NextTriageWord(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	result, err := h.triageService.NextTriageWord(userID, queryInt(r, "level", 0))
	if err != nil {
		respondServiceError(w, "Error picking triage word", err)
		return
	}

	respondJSON(w, http.StatusOK, triageWordResponse{
		Word:      newWordResponsePtr(result.Word),
		Unit:      result.Unit,
		Remaining: result.Remaining,
		Message:   result.Message,
	})
}

// GetUserStats returns the dashboard summary.
// GET /api/v1/users/{userID}/stats
func (h *TriageHandler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	stats, err := h.triageService.Stats(userID)
	if err != nil {
		respondServiceError(w, "Error loading user stats", err)
		return
	}

	respondJSON(w, http.StatusOK, newUserStatsResponse(stats))
}

// GetUnitStats returns the per-unit learned/total breakdown.
// GET /api/v1/users/{userID}/stats/units
func (h *TriageHandler) GetUnitStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	stats, err := h.triageService.UnitStats(userID)
	if err != nil {
		respondServiceError(w, "Error loading unit stats", err)
		return
	}

	respondJSON(w, http.StatusOK, newUnitStatsResponse(stats))
}
