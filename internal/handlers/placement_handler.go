package handlers

import (
	"encoding/json"
	"net/http"

	"wordpath/internal/service"
)

// PlacementHandler handles the adaptive placement test endpoints.
type PlacementHandler struct {
	placementService *service.PlacementService
}

// NewPlacementHandler creates a new placement handler.
func NewPlacementHandler(placementService *service.PlacementService) *PlacementHandler {
	return &PlacementHandler{placementService: placementService}
}

// Start begins or resumes the user's placement session.
// POST /api/v1/users/{userID}/placement/start
func (h *PlacementHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	step, err := h.placementService.Start(userID)
	if err != nil {
		respondServiceError(w, "Error starting placement test", err)
		return
	}

	respondJSON(w, http.StatusOK, newPlacementStepResponse(step))
}

type placementAnswerRequest struct {
	IsKnown bool `json:"is_known"`
}

// SubmitAnswer records one placement answer and returns the next question
// or the final result.
// POST /api/v1/users/{userID}/placement/answer
func (h *PlacementHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	var req placementAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	step, err := h.placementService.SubmitAnswer(userID, req.IsKnown)
	if err != nil {
		respondServiceError(w, "Error submitting placement answer", err)
		return
	}

	respondJSON(w, http.StatusOK, newPlacementStepResponse(step))
}

// GetSession returns the user's active placement session.
// GET /api/v1/users/{userID}/placement
func (h *PlacementHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	session, err := h.placementService.ActiveSession(userID)
	if err != nil {
		respondServiceError(w, "Error loading placement session", err)
		return
	}

	respondJSON(w, http.StatusOK, newPlacementSessionResponse(session))
}
