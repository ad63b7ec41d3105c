package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wordpath/internal/service"
	"wordpath/internal/srs"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondServiceError translates the service sentinel errors into HTTP
// statuses; anything unrecognized is a 500 with the action as log context.
func respondServiceError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, service.ErrWordNotFound):
		respondWithError(w, http.StatusNotFound, "Word not found", "", nil)
	case errors.Is(err, service.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found", "", nil)
	case errors.Is(err, service.ErrNoActiveSession):
		respondWithError(w, http.StatusNotFound, "No active placement session", "", nil)
	case errors.Is(err, service.ErrInvalidUnit):
		respondWithError(w, http.StatusBadRequest, "Unit out of range", "", nil)
	case errors.Is(err, srs.ErrInvalidQuality):
		respondWithError(w, http.StatusBadRequest, "Quality must be between 0 and 5", "", nil)
	case errors.Is(err, service.ErrNoPlacementWords):
		respondWithError(w, http.StatusConflict, "No words available for placement", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal server error", action, err)
	}
}
