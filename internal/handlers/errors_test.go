package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"wordpath/internal/service"
	"wordpath/internal/srs"
)

func TestRespondServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"word not found", service.ErrWordNotFound, http.StatusNotFound, "Word not found"},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"no active session", service.ErrNoActiveSession, http.StatusNotFound, "No active placement session"},
		{"invalid unit", service.ErrInvalidUnit, http.StatusBadRequest, "Unit out of range"},
		{"invalid quality", srs.ErrInvalidQuality, http.StatusBadRequest, "Quality must be between 0 and 5"},
		{"no placement words", service.ErrNoPlacementWords, http.StatusConflict, "No words available for placement"},
		{"wrapped sentinel", fmt.Errorf("loading word: %w", service.ErrWordNotFound), http.StatusNotFound, "Word not found"},
		{"unknown error", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, "test action", tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body.Error != tt.wantError {
				t.Errorf("Expected error %q, got %q", tt.wantError, body.Error)
			}
		})
	}
}

func TestRespondJSONSetsContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	respondJSON(rec, http.StatusOK, map[string]int{"count": 3})

	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected application/json, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
