package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"wordpath/internal/service"
)

// ReviewHandler handles the spaced-repetition review endpoints.
type ReviewHandler struct {
	reviewService   *service.ReviewService
	activityService *service.ActivityService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService *service.ReviewService, activityService *service.ActivityService) *ReviewHandler {
	return &ReviewHandler{
		reviewService:   reviewService,
		activityService: activityService,
	}
}

// GetDueWords returns the user's review feed.
// GET /api/v1/users/{userID}/reviews?limit=N
func (h *ReviewHandler) GetDueWords(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	items, err := h.reviewService.DueWords(userID, queryInt(r, "limit", 0))
	if err != nil {
		respondServiceError(w, "Error loading review feed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": newReviewItemResponses(items),
		"count": len(items),
	})
}

type submitReviewRequest struct {
	WordID  int64 `json:"word_id"`
	Quality int   `json:"quality"`
}

// SubmitReview applies one quality rating and counts the review towards the
// daily goal.
// POST /api/v1/users/{userID}/reviews
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", nil)
		return
	}

	outcome, err := h.reviewService.SubmitReview(userID, req.WordID, req.Quality)
	if err != nil {
		respondServiceError(w, "Error submitting review", err)
		return
	}

	resp := reviewOutcomeResponse{
		Status:        outcome.Status,
		StatusChanged: outcome.StatusChanged,
		NextReview:    nextReviewPtr(outcome.NextReview),
		IntervalDays:  outcome.IntervalDays,
		Message:       outcome.Message,
	}

	// The review itself succeeded; a failed activity write costs the user
	// one tick of the daily counter, not the review.
	daily, err := h.activityService.RecordReview(userID)
	if err != nil {
		log.Printf("Failed to record activity for user %d: %v", userID, err)
	} else {
		resp.Daily = &dailyActivityResponse{
			WordsReviewed: daily.WordsReviewed,
			DailyGoal:     daily.Goal,
			GoalReached:   daily.GoalReached,
			Streak:        daily.Streak,
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetReviewStats returns the user's review queue summary.
// GET /api/v1/users/{userID}/reviews/stats
func (h *ReviewHandler) GetReviewStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	stats, err := h.reviewService.Stats(userID)
	if err != nil {
		respondServiceError(w, "Error loading review stats", err)
		return
	}

	respondJSON(w, http.StatusOK, reviewStatsResponse{
		DueCount:  stats.DueCount,
		NewCount:  stats.NewCount,
		NextDueAt: stats.NextDueAt,
	})
}

// GetUnitWords returns one unit's words with the user's progress.
// GET /api/v1/users/{userID}/units/{unit}/words?limit=N
func (h *ReviewHandler) GetUnitWords(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUserID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", nil)
		return
	}

	unit, err := strconv.Atoi(r.PathValue("unit"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid unit", "", nil)
		return
	}

	words, err := h.reviewService.UnitWords(userID, unit, queryInt(r, "limit", 0))
	if err != nil {
		respondServiceError(w, "Error loading unit words", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"unit":  unit,
		"words": newUnitWordResponses(words),
	})
}
