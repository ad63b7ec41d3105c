package handlers

import (
	"time"

	"wordpath/internal/models"
	"wordpath/internal/service"
)

// The response types are the JSON shapes of the API. The domain models stay
// tag-free; everything that crosses the wire is converted here.

type wordResponse struct {
	ID              int64  `json:"id"`
	Term            string `json:"term"`
	Translation     string `json:"translation"`
	Unit            int    `json:"unit"`
	DifficultyRank  int    `json:"difficulty_rank"`
	DifficultyLevel *int   `json:"difficulty_level"`
	ExampleSentence string `json:"example_sentence,omitempty"`
	AudioURL        string `json:"audio_url,omitempty"`
}

func newWordResponse(w models.Word) wordResponse {
	return wordResponse{
		ID:              w.ID,
		Term:            w.Term,
		Translation:     w.Translation,
		Unit:            w.Unit,
		DifficultyRank:  w.DifficultyRank,
		DifficultyLevel: w.DifficultyLevel,
		ExampleSentence: w.ExampleSentence,
		AudioURL:        w.AudioURL,
	}
}

func newWordResponsePtr(w *models.Word) *wordResponse {
	if w == nil {
		return nil
	}
	resp := newWordResponse(*w)
	return &resp
}

// nextReviewPtr flattens the scheduling state to a nullable timestamp for
// JSON.
func nextReviewPtr(n models.NextReview) *time.Time {
	if at, ok := n.At(); ok {
		return &at
	}
	return nil
}

type progressResponse struct {
	Status         models.WordStatus `json:"status"`
	NextReview     *time.Time        `json:"next_review"`
	Repetitions    int               `json:"repetitions"`
	EasinessFactor float64           `json:"easiness_factor"`
	IntervalDays   int               `json:"interval_days"`
}

func newProgressResponse(p models.WordProgress) progressResponse {
	return progressResponse{
		Status:         p.Status,
		NextReview:     nextReviewPtr(p.NextReview),
		Repetitions:    p.SRS.Repetitions,
		EasinessFactor: p.SRS.EasinessFactor,
		IntervalDays:   p.SRS.IntervalDays,
	}
}

type reviewItemResponse struct {
	Word     wordResponse     `json:"word"`
	Progress progressResponse `json:"progress"`
	IsNew    bool             `json:"is_new"`
}

func newReviewItemResponses(items []models.ReviewItem) []reviewItemResponse {
	resp := make([]reviewItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, reviewItemResponse{
			Word:     newWordResponse(item.Word),
			Progress: newProgressResponse(item.Progress),
			IsNew:    item.IsNew(),
		})
	}
	return resp
}

type dailyActivityResponse struct {
	WordsReviewed int  `json:"words_reviewed"`
	DailyGoal     int  `json:"daily_goal"`
	GoalReached   bool `json:"goal_reached"`
	Streak        int  `json:"streak"`
}

type reviewOutcomeResponse struct {
	Status        models.WordStatus      `json:"status"`
	StatusChanged bool                   `json:"status_changed"`
	NextReview    *time.Time             `json:"next_review"`
	IntervalDays  int                    `json:"interval_days"`
	Message       string                 `json:"message"`
	Daily         *dailyActivityResponse `json:"daily,omitempty"`
}

type reviewStatsResponse struct {
	DueCount  int        `json:"due_count"`
	NewCount  int        `json:"new_count"`
	NextDueAt *time.Time `json:"next_due_at"`
}

// unitWordResponse reports status New with no progress block for words the
// user has never touched.
type unitWordResponse struct {
	Word     wordResponse      `json:"word"`
	Status   models.WordStatus `json:"status"`
	Progress *progressResponse `json:"progress,omitempty"`
}

func newUnitWordResponses(words []models.UnitWord) []unitWordResponse {
	resp := make([]unitWordResponse, 0, len(words))
	for _, uw := range words {
		item := unitWordResponse{
			Word:   newWordResponse(uw.Word),
			Status: models.StatusNew,
		}
		if uw.Progress != nil {
			item.Status = uw.Progress.Status
			progress := newProgressResponse(*uw.Progress)
			item.Progress = &progress
		}
		resp = append(resp, item)
	}
	return resp
}

type triageOutcomeResponse struct {
	Status  models.WordStatus `json:"status"`
	Created bool              `json:"created"`
	Message string            `json:"message"`
}

type triageWordResponse struct {
	Word      *wordResponse `json:"word"`
	Unit      int           `json:"unit"`
	Remaining int           `json:"remaining"`
	Message   string        `json:"message"`
}

type placementSessionResponse struct {
	ID            int64 `json:"id"`
	QuestionCount int   `json:"question_count"`
	LowerBound    int   `json:"lower_bound"`
	UpperBound    int   `json:"upper_bound"`
	Active        bool  `json:"active"`
	FinalLevel    *int  `json:"final_level"`
}

func newPlacementSessionResponse(s *models.PlacementSession) placementSessionResponse {
	return placementSessionResponse{
		ID:            s.ID,
		QuestionCount: s.QuestionCount,
		LowerBound:    s.LowerBound,
		UpperBound:    s.UpperBound,
		Active:        s.Active,
		FinalLevel:    s.FinalLevel,
	}
}

type placementStepResponse struct {
	Session    placementSessionResponse `json:"session"`
	Word       *wordResponse            `json:"word"`
	IsComplete bool                     `json:"is_complete"`
	Message    string                   `json:"message"`
}

func newPlacementStepResponse(step *service.PlacementStep) placementStepResponse {
	return placementStepResponse{
		Session:    newPlacementSessionResponse(step.Session),
		Word:       newWordResponsePtr(step.Word),
		IsComplete: step.IsComplete,
		Message:    step.Message,
	}
}

type userStatsResponse struct {
	UserID             int64 `json:"user_id"`
	Level              int   `json:"level"`
	XP                 int   `json:"xp"`
	WordsMastered      int   `json:"words_mastered"`
	WordsLearning      int   `json:"words_learning"`
	WordsInReview      int   `json:"words_in_review"`
	TotalWords         int   `json:"total_words"`
	DueCount           int   `json:"due_count"`
	NewCount           int   `json:"new_count"`
	CurrentStreak      int   `json:"current_streak"`
	DailyWordsReviewed int   `json:"daily_words_reviewed"`
	DailyGoal          int   `json:"daily_goal"`
}

func newUserStatsResponse(s *service.UserStats) userStatsResponse {
	return userStatsResponse{
		UserID:             s.UserID,
		Level:              s.Level,
		XP:                 s.XP,
		WordsMastered:      s.WordsMastered,
		WordsLearning:      s.WordsLearning,
		WordsInReview:      s.WordsInReview,
		TotalWords:         s.TotalWords,
		DueCount:           s.DueCount,
		NewCount:           s.NewCount,
		CurrentStreak:      s.CurrentStreak,
		DailyWordsReviewed: s.DailyWordsReviewed,
		DailyGoal:          s.DailyGoal,
	}
}

type unitProgressResponse struct {
	Unit    int     `json:"unit"`
	Learned int     `json:"learned"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

type unitStatsResponse struct {
	Units          []unitProgressResponse `json:"units"`
	TotalLearned   int                    `json:"total_learned"`
	TotalWords     int                    `json:"total_words"`
	OverallPercent float64                `json:"overall_percent"`
}

func newUnitStatsResponse(s *service.UnitStats) unitStatsResponse {
	resp := unitStatsResponse{
		TotalLearned:   s.TotalLearned,
		TotalWords:     s.TotalWords,
		OverallPercent: s.OverallPercent,
	}
	for _, u := range s.Units {
		resp.Units = append(resp.Units, unitProgressResponse{
			Unit:    u.Unit,
			Learned: u.Learned,
			Total:   u.Total,
			Percent: u.Percent,
		})
	}
	return resp
}

type aggregationSummaryResponse struct {
	TotalWords     int         `json:"total_words"`
	UpdatedCount   int         `json:"updated_count"`
	NoDataCount    int         `json:"no_data_count"`
	LevelHistogram map[int]int `json:"level_histogram"`
}
