package service

import (
	"fmt"
	"math"
	"time"

	"wordpath/internal/models"
)

// TriageOutcome is the result of a triage decision.
type TriageOutcome struct {
	Status  models.WordStatus
	Created bool
	Message string
}

// TriageWord is the next word offered for triage, with how many untriaged
// words remain in the unit (including this one). Word is nil when the unit
// is exhausted.
type TriageWord struct {
	Word      *models.Word
	Unit      int
	Remaining int
	Message   string
}

// UserStats is the dashboard summary for one user.
type UserStats struct {
	UserID             int64
	Level              int
	XP                 int
	WordsMastered      int
	WordsLearning      int
	WordsInReview      int
	TotalWords         int
	DueCount           int
	NewCount           int
	CurrentStreak      int
	DailyWordsReviewed int
	DailyGoal          int
}

// UnitProgress is one unit's learned/total breakdown.
type UnitProgress struct {
	Unit    int
	Learned int
	Total   int
	Percent float64
}

// UnitStats is the per-unit progress report.
type UnitStats struct {
	Units          []UnitProgress
	TotalLearned   int
	TotalWords     int
	OverallPercent float64
}

// TriageService handles the coarse known/unknown classification that feeds
// words into the learning queue, plus the user-facing progress stats.
type TriageService struct {
	words    WordStore
	progress ProgressStore
	users    UserStore
	goal     int
	now      func() time.Time
}

// NewTriageService creates a new triage service. A non-positive daily goal
// falls back to the default.
func NewTriageService(words WordStore, progress ProgressStore, users UserStore, dailyGoal int) *TriageService {
	if dailyGoal <= 0 {
		dailyGoal = DefaultDailyGoal
	}
	return &TriageService{
		words:    words,
		progress: progress,
		users:    users,
		goal:     dailyGoal,
		now:      time.Now,
	}
}

// Triage classifies a word as already-known (Mastered) or not-yet-known
// (Learning). An existing record is overwritten either way: triage is the
// one path that can pull a word out of Mastered. A word sent to Learning is
// scheduled immediately so it shows up in the next review session.
func (s *TriageService) Triage(userID, wordID int64, isKnown bool) (*TriageOutcome, error) {
	word, err := s.words.ByID(wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load word: %w", err)
	}
	if word == nil {
		return nil, ErrWordNotFound
	}

	progress, err := s.progress.ByUserAndWord(userID, wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	if progress != nil {
		var message string
		if isKnown {
			progress.Status = models.StatusMastered
			message = "Word marked as Mastered!"
		} else {
			progress.Status = models.StatusLearning
			progress.NextReview = models.ScheduledAt(s.now())
			message = "Word added to Learning queue!"
		}
		if err := s.progress.Update(progress); err != nil {
			return nil, fmt.Errorf("failed to save progress: %w", err)
		}
		return &TriageOutcome{Status: progress.Status, Message: message}, nil
	}

	progress = &models.WordProgress{
		UserID: userID,
		WordID: wordID,
		SRS:    models.DefaultSRSState(),
	}
	var message string
	if isKnown {
		progress.Status = models.StatusMastered
		progress.NextReview = models.Unscheduled()
		message = "Word marked as Mastered!"
	} else {
		progress.Status = models.StatusLearning
		progress.NextReview = models.ScheduledAt(s.now())
		message = "Word marked as Learning!"
	}
	if err := s.progress.Create(progress); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}
	return &TriageOutcome{Status: progress.Status, Created: true, Message: message}, nil
}

// NextTriageWord picks a random untriaged word in the unit matching the
// user's level (clamped to the unit range). A zero level means "use the
// user's stored level".
func (s *TriageService) NextTriageWord(userID int64, level int) (*TriageWord, error) {
	if level <= 0 {
		user, err := s.users.ByID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		level = user.Level
	}

	unit := level
	if unit < models.MinUnit {
		unit = models.MinUnit
	}
	if unit > models.MaxUnit {
		unit = models.MaxUnit
	}

	word, remaining, err := s.words.RandomUntriaged(userID, unit)
	if err != nil {
		return nil, fmt.Errorf("failed to pick triage word: %w", err)
	}

	result := &TriageWord{Word: word, Unit: unit, Remaining: remaining}
	if word == nil {
		result.Message = fmt.Sprintf("All words in unit %d have been triaged.", unit)
	} else {
		result.Message = fmt.Sprintf("%d words remaining at level %d.", remaining, unit)
	}
	return result, nil
}

// Stats builds the dashboard summary. A stale daily counter (last activity
// before today) is reset and persisted on read, so the dashboard never
// shows yesterday's count.
func (s *TriageService) Stats(userID int64) (*UserStats, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := s.now()
	if user.DailyWordsReviewed > 0 && !user.ActiveOn(now) {
		user.DailyWordsReviewed = 0
		if err := s.users.UpdateActivity(user); err != nil {
			return nil, fmt.Errorf("failed to reset daily counter: %w", err)
		}
	}

	statusCounts, err := s.progress.StatusCounts(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count progress: %w", err)
	}

	totalWords, err := s.words.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count words: %w", err)
	}

	reviewStats, err := s.progress.ReviewStats(userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load review stats: %w", err)
	}

	return &UserStats{
		UserID:             user.ID,
		Level:              user.Level,
		XP:                 user.XP,
		WordsMastered:      statusCounts[models.StatusMastered],
		WordsLearning:      statusCounts[models.StatusLearning],
		WordsInReview:      statusCounts[models.StatusReview],
		TotalWords:         totalWords,
		DueCount:           reviewStats.DueCount,
		NewCount:           reviewStats.NewCount,
		CurrentStreak:      user.CurrentStreak,
		DailyWordsReviewed: user.DailyWordsReviewed,
		DailyGoal:          s.goal,
	}, nil
}

// UnitStats reports the learned (Review or Mastered) counts per unit with
// percentages and an overall total.
func (s *TriageService) UnitStats(userID int64) (*UnitStats, error) {
	totals, err := s.words.CountByUnit()
	if err != nil {
		return nil, fmt.Errorf("failed to count words by unit: %w", err)
	}

	learned, err := s.progress.LearnedCountByUnit(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count learned words: %w", err)
	}

	stats := &UnitStats{}
	for unit := models.MinUnit; unit <= models.MaxUnit; unit++ {
		total := totals[unit]
		count := learned[unit]
		stats.TotalWords += total
		stats.TotalLearned += count
		stats.Units = append(stats.Units, UnitProgress{
			Unit:    unit,
			Learned: count,
			Total:   total,
			Percent: percentOf(count, total),
		})
	}
	stats.OverallPercent = percentOf(stats.TotalLearned, stats.TotalWords)
	return stats, nil
}

// percentOf returns count/total as a percentage rounded to one decimal.
func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
