package service

import (
	"fmt"
	"time"

	"wordpath/internal/models"
	"wordpath/internal/srs"
)

const (
	// Mastery requires sustained recall: at least this many consecutive
	// successful reviews with at least this long an interval.
	masteryMinRepetitions  = 8
	masteryMinIntervalDays = 180

	defaultDueLimit  = 20
	defaultUnitLimit = 50
)

// ReviewOutcome is the result of submitting one review.
type ReviewOutcome struct {
	Status        models.WordStatus
	StatusChanged bool
	NextReview    models.NextReview
	IntervalDays  int
	Message       string
}

// ReviewService runs the spaced-repetition review cycle.
type ReviewService struct {
	words    WordStore
	progress ProgressStore
	now      func() time.Time
}

// NewReviewService creates a new review service.
func NewReviewService(words WordStore, progress ProgressStore) *ReviewService {
	return &ReviewService{
		words:    words,
		progress: progress,
		now:      time.Now,
	}
}

// SubmitReview applies one quality rating (0-5) to the user's progress on a
// word, advancing it through the SM-2 schedule.
//
// A missing progress record is created lazily with Learning defaults, so a
// review can be the first interaction with a word. Status transitions, in
// order: Learning promotes to Review on a pass; any state promotes to
// Mastered once the repetition count and interval reach the mastery
// thresholds. A failed review resets the SM-2 state but never demotes the
// status; only triage moves a word out of Mastered.
func (s *ReviewService) SubmitReview(userID, wordID int64, quality int) (*ReviewOutcome, error) {
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

	created := false
	if progress == nil {
		created = true
		progress = &models.WordProgress{
			UserID: userID,
			WordID: wordID,
			Status: models.StatusLearning,
			SRS:    models.DefaultSRSState(),
		}
	}

	// Validate the rating before any write
	result, err := srs.Score(quality, progress.SRS.Repetitions, progress.SRS.EasinessFactor, progress.SRS.IntervalDays)
	if err != nil {
		return nil, err
	}

	oldStatus := progress.Status
	passed := quality >= srs.PassThreshold

	if progress.Status == models.StatusLearning && passed && result.Repetitions > 0 {
		progress.Status = models.StatusReview
	}
	if result.Repetitions >= masteryMinRepetitions && result.IntervalDays >= masteryMinIntervalDays {
		progress.Status = models.StatusMastered
	}

	progress.SRS = models.SRSState{
		Repetitions:    result.Repetitions,
		EasinessFactor: result.EasinessFactor,
		IntervalDays:   result.IntervalDays,
	}
	progress.NextReview = models.ScheduledAt(s.now().Add(time.Duration(result.IntervalDays) * 24 * time.Hour))

	if created {
		err = s.progress.Create(progress)
	} else {
		err = s.progress.Update(progress)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	changed := progress.Status != oldStatus
	var message string
	switch {
	case !passed:
		message = "Keep trying! You'll see this word again tomorrow."
	case changed && progress.Status == models.StatusMastered:
		message = "Word mastered! You've achieved long-term retention."
	case changed && progress.Status == models.StatusReview:
		message = fmt.Sprintf("Great! This word is now in your review queue. Next review in %d day(s).", result.IntervalDays)
	default:
		message = fmt.Sprintf("Good! Next review in %d day(s).", result.IntervalDays)
	}

	return &ReviewOutcome{
		Status:        progress.Status,
		StatusChanged: changed || created,
		NextReview:    progress.NextReview,
		IntervalDays:  result.IntervalDays,
		Message:       message,
	}, nil
}

// DueWords returns the user's review feed: overdue words first, then
// never-scheduled Learning words.
func (s *ReviewService) DueWords(userID int64, limit int) ([]models.ReviewItem, error) {
	if limit <= 0 {
		limit = defaultDueLimit
	}
	return s.progress.Due(userID, s.now(), limit)
}

// Stats returns the user's review queue statistics.
func (s *ReviewService) Stats(userID int64) (models.ReviewStats, error) {
	return s.progress.ReviewStats(userID, s.now())
}

// UnitWords returns the words of one unit paired with the user's progress
// (nil progress for untouched words).
func (s *ReviewService) UnitWords(userID int64, unit, limit int) ([]models.UnitWord, error) {
	if !models.ValidUnit(unit) {
		return nil, ErrInvalidUnit
	}
	if limit <= 0 {
		limit = defaultUnitLimit
	}
	return s.progress.UnitWords(userID, unit, limit)
}
