package service

import (
	"fmt"
	"time"

	"wordpath/internal/models"
)

// DefaultDailyGoal is how many reviews count as a full day of practice.
const DefaultDailyGoal = 15

// DailyActivity is the user's activity state after recording one review.
type DailyActivity struct {
	WordsReviewed int
	Goal          int
	GoalReached   bool // true only on the review that hits the goal
	Streak        int
}

// ActivityService tracks daily review counts and the goal streak. It runs
// outside the review scheduler: the handler invokes it with the outcome, so
// the scheduler's own contract stays pure.
type ActivityService struct {
	users UserStore
	goal  int
	now   func() time.Time
}

// NewActivityService creates a new activity service. A non-positive goal
// falls back to the default.
func NewActivityService(users UserStore, goal int) *ActivityService {
	if goal <= 0 {
		goal = DefaultDailyGoal
	}
	return &ActivityService{users: users, goal: goal, now: time.Now}
}

// RecordReview counts one completed review towards today's goal. A counter
// left over from an earlier day is reset first. The review that makes the
// counter reach the goal extends the streak when the goal was also reached
// yesterday, and restarts it at 1 otherwise; later reviews the same day
// change nothing but the count.
func (s *ActivityService) RecordReview(userID int64) (*DailyActivity, error) {
	user, err := s.users.ByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := s.now()
	if !user.ActiveOn(now) {
		user.DailyWordsReviewed = 0
	}
	user.DailyWordsReviewed++
	today := now.UTC()
	user.LastActiveDate = &today

	goalReached := user.DailyWordsReviewed == s.goal
	if goalReached {
		yesterday := now.AddDate(0, 0, -1)
		if user.LastGoalDate != nil && models.SameDay(*user.LastGoalDate, yesterday) {
			user.CurrentStreak++
		} else {
			user.CurrentStreak = 1
		}
		user.LastGoalDate = &today
	}

	if err := s.users.UpdateActivity(user); err != nil {
		return nil, fmt.Errorf("failed to save activity: %w", err)
	}

	return &DailyActivity{
		WordsReviewed: user.DailyWordsReviewed,
		Goal:          s.goal,
		GoalReached:   goalReached,
		Streak:        user.CurrentStreak,
	}, nil
}
