package models

import "time"

// User represents a learner. Registration and authentication are handled
// by an external collaborator; the core only reads and writes the level
// and daily-activity fields.
type User struct {
	ID                 int64
	Email              string
	Level              int // 1-100, set by placement test completion
	XP                 int
	CurrentStreak      int
	DailyWordsReviewed int
	LastActiveDate     *time.Time // last day with review activity; nil if never active
	LastGoalDate       *time.Time // last day the daily goal was reached; nil if never
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ActiveOn reports whether the user's last activity was on the given day.
func (u *User) ActiveOn(day time.Time) bool {
	return u.LastActiveDate != nil && SameDay(*u.LastActiveDate, day)
}

// SameDay reports whether two timestamps fall on the same calendar day (UTC).
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
