package models

import "time"

// WordStatus is the learning status of a word for one user.
type WordStatus string

const (
	// StatusNew means the user has never touched the word. It is the
	// absence of a progress row and is never stored.
	StatusNew WordStatus = "New"
	// StatusLearning means the word is in the active learning queue.
	StatusLearning WordStatus = "Learning"
	// StatusReview means the word has passed at least one review and is
	// in the spaced-repetition cycle.
	StatusReview WordStatus = "Review"
	// StatusMastered means long-term retention has been reached, either
	// through reviews or a triage "I know it" decision.
	StatusMastered WordStatus = "Mastered"
)

// Stored reports whether the status is one that may appear on a persisted
// progress row.
func (s WordStatus) Stored() bool {
	switch s {
	case StatusLearning, StatusReview, StatusMastered:
		return true
	}
	return false
}

// NextReview is the scheduling state of a progress record: either
// unscheduled (the word has never been scheduled) or scheduled at a
// specific time. It replaces a nullable timestamp so call sites never
// null-check; the nullable column exists only inside the repositories.
type NextReview struct {
	at        time.Time
	scheduled bool
}

// Unscheduled returns the never-scheduled state.
func Unscheduled() NextReview {
	return NextReview{}
}

// ScheduledAt returns a state scheduled for the given time.
func ScheduledAt(t time.Time) NextReview {
	return NextReview{at: t, scheduled: true}
}

// Scheduled reports whether a review time has been set.
func (n NextReview) Scheduled() bool {
	return n.scheduled
}

// At returns the scheduled time and whether one is set.
func (n NextReview) At() (time.Time, bool) {
	return n.at, n.scheduled
}

// Due reports whether the review is scheduled and not in the future.
func (n NextReview) Due(now time.Time) bool {
	return n.scheduled && !n.at.After(now)
}

// SRSState holds the SM-2 parameters of a progress record.
type SRSState struct {
	Repetitions    int
	EasinessFactor float64
	IntervalDays   int
}

// DefaultSRSState returns the parameters of a record that has never been
// reviewed.
func DefaultSRSState() SRSState {
	return SRSState{Repetitions: 0, EasinessFactor: 2.5, IntervalDays: 0}
}

// WordProgress is the per-(user, word) learning record. One row per pair;
// a missing row means StatusNew.
type WordProgress struct {
	ID         int64
	UserID     int64
	WordID     int64
	Status     WordStatus
	NextReview NextReview
	SRS        SRSState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReviewItem pairs a due progress record with its word for the review feed.
type ReviewItem struct {
	Progress WordProgress
	Word     Word
}

// IsNew reports whether the item has never been reviewed (brand-new
// Learning word surfaced by the feed).
func (r ReviewItem) IsNew() bool {
	return !r.Progress.NextReview.Scheduled()
}

// UnitWord pairs a word with the caller's progress, which may be absent
// for words the user has never seen.
type UnitWord struct {
	Progress *WordProgress
	Word     Word
}

// ReviewStats summarizes a user's review queue.
type ReviewStats struct {
	DueCount  int
	NewCount  int
	NextDueAt *time.Time // earliest upcoming review, nil if none
}

// WordOutcomeCounts aggregates the population outcome of one word across
// all users: Total counts Learning+Review+Mastered rows, Successes counts
// Review+Mastered rows.
type WordOutcomeCounts struct {
	WordID    int64
	Total     int
	Successes int
}
