package models

import "time"

// PlacementSession is one adaptive placement test run. At most one active
// session exists per user; a new one may only be created after the
// previous one completed.
type PlacementSession struct {
	ID            int64
	UserID        int64
	LowerBound    int // inclusive, 1-100 difficulty axis
	UpperBound    int // inclusive
	QuestionCount int
	Active        bool
	FinalLevel    *int // nil until completion
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Midpoint returns the midpoint of the current search range.
func (s *PlacementSession) Midpoint() int {
	return (s.LowerBound + s.UpperBound) / 2
}

// RangeSize returns the width of the current search range.
func (s *PlacementSession) RangeSize() int {
	return s.UpperBound - s.LowerBound
}
