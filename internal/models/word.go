package models

import "time"

// MinUnit and MaxUnit bound the vocabulary units words are grouped into.
const (
	MinUnit = 1
	MaxUnit = 10
)

// MinDifficultyRank and MaxDifficultyRank bound the legacy 1-100 difficulty
// axis the placement test searches over.
const (
	MinDifficultyRank = 1
	MaxDifficultyRank = 100
)

// Word represents a learnable vocabulary pair. Words are created by a
// content-loading collaborator; the core only writes DifficultyLevel.
type Word struct {
	ID              int64
	Term            string
	Translation     string
	Unit            int // 1-10
	DifficultyRank  int // 1-100, placement search axis
	DifficultyLevel *int // 1-20, crowd-sourced; nil until first aggregation
	ExampleSentence string
	AudioURL        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidUnit reports whether the unit number is within the configured range.
func ValidUnit(unit int) bool {
	return unit >= MinUnit && unit <= MaxUnit
}
