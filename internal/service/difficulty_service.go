package service

import (
	"context"
	"fmt"
	"math"
)

const (
	minDifficultyLevel = 1
	maxDifficultyLevel = 20
)

// AggregationSummary reports one difficulty recalculation run.
type AggregationSummary struct {
	TotalWords     int
	UpdatedCount   int
	NoDataCount    int
	LevelHistogram map[int]int
}

// DifficultyService derives each word's crowd-sourced difficulty level from
// how well the whole population retains it.
type DifficultyService struct {
	words    WordStore
	progress ProgressStore
}

// NewDifficultyService creates a new difficulty service.
func NewDifficultyService(words WordStore, progress ProgressStore) *DifficultyService {
	return &DifficultyService{words: words, progress: progress}
}

// RecalculateAll recomputes the difficulty level of every word that has
// review data. The success rate of a word is the share of its progress rows
// that reached Review or Mastered; Learning rows count as struggles, and
// untouched words keep a nil level. The whole batch is applied in one
// transaction, so reruns are idempotent and a failed run changes nothing.
func (s *DifficultyService) RecalculateAll(ctx context.Context) (*AggregationSummary, error) {
	totalWords, err := s.words.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count words: %w", err)
	}

	counts, err := s.progress.OutcomeCountsByWord(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate outcomes: %w", err)
	}

	levels := make(map[int64]int, len(counts))
	histogram := make(map[int]int)
	for _, c := range counts {
		if c.Total == 0 {
			continue
		}
		level := levelForSuccessRate(float64(c.Successes) / float64(c.Total))
		levels[c.WordID] = level
		histogram[level]++
	}

	if err := s.words.ApplyDifficultyLevels(ctx, levels); err != nil {
		return nil, fmt.Errorf("failed to apply difficulty levels: %w", err)
	}

	return &AggregationSummary{
		TotalWords:     totalWords,
		UpdatedCount:   len(levels),
		NoDataCount:    totalWords - len(levels),
		LevelHistogram: histogram,
	}, nil
}

// levelForSuccessRate maps a [0, 1] success rate onto the 1-20 difficulty
// scale: a word everyone retains is level 1, a word nobody retains is 20.
func levelForSuccessRate(rate float64) int {
	level := int(math.Round(1 + (1-rate)*19))
	if level < minDifficultyLevel {
		level = minDifficultyLevel
	}
	if level > maxDifficultyLevel {
		level = maxDifficultyLevel
	}
	return level
}
