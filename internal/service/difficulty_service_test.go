package service

import (
	"context"
	"testing"

	"wordpath/internal/models"
)

func TestLevelForSuccessRate(t *testing.T) {
	tests := []struct {
		rate float64
		want int
	}{
		{1.0, 1},   // everybody retains it
		{0.0, 20},  // nobody does
		{0.5, 11},  // round(1 + 9.5)
		{0.9, 3},   // round(1 + 1.9)
		{0.25, 15}, // round(1 + 14.25)
		{1.5, 1},   // clamped
		{-0.5, 20}, // clamped
	}

	for _, tt := range tests {
		if got := levelForSuccessRate(tt.rate); got != tt.want {
			t.Errorf("levelForSuccessRate(%v) = %d, want %d", tt.rate, got, tt.want)
		}
	}
}

func TestRecalculateAll(t *testing.T) {
	words := newFakeWordStore()
	progress := newFakeProgressStore()
	words.totalOverride = 5
	progress.outcomes = []models.WordOutcomeCounts{
		{WordID: 1, Total: 4, Successes: 4}, // rate 1.0 -> level 1
		{WordID: 2, Total: 4, Successes: 0}, // rate 0.0 -> level 20
		{WordID: 3, Total: 4, Successes: 2}, // rate 0.5 -> level 11
	}

	svc := NewDifficultyService(words, progress)
	summary, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("RecalculateAll failed: %v", err)
	}

	if summary.TotalWords != 5 {
		t.Errorf("Expected 5 total words, got %d", summary.TotalWords)
	}
	if summary.UpdatedCount != 3 {
		t.Errorf("Expected 3 updated, got %d", summary.UpdatedCount)
	}
	if summary.NoDataCount != 2 {
		t.Errorf("Expected 2 without data, got %d", summary.NoDataCount)
	}

	wantHistogram := map[int]int{1: 1, 11: 1, 20: 1}
	for level, count := range wantHistogram {
		if summary.LevelHistogram[level] != count {
			t.Errorf("Level %d: expected %d, got %d", level, count, summary.LevelHistogram[level])
		}
	}

	if len(words.applied) != 1 {
		t.Fatalf("Expected one bulk update, got %d", len(words.applied))
	}
	wantLevels := map[int64]int{1: 1, 2: 20, 3: 11}
	for wordID, level := range wantLevels {
		if words.applied[0][wordID] != level {
			t.Errorf("Word %d: expected level %d, got %d", wordID, level, words.applied[0][wordID])
		}
	}
}

func TestRecalculateAllIsIdempotent(t *testing.T) {
	words := newFakeWordStore()
	progress := newFakeProgressStore()
	words.totalOverride = 2
	progress.outcomes = []models.WordOutcomeCounts{
		{WordID: 1, Total: 2, Successes: 1},
	}

	svc := NewDifficultyService(words, progress)
	first, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if first.UpdatedCount != second.UpdatedCount || first.NoDataCount != second.NoDataCount {
		t.Errorf("Expected identical summaries, got %+v and %+v", first, second)
	}
	if len(words.applied) != 2 {
		t.Fatalf("Expected two bulk updates, got %d", len(words.applied))
	}
	for wordID, level := range words.applied[0] {
		if words.applied[1][wordID] != level {
			t.Errorf("Word %d: runs disagree (%d vs %d)", wordID, level, words.applied[1][wordID])
		}
	}
}

func TestRecalculateAllNoData(t *testing.T) {
	words := newFakeWordStore()
	progress := newFakeProgressStore()
	words.totalOverride = 3

	svc := NewDifficultyService(words, progress)
	summary, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("RecalculateAll failed: %v", err)
	}

	if summary.UpdatedCount != 0 || summary.NoDataCount != 3 {
		t.Errorf("Expected nothing updated, got %+v", summary)
	}
	if len(summary.LevelHistogram) != 0 {
		t.Errorf("Expected empty histogram, got %v", summary.LevelHistogram)
	}
}
