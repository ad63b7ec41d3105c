package srs

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestScoreRejectsInvalidQuality(t *testing.T) {
	for _, q := range []int{-3, -1, 6, 10} {
		_, err := Score(q, 0, 2.5, 0)
		if !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("Score(quality=%d) error = %v, want ErrInvalidQuality", q, err)
		}
	}
}

func TestScoreFailResetsProgress(t *testing.T) {
	// Any quality below 3 resets repetitions and schedules a next-day
	// retry, regardless of prior state.
	states := []struct {
		reps     int
		easiness float64
		interval int
	}{
		{0, 2.5, 0},
		{1, 2.5, 1},
		{5, 2.0, 40},
		{12, 1.3, 365},
	}

	for _, st := range states {
		for q := 0; q < PassThreshold; q++ {
			res, err := Score(q, st.reps, st.easiness, st.interval)
			if err != nil {
				t.Fatalf("Score(%d, %+v) returned error: %v", q, st, err)
			}
			if res.Repetitions != 0 {
				t.Errorf("Score(%d, %+v) repetitions = %d, want 0", q, st, res.Repetitions)
			}
			if res.IntervalDays != 1 {
				t.Errorf("Score(%d, %+v) interval = %d, want 1", q, st, res.IntervalDays)
			}
		}
	}
}

func TestScorePassProgression(t *testing.T) {
	tests := []struct {
		name             string
		quality          int
		reps             int
		easiness         float64
		interval         int
		expectedReps     int
		expectedEF       float64
		expectedInterval int
	}{
		{
			name:    "first pass schedules one day",
			quality: 5, reps: 0, easiness: 2.5, interval: 0,
			expectedReps: 1, expectedEF: 2.6, expectedInterval: 1,
		},
		{
			name:    "second pass schedules six days",
			quality: 4, reps: 1, easiness: 2.6, interval: 1,
			expectedReps: 2, expectedEF: 2.6, expectedInterval: 6,
		},
		{
			name:    "third pass multiplies by easiness",
			quality: 4, reps: 2, easiness: 2.5, interval: 6,
			expectedReps: 3, expectedEF: 2.5, expectedInterval: 15,
		},
		{
			name:    "barely passing still increments",
			quality: 3, reps: 2, easiness: 2.5, interval: 6,
			expectedReps: 3, expectedEF: 2.36, expectedInterval: 14, // round(6 * 2.36)
		},
		{
			name:    "interval caps at a year",
			quality: 5, reps: 9, easiness: 2.5, interval: 300,
			expectedReps: 10, expectedEF: 2.6, expectedInterval: 365,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(tt.quality, tt.reps, tt.easiness, tt.interval)
			if err != nil {
				t.Fatalf("Score() returned error: %v", err)
			}
			if res.Repetitions != tt.expectedReps {
				t.Errorf("repetitions = %d, want %d", res.Repetitions, tt.expectedReps)
			}
			if !almostEqual(res.EasinessFactor, tt.expectedEF) {
				t.Errorf("easiness = %v, want %v", res.EasinessFactor, tt.expectedEF)
			}
			if res.IntervalDays != tt.expectedInterval {
				t.Errorf("interval = %d, want %d", res.IntervalDays, tt.expectedInterval)
			}
		})
	}
}

func TestScoreEasinessNeverBelowFloor(t *testing.T) {
	for q := MinQuality; q <= MaxQuality; q++ {
		for _, ef := range []float64{1.3, 1.5, 2.0, 2.5, 3.0} {
			res, err := Score(q, 3, ef, 10)
			if err != nil {
				t.Fatalf("Score(%d, ef=%v) returned error: %v", q, ef, err)
			}
			if res.EasinessFactor < MinEasiness {
				t.Errorf("Score(%d, ef=%v) easiness = %v, below floor %v",
					q, ef, res.EasinessFactor, MinEasiness)
			}
		}
	}
}

func TestScorePerfectRecallAfterReset(t *testing.T) {
	// Quality 5 on a fresh word: EF 2.5 -> 2.6, one repetition, one day.
	res, err := Score(5, 0, 2.5, 0)
	if err != nil {
		t.Fatalf("Score() returned error: %v", err)
	}
	if res.Repetitions != 1 || res.IntervalDays != 1 || !almostEqual(res.EasinessFactor, 2.6) {
		t.Errorf("got %+v, want {1 2.6 1}", res)
	}
}

func TestScoreFailIgnoresHistory(t *testing.T) {
	// Quality 2 after five successful reviews still resets to day one.
	res, err := Score(2, 5, 2.0, 40)
	if err != nil {
		t.Fatalf("Score() returned error: %v", err)
	}
	if res.Repetitions != 0 || res.IntervalDays != 1 {
		t.Errorf("got %+v, want repetitions 0 and interval 1", res)
	}
	if !almostEqual(res.EasinessFactor, 1.68) {
		t.Errorf("easiness = %v, want 1.68", res.EasinessFactor)
	}
}
