// Package srs implements the SM-2 spaced-repetition scheduling arithmetic.
//
// SM-2 rates each recall on a 0-5 quality scale. A rating below 3 is a
// failed review: the repetition count resets and the word comes back the
// next day. A rating of 3 or higher is a pass: the repetition count grows
// and the interval expands by the word's easiness factor.
package srs

import (
	"errors"
	"math"
)

const (
	// MinQuality and MaxQuality bound the recall quality scale.
	MinQuality = 0
	MaxQuality = 5

	// PassThreshold is the lowest quality that counts as a successful recall.
	PassThreshold = 3

	// MinEasiness is the floor of the easiness factor.
	MinEasiness = 1.3

	// MaxIntervalDays caps the review interval at one year.
	MaxIntervalDays = 365

	firstInterval  = 1
	secondInterval = 6
)

// ErrInvalidQuality is returned when a quality rating is outside 0-5.
var ErrInvalidQuality = errors.New("srs: quality must be between 0 and 5")

// Result is the updated SM-2 state after scoring one review.
type Result struct {
	Repetitions    int
	EasinessFactor float64
	IntervalDays   int
}

// Score applies one SM-2 review to the given state.
//
// The easiness factor is always updated, pass or fail:
//
//	EF' = max(1.3, EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)))
//
// On failure (quality < 3) the repetition count resets to 0 and the
// interval to 1 day. On success the repetition count increments and the
// interval is 1 day for the first repetition, 6 for the second, and
// round(interval * EF') afterwards, capped at MaxIntervalDays.
func Score(quality, repetitions int, easiness float64, intervalDays int) (Result, error) {
	if quality < MinQuality || quality > MaxQuality {
		return Result{}, ErrInvalidQuality
	}

	miss := float64(MaxQuality - quality)
	ef := easiness + (0.1 - miss*(0.08+miss*0.02))
	if ef < MinEasiness {
		ef = MinEasiness
	}

	if quality < PassThreshold {
		return Result{Repetitions: 0, EasinessFactor: ef, IntervalDays: firstInterval}, nil
	}

	reps := repetitions + 1
	var interval int
	switch reps {
	case 1:
		interval = firstInterval
	case 2:
		interval = secondInterval
	default:
		interval = int(math.Round(float64(intervalDays) * ef))
	}
	if interval > MaxIntervalDays {
		interval = MaxIntervalDays
	}

	return Result{Repetitions: reps, EasinessFactor: ef, IntervalDays: interval}, nil
}
