package models

import (
	"testing"
	"time"
)

func TestNextReviewDue(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		next     NextReview
		expected bool
	}{
		{
			name:     "unscheduled is never due",
			next:     Unscheduled(),
			expected: false,
		},
		{
			name:     "past time is due",
			next:     ScheduledAt(now.Add(-time.Hour)),
			expected: true,
		},
		{
			name:     "exact time is due",
			next:     ScheduledAt(now),
			expected: true,
		},
		{
			name:     "future time is not due",
			next:     ScheduledAt(now.Add(time.Minute)),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.next.Due(now); got != tt.expected {
				t.Errorf("Due() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNextReviewAt(t *testing.T) {
	if _, ok := Unscheduled().At(); ok {
		t.Error("Unscheduled().At() reported a scheduled time")
	}

	when := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)
	at, ok := ScheduledAt(when).At()
	if !ok {
		t.Fatal("ScheduledAt().At() reported no scheduled time")
	}
	if !at.Equal(when) {
		t.Errorf("At() = %v, want %v", at, when)
	}
}

func TestWordStatusStored(t *testing.T) {
	tests := []struct {
		status   WordStatus
		expected bool
	}{
		{StatusNew, false},
		{StatusLearning, true},
		{StatusReview, true},
		{StatusMastered, true},
		{WordStatus("Bogus"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Stored(); got != tt.expected {
			t.Errorf("Stored(%q) = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestPlacementSessionMidpoint(t *testing.T) {
	tests := []struct {
		lower, upper int
		expected     int
	}{
		{1, 100, 50},
		{51, 100, 75},
		{1, 50, 25},
		{98, 100, 99},
		{100, 100, 100},
	}

	for _, tt := range tests {
		s := PlacementSession{LowerBound: tt.lower, UpperBound: tt.upper}
		if got := s.Midpoint(); got != tt.expected {
			t.Errorf("Midpoint(%d, %d) = %d, want %d", tt.lower, tt.upper, got, tt.expected)
		}
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)

	if !SameDay(morning, evening) {
		t.Error("same calendar day reported as different")
	}
	if SameDay(evening, nextDay) {
		t.Error("different calendar days reported as same")
	}
}
