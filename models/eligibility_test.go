// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"testing"
	"time"
)

var baseTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func question(pubOffset time.Duration, endOffset *time.Duration) *Question {
	q := &Question{
		ID:           "q1",
		QuestionText: "What is your favorite language?",
		PubDate:      baseTime.Add(pubOffset),
	}
	if endOffset != nil {
		end := baseTime.Add(*endOffset)
		q.EndDate = &end
	}
	return q
}

func dur(d time.Duration) *time.Duration { return &d }

func TestIsPublished(t *testing.T) {
	tests := []struct {
		name      string
		pubOffset time.Duration
		want      bool
	}{
		{"published in the past", -30 * 24 * time.Hour, true},
		{"published exactly now", 0, true},
		{"publication in the future", 2 * 24 * time.Hour, false},
		{"one second in the future", time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question(tt.pubOffset, nil)
			if got := q.IsPublished(baseTime); got != tt.want {
				t.Errorf("IsPublished() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanVote(t *testing.T) {
	tests := []struct {
		name      string
		pubOffset time.Duration
		endOffset *time.Duration
		want      bool
	}{
		{"open-ended published question", -24 * time.Hour, nil, true},
		{"published, end date in the future", -5 * 24 * time.Hour, dur(24 * time.Hour), true},
		{"published, end date passed", -5 * 24 * time.Hour, dur(-2 * 24 * time.Hour), false},
		{"now exactly at end date", -24 * time.Hour, dur(0), true},
		{"not yet published, no end date", 24 * time.Hour, nil, false},
		{"not yet published, future end date", 24 * time.Hour, dur(48 * time.Hour), false},
		// end date before publication date: degenerate window that never
		// opens, evaluated strictly by the stated formula
		{"reversed window, before publication", 24 * time.Hour, dur(-24 * time.Hour), false},
		{"reversed window, after publication", -24 * time.Hour, dur(-48 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question(tt.pubOffset, tt.endOffset)
			if got := q.CanVote(baseTime); got != tt.want {
				t.Errorf("CanVote() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanVoteImpliesPublished(t *testing.T) {
	// Property: now < pub_date forces both predicates false
	offsets := []time.Duration{time.Nanosecond, time.Minute, 24 * time.Hour, 365 * 24 * time.Hour}
	for _, off := range offsets {
		q := question(off, nil)
		if q.IsPublished(baseTime) {
			t.Errorf("IsPublished() = true for pub_date %v in the future", off)
		}
		if q.CanVote(baseTime) {
			t.Errorf("CanVote() = true for pub_date %v in the future", off)
		}
	}
}

func TestWasPublishedRecently(t *testing.T) {
	tests := []struct {
		name      string
		pubOffset time.Duration
		want      bool
	}{
		{"published an hour ago", -time.Hour, true},
		{"published exactly a day ago", -24 * time.Hour, true},
		{"published over a day ago", -25 * time.Hour, false},
		{"future publication", time.Hour, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question(tt.pubOffset, nil)
			if got := q.WasPublishedRecently(baseTime); got != tt.want {
				t.Errorf("WasPublishedRecently() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateEligibility(t *testing.T) {
	tests := []struct {
		name        string
		pubOffset   time.Duration
		endOffset   *time.Duration
		choiceCount int
		want        Eligibility
	}{
		{"open question with choices", -24 * time.Hour, nil, 2, EligibilityOpen},
		{"open within window", -24 * time.Hour, dur(24 * time.Hour), 3, EligibilityOpen},
		{"window ended", -5 * 24 * time.Hour, dur(-2 * 24 * time.Hour), 2, EligibilityClosed},
		{"published but no choices", -24 * time.Hour, nil, 0, EligibilityNoChoices},
		// publication is checked first, even with zero choices
		{"future question without choices", 24 * time.Hour, nil, 0, EligibilityNotYetPublished},
		{"future question with choices", 24 * time.Hour, nil, 2, EligibilityNotYetPublished},
		{"reversed window reports closed", -24 * time.Hour, dur(-48 * time.Hour), 2, EligibilityClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question(tt.pubOffset, tt.endOffset)
			if got := EvaluateEligibility(q, tt.choiceCount, baseTime); got != tt.want {
				t.Errorf("EvaluateEligibility() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEligibleForDisplay(t *testing.T) {
	tests := []struct {
		name        string
		pubOffset   time.Duration
		endOffset   *time.Duration
		choiceCount int
		want        bool
	}{
		{"published with choices", -24 * time.Hour, nil, 2, true},
		// the display gate ignores the voting window
		{"closed question still displayable", -5 * 24 * time.Hour, dur(-2 * 24 * time.Hour), 2, true},
		{"published without choices", -24 * time.Hour, nil, 0, false},
		{"unpublished with choices", 24 * time.Hour, nil, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := question(tt.pubOffset, tt.endOffset)
			if got := EligibleForDisplay(q, tt.choiceCount, baseTime); got != tt.want {
				t.Errorf("EligibleForDisplay() = %v, want %v", got, tt.want)
			}
		})
	}
}
