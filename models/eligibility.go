// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Eligibility is the verdict for a question snapshot at a given instant.
type Eligibility string

const (
	// EligibilityNotYetPublished: now precedes the publication instant.
	EligibilityNotYetPublished Eligibility = "not_yet_published"
	// EligibilityNoChoices: published but has nothing to vote on.
	EligibilityNoChoices Eligibility = "no_choices"
	// EligibilityClosed: published with choices, but the voting window ended.
	EligibilityClosed Eligibility = "closed"
	// EligibilityOpen: votable right now.
	EligibilityOpen Eligibility = "open"
)

// EvaluateEligibility folds the question predicates and the choice count
// into a single verdict. Publication is checked before choice presence, so
// a future question reports NotYetPublished regardless of its choices.
// The function is total: every snapshot maps to exactly one verdict.
func EvaluateEligibility(q *Question, choiceCount int, now time.Time) Eligibility {
	if !q.IsPublished(now) {
		return EligibilityNotYetPublished
	}
	if choiceCount == 0 {
		return EligibilityNoChoices
	}
	if !q.CanVote(now) {
		return EligibilityClosed
	}
	return EligibilityOpen
}

// EligibleForDisplay is the weaker gate used for listing, detail, and
// results access: published AND has choices. The voting window is not
// consulted, so a closed question still shows its results.
func EligibleForDisplay(q *Question, choiceCount int, now time.Time) bool {
	return q.IsPublished(now) && choiceCount > 0
}
