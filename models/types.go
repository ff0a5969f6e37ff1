// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote outcome constants
const (
	OutcomeCreated = "created"
	OutcomeChanged = "changed"
)

// Error code constants (machine-readable taxonomy in ErrorResponse.Code)
const (
	CodeNotFound         = "not_found"
	CodeNotPublished     = "not_published"
	CodeNoChoices        = "no_choices"
	CodeVotingClosed     = "voting_closed"
	CodeNoChoiceSelected = "no_choice_selected"
	CodeChoiceNotFound   = "choice_not_found"
	CodeNotEligible      = "not_eligible"
)

// Domain types

type Question struct {
	ID           string     `json:"id"`
	QuestionText string     `json:"question_text"`
	PubDate      time.Time  `json:"pub_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// IsPublished reports whether the question is visible at the given instant.
func (q *Question) IsPublished(now time.Time) bool {
	return !now.Before(q.PubDate)
}

// CanVote reports whether votes are accepted at the given instant:
// published AND (no end date OR now <= end date). A window whose end date
// precedes its publication date never opens; that is not special-cased.
func (q *Question) CanVote(now time.Time) bool {
	if !q.IsPublished(now) {
		return false
	}
	return q.EndDate == nil || !now.After(*q.EndDate)
}

// WasPublishedRecently reports whether the question was published within
// the last day, excluding future publication dates.
func (q *Question) WasPublishedRecently(now time.Time) bool {
	return q.IsPublished(now) && !q.PubDate.Before(now.Add(-24*time.Hour))
}

type Choice struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Position   int    `json:"position"`
}

type Vote struct {
	ID         string    `json:"id"`
	AccountID  string    `json:"-"` // Never expose in JSON
	QuestionID string    `json:"question_id"`
	ChoiceID   string    `json:"choice_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Request types

type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date,omitempty"` // default: now
	EndDate      *time.Time `json:"end_date,omitempty"`
}

type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type VoteRequest struct {
	ChoiceID string `json:"choice_id"`
}

// Response types

type CreateQuestionResponse struct {
	QuestionID string `json:"question_id"`
}

type AddChoiceResponse struct {
	ChoiceID string `json:"choice_id"`
}

type RegisterResponse struct {
	AccountID string `json:"account_id"`
}

type LoginResponse struct {
	SessionToken string `json:"session_token"`
}

type QuestionSummary struct {
	ID           string    `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
	Published    string    `json:"published"` // humanized, e.g. "3 days ago"
	ChoiceCount  int       `json:"choice_count"`
}

type QuestionDetail struct {
	Question         Question `json:"question"`
	Choices          []Choice `json:"choices"`
	SelectedChoiceID *string  `json:"selected_choice_id,omitempty"`
	Published        string   `json:"published"`
}

type VoteResponse struct {
	Outcome string `json:"outcome"`
	Message string `json:"message"`
}

type ChoiceResult struct {
	ChoiceText string  `json:"choice_text"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

type ResultsResponse struct {
	QuestionID   string         `json:"question_id"`
	QuestionText string         `json:"question_text"`
	TotalVotes   int            `json:"total_votes"`
	Results      []ChoiceResult `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
