// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain entities, eligibility predicates, and
request/response types for the API.

# Domain Types

Internal data structures:

  - Question: poll prompt with a publication instant and optional end instant
  - Choice: one selectable option belonging to exactly one Question
  - Vote: a user's current choice for one Question; at most one per (user, question)

# Eligibility

A Question carries pure predicates over an explicit instant so the logic is
total and testable with a fixed clock:

  - IsPublished(now): now >= pub_date
  - CanVote(now): published AND (no end date OR now <= end date)
  - WasPublishedRecently(now): published within the last day

EvaluateEligibility folds the predicates plus the choice count into a single
verdict (NotYetPublished, NoChoices, Closed, Open). EligibleForDisplay is the
weaker listing/detail/results gate: published AND has choices, regardless of
the voting window.

An end date before the publication date is not an error; the stated formula
simply never opens such a window.

# Request Types

Types for parsing incoming JSON:

  - CreateQuestionRequest: question_text, pub_date, end_date
  - AddChoiceRequest: choice_text
  - RegisterRequest, LoginRequest: username, password
  - VoteRequest: choice_id

# Response Types

Types for JSON responses:

  - CreateQuestionResponse: question_id
  - AddChoiceResponse: choice_id
  - QuestionSummary: listing row with humanized publication age
  - QuestionDetail: question, choices, caller's selected choice
  - VoteResponse: outcome (created|changed), message
  - ChoiceResult / ResultsResponse: per-choice tallies and percentages
  - RegisterResponse, LoginResponse: account_id, session token
  - ErrorResponse: error, code, message

# Error Codes

Machine-readable codes carried in ErrorResponse:

	CodeNotFound         = "not_found"
	CodeNotPublished     = "not_published"
	CodeNoChoices        = "no_choices"
	CodeVotingClosed     = "voting_closed"
	CodeNoChoiceSelected = "no_choice_selected"
	CodeChoiceNotFound   = "choice_not_found"
	CodeNotEligible      = "not_eligible"

# Vote Outcomes

	OutcomeCreated = "created"
	OutcomeChanged = "changed"
*/
package models
