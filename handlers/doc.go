// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the KU Polls API.

# Handler Types

Each handler is a struct with database, config, and clock dependencies:

  - QuestionHandler: question management (create, add choices, delete)
  - VotingHandler: vote submission and retraction
  - ResultsHandler: listing, voting detail, and tallied results
  - AccountHandler: registration, login, logout

Handlers are created via constructor functions:

	votingHandler := handlers.NewVotingHandler(db, cfg, clk)

The clock is injected so publication-window checks are testable at fixed
instants.

# Question Lifecycle

Questions are managed by an administrator (X-Admin-Key header) and become
visible once their publication instant passes:

	POST   /questions              → CreateQuestion
	POST   /questions/{id}/choices → AddChoice
	DELETE /questions/{id}         → DeleteQuestion (cascades to choices and votes)

# Eligibility

Read access (listing, detail, results) requires a question to be published
with at least one choice. Vote submission additionally requires the voting
window to be open. The verdicts come from models.EvaluateEligibility; the
reasons surface as error codes (not_published, no_choices, voting_closed).

# Vote Ledger

The create-or-update vote path is implemented in ledger.go:

	outcome, choiceText, err := CastVote(db, accountID, questionID, choiceID, now)

CastVote holds the single-vote-per-(user, question) invariant: it re-checks
the voting window, verifies choice ownership, and upserts inside a
transaction backed by the UNIQUE (account_id, question_id) constraint, so
concurrent double-clicks can never produce two rows. ResetVote retracts a
vote entirely.

# Result Aggregation

Tallies are always derived from vote rows, never stored on choices:

	results, total, err := ComputeResults(db, questionID)

Rows come back in choice creation order with percentages rounded to two
decimals; a question with no votes reports every choice at 0.

# Voting Flow

Voters authenticate with a session token from login:

	POST /accounts/register          → Register
	POST /accounts/login             → Login (returns session_token)
	POST /questions/{id}/vote        → SubmitVote (create or change)
	POST /questions/{id}/vote/reset  → ResetVote
	POST /accounts/logout            → Logout

Voter operations require the X-Session-Token header.
*/
package handlers
