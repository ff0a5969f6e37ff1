// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the KU Polls API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, clock.System{})

# Endpoints

Health:

	GET /health

Accounts (public):

	POST /accounts/register - Create account
	POST /accounts/login    - Get session token
	POST /accounts/logout   - Invalidate session (requires X-Session-Token)

Browsing (public):

	GET /questions              - 5 most recently published votable questions
	GET /questions/{id}         - Question detail for voting
	GET /questions/{id}/results - Tallied results with percentages

Voting (requires X-Session-Token):

	POST /questions/{id}/vote       - Submit or change a vote
	POST /questions/{id}/vote/reset - Retract a vote

Question management (admin, requires X-Admin-Key):

	POST   /questions              - Create question
	POST   /questions/{id}/choices - Add choice
	DELETE /questions/{id}         - Delete question (cascades)

# Handler Initialization

The router creates handler instances with dependency injection:

	questionHandler := handlers.NewQuestionHandler(db, cfg, clk)
	votingHandler := handlers.NewVotingHandler(db, cfg, clk)
	resultsHandler := handlers.NewResultsHandler(db, cfg, clk)
	accountHandler := handlers.NewAccountHandler(db, cfg, clk)

All handlers receive the database connection, configuration, and clock.
*/
package router
