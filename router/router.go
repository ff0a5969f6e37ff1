// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/Ichi1234/ku-polls/cliparse"
	"github.com/Ichi1234/ku-polls/clock"
	"github.com/Ichi1234/ku-polls/handlers"
	"github.com/Ichi1234/ku-polls/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, clk clock.Clock) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	questionHandler := handlers.NewQuestionHandler(db, cfg, clk)
	votingHandler := handlers.NewVotingHandler(db, cfg, clk)
	resultsHandler := handlers.NewResultsHandler(db, cfg, clk)
	accountHandler := handlers.NewAccountHandler(db, cfg, clk)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /accounts/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /accounts/login", middleware.WithLogging(accountHandler.Login))
	mux.HandleFunc("POST /accounts/logout", middleware.WithLogging(accountHandler.Logout))

	// Browsing (public)
	mux.HandleFunc("GET /questions", middleware.WithLogging(resultsHandler.ListQuestions))
	mux.HandleFunc("GET /questions/{id}", middleware.WithLogging(resultsHandler.GetQuestion))
	mux.HandleFunc("GET /questions/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Voting (requires session)
	mux.HandleFunc("POST /questions/{id}/vote", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("POST /questions/{id}/vote/reset", middleware.WithLogging(votingHandler.ResetVote))

	// Question management (admin operations)
	mux.HandleFunc("POST /questions", middleware.WithLogging(questionHandler.CreateQuestion))
	mux.HandleFunc("POST /questions/{id}/choices", middleware.WithLogging(questionHandler.AddChoice))
	mux.HandleFunc("DELETE /questions/{id}", middleware.WithLogging(questionHandler.DeleteQuestion))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ku-polls API v1"))
	})

	return mux
}
