// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/Ichi1234/ku-polls/cliparse"
	"github.com/Ichi1234/ku-polls/clock"
	"github.com/Ichi1234/ku-polls/middleware"
	"github.com/Ichi1234/ku-polls/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	clk clock.Clock
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config, clk clock.Clock) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, clk: clk}
}

// ListQuestions handles GET /questions
// Returns the 5 most recently published questions that have at least one
// choice, newest publication first. Future questions are never listed.
func (h *ResultsHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	now := h.clk.Now()

	// The inner join drops questions without choices
	rows, err := h.db.Query(`
		SELECT q.id, q.question_text, q.pub_date, COUNT(c.id)
		FROM question q
		JOIN choice c ON c.question_id = q.id
		WHERE q.pub_date <= $1
		GROUP BY q.id, q.question_text, q.pub_date
		ORDER BY q.pub_date DESC
		LIMIT 5
	`, now)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	defer rows.Close()

	questions := []models.QuestionSummary{}
	for rows.Next() {
		var s models.QuestionSummary
		if err := rows.Scan(&s.ID, &s.QuestionText, &s.PubDate, &s.ChoiceCount); err != nil {
			slog.Error("failed to scan question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
			return
		}
		s.Published = humanize.RelTime(s.PubDate, now, "ago", "from now")
		questions = append(questions, s)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// GetQuestion handles GET /questions/:id
// Returns the question and its choices for voting. Unpublished or empty
// questions report 404; a question whose window has closed reports 409 so
// the caller can redirect, matching the vote-submission rejection.
func (h *ResultsHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "question id is required")
		return
	}

	question, err := fetchQuestion(h.db, questionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	choiceCount, err := countChoices(h.db, questionID)
	if err != nil {
		slog.Error("failed to count choices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	now := h.clk.Now()
	switch models.EvaluateEligibility(question, choiceCount, now) {
	case models.EligibilityNotYetPublished:
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotPublished, "Question not found")
		return
	case models.EligibilityNoChoices:
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNoChoices, "Question has no choices")
		return
	case models.EligibilityClosed:
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeVotingClosed,
			"Voting is not allowed for '"+question.QuestionText+"' poll.")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, question_id, choice_text, position
		FROM choice
		WHERE question_id = $1
		ORDER BY position, id
	`, questionID)
	if err != nil {
		slog.Error("failed to query choices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Position); err != nil {
			slog.Error("failed to scan choice", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
			return
		}
		choices = append(choices, c)
	}

	detail := models.QuestionDetail{
		Question:  *question,
		Choices:   choices,
		Published: humanize.RelTime(question.PubDate, now, "ago", "from now"),
	}

	// Pre-select the caller's current vote when a session is presented.
	// An unresolvable session never blocks the read, but a real store
	// failure must not vanish silently.
	accountID, _, err := currentAccount(h.db, r)
	if err == nil {
		var selected string
		err := h.db.QueryRow(`
			SELECT choice_id FROM vote WHERE account_id = $1 AND question_id = $2
		`, accountID, questionID).Scan(&selected)
		if err == nil {
			detail.SelectedChoiceID = &selected
		} else if err != sql.ErrNoRows {
			slog.Error("failed to query existing vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
			return
		}
	} else if err != errNoSessionToken && err != sql.ErrNoRows {
		slog.Error("failed to resolve session", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// GetResults handles GET /questions/:id/results
// Display eligibility only requires published + has choices, so a question
// whose voting window has closed still shows its results.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "question id is required")
		return
	}

	question, err := fetchQuestion(h.db, questionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	choiceCount, err := countChoices(h.db, questionID)
	if err != nil {
		slog.Error("failed to count choices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if !models.EligibleForDisplay(question, choiceCount, h.clk.Now()) {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotEligible, "Question not found")
		return
	}

	results, total, err := ComputeResults(h.db, questionID)
	if err != nil {
		slog.Error("failed to compute results", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to compute results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		QuestionID:   question.ID,
		QuestionText: question.QuestionText,
		TotalVotes:   total,
		Results:      results,
	})
}
