// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/Ichi1234/ku-polls/cliparse"
	"github.com/Ichi1234/ku-polls/clock"
	"github.com/Ichi1234/ku-polls/middleware"
	"github.com/Ichi1234/ku-polls/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	clk clock.Clock
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, clk clock.Clock) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, clk: clk}
}

// SubmitVote handles POST /questions/:id/vote
// Creates the account's vote on first submission and reassigns its choice on
// later ones; there is never more than one vote row per (account, question).
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "question id is required")
		return
	}

	accountID, username, err := authenticate(h.db, w, r)
	if err != nil {
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.ChoiceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeNoChoiceSelected, "You didn't select a choice.")
		return
	}

	outcome, choiceText, err := CastVote(h.db, accountID, questionID, req.ChoiceID, h.clk.Now())
	switch err {
	case nil:
	case ErrQuestionNotFound:
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return
	case ErrVotingClosed:
		middleware.ErrorResponse(w, http.StatusConflict, models.CodeVotingClosed, "Voting is not allowed for this poll.")
		return
	case ErrChoiceNotFound:
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeChoiceNotFound, "Choice does not belong to this question")
		return
	default:
		slog.Error("failed to cast vote", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to submit vote")
		return
	}

	status := http.StatusOK
	message := "Your vote was changed to '" + choiceText + "'"
	if outcome == models.OutcomeCreated {
		status = http.StatusCreated
		message = "You voted for '" + choiceText + "'"
	}

	slog.Info("vote cast",
		"user", username,
		"question_id", questionID,
		"choice_id", req.ChoiceID,
		"outcome", outcome,
	)

	middleware.JSONResponse(w, status, models.VoteResponse{
		Outcome: outcome,
		Message: message,
	})
}

// ResetVote handles POST /questions/:id/vote/reset
// Retracts the account's vote entirely, dropping the tally by one.
func (h *VotingHandler) ResetVote(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "question id is required")
		return
	}

	accountID, username, err := authenticate(h.db, w, r)
	if err != nil {
		return
	}

	err = ResetVote(h.db, accountID, questionID)
	if err == ErrVoteNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "You have not voted on this poll.")
		return
	}
	if err != nil {
		slog.Error("failed to reset vote", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to reset vote")
		return
	}

	slog.Info("vote reset", "user", username, "question_id", questionID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Your vote was reset",
	})
}

// authenticate resolves the session token and writes the 401 itself when
// the caller is not logged in.
func authenticate(db *sql.DB, w http.ResponseWriter, r *http.Request) (accountID, username string, err error) {
	accountID, username, err = currentAccount(db, r)
	if err == errNoSessionToken {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "X-Session-Token header required")
		return "", "", err
	}
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid session token")
		return "", "", err
	}
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return "", "", err
	}
	return accountID, username, nil
}
