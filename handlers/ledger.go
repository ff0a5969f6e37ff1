// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Ichi1234/ku-polls/models"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrChoiceNotFound   = errors.New("choice does not belong to question")
	ErrVotingClosed     = errors.New("voting is closed for this question")
	ErrVoteNotFound     = errors.New("no vote recorded for this question")
)

// CastVote records or updates the account's vote on a question and returns
// the outcome (created or changed) plus the chosen choice's text.
//
// The caller is expected to have checked eligibility already, but the ledger
// re-checks the voting window and rejects with ErrVotingClosed itself. The
// existence-check-then-write sequence runs inside a transaction and the
// INSERT carries an ON CONFLICT clause against the UNIQUE (account_id,
// question_id) constraint, so two near-simultaneous submissions by the same
// account collapse into one row instead of duplicating.
func CastVote(db *sql.DB, accountID, questionID, choiceID string, now time.Time) (string, string, error) {
	question, err := fetchQuestion(db, questionID)
	if err == sql.ErrNoRows {
		return "", "", ErrQuestionNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to query question: %w", err)
	}

	if !question.CanVote(now) {
		return "", "", ErrVotingClosed
	}

	// The choice must belong to this question
	var choiceText string
	err = db.QueryRow(`
		SELECT choice_text FROM choice WHERE id = $1 AND question_id = $2
	`, choiceID, questionID).Scan(&choiceText)
	if err == sql.ErrNoRows {
		return "", "", ErrChoiceNotFound
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to query choice: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingVoteID string
	err = tx.QueryRow(`
		SELECT id FROM vote WHERE account_id = $1 AND question_id = $2
	`, accountID, questionID).Scan(&existingVoteID)
	if err != nil && err != sql.ErrNoRows {
		return "", "", fmt.Errorf("failed to query existing vote: %w", err)
	}

	outcome := models.OutcomeCreated
	if err == nil {
		// The row is reused: reassigning the choice is the vote change.
		// Selecting the same choice again is an idempotent no-op write.
		outcome = models.OutcomeChanged
		_, err = tx.Exec(`
			UPDATE vote SET choice_id = $1, updated_at = $2 WHERE id = $3
		`, choiceID, now, existingVoteID)
		if err != nil {
			return "", "", fmt.Errorf("failed to update vote: %w", err)
		}
	} else {
		// ON CONFLICT backstop: if a concurrent submission won the race
		// between our SELECT and this INSERT, degrade to an update rather
		// than failing or duplicating.
		_, err = tx.Exec(`
			INSERT INTO vote (id, account_id, question_id, choice_id, updated_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (account_id, question_id)
			DO UPDATE SET choice_id = excluded.choice_id, updated_at = excluded.updated_at
		`, uuid.NewString(), accountID, questionID, choiceID, now)
		if err != nil {
			return "", "", fmt.Errorf("failed to insert vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", "", fmt.Errorf("failed to commit vote: %w", err)
	}

	return outcome, choiceText, nil
}

// ResetVote retracts the account's vote on a question. Returns
// ErrVoteNotFound when there is nothing to retract.
func ResetVote(db *sql.DB, accountID, questionID string) error {
	res, err := db.Exec(`
		DELETE FROM vote WHERE account_id = $1 AND question_id = $2
	`, accountID, questionID)
	if err != nil {
		return fmt.Errorf("failed to delete vote: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrVoteNotFound
	}
	return nil
}

// fetchQuestion loads a question row. Returns sql.ErrNoRows unwrapped so
// callers can map it to their own not-found handling.
func fetchQuestion(db *sql.DB, questionID string) (*models.Question, error) {
	var q models.Question
	err := db.QueryRow(`
		SELECT id, question_text, pub_date, end_date, created_at
		FROM question
		WHERE id = $1
	`, questionID).Scan(&q.ID, &q.QuestionText, &q.PubDate, &q.EndDate, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// countChoices returns how many choices a question has.
func countChoices(db *sql.DB, questionID string) (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM choice WHERE question_id = $1
	`, questionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count choices: %w", err)
	}
	return count, nil
}
