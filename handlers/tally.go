// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/Ichi1234/ku-polls/models"
)

// ComputeResults derives the per-choice tally for a question. Counts come
// from the vote rows on every call; nothing is cached on the choice rows.
// Rows are returned in choice creation order regardless of vote count, and
// percentages are rounded to two decimals. A zero total reports every
// choice at 0 percent.
func ComputeResults(db *sql.DB, questionID string) ([]models.ChoiceResult, int, error) {
	rows, err := db.Query(`
		SELECT c.choice_text, COUNT(v.id)
		FROM choice c
		LEFT JOIN vote v ON v.choice_id = c.id
		WHERE c.question_id = $1
		GROUP BY c.id, c.choice_text, c.position
		ORDER BY c.position, c.id
	`, questionID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tallies: %w", err)
	}
	defer rows.Close()

	results := []models.ChoiceResult{}
	total := 0
	for rows.Next() {
		var r models.ChoiceResult
		if err := rows.Scan(&r.ChoiceText, &r.Votes); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tally row: %w", err)
		}
		total += r.Votes
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tally rows: %w", err)
	}

	if total > 0 {
		for i := range results {
			results[i].Percentage = roundPercent(float64(results[i].Votes) / float64(total) * 100)
		}
	}

	return results, total, nil
}

// roundPercent rounds to 2 decimal places
func roundPercent(p float64) float64 {
	return math.Round(p*100) / 100
}
