// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ichi1234/ku-polls/clock"
	"github.com/Ichi1234/ku-polls/models"
	"github.com/Ichi1234/ku-polls/testutil"
)

func TestCreateQuestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	fixed := clock.Fixed{Instant: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	handler := NewQuestionHandler(db, cfg, fixed)

	t.Run("rejects missing admin key", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions",
			models.CreateQuestionRequest{QuestionText: "Q?"}, nil)
		w := httptest.NewRecorder()
		handler.CreateQuestion(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("rejects empty question text", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions",
			models.CreateQuestionRequest{}, map[string]string{"X-Admin-Key": cfg.AdminKey})
		w := httptest.NewRecorder()
		handler.CreateQuestion(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("defaults pub_date to now", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions",
			models.CreateQuestionRequest{QuestionText: "Favorite color?"},
			map[string]string{"X-Admin-Key": cfg.AdminKey})
		w := httptest.NewRecorder()
		handler.CreateQuestion(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
		var resp models.CreateQuestionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.QuestionID == "" {
			t.Fatal("Expected non-empty question_id")
		}

		var pubDate time.Time
		if err := db.QueryRow(`SELECT pub_date FROM question WHERE id = $1`, resp.QuestionID).Scan(&pubDate); err != nil {
			t.Fatalf("Failed to read question back: %v", err)
		}
		if !pubDate.Equal(fixed.Instant) {
			t.Errorf("pub_date = %v, want %v", pubDate, fixed.Instant)
		}
	})

	t.Run("accepts end date before pub date", func(t *testing.T) {
		pub := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		end := pub.Add(-48 * time.Hour)
		req := testutil.MakeRequest("POST", "/questions",
			models.CreateQuestionRequest{QuestionText: "Never open?", PubDate: &pub, EndDate: &end},
			map[string]string{"X-Admin-Key": cfg.AdminKey})
		w := httptest.NewRecorder()
		handler.CreateQuestion(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)
		var resp models.CreateQuestionResponse
		testutil.AssertJSON(t, w, &resp)

		var stored time.Time
		if err := db.QueryRow(`SELECT end_date FROM question WHERE id = $1`, resp.QuestionID).Scan(&stored); err != nil {
			t.Fatalf("Failed to read question back: %v", err)
		}
		if !stored.Equal(end) {
			t.Errorf("end_date = %v, want %v stored unchanged", stored, end)
		}
	})
}

func TestAddChoice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(db, cfg, clock.System{})
	adminHeaders := map[string]string{"X-Admin-Key": cfg.AdminKey}

	questionID := testutil.CreateTestQuestion(t, db, "Best season?", -time.Hour, nil)

	t.Run("rejects unknown question", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions/nope/choices",
			models.AddChoiceRequest{ChoiceText: "Winter"}, adminHeaders)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()
		handler.AddChoice(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("rejects empty choice text", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/questions/"+questionID+"/choices",
			models.AddChoiceRequest{}, adminHeaders)
		req.SetPathValue("id", questionID)
		w := httptest.NewRecorder()
		handler.AddChoice(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("assigns increasing positions", func(t *testing.T) {
		for _, text := range []string{"Winter", "Spring", "Summer"} {
			req := testutil.MakeRequest("POST", "/questions/"+questionID+"/choices",
				models.AddChoiceRequest{ChoiceText: text}, adminHeaders)
			req.SetPathValue("id", questionID)
			w := httptest.NewRecorder()
			handler.AddChoice(w, req)
			testutil.AssertStatus(t, w, http.StatusCreated)
		}

		rows, err := db.Query(`
			SELECT choice_text, position FROM choice
			WHERE question_id = $1 ORDER BY position
		`, questionID)
		if err != nil {
			t.Fatalf("Failed to query choices: %v", err)
		}
		defer rows.Close()

		want := []string{"Winter", "Spring", "Summer"}
		i := 0
		for rows.Next() {
			var text string
			var position int
			if err := rows.Scan(&text, &position); err != nil {
				t.Fatalf("Failed to scan choice: %v", err)
			}
			if text != want[i] {
				t.Errorf("Position %d: got %q, want %q", position, text, want[i])
			}
			if position != i+1 {
				t.Errorf("Choice %q: position = %d, want %d", text, position, i+1)
			}
			i++
		}
		if i != len(want) {
			t.Errorf("Expected %d choices, got %d", len(want), i)
		}
	})
}

func TestDeleteQuestion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewQuestionHandler(db, cfg, clock.System{})
	adminHeaders := map[string]string{"X-Admin-Key": cfg.AdminKey}

	questionID := testutil.CreateTestQuestion(t, db, "Doomed question", -time.Hour, nil)
	choiceID := testutil.AddTestChoice(t, db, questionID, "Yes")
	accountID, _ := testutil.CreateTestAccount(t, db, "alice")
	testutil.CastTestVote(t, db, accountID, questionID, choiceID)

	req := testutil.MakeRequest("DELETE", "/questions/"+questionID, nil, adminHeaders)
	req.SetPathValue("id", questionID)
	w := httptest.NewRecorder()
	handler.DeleteQuestion(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	// Question, choices, and votes are all gone
	for _, q := range []struct {
		table string
		query string
	}{
		{"question", `SELECT COUNT(*) FROM question WHERE id = $1`},
		{"choice", `SELECT COUNT(*) FROM choice WHERE question_id = $1`},
		{"vote", `SELECT COUNT(*) FROM vote WHERE question_id = $1`},
	} {
		var count int
		if err := db.QueryRow(q.query, questionID).Scan(&count); err != nil {
			t.Fatalf("Failed to count %s rows: %v", q.table, err)
		}
		if count != 0 {
			t.Errorf("Expected 0 %s rows after delete, got %d", q.table, count)
		}
	}

	// Deleting again reports not found
	req = testutil.MakeRequest("DELETE", "/questions/"+questionID, nil, adminHeaders)
	req.SetPathValue("id", questionID)
	w = httptest.NewRecorder()
	handler.DeleteQuestion(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
