// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Ichi1234/ku-polls/auth"
	"github.com/Ichi1234/ku-polls/cliparse"
	"github.com/Ichi1234/ku-polls/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own uniquely named shared-cache database so
// tests never see each other's rows. The pool is capped at one connection;
// writes from concurrent goroutines serialize on the pool, which is the
// same behavior the UNIQUE constraint upsert path must survive.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8000,
		DatabaseURL:  "file:kupolls?mode=memory",
		DatabaseType: "sqlite",
		AdminKey:     "test-admin-key",
	}
}

// CreateTestQuestion inserts a question whose publication instant is
// pubOffset from now (negative = already published). endOffset, when
// non-nil, sets the end of the voting window relative to now.
func CreateTestQuestion(t *testing.T, conn *sql.DB, text string, pubOffset time.Duration, endOffset *time.Duration) string {
	t.Helper()

	questionID := uuid.NewString()
	now := time.Now()

	var endDate *time.Time
	if endOffset != nil {
		e := now.Add(*endOffset)
		endDate = &e
	}

	_, err := conn.Exec(`
		INSERT INTO question (id, question_text, pub_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, questionID, text, now.Add(pubOffset), endDate, now)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// AddTestChoice adds a choice to a question and returns the choice ID
func AddTestChoice(t *testing.T, conn *sql.DB, questionID, text string) string {
	t.Helper()

	choiceID := uuid.NewString()
	var position int
	err := conn.QueryRow(`
		SELECT COALESCE(MAX(position), 0) + 1 FROM choice WHERE question_id = $1
	`, questionID).Scan(&position)
	if err != nil {
		t.Fatalf("Failed to compute choice position: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO choice (id, question_id, choice_text, position)
		VALUES ($1, $2, $3, $4)
	`, choiceID, questionID, text, position)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return choiceID
}

// CreateTestAccount inserts an account plus a live session and returns the
// account ID and session token. The password hash is a placeholder; login
// tests that need a real password register through the handler instead.
func CreateTestAccount(t *testing.T, conn *sql.DB, username string) (accountID, sessionToken string) {
	t.Helper()

	accountID = uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO account (id, username, password_hash, created_at)
		VALUES ($1, $2, 'x', $3)
	`, accountID, username, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	sessionToken, err = auth.GenerateSessionToken()
	if err != nil {
		t.Fatalf("Failed to generate session token: %v", err)
	}
	_, err = conn.Exec(`
		INSERT INTO session (token, account_id, created_at)
		VALUES ($1, $2, $3)
	`, sessionToken, accountID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return accountID, sessionToken
}

// CastTestVote inserts a vote row directly
func CastTestVote(t *testing.T, conn *sql.DB, accountID, questionID, choiceID string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, account_id, question_id, choice_id, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, accountID, questionID, choiceID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// CountVotes returns the number of vote rows for a (account, question) pair
func CountVotes(t *testing.T, conn *sql.DB, accountID, questionID string) int {
	t.Helper()

	var count int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE account_id = $1 AND question_id = $2
	`, accountID, questionID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
