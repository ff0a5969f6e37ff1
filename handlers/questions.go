// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Ichi1234/ku-polls/auth"
	"github.com/Ichi1234/ku-polls/cliparse"
	"github.com/Ichi1234/ku-polls/clock"
	"github.com/Ichi1234/ku-polls/middleware"
	"github.com/Ichi1234/ku-polls/models"
)

type QuestionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	clk clock.Clock
}

func NewQuestionHandler(db *sql.DB, cfg cliparse.Config, clk clock.Clock) *QuestionHandler {
	return &QuestionHandler{db: db, cfg: cfg, clk: clk}
}

// CreateQuestion handles POST /questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	// Validate admin key
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid admin key")
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	// Validate input
	if req.QuestionText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "question_text is required")
		return
	}

	pubDate := h.clk.Now()
	if req.PubDate != nil {
		pubDate = *req.PubDate
	}

	// An end date before the publication date is accepted as-is; such a
	// window simply never opens for voting.
	questionID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO question (id, question_text, pub_date, end_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, questionID, req.QuestionText, pubDate, req.EndDate, h.clk.Now())

	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to create question")
		return
	}

	slog.Info("question created", "question_id", questionID, "pub_date", pubDate)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{
		QuestionID: questionID,
	})
}

// AddChoice handles POST /questions/:id/choices
func (h *QuestionHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "question id is required")
		return
	}

	// Validate admin key
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid admin key")
		return
	}

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.ChoiceText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "choice_text is required")
		return
	}

	// Check question exists
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM question WHERE id = $1)
	`, questionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return
	}

	// Position keeps the stable creation order the results report in
	choiceID := uuid.NewString()
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRow(`
		SELECT COALESCE(MAX(position), 0) + 1 FROM choice WHERE question_id = $1
	`, questionID).Scan(&position)
	if err != nil {
		slog.Error("failed to compute choice position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to add choice")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO choice (id, question_id, choice_text, position)
		VALUES ($1, $2, $3, $4)
	`, choiceID, questionID, req.ChoiceText, position)
	if err != nil {
		slog.Error("failed to insert choice", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to add choice")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to add choice")
		return
	}

	slog.Info("choice added", "question_id", questionID, "choice_id", choiceID, "position", position)

	middleware.JSONResponse(w, http.StatusCreated, models.AddChoiceResponse{
		ChoiceID: choiceID,
	})
}

// DeleteQuestion handles DELETE /questions/:id
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "question id is required")
		return
	}

	// Validate admin key
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid admin key")
		return
	}

	// Cascade is spelled out so sqlite connections without the foreign_keys
	// pragma behave the same as postgres.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vote WHERE question_id = $1`, questionID); err != nil {
		slog.Error("failed to delete votes", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to delete question")
		return
	}
	if _, err := tx.Exec(`DELETE FROM choice WHERE question_id = $1`, questionID); err != nil {
		slog.Error("failed to delete choices", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to delete question")
		return
	}

	res, err := tx.Exec(`DELETE FROM question WHERE id = $1`, questionID)
	if err != nil {
		slog.Error("failed to delete question", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to delete question")
		return
	}
	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read affected rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to delete question")
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit delete", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to delete question")
		return
	}

	slog.Info("question deleted", "question_id", questionID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Question deleted",
	})
}
