// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Ichi1234/ku-polls/auth"
	"github.com/Ichi1234/ku-polls/cliparse"
	"github.com/Ichi1234/ku-polls/clock"
	"github.com/Ichi1234/ku-polls/middleware"
	"github.com/Ichi1234/ku-polls/models"
)

var errNoSessionToken = errors.New("no session token")

type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	clk clock.Clock
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config, clk clock.Clock) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg, clk: clk}
}

// Register handles POST /accounts/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "username is required")
		return
	}
	if len(req.Username) < 2 || len(req.Username) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "username must be 2-50 characters")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to register")
		return
	}

	accountID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO account (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, accountID, req.Username, hash, h.clk.Now())

	if err != nil {
		// Check if it's a uniqueness violation
		if strings.Contains(err.Error(), "UNIQUE constraint failed: account.username") ||
			strings.Contains(err.Error(), "account_username_key") {
			middleware.ErrorResponse(w, http.StatusConflict, "", "Username already taken")
			return
		}
		slog.Error("failed to insert account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to register")
		return
	}

	slog.Info("Create new user", "user", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		AccountID: accountID,
	})
}

// Login handles POST /accounts/login
// Issues a session token. Successes and failures are both audit-logged with
// the client IP.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	ip := middleware.GetClientIP(r)

	var accountID, passwordHash string
	err := h.db.QueryRow(`
		SELECT id, password_hash FROM account WHERE username = $1
	`, req.Username).Scan(&accountID, &passwordHash)

	if err == sql.ErrNoRows {
		slog.Warn("login failed", "user", req.Username, "ip", ip)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to query account", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if err := auth.CheckPassword(passwordHash, req.Password); err != nil {
		slog.Warn("login failed", "user", req.Username, "ip", ip)
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid username or password")
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to log in")
		return
	}

	// The stored IP is hashed; only the audit log sees the raw address
	ipHash := auth.HashIP(ip, h.cfg.AdminKey)
	userAgent := r.UserAgent()
	_, err = h.db.Exec(`
		INSERT INTO session (token, account_id, created_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5)
	`, token, accountID, h.clk.Now(), ipHash, userAgent)
	if err != nil {
		slog.Error("failed to insert session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to log in")
		return
	}

	slog.Info("login user", "user", req.Username, "ip", ip)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		SessionToken: token,
	})
}

// Logout handles POST /accounts/logout
// Deletes the session so the token is rejected afterwards.
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	_, username, err := authenticate(h.db, w, r)
	if err != nil {
		return
	}

	token := r.Header.Get("X-Session-Token")
	if _, err := h.db.Exec(`DELETE FROM session WHERE token = $1`, token); err != nil {
		slog.Error("failed to delete session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to log out")
		return
	}

	slog.Info("user logged out", "user", username, "ip", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"message": "Logged out",
	})
}

// currentAccount resolves the X-Session-Token header to an account. Returns
// errNoSessionToken when the header is absent and sql.ErrNoRows when the
// token does not match a session.
func currentAccount(db *sql.DB, r *http.Request) (accountID, username string, err error) {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		return "", "", errNoSessionToken
	}

	err = db.QueryRow(`
		SELECT a.id, a.username
		FROM session s
		JOIN account a ON a.id = s.account_id
		WHERE s.token = $1
	`, token).Scan(&accountID, &username)
	if err != nil {
		return "", "", err
	}
	return accountID, username, nil
}
