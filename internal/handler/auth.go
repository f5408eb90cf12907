// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/osite-go/internal/auth"
	"github.com/olegiv/osite-go/internal/middleware"
	"github.com/olegiv/osite-go/internal/model"
	"github.com/olegiv/osite-go/internal/store"
)

// AuthHandler handles admin authentication routes.
type AuthHandler struct {
	queries         *store.Queries
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		queries:         store.New(db),
		sessionManager:  sm,
		loginProtection: lp,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles the admin login submission.
// The failure message is deliberately identical for unknown users and wrong
// passwords so the endpoint cannot be used for account enumeration.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	clientIP := middleware.GetClientIP(r)

	if h.loginProtection != nil {
		if locked, _ := h.loginProtection.IsAccountLocked(req.Username); locked {
			slog.Warn("login attempt on locked account",
				"category", model.EventCategoryAuth,
				"username", req.Username,
				"ip", clientIP,
			)
			writeJSONError(w, http.StatusTooManyRequests, "Too many failed attempts, try again later")
			return
		}
	}

	user, err := h.queries.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			// A store failure is not a bad credential: no lockout strike.
			slog.Error("database error during login", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		slog.Warn("login failed: user not found",
			"category", model.EventCategoryAuth,
			"username", req.Username,
			"ip", clientIP,
		)
		// Record failed attempt even for non-existent users to prevent enumeration
		h.recordFailure(w, req.Username)
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !valid {
		slog.Warn("login failed: invalid password",
			"category", model.EventCategoryAuth,
			"username", req.Username,
			"ip", clientIP,
		)
		h.recordFailure(w, req.Username)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(req.Username)
	}

	// Re-hash password if it uses outdated parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, hashErr := auth.HashPassword(req.Password); hashErr == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "user_id", user.ID)
			}
		}
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now(), Valid: true},
		ID:          user.ID,
	}); err != nil {
		// Don't block login on this error
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("session renewal error", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in",
		"category", model.EventCategoryAuth,
		"user_id", user.ID,
		"username", user.Username,
	)

	writeJSONSuccess(w, nil)
}

// Logout destroys the session unconditionally.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	if userID > 0 {
		slog.Info("user logged out",
			"category", model.EventCategoryAuth,
			"user_id", userID,
		)
	}

	writeJSONSuccess(w, nil)
}

// recordFailure tracks a failed attempt and writes the opaque 401, or a 429
// when the failure tips the account into lockout.
func (h *AuthHandler) recordFailure(w http.ResponseWriter, username string) {
	if h.loginProtection != nil {
		if locked, _ := h.loginProtection.RecordFailedAttempt(username); locked {
			writeJSONError(w, http.StatusTooManyRequests, "Too many failed attempts, try again later")
			return
		}
	}
	writeJSONError(w, http.StatusUnauthorized, "Invalid credentials")
}
