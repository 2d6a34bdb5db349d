// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/influencons/influencons-go/internal/auth"
	"github.com/influencons/influencons-go/internal/middleware"
	"github.com/influencons/influencons-go/internal/store"
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

// LoginForm serves the login page state: a pending flash message if one
// is set, or a redirect to the dashboard for signed-in admins.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID); userID > 0 {
		if _, err := h.queries.GetUserByID(r.Context(), userID); err == nil {
			http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
			return
		}
	}

	WriteSuccess(w, map[string]any{
		"flash": popFlash(r, h.sessionManager),
	}, nil)
}

// Login handles the login form submission. Only admin accounts may sign
// in; every failure path answers with the same generic message so
// account existence is not leaked.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectLogin, "Formulaire invalide.")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.sessionManager, redirectLogin, "Email et mot de passe requis.")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			slog.Warn("login attempt on locked account", "category", "auth", "email", email)
			flashError(w, r, h.sessionManager, redirectLogin,
				fmt.Sprintf("Compte temporairement verrouillé. Réessayez dans %s.", formatDuration(remaining)))
			return
		}
	}

	user, err := h.queries.GetAdminByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("login failed: unknown or non-admin account", "category", "auth", "email", email)
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record the failure even for non-existent accounts to prevent
		// enumeration through lockout behavior.
		h.recordFailure(w, r, email)
		return
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		flashError(w, r, h.sessionManager, redirectLogin, "Identifiants invalides.")
		return
	}
	if !valid {
		slog.Warn("login failed: invalid password", "category", "auth", "email", email)
		h.recordFailure(w, r, email)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Upgrade hashes produced with older parameters now that we hold the
	// plaintext.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), user.ID, newHash); err != nil {
				slog.Error("failed to store rehashed password", "error", err, "user_id", user.ID)
			}
		}
	}

	// A fresh session token on privilege change prevents fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
		flashError(w, r, h.sessionManager, redirectLogin, "Erreur de session.")
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("admin signed in", "category", "auth", "user_id", user.ID, "email", user.Email)
	flashSuccess(w, r, h.sessionManager, redirectDashboard, "Bienvenue "+user.Username+" ✦")
}

// Logout destroys the session and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}
	if userID > 0 {
		slog.Info("admin signed out", "category", "auth", "user_id", userID)
	}
	flashInfo(w, r, h.sessionManager, redirectLogin, "Vous êtes déconnecté(e).")
}

// recordFailure books a failed attempt against the account and answers
// with the generic credentials error, or the lockout message when the
// account just locked.
func (h *AuthHandler) recordFailure(w http.ResponseWriter, r *http.Request, email string) {
	if h.loginProtection != nil {
		if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
			flashError(w, r, h.sessionManager, redirectLogin,
				fmt.Sprintf("Trop de tentatives. Compte verrouillé pour %s.", formatDuration(lockDuration)))
			return
		}
	}
	flashError(w, r, h.sessionManager, redirectLogin, "Identifiants invalides.")
}

// formatDuration renders a lockout duration in whole minutes for user
// facing messages.
func formatDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}
