// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/influencons/influencons-go/internal/store"
)

// recentLimit caps the dashboard "recent" lists.
const recentLimit = 5

// AdminHandler serves the admin dashboard.
type AdminHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(db *sql.DB, sm *scs.SessionManager) *AdminHandler {
	return &AdminHandler{
		queries:        store.New(db),
		sessionManager: sm,
	}
}

// dashboardStats holds content counts for the dashboard tiles. The
// subscriber count only includes active subscriptions.
type dashboardStats struct {
	Articles    int64 `json:"articles"`
	Defis       int64 `json:"defis"`
	Solidarite  int64 `json:"solidarite"`
	Topics      int64 `json:"topics"`
	Subscribers int64 `json:"subscribers"`
}

// Dashboard returns content counts and the most recent records of each
// kind.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		stats dashboardStats
		err   error
	)
	if stats.Articles, err = h.queries.CountArticles(ctx); err != nil {
		h.fail(w, "counting articles", err)
		return
	}
	if stats.Defis, err = h.queries.CountDefis(ctx); err != nil {
		h.fail(w, "counting défis", err)
		return
	}
	if stats.Solidarite, err = h.queries.CountSolidariteActions(ctx); err != nil {
		h.fail(w, "counting solidarity actions", err)
		return
	}
	if stats.Topics, err = h.queries.CountForumTopics(ctx); err != nil {
		h.fail(w, "counting forum topics", err)
		return
	}
	if stats.Subscribers, err = h.queries.CountActiveSubscribers(ctx); err != nil {
		h.fail(w, "counting subscribers", err)
		return
	}

	recentArticles, err := h.queries.ListRecentArticles(ctx, recentLimit)
	if err != nil {
		h.fail(w, "listing recent articles", err)
		return
	}
	recentDefis, err := h.queries.ListRecentDefis(ctx, recentLimit)
	if err != nil {
		h.fail(w, "listing recent défis", err)
		return
	}
	recentSolidarite, err := h.queries.ListRecentSolidariteActions(ctx, recentLimit)
	if err != nil {
		h.fail(w, "listing recent solidarity actions", err)
		return
	}
	recentSubscribers, err := h.queries.ListRecentSubscribers(ctx, recentLimit)
	if err != nil {
		h.fail(w, "listing recent subscribers", err)
		return
	}

	WriteSuccess(w, map[string]any{
		"stats":              stats,
		"recent_articles":    recentArticles,
		"recent_defis":       recentDefis,
		"recent_solidarite":  recentSolidarite,
		"recent_subscribers": recentSubscribers,
		"flash":              popFlash(r, h.sessionManager),
	}, nil)
}

func (h *AdminHandler) fail(w http.ResponseWriter, op string, err error) {
	slog.Error("dashboard query failed", "op", op, "error", err)
	WriteInternalError(w, "Erreur interne.")
}
