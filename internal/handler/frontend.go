// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/influencons/influencons-go/internal/model"
	"github.com/influencons/influencons-go/internal/store"
)

// Public listing limits.
const (
	landingArticleLimit    = 6
	landingSolidariteLimit = 4
	landingForumLimit      = 10
	articlesPerPage        = 6
)

// FrontendHandler serves the public site endpoints.
type FrontendHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(db *sql.DB, sm *scs.SessionManager) *FrontendHandler {
	return &FrontendHandler{
		queries:        store.New(db),
		sessionManager: sm,
	}
}

// Home returns the landing page payload: the newest published articles,
// the current défi, featured-first solidarity actions, and pinned-first
// forum topics.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	articles, err := h.queries.ListPublishedArticles(ctx, landingArticleLimit, 0)
	if err != nil {
		slog.Error("failed to list articles for landing", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}

	var defi *model.Defi
	current, err := h.queries.GetCurrentDefi(ctx)
	switch {
	case err == nil:
		defi = &current
	case errors.Is(err, sql.ErrNoRows):
		// No active défi is a normal state.
	default:
		slog.Error("failed to load current défi", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}

	solidarite, err := h.queries.ListActiveSolidariteActions(ctx, landingSolidariteLimit)
	if err != nil {
		slog.Error("failed to list solidarity actions for landing", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}

	topics, err := h.queries.ListVisibleForumTopics(ctx, landingForumLimit)
	if err != nil {
		slog.Error("failed to list forum topics for landing", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}

	WriteSuccess(w, map[string]any{
		"articles":   articles,
		"defi":       defi,
		"solidarite": solidarite,
		"forum":      topics,
		"flash":      popFlash(r, h.sessionManager),
	}, nil)
}

// Articles returns a page of published articles, optionally narrowed by
// a case-insensitive tag fragment.
func (h *FrontendHandler) Articles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			WriteBadRequest(w, "Paramètre page invalide.", nil)
			return
		}
		page = n
	}
	tag := strings.TrimSpace(r.URL.Query().Get("tag"))
	offset := int64(page-1) * articlesPerPage

	var (
		items []model.Article
		total int64
		err   error
	)
	if tag != "" {
		items, err = h.queries.ListPublishedArticlesByTag(ctx, tag, articlesPerPage, offset)
		if err == nil {
			total, err = h.queries.CountPublishedArticlesByTag(ctx, tag)
		}
	} else {
		items, err = h.queries.ListPublishedArticles(ctx, articlesPerPage, offset)
		if err == nil {
			total, err = h.queries.CountPublishedArticles(ctx)
		}
	}
	if err != nil {
		slog.Error("failed to list published articles", "error", err, "page", page, "tag", tag)
		WriteInternalError(w, "Erreur interne.")
		return
	}

	pages := int((total + articlesPerPage - 1) / articlesPerPage)
	WriteSuccess(w, map[string]any{"items": items}, &Meta{
		Total:   total,
		Page:    page,
		PerPage: articlesPerPage,
		Pages:   pages,
	})
}

// Article returns a single published article by slug, or 404.
func (h *FrontendHandler) Article(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	article, err := h.queries.GetPublishedArticleBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Article introuvable.")
			return
		}
		slog.Error("failed to load article", "error", err, "slug", slug)
		WriteInternalError(w, "Erreur interne.")
		return
	}

	WriteSuccess(w, article, nil)
}

// Subscribe handles the public newsletter form. An email already on the
// list gets an informational message, a deactivated one is reactivated,
// and anything else creates a fresh active subscription.
func (h *FrontendHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.sessionManager, redirectHome, "Formulaire invalide.")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" || !strings.Contains(email, "@") {
		flashError(w, r, h.sessionManager, redirectHome, "Email invalide.")
		return
	}

	existing, err := h.queries.GetSubscriberByEmail(r.Context(), email)
	switch {
	case err == nil:
		if existing.IsActive {
			flashInfo(w, r, h.sessionManager, redirectHome, "Vous êtes déjà abonné(e) !")
			return
		}
		if err := h.queries.SetSubscriberActive(r.Context(), existing.ID, true); err != nil {
			slog.Error("failed to reactivate subscriber", "error", err, "id", existing.ID)
			flashError(w, r, h.sessionManager, redirectHome, "Erreur, réessayez plus tard.")
			return
		}
		flashSuccess(w, r, h.sessionManager, redirectHome, "Vous êtes de nouveau abonné(e) ! ✦")
		return
	case errors.Is(err, sql.ErrNoRows):
		// New subscriber, fall through to create.
	default:
		slog.Error("failed to look up subscriber", "error", err)
		flashError(w, r, h.sessionManager, redirectHome, "Erreur, réessayez plus tard.")
		return
	}

	if _, err := h.queries.CreateSubscriber(r.Context(), email); err != nil {
		// A concurrent subscribe for the same address lands here.
		if store.IsUniqueViolation(err) {
			flashInfo(w, r, h.sessionManager, redirectHome, "Vous êtes déjà abonné(e) !")
			return
		}
		slog.Error("failed to create subscriber", "error", err)
		flashError(w, r, h.sessionManager, redirectHome, "Erreur, réessayez plus tard.")
		return
	}

	slog.Info("newsletter subscription", "category", "content")
	flashSuccess(w, r, h.sessionManager, redirectHome, "Merci ! Vous êtes maintenant abonné(e) ✦")
}
