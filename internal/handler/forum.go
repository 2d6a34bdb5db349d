// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/influencons/influencons-go/internal/model"
	"github.com/influencons/influencons-go/internal/store"
)

// ForumHandler handles the admin forum topic routes.
type ForumHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
}

// NewForumHandler creates a new ForumHandler.
func NewForumHandler(db *sql.DB, sm *scs.SessionManager) *ForumHandler {
	return &ForumHandler{
		queries:        store.New(db),
		sessionManager: sm,
	}
}

// List returns all forum topics for the admin area, newest first.
func (h *ForumHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListForumTopics(r.Context())
	if err != nil {
		slog.Error("failed to list forum topics", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}
	WriteSuccess(w, map[string]any{
		"items": items,
		"flash": popFlash(r, h.sessionManager),
	}, nil)
}

// NewForm returns the prefill payload for the new-topic form.
func (h *ForumHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	writeFormPayload(w, r, h.sessionManager, model.ForumTopic{IsVisible: true})
}

// EditForm returns the current record for the edit-topic form.
func (h *ForumHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant invalide.", nil)
		return
	}
	topic, ok := requireEntityJSON(w, "Sujet", id,
		func(id int64) (model.ForumTopic, error) { return h.queries.GetForumTopic(r.Context(), id) })
	if !ok {
		return
	}
	writeFormPayload(w, r, h.sessionManager, topic)
}

// Create handles the new-topic form submission.
func (h *ForumHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.sessionManager, redirectAdminForum, 0) {
		return
	}

	if r.FormValue("title") == "" {
		flashError(w, r, h.sessionManager, redirectAdminForum, "Le titre est requis.")
		return
	}

	replyCount, err := formInt(r, "reply_count", 0)
	if err != nil || replyCount < 0 {
		flashError(w, r, h.sessionManager, redirectAdminForum, "Nombre de réponses invalide.")
		return
	}

	topic, err := h.queries.CreateForumTopic(r.Context(), store.CreateForumTopicParams{
		Title:      r.FormValue("title"),
		Excerpt:    r.FormValue("excerpt"),
		Category:   r.FormValue("category"),
		AuthorName: r.FormValue("author_name"),
		IsPinned:   checkbox(r, "is_pinned"),
		IsHot:      checkbox(r, "is_hot"),
		ReplyCount: replyCount,
		IsVisible:  checkbox(r, "is_visible"),
	})
	if err != nil {
		slog.Error("failed to create forum topic", "error", err)
		flashError(w, r, h.sessionManager, redirectAdminForum, "Erreur lors de la création.")
		return
	}

	slog.Info("forum topic created", "category", "content", "id", topic.ID)
	flashSuccess(w, r, h.sessionManager, redirectAdminForum, "Sujet créé ✦")
}

// Update handles the edit-topic form submission.
func (h *ForumHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminForum, "Identifiant invalide.")
		return
	}

	if !parseFormOrRedirect(w, r, h.sessionManager, redirectAdminForum, 0) {
		return
	}

	topic, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminForum, "Sujet", id,
		func(id int64) (model.ForumTopic, error) { return h.queries.GetForumTopic(r.Context(), id) })
	if !ok {
		return
	}

	replyCount, err := formInt(r, "reply_count", 0)
	if err != nil || replyCount < 0 {
		flashError(w, r, h.sessionManager, redirectAdminForum, "Nombre de réponses invalide.")
		return
	}

	err = h.queries.UpdateForumTopic(r.Context(), store.UpdateForumTopicParams{
		ID:         topic.ID,
		Title:      r.FormValue("title"),
		Excerpt:    r.FormValue("excerpt"),
		Category:   r.FormValue("category"),
		AuthorName: r.FormValue("author_name"),
		IsPinned:   checkbox(r, "is_pinned"),
		IsHot:      checkbox(r, "is_hot"),
		ReplyCount: replyCount,
		IsVisible:  checkbox(r, "is_visible"),
	})
	if err != nil {
		slog.Error("failed to update forum topic", "error", err, "id", topic.ID)
		flashError(w, r, h.sessionManager, redirectAdminForum, "Erreur lors de la mise à jour.")
		return
	}

	slog.Info("forum topic updated", "category", "content", "id", topic.ID)
	flashSuccess(w, r, h.sessionManager, redirectAdminForum, "Sujet mis à jour ✦")
}

// Delete removes a forum topic.
func (h *ForumHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminForum, "Identifiant invalide.")
		return
	}

	topic, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminForum, "Sujet", id,
		func(id int64) (model.ForumTopic, error) { return h.queries.GetForumTopic(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteForumTopic(r.Context(), topic.ID); err != nil {
		slog.Error("failed to delete forum topic", "error", err, "id", topic.ID)
		flashError(w, r, h.sessionManager, redirectAdminForum, "Erreur lors de la suppression.")
		return
	}

	slog.Info("forum topic deleted", "category", "content", "id", topic.ID)
	flashInfo(w, r, h.sessionManager, redirectAdminForum, "Sujet supprimé.")
}
