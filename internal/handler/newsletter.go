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

// NewsletterHandler handles the admin newsletter routes.
type NewsletterHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(db *sql.DB, sm *scs.SessionManager) *NewsletterHandler {
	return &NewsletterHandler{
		queries:        store.New(db),
		sessionManager: sm,
	}
}

// List returns all subscribers, newest first, plus the active count.
func (h *NewsletterHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListSubscribers(r.Context())
	if err != nil {
		slog.Error("failed to list subscribers", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}
	activeCount, err := h.queries.CountActiveSubscribers(r.Context())
	if err != nil {
		slog.Error("failed to count active subscribers", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}
	WriteSuccess(w, map[string]any{
		"items":        items,
		"active_count": activeCount,
		"flash":        popFlash(r, h.sessionManager),
	}, nil)
}

// Toggle flips a subscriber between active and inactive.
func (h *NewsletterHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminNewsletter, "Identifiant invalide.")
		return
	}

	sub, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminNewsletter, "Abonné", id,
		func(id int64) (model.Subscriber, error) { return h.queries.GetSubscriberByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.SetSubscriberActive(r.Context(), sub.ID, !sub.IsActive); err != nil {
		slog.Error("failed to toggle subscriber", "error", err, "id", sub.ID)
		flashError(w, r, h.sessionManager, redirectAdminNewsletter, "Erreur lors de la mise à jour.")
		return
	}

	http.Redirect(w, r, redirectAdminNewsletter, http.StatusSeeOther)
}

// Delete removes a subscriber record entirely.
func (h *NewsletterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminNewsletter, "Identifiant invalide.")
		return
	}

	sub, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminNewsletter, "Abonné", id,
		func(id int64) (model.Subscriber, error) { return h.queries.GetSubscriberByID(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteSubscriber(r.Context(), sub.ID); err != nil {
		slog.Error("failed to delete subscriber", "error", err, "id", sub.ID)
		flashError(w, r, h.sessionManager, redirectAdminNewsletter, "Erreur lors de la suppression.")
		return
	}

	slog.Info("subscriber deleted", "category", "content", "id", sub.ID)
	flashInfo(w, r, h.sessionManager, redirectAdminNewsletter, "Abonné supprimé.")
}
