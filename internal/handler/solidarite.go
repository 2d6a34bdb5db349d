// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/influencons/influencons-go/internal/model"
	"github.com/influencons/influencons-go/internal/service"
	"github.com/influencons/influencons-go/internal/store"
)

// SolidariteHandler handles the admin solidarity action routes.
type SolidariteHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
	images         *service.ImageService
	maxUploadSize  int64
}

// NewSolidariteHandler creates a new SolidariteHandler.
func NewSolidariteHandler(db *sql.DB, sm *scs.SessionManager, images *service.ImageService, maxUploadSize int64) *SolidariteHandler {
	return &SolidariteHandler{
		queries:        store.New(db),
		sessionManager: sm,
		images:         images,
		maxUploadSize:  maxUploadSize,
	}
}

// List returns all solidarity actions for the admin area, newest first.
func (h *SolidariteHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListSolidariteActions(r.Context())
	if err != nil {
		slog.Error("failed to list solidarity actions", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}
	WriteSuccess(w, map[string]any{
		"items": items,
		"flash": popFlash(r, h.sessionManager),
	}, nil)
}

// NewForm returns the prefill payload for the new-action form.
func (h *SolidariteHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	writeFormPayload(w, r, h.sessionManager, model.SolidariteAction{
		IconType: model.IconTypeLight,
		IsActive: true,
	})
}

// EditForm returns the current record for the edit-action form.
func (h *SolidariteHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant invalide.", nil)
		return
	}
	action, ok := requireEntityJSON(w, "Action", id,
		func(id int64) (model.SolidariteAction, error) { return h.queries.GetSolidariteAction(r.Context(), id) })
	if !ok {
		return
	}
	writeFormPayload(w, r, h.sessionManager, action)
}

// Create handles the new-action form submission.
func (h *SolidariteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.sessionManager, redirectAdminSolidarite, h.maxUploadSize) {
		return
	}

	if r.FormValue("title") == "" {
		flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Le titre est requis.")
		return
	}

	progress, iconType, ok := h.validateFields(w, r)
	if !ok {
		return
	}

	imageURL, ok := h.resolveImage(w, r, "")
	if !ok {
		return
	}

	action, err := h.queries.CreateSolidariteAction(r.Context(), store.CreateSolidariteActionParams{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Progress:    progress,
		IconType:    iconType,
		ImageURL:    imageURL,
		IsFeatured:  checkbox(r, "is_featured"),
		IsActive:    checkbox(r, "is_active"),
	})
	if err != nil {
		slog.Error("failed to create solidarity action", "error", err)
		flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Erreur lors de la création.")
		return
	}

	slog.Info("solidarity action created", "category", "content", "id", action.ID)
	flashSuccess(w, r, h.sessionManager, redirectAdminSolidarite, "Action créée ✦")
}

// Update handles the edit-action form submission.
func (h *SolidariteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Identifiant invalide.")
		return
	}

	if !parseFormOrRedirect(w, r, h.sessionManager, redirectAdminSolidarite, h.maxUploadSize) {
		return
	}

	action, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminSolidarite, "Action", id,
		func(id int64) (model.SolidariteAction, error) { return h.queries.GetSolidariteAction(r.Context(), id) })
	if !ok {
		return
	}

	progress, iconType, ok := h.validateFields(w, r)
	if !ok {
		return
	}

	imageURL, ok := h.resolveImage(w, r, action.ImageURL)
	if !ok {
		return
	}

	err = h.queries.UpdateSolidariteAction(r.Context(), store.UpdateSolidariteActionParams{
		ID:          action.ID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Progress:    progress,
		IconType:    iconType,
		ImageURL:    imageURL,
		IsFeatured:  checkbox(r, "is_featured"),
		IsActive:    checkbox(r, "is_active"),
	})
	if err != nil {
		slog.Error("failed to update solidarity action", "error", err, "id", action.ID)
		flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Erreur lors de la mise à jour.")
		return
	}

	slog.Info("solidarity action updated", "category", "content", "id", action.ID)
	flashSuccess(w, r, h.sessionManager, redirectAdminSolidarite, "Action mise à jour ✦")
}

// Delete removes a solidarity action.
func (h *SolidariteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Identifiant invalide.")
		return
	}

	action, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminSolidarite, "Action", id,
		func(id int64) (model.SolidariteAction, error) { return h.queries.GetSolidariteAction(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteSolidariteAction(r.Context(), action.ID); err != nil {
		slog.Error("failed to delete solidarity action", "error", err, "id", action.ID)
		flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Erreur lors de la suppression.")
		return
	}

	slog.Info("solidarity action deleted", "category", "content", "id", action.ID)
	flashInfo(w, r, h.sessionManager, redirectAdminSolidarite, "Action supprimée.")
}

// validateFields checks the progress and icon_type fields. A malformed
// progress value is rejected instead of being silently zeroed, and it is
// clamped to the 0-100 percentage range.
func (h *SolidariteHandler) validateFields(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	progress, err := formInt(r, "progress", 0)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Progression invalide : un nombre est attendu.")
		return 0, "", false
	}
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	iconType := r.FormValue("icon_type")
	if iconType == "" {
		iconType = model.IconTypeLight
	}
	if !model.IsValidIconType(iconType) {
		flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Type d'icône invalide.")
		return 0, "", false
	}

	return progress, iconType, true
}

func (h *SolidariteHandler) resolveImage(w http.ResponseWriter, r *http.Request, existing string) (string, bool) {
	file, header := formFile(r, "image_url")
	if file != nil {
		defer file.Close()
	}

	imageURL, err := h.images.Resolve(file, header, r.FormValue("image_url_text"), existing)
	if err != nil {
		if errors.Is(err, service.ErrDisallowedExtension) {
			flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Image refusée : format non autorisé.")
		} else {
			slog.Error("failed to store image", "error", err)
			flashError(w, r, h.sessionManager, redirectAdminSolidarite, "Erreur lors de l'enregistrement de l'image.")
		}
		return "", false
	}
	return imageURL, true
}
