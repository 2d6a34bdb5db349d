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

// DefiHandler handles the admin défi routes.
type DefiHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
	images         *service.ImageService
	maxUploadSize  int64
}

// NewDefiHandler creates a new DefiHandler.
func NewDefiHandler(db *sql.DB, sm *scs.SessionManager, images *service.ImageService, maxUploadSize int64) *DefiHandler {
	return &DefiHandler{
		queries:        store.New(db),
		sessionManager: sm,
		images:         images,
		maxUploadSize:  maxUploadSize,
	}
}

// List returns all défis for the admin area, newest first.
func (h *DefiHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListDefis(r.Context())
	if err != nil {
		slog.Error("failed to list défis", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}
	WriteSuccess(w, map[string]any{
		"items": items,
		"flash": popFlash(r, h.sessionManager),
	}, nil)
}

// NewForm returns the prefill payload for the new-défi form.
func (h *DefiHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	writeFormPayload(w, r, h.sessionManager, model.Defi{IsActive: true})
}

// EditForm returns the current record for the edit-défi form.
func (h *DefiHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant invalide.", nil)
		return
	}
	defi, ok := requireEntityJSON(w, "Défi", id,
		func(id int64) (model.Defi, error) { return h.queries.GetDefi(r.Context(), id) })
	if !ok {
		return
	}
	writeFormPayload(w, r, h.sessionManager, defi)
}

// Create handles the new-défi form submission.
func (h *DefiHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.sessionManager, redirectAdminDefis, h.maxUploadSize) {
		return
	}

	if r.FormValue("title") == "" {
		flashError(w, r, h.sessionManager, redirectAdminDefis, "Le titre est requis.")
		return
	}

	imageURL, ok := h.resolveImage(w, r, "")
	if !ok {
		return
	}

	defi, err := h.queries.CreateDefi(r.Context(), store.CreateDefiParams{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Step1Title:  r.FormValue("step1_title"),
		Step1Desc:   r.FormValue("step1_desc"),
		Step2Title:  r.FormValue("step2_title"),
		Step2Desc:   r.FormValue("step2_desc"),
		Step3Title:  r.FormValue("step3_title"),
		Step3Desc:   r.FormValue("step3_desc"),
		Link:        r.FormValue("link"),
		ImageURL:    imageURL,
		IsActive:    checkbox(r, "is_active"),
	})
	if err != nil {
		slog.Error("failed to create défi", "error", err)
		flashError(w, r, h.sessionManager, redirectAdminDefis, "Erreur lors de la création.")
		return
	}

	slog.Info("défi created", "category", "content", "id", defi.ID)
	flashSuccess(w, r, h.sessionManager, redirectAdminDefis, "Défi créé ✦")
}

// Update handles the edit-défi form submission.
func (h *DefiHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminDefis, "Identifiant invalide.")
		return
	}

	if !parseFormOrRedirect(w, r, h.sessionManager, redirectAdminDefis, h.maxUploadSize) {
		return
	}

	defi, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminDefis, "Défi", id,
		func(id int64) (model.Defi, error) { return h.queries.GetDefi(r.Context(), id) })
	if !ok {
		return
	}

	imageURL, ok := h.resolveImage(w, r, defi.ImageURL)
	if !ok {
		return
	}

	err = h.queries.UpdateDefi(r.Context(), store.UpdateDefiParams{
		ID:          defi.ID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Step1Title:  r.FormValue("step1_title"),
		Step1Desc:   r.FormValue("step1_desc"),
		Step2Title:  r.FormValue("step2_title"),
		Step2Desc:   r.FormValue("step2_desc"),
		Step3Title:  r.FormValue("step3_title"),
		Step3Desc:   r.FormValue("step3_desc"),
		Link:        r.FormValue("link"),
		ImageURL:    imageURL,
		IsActive:    checkbox(r, "is_active"),
	})
	if err != nil {
		slog.Error("failed to update défi", "error", err, "id", defi.ID)
		flashError(w, r, h.sessionManager, redirectAdminDefis, "Erreur lors de la mise à jour.")
		return
	}

	slog.Info("défi updated", "category", "content", "id", defi.ID)
	flashSuccess(w, r, h.sessionManager, redirectAdminDefis, "Défi mis à jour ✦")
}

// Delete removes a défi.
func (h *DefiHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminDefis, "Identifiant invalide.")
		return
	}

	defi, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminDefis, "Défi", id,
		func(id int64) (model.Defi, error) { return h.queries.GetDefi(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteDefi(r.Context(), defi.ID); err != nil {
		slog.Error("failed to delete défi", "error", err, "id", defi.ID)
		flashError(w, r, h.sessionManager, redirectAdminDefis, "Erreur lors de la suppression.")
		return
	}

	slog.Info("défi deleted", "category", "content", "id", defi.ID)
	flashInfo(w, r, h.sessionManager, redirectAdminDefis, "Défi supprimé.")
}

func (h *DefiHandler) resolveImage(w http.ResponseWriter, r *http.Request, existing string) (string, bool) {
	file, header := formFile(r, "image_url")
	if file != nil {
		defer file.Close()
	}

	imageURL, err := h.images.Resolve(file, header, r.FormValue("image_url_text"), existing)
	if err != nil {
		if errors.Is(err, service.ErrDisallowedExtension) {
			flashError(w, r, h.sessionManager, redirectAdminDefis, "Image refusée : format non autorisé.")
		} else {
			slog.Error("failed to store image", "error", err)
			flashError(w, r, h.sessionManager, redirectAdminDefis, "Erreur lors de l'enregistrement de l'image.")
		}
		return "", false
	}
	return imageURL, true
}
