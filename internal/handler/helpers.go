// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the public site and the
// admin area.
package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
)

// sanitizer strips dangerous markup from admin-authored rich content
// before it is stored.
var sanitizer = bluemonday.UGCPolicy()

// Flash holds a one-shot message popped from the session.
type Flash struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url, message, messageType string) {
	sm.Put(r.Context(), sessionKeyFlash, message)
	sm.Put(r.Context(), sessionKeyFlashType, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url, message string) {
	flashAndRedirect(w, r, sm, url, message, flashErrorType)
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url, message string) {
	flashAndRedirect(w, r, sm, url, message, flashSuccessType)
}

// flashInfo sets an info flash message and redirects to the given URL.
func flashInfo(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, url, message string) {
	flashAndRedirect(w, r, sm, url, message, flashInfoType)
}

// popFlash removes and returns the pending flash message, or nil if none
// is set.
func popFlash(r *http.Request, sm *scs.SessionManager) *Flash {
	message := sm.PopString(r.Context(), sessionKeyFlash)
	if message == "" {
		return nil
	}
	flashType := sm.PopString(r.Context(), sessionKeyFlashType)
	if flashType == "" {
		flashType = flashInfoType
	}
	return &Flash{Message: message, Type: flashType}
}

// idParam parses the {id} chi URL parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// parseFormOrRedirect parses the request form, allowing multipart bodies,
// and redirects with an error message on failure. Bodies larger than
// maxUploadSize are rejected outright. Returns true if parsing
// succeeded.
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, redirectURL string, maxUploadSize int64) bool {
	var err error
	if maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		err = r.ParseMultipartForm(maxUploadSize)
		if errors.Is(err, http.ErrNotMultipart) {
			err = r.ParseForm()
		}
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			flashError(w, r, sm, redirectURL, "Fichier trop volumineux.")
			return false
		}
		flashError(w, r, sm, redirectURL, "Formulaire invalide.")
		return false
	}
	return true
}

// formFile returns the uploaded file for the given field, or nils when
// the field is absent or empty.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return file, header
}

// formInt parses an integer form field, returning def when the field is
// empty. Malformed values are an error rather than silently zeroed.
func formInt(r *http.Request, field string, def int64) (int64, error) {
	v := strings.TrimSpace(r.FormValue(field))
	if v == "" {
		return def, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// checkbox reports whether an HTML checkbox field was ticked. Browsers
// omit unticked checkboxes from the submission entirely.
func checkbox(r *http.Request, field string) bool {
	return r.FormValue(field) != ""
}

// writeFormPayload answers an admin form endpoint with the record to
// prefill and any pending flash message.
func writeFormPayload[T any](w http.ResponseWriter, r *http.Request, sm *scs.SessionManager, item T) {
	WriteSuccess(w, map[string]any{
		"item":  item,
		"flash": popFlash(r, sm),
	}, nil)
}

// requireEntityJSON fetches an entity by ID for a JSON GET endpoint,
// answering not-found or internal-error directly on failure.
func requireEntityJSON[T any](w http.ResponseWriter, entityName string, id int64, queryFn func(id int64) (T, error)) (T, bool) {
	var zero T
	entity, err := queryFn(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, entityName+" introuvable.")
		} else {
			slog.Error("failed to get "+entityName, "error", err, "id", id)
			WriteInternalError(w, "Erreur interne.")
		}
		return zero, false
	}
	return entity, true
}

// requireEntityWithRedirect fetches an entity by ID using the provided
// query function. On error, it sets a flash message and redirects.
// Returns the entity and true if successful, or zero value and false if
// an error occurred (redirect already performed).
func requireEntityWithRedirect[T any](
	w http.ResponseWriter,
	r *http.Request,
	sm *scs.SessionManager,
	redirectURL string,
	entityName string,
	id int64,
	queryFn func(id int64) (T, error),
) (T, bool) {
	var zero T
	entity, err := queryFn(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			flashError(w, r, sm, redirectURL, entityName+" introuvable.")
		} else {
			slog.Error("failed to get "+entityName, "error", err, "id", id)
			flashError(w, r, sm, redirectURL, "Erreur lors du chargement.")
		}
		return zero, false
	}
	return entity, true
}
