// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/influencons/influencons-go/internal/model"
	"github.com/influencons/influencons-go/internal/service"
	"github.com/influencons/influencons-go/internal/store"
	"github.com/influencons/influencons-go/internal/util"
)

// ArticleHandler handles the admin article routes.
type ArticleHandler struct {
	queries        *store.Queries
	sessionManager *scs.SessionManager
	images         *service.ImageService
	maxUploadSize  int64
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(db *sql.DB, sm *scs.SessionManager, images *service.ImageService, maxUploadSize int64) *ArticleHandler {
	return &ArticleHandler{
		queries:        store.New(db),
		sessionManager: sm,
		images:         images,
		maxUploadSize:  maxUploadSize,
	}
}

// List returns all articles for the admin area, newest first.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListArticles(r.Context())
	if err != nil {
		slog.Error("failed to list articles", "error", err)
		WriteInternalError(w, "Erreur interne.")
		return
	}
	WriteSuccess(w, map[string]any{
		"items": items,
		"flash": popFlash(r, h.sessionManager),
	}, nil)
}

// NewForm returns the prefill payload for the new-article form.
func (h *ArticleHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	writeFormPayload(w, r, h.sessionManager, model.Article{IsPublished: true})
}

// EditForm returns the current record for the edit-article form.
func (h *ArticleHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		WriteBadRequest(w, "Identifiant invalide.", nil)
		return
	}
	article, ok := requireEntityJSON(w, "Article", id,
		func(id int64) (model.Article, error) { return h.queries.GetArticle(r.Context(), id) })
	if !ok {
		return
	}
	writeFormPayload(w, r, h.sessionManager, article)
}

// Create handles the new-article form submission. The slug is derived
// from the title once, here, and never changes afterwards.
func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.sessionManager, redirectAdminArticles, h.maxUploadSize) {
		return
	}

	title := r.FormValue("title")
	if title == "" {
		flashError(w, r, h.sessionManager, redirectAdminArticles, "Le titre est requis.")
		return
	}

	slug, err := h.uniqueSlug(r.Context(), title)
	if err != nil {
		slog.Error("failed to derive slug", "error", err, "title", title)
		flashError(w, r, h.sessionManager, redirectAdminArticles, "Erreur lors de la création.")
		return
	}

	imageURL, ok := h.resolveImage(w, r, "")
	if !ok {
		return
	}

	article, err := h.queries.CreateArticle(r.Context(), store.CreateArticleParams{
		Title:       title,
		Slug:        slug,
		Tag:         r.FormValue("tag"),
		Excerpt:     r.FormValue("excerpt"),
		Content:     sanitizer.Sanitize(r.FormValue("content")),
		ImageURL:    imageURL,
		IsPublished: checkbox(r, "is_published"),
	})
	if err != nil {
		// The UNIQUE index is the final authority on slug collisions
		// under concurrent creates.
		if store.IsUniqueViolation(err) {
			flashError(w, r, h.sessionManager, redirectAdminArticles, "Un article avec ce titre existe déjà, réessayez.")
			return
		}
		slog.Error("failed to create article", "error", err)
		flashError(w, r, h.sessionManager, redirectAdminArticles, "Erreur lors de la création.")
		return
	}

	slog.Info("article created", "category", "content", "id", article.ID, "slug", article.Slug)
	flashSuccess(w, r, h.sessionManager, redirectAdminArticles, "Article créé ✦")
}

// Update handles the edit-article form submission. The slug is left
// untouched so published URLs keep working.
func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminArticles, "Identifiant invalide.")
		return
	}

	if !parseFormOrRedirect(w, r, h.sessionManager, redirectAdminArticles, h.maxUploadSize) {
		return
	}

	article, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminArticles, "Article", id,
		func(id int64) (model.Article, error) { return h.queries.GetArticle(r.Context(), id) })
	if !ok {
		return
	}

	imageURL, ok := h.resolveImage(w, r, article.ImageURL)
	if !ok {
		return
	}

	err = h.queries.UpdateArticle(r.Context(), store.UpdateArticleParams{
		ID:          article.ID,
		Title:       r.FormValue("title"),
		Tag:         r.FormValue("tag"),
		Excerpt:     r.FormValue("excerpt"),
		Content:     sanitizer.Sanitize(r.FormValue("content")),
		ImageURL:    imageURL,
		IsPublished: checkbox(r, "is_published"),
	})
	if err != nil {
		slog.Error("failed to update article", "error", err, "id", article.ID)
		flashError(w, r, h.sessionManager, redirectAdminArticles, "Erreur lors de la mise à jour.")
		return
	}

	slog.Info("article updated", "category", "content", "id", article.ID)
	flashSuccess(w, r, h.sessionManager, redirectAdminArticles, "Article mis à jour ✦")
}

// Delete removes an article.
func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		flashError(w, r, h.sessionManager, redirectAdminArticles, "Identifiant invalide.")
		return
	}

	article, ok := requireEntityWithRedirect(w, r, h.sessionManager, redirectAdminArticles, "Article", id,
		func(id int64) (model.Article, error) { return h.queries.GetArticle(r.Context(), id) })
	if !ok {
		return
	}

	if err := h.queries.DeleteArticle(r.Context(), article.ID); err != nil {
		slog.Error("failed to delete article", "error", err, "id", article.ID)
		flashError(w, r, h.sessionManager, redirectAdminArticles, "Erreur lors de la suppression.")
		return
	}

	slog.Info("article deleted", "category", "content", "id", article.ID, "slug", article.Slug)
	flashInfo(w, r, h.sessionManager, redirectAdminArticles, "Article supprimé.")
}

// uniqueSlug slugifies the title and appends a numeric suffix until the
// slug is free.
func (h *ArticleHandler) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := util.Slugify(title)
	if base == "" {
		base = "article"
	}

	slug := base
	for i := 1; ; i++ {
		exists, err := h.queries.ArticleSlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// resolveImage applies the upload-then-URL-then-existing image rule and
// flashes an error on a rejected upload. The bool result reports whether
// the caller may continue.
func (h *ArticleHandler) resolveImage(w http.ResponseWriter, r *http.Request, existing string) (string, bool) {
	file, header := formFile(r, "image_url")
	if file != nil {
		defer file.Close()
	}

	imageURL, err := h.images.Resolve(file, header, r.FormValue("image_url_text"), existing)
	if err != nil {
		if errors.Is(err, service.ErrDisallowedExtension) {
			flashError(w, r, h.sessionManager, redirectAdminArticles, "Image refusée : format non autorisé.")
		} else {
			slog.Error("failed to store image", "error", err)
			flashError(w, r, h.sessionManager, redirectAdminArticles, "Erreur lors de l'enregistrement de l'image.")
		}
		return "", false
	}
	return imageURL, true
}
