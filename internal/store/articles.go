// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/influencons/influencons-go/internal/model"
)

const articleColumns = `id, title, slug, tag, excerpt, content, image_url, is_published, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (model.Article, error) {
	var a model.Article
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Slug,
		&a.Tag,
		&a.Excerpt,
		&a.Content,
		&a.ImageURL,
		&a.IsPublished,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	return a, err
}

const createArticle = `
INSERT INTO articles (title, slug, tag, excerpt, content, image_url, is_published)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + articleColumns

// CreateArticleParams holds the parameters for CreateArticle.
type CreateArticleParams struct {
	Title       string
	Slug        string
	Tag         string
	Excerpt     string
	Content     string
	ImageURL    string
	IsPublished bool
}

// CreateArticle inserts a new article and returns the created row.
func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (model.Article, error) {
	row := q.db.QueryRowContext(ctx, createArticle,
		arg.Title,
		arg.Slug,
		arg.Tag,
		arg.Excerpt,
		arg.Content,
		arg.ImageURL,
		arg.IsPublished,
	)
	return scanArticle(row)
}

const getArticle = `
SELECT ` + articleColumns + `
FROM articles
WHERE id = ?
`

// GetArticle returns the article with the given ID regardless of
// publication state.
func (q *Queries) GetArticle(ctx context.Context, id int64) (model.Article, error) {
	return scanArticle(q.db.QueryRowContext(ctx, getArticle, id))
}

const getPublishedArticleBySlug = `
SELECT ` + articleColumns + `
FROM articles
WHERE slug = ? AND is_published = 1
`

// GetPublishedArticleBySlug returns the published article with the given
// slug. Unpublished articles are invisible through this lookup.
func (q *Queries) GetPublishedArticleBySlug(ctx context.Context, slug string) (model.Article, error) {
	return scanArticle(q.db.QueryRowContext(ctx, getPublishedArticleBySlug, slug))
}

const updateArticle = `
UPDATE articles
SET title = ?, tag = ?, excerpt = ?, content = ?, image_url = ?, is_published = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`

// UpdateArticleParams holds the parameters for UpdateArticle. The slug is
// deliberately absent: it is fixed at creation so published URLs stay
// stable.
type UpdateArticleParams struct {
	ID          int64
	Title       string
	Tag         string
	Excerpt     string
	Content     string
	ImageURL    string
	IsPublished bool
}

// UpdateArticle updates an article in place and refreshes updated_at.
func (q *Queries) UpdateArticle(ctx context.Context, arg UpdateArticleParams) error {
	_, err := q.db.ExecContext(ctx, updateArticle,
		arg.Title,
		arg.Tag,
		arg.Excerpt,
		arg.Content,
		arg.ImageURL,
		arg.IsPublished,
		arg.ID,
	)
	return err
}

const deleteArticle = `
DELETE FROM articles
WHERE id = ?
`

// DeleteArticle removes an article.
func (q *Queries) DeleteArticle(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteArticle, id)
	return err
}

const listArticles = `
SELECT ` + articleColumns + `
FROM articles
ORDER BY created_at DESC
`

// ListArticles returns all articles, newest first, for the admin area.
func (q *Queries) ListArticles(ctx context.Context) ([]model.Article, error) {
	rows, err := q.db.QueryContext(ctx, listArticles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const listPublishedArticles = `
SELECT ` + articleColumns + `
FROM articles
WHERE is_published = 1
ORDER BY created_at DESC
LIMIT ? OFFSET ?
`

// ListPublishedArticles returns a page of published articles, newest
// first.
func (q *Queries) ListPublishedArticles(ctx context.Context, limit, offset int64) ([]model.Article, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedArticles, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const countPublishedArticles = `
SELECT COUNT(*) FROM articles WHERE is_published = 1
`

// CountPublishedArticles returns the number of published articles.
func (q *Queries) CountPublishedArticles(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPublishedArticles).Scan(&n)
	return n, err
}

const listPublishedArticlesByTag = `
SELECT ` + articleColumns + `
FROM articles
WHERE is_published = 1 AND LOWER(tag) LIKE '%' || LOWER(?) || '%'
ORDER BY created_at DESC
LIMIT ? OFFSET ?
`

// ListPublishedArticlesByTag returns a page of published articles whose
// tag contains the given fragment, case-insensitively.
func (q *Queries) ListPublishedArticlesByTag(ctx context.Context, tag string, limit, offset int64) ([]model.Article, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedArticlesByTag, tag, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const countPublishedArticlesByTag = `
SELECT COUNT(*) FROM articles
WHERE is_published = 1 AND LOWER(tag) LIKE '%' || LOWER(?) || '%'
`

// CountPublishedArticlesByTag returns the number of published articles
// matching a tag fragment.
func (q *Queries) CountPublishedArticlesByTag(ctx context.Context, tag string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countPublishedArticlesByTag, tag).Scan(&n)
	return n, err
}

const articleSlugExists = `
SELECT EXISTS(SELECT 1 FROM articles WHERE slug = ?)
`

// ArticleSlugExists reports whether any article already uses the slug.
func (q *Queries) ArticleSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, articleSlugExists, slug).Scan(&exists)
	return exists, err
}

const listRecentArticles = `
SELECT ` + articleColumns + `
FROM articles
ORDER BY created_at DESC
LIMIT ?
`

// ListRecentArticles returns the most recently created articles for the
// admin dashboard.
func (q *Queries) ListRecentArticles(ctx context.Context, limit int64) ([]model.Article, error) {
	rows, err := q.db.QueryContext(ctx, listRecentArticles, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const countArticles = `
SELECT COUNT(*) FROM articles
`

// CountArticles returns the total number of articles.
func (q *Queries) CountArticles(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countArticles).Scan(&n)
	return n, err
}
