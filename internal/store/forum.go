// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/influencons/influencons-go/internal/model"
)

const forumTopicColumns = `id, title, excerpt, category, author_name, is_pinned, is_hot, reply_count, is_visible, created_at`

func scanForumTopic(row interface{ Scan(...any) error }) (model.ForumTopic, error) {
	var t model.ForumTopic
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Excerpt,
		&t.Category,
		&t.AuthorName,
		&t.IsPinned,
		&t.IsHot,
		&t.ReplyCount,
		&t.IsVisible,
		&t.CreatedAt,
	)
	return t, err
}

const createForumTopic = `
INSERT INTO forum_topics (title, excerpt, category, author_name, is_pinned, is_hot, reply_count, is_visible)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + forumTopicColumns

// CreateForumTopicParams holds the parameters for CreateForumTopic.
type CreateForumTopicParams struct {
	Title      string
	Excerpt    string
	Category   string
	AuthorName string
	IsPinned   bool
	IsHot      bool
	ReplyCount int64
	IsVisible  bool
}

// CreateForumTopic inserts a new forum topic and returns the created row.
func (q *Queries) CreateForumTopic(ctx context.Context, arg CreateForumTopicParams) (model.ForumTopic, error) {
	row := q.db.QueryRowContext(ctx, createForumTopic,
		arg.Title,
		arg.Excerpt,
		arg.Category,
		arg.AuthorName,
		arg.IsPinned,
		arg.IsHot,
		arg.ReplyCount,
		arg.IsVisible,
	)
	return scanForumTopic(row)
}

const getForumTopic = `
SELECT ` + forumTopicColumns + `
FROM forum_topics
WHERE id = ?
`

// GetForumTopic returns the forum topic with the given ID.
func (q *Queries) GetForumTopic(ctx context.Context, id int64) (model.ForumTopic, error) {
	return scanForumTopic(q.db.QueryRowContext(ctx, getForumTopic, id))
}

const updateForumTopic = `
UPDATE forum_topics
SET title = ?, excerpt = ?, category = ?, author_name = ?, is_pinned = ?, is_hot = ?, reply_count = ?, is_visible = ?
WHERE id = ?
`

// UpdateForumTopicParams holds the parameters for UpdateForumTopic.
type UpdateForumTopicParams struct {
	ID         int64
	Title      string
	Excerpt    string
	Category   string
	AuthorName string
	IsPinned   bool
	IsHot      bool
	ReplyCount int64
	IsVisible  bool
}

// UpdateForumTopic updates a forum topic in place.
func (q *Queries) UpdateForumTopic(ctx context.Context, arg UpdateForumTopicParams) error {
	_, err := q.db.ExecContext(ctx, updateForumTopic,
		arg.Title,
		arg.Excerpt,
		arg.Category,
		arg.AuthorName,
		arg.IsPinned,
		arg.IsHot,
		arg.ReplyCount,
		arg.IsVisible,
		arg.ID,
	)
	return err
}

const deleteForumTopic = `
DELETE FROM forum_topics
WHERE id = ?
`

// DeleteForumTopic removes a forum topic.
func (q *Queries) DeleteForumTopic(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteForumTopic, id)
	return err
}

const listForumTopics = `
SELECT ` + forumTopicColumns + `
FROM forum_topics
ORDER BY created_at DESC
`

// ListForumTopics returns all forum topics, newest first, for the admin
// area.
func (q *Queries) ListForumTopics(ctx context.Context) ([]model.ForumTopic, error) {
	rows, err := q.db.QueryContext(ctx, listForumTopics)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.ForumTopic
	for rows.Next() {
		t, err := scanForumTopic(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const listVisibleForumTopics = `
SELECT ` + forumTopicColumns + `
FROM forum_topics
WHERE is_visible = 1
ORDER BY is_pinned DESC, created_at DESC
LIMIT ?
`

// ListVisibleForumTopics returns visible forum topics for the public
// site, pinned ones first.
func (q *Queries) ListVisibleForumTopics(ctx context.Context, limit int64) ([]model.ForumTopic, error) {
	rows, err := q.db.QueryContext(ctx, listVisibleForumTopics, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.ForumTopic
	for rows.Next() {
		t, err := scanForumTopic(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const countForumTopics = `
SELECT COUNT(*) FROM forum_topics
`

// CountForumTopics returns the total number of forum topics.
func (q *Queries) CountForumTopics(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countForumTopics).Scan(&n)
	return n, err
}
