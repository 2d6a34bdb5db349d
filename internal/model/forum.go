// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// ForumTopic is a curated forum topic listing. Topic content itself is
// authored elsewhere; this table only drives the public listing.
type ForumTopic struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Excerpt    string    `json:"excerpt,omitempty"`
	Category   string    `json:"category,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	IsPinned   bool      `json:"is_pinned"`
	IsHot      bool      `json:"is_hot"`
	ReplyCount int64     `json:"reply_count"`
	IsVisible  bool      `json:"is_visible"`
	CreatedAt  time.Time `json:"created_at"`
}
