// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/influencons/influencons-go/internal/model"
)

const createEvent = `
INSERT INTO events (level, category, message, user_id, metadata)
VALUES (?, ?, ?, ?, ?)
`

// CreateEventParams holds the parameters for CreateEvent.
type CreateEventParams struct {
	Level    string
	Category string
	Message  string
	UserID   int64
	Metadata string
}

// CreateEvent appends an entry to the event log. A zero UserID is stored
// as NULL.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	var userID any
	if arg.UserID != 0 {
		userID = arg.UserID
	}
	metadata := arg.Metadata
	if metadata == "" {
		metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level,
		arg.Category,
		arg.Message,
		userID,
		metadata,
	)
	return err
}

const listRecentEvents = `
SELECT id, level, category, message, user_id, metadata, created_at
FROM events
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// ListRecentEvents returns the most recent event log entries.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, listRecentEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID,
			&e.Level,
			&e.Category,
			&e.Message,
			&e.UserID,
			&e.Metadata,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
