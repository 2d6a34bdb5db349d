// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/influencons/influencons-go/internal/model"
)

const subscriberColumns = `id, email, is_active, created_at`

func scanSubscriber(row interface{ Scan(...any) error }) (model.Subscriber, error) {
	var s model.Subscriber
	err := row.Scan(
		&s.ID,
		&s.Email,
		&s.IsActive,
		&s.CreatedAt,
	)
	return s, err
}

const createSubscriber = `
INSERT INTO newsletter (email, is_active)
VALUES (?, 1)
RETURNING ` + subscriberColumns

// CreateSubscriber inserts a new active newsletter subscriber.
func (q *Queries) CreateSubscriber(ctx context.Context, email string) (model.Subscriber, error) {
	return scanSubscriber(q.db.QueryRowContext(ctx, createSubscriber, email))
}

const getSubscriberByEmail = `
SELECT ` + subscriberColumns + `
FROM newsletter
WHERE email = ?
`

// GetSubscriberByEmail returns the subscriber with the given email.
func (q *Queries) GetSubscriberByEmail(ctx context.Context, email string) (model.Subscriber, error) {
	return scanSubscriber(q.db.QueryRowContext(ctx, getSubscriberByEmail, email))
}

const getSubscriberByID = `
SELECT ` + subscriberColumns + `
FROM newsletter
WHERE id = ?
`

// GetSubscriberByID returns the subscriber with the given ID.
func (q *Queries) GetSubscriberByID(ctx context.Context, id int64) (model.Subscriber, error) {
	return scanSubscriber(q.db.QueryRowContext(ctx, getSubscriberByID, id))
}

const setSubscriberActive = `
UPDATE newsletter
SET is_active = ?
WHERE id = ?
`

// SetSubscriberActive activates or deactivates a subscriber.
func (q *Queries) SetSubscriberActive(ctx context.Context, id int64, active bool) error {
	_, err := q.db.ExecContext(ctx, setSubscriberActive, active, id)
	return err
}

const deleteSubscriber = `
DELETE FROM newsletter
WHERE id = ?
`

// DeleteSubscriber removes a subscriber record entirely.
func (q *Queries) DeleteSubscriber(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSubscriber, id)
	return err
}

const listSubscribers = `
SELECT ` + subscriberColumns + `
FROM newsletter
ORDER BY created_at DESC
`

// ListSubscribers returns all subscribers, newest first, for the admin
// area.
func (q *Queries) ListSubscribers(ctx context.Context) ([]model.Subscriber, error) {
	rows, err := q.db.QueryContext(ctx, listSubscribers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const listRecentSubscribers = `
SELECT ` + subscriberColumns + `
FROM newsletter
ORDER BY created_at DESC
LIMIT ?
`

// ListRecentSubscribers returns the most recent subscribers for the
// admin dashboard.
func (q *Queries) ListRecentSubscribers(ctx context.Context, limit int64) ([]model.Subscriber, error) {
	rows, err := q.db.QueryContext(ctx, listRecentSubscribers, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

const countSubscribers = `
SELECT COUNT(*) FROM newsletter
`

// CountSubscribers returns the total number of subscriber records.
func (q *Queries) CountSubscribers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countSubscribers).Scan(&n)
	return n, err
}

const countActiveSubscribers = `
SELECT COUNT(*) FROM newsletter WHERE is_active = 1
`

// CountActiveSubscribers returns the number of active subscribers.
func (q *Queries) CountActiveSubscribers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countActiveSubscribers).Scan(&n)
	return n, err
}
