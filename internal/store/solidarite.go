// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/influencons/influencons-go/internal/model"
)

const solidariteColumns = `id, title, description, progress, icon_type, image_url, is_featured, is_active, created_at`

func scanSolidariteAction(row interface{ Scan(...any) error }) (model.SolidariteAction, error) {
	var a model.SolidariteAction
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.Progress,
		&a.IconType,
		&a.ImageURL,
		&a.IsFeatured,
		&a.IsActive,
		&a.CreatedAt,
	)
	return a, err
}

const createSolidariteAction = `
INSERT INTO solidarite_actions (title, description, progress, icon_type, image_url, is_featured, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + solidariteColumns

// CreateSolidariteActionParams holds the parameters for
// CreateSolidariteAction.
type CreateSolidariteActionParams struct {
	Title       string
	Description string
	Progress    int64
	IconType    string
	ImageURL    string
	IsFeatured  bool
	IsActive    bool
}

// CreateSolidariteAction inserts a new solidarity action and returns the
// created row.
func (q *Queries) CreateSolidariteAction(ctx context.Context, arg CreateSolidariteActionParams) (model.SolidariteAction, error) {
	row := q.db.QueryRowContext(ctx, createSolidariteAction,
		arg.Title,
		arg.Description,
		arg.Progress,
		arg.IconType,
		arg.ImageURL,
		arg.IsFeatured,
		arg.IsActive,
	)
	return scanSolidariteAction(row)
}

const getSolidariteAction = `
SELECT ` + solidariteColumns + `
FROM solidarite_actions
WHERE id = ?
`

// GetSolidariteAction returns the solidarity action with the given ID.
func (q *Queries) GetSolidariteAction(ctx context.Context, id int64) (model.SolidariteAction, error) {
	return scanSolidariteAction(q.db.QueryRowContext(ctx, getSolidariteAction, id))
}

const updateSolidariteAction = `
UPDATE solidarite_actions
SET title = ?, description = ?, progress = ?, icon_type = ?, image_url = ?, is_featured = ?, is_active = ?
WHERE id = ?
`

// UpdateSolidariteActionParams holds the parameters for
// UpdateSolidariteAction.
type UpdateSolidariteActionParams struct {
	ID          int64
	Title       string
	Description string
	Progress    int64
	IconType    string
	ImageURL    string
	IsFeatured  bool
	IsActive    bool
}

// UpdateSolidariteAction updates a solidarity action in place.
func (q *Queries) UpdateSolidariteAction(ctx context.Context, arg UpdateSolidariteActionParams) error {
	_, err := q.db.ExecContext(ctx, updateSolidariteAction,
		arg.Title,
		arg.Description,
		arg.Progress,
		arg.IconType,
		arg.ImageURL,
		arg.IsFeatured,
		arg.IsActive,
		arg.ID,
	)
	return err
}

const deleteSolidariteAction = `
DELETE FROM solidarite_actions
WHERE id = ?
`

// DeleteSolidariteAction removes a solidarity action.
func (q *Queries) DeleteSolidariteAction(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSolidariteAction, id)
	return err
}

const listSolidariteActions = `
SELECT ` + solidariteColumns + `
FROM solidarite_actions
ORDER BY created_at DESC
`

// ListSolidariteActions returns all solidarity actions, newest first, for
// the admin area.
func (q *Queries) ListSolidariteActions(ctx context.Context) ([]model.SolidariteAction, error) {
	rows, err := q.db.QueryContext(ctx, listSolidariteActions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.SolidariteAction
	for rows.Next() {
		a, err := scanSolidariteAction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const listActiveSolidariteActions = `
SELECT ` + solidariteColumns + `
FROM solidarite_actions
WHERE is_active = 1
ORDER BY is_featured DESC, created_at DESC
LIMIT ?
`

// ListActiveSolidariteActions returns active solidarity actions for the
// public site, featured ones first.
func (q *Queries) ListActiveSolidariteActions(ctx context.Context, limit int64) ([]model.SolidariteAction, error) {
	rows, err := q.db.QueryContext(ctx, listActiveSolidariteActions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.SolidariteAction
	for rows.Next() {
		a, err := scanSolidariteAction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const listRecentSolidariteActions = `
SELECT ` + solidariteColumns + `
FROM solidarite_actions
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// ListRecentSolidariteActions returns the most recently created actions
// for the admin dashboard.
func (q *Queries) ListRecentSolidariteActions(ctx context.Context, limit int64) ([]model.SolidariteAction, error) {
	rows, err := q.db.QueryContext(ctx, listRecentSolidariteActions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.SolidariteAction
	for rows.Next() {
		a, err := scanSolidariteAction(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const countSolidariteActions = `
SELECT COUNT(*) FROM solidarite_actions
`

// CountSolidariteActions returns the total number of solidarity actions.
func (q *Queries) CountSolidariteActions(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countSolidariteActions).Scan(&n)
	return n, err
}
