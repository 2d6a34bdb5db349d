// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/influencons/influencons-go/internal/model"
)

const defiColumns = `id, title, description, step1_title, step1_desc, step2_title, step2_desc, step3_title, step3_desc, link, image_url, is_active, created_at`

func scanDefi(row interface{ Scan(...any) error }) (model.Defi, error) {
	var d model.Defi
	err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.Step1Title,
		&d.Step1Desc,
		&d.Step2Title,
		&d.Step2Desc,
		&d.Step3Title,
		&d.Step3Desc,
		&d.Link,
		&d.ImageURL,
		&d.IsActive,
		&d.CreatedAt,
	)
	return d, err
}

const createDefi = `
INSERT INTO defis (title, description, step1_title, step1_desc, step2_title, step2_desc, step3_title, step3_desc, link, image_url, is_active)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + defiColumns

// CreateDefiParams holds the parameters for CreateDefi.
type CreateDefiParams struct {
	Title       string
	Description string
	Step1Title  string
	Step1Desc   string
	Step2Title  string
	Step2Desc   string
	Step3Title  string
	Step3Desc   string
	Link        string
	ImageURL    string
	IsActive    bool
}

// CreateDefi inserts a new défi and returns the created row.
func (q *Queries) CreateDefi(ctx context.Context, arg CreateDefiParams) (model.Defi, error) {
	row := q.db.QueryRowContext(ctx, createDefi,
		arg.Title,
		arg.Description,
		arg.Step1Title,
		arg.Step1Desc,
		arg.Step2Title,
		arg.Step2Desc,
		arg.Step3Title,
		arg.Step3Desc,
		arg.Link,
		arg.ImageURL,
		arg.IsActive,
	)
	return scanDefi(row)
}

const getDefi = `
SELECT ` + defiColumns + `
FROM defis
WHERE id = ?
`

// GetDefi returns the défi with the given ID.
func (q *Queries) GetDefi(ctx context.Context, id int64) (model.Defi, error) {
	return scanDefi(q.db.QueryRowContext(ctx, getDefi, id))
}

const getCurrentDefi = `
SELECT ` + defiColumns + `
FROM defis
WHERE is_active = 1
ORDER BY created_at DESC
LIMIT 1
`

// GetCurrentDefi returns the newest active défi, the one surfaced on the
// public site.
func (q *Queries) GetCurrentDefi(ctx context.Context) (model.Defi, error) {
	return scanDefi(q.db.QueryRowContext(ctx, getCurrentDefi))
}

const updateDefi = `
UPDATE defis
SET title = ?, description = ?, step1_title = ?, step1_desc = ?, step2_title = ?, step2_desc = ?,
    step3_title = ?, step3_desc = ?, link = ?, image_url = ?, is_active = ?
WHERE id = ?
`

// UpdateDefiParams holds the parameters for UpdateDefi.
type UpdateDefiParams struct {
	ID          int64
	Title       string
	Description string
	Step1Title  string
	Step1Desc   string
	Step2Title  string
	Step2Desc   string
	Step3Title  string
	Step3Desc   string
	Link        string
	ImageURL    string
	IsActive    bool
}

// UpdateDefi updates a défi in place.
func (q *Queries) UpdateDefi(ctx context.Context, arg UpdateDefiParams) error {
	_, err := q.db.ExecContext(ctx, updateDefi,
		arg.Title,
		arg.Description,
		arg.Step1Title,
		arg.Step1Desc,
		arg.Step2Title,
		arg.Step2Desc,
		arg.Step3Title,
		arg.Step3Desc,
		arg.Link,
		arg.ImageURL,
		arg.IsActive,
		arg.ID,
	)
	return err
}

const deleteDefi = `
DELETE FROM defis
WHERE id = ?
`

// DeleteDefi removes a défi.
func (q *Queries) DeleteDefi(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteDefi, id)
	return err
}

const listDefis = `
SELECT ` + defiColumns + `
FROM defis
ORDER BY created_at DESC
`

// ListDefis returns all défis, newest first, for the admin area.
func (q *Queries) ListDefis(ctx context.Context) ([]model.Defi, error) {
	rows, err := q.db.QueryContext(ctx, listDefis)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Defi
	for rows.Next() {
		d, err := scanDefi(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

const listRecentDefis = `
SELECT ` + defiColumns + `
FROM defis
ORDER BY created_at DESC, id DESC
LIMIT ?
`

// ListRecentDefis returns the most recently created défis for the admin
// dashboard.
func (q *Queries) ListRecentDefis(ctx context.Context, limit int64) ([]model.Defi, error) {
	rows, err := q.db.QueryContext(ctx, listRecentDefis, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.Defi
	for rows.Next() {
		d, err := scanDefi(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

const countDefis = `
SELECT COUNT(*) FROM defis
`

// CountDefis returns the total number of défis.
func (q *Queries) CountDefis(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countDefis).Scan(&n)
	return n, err
}
