// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Defi is a community challenge ("défi") with three instructional steps.
// The most recently created active défi is the one surfaced publicly.
type Defi struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Step1Title  string    `json:"step1_title,omitempty"`
	Step1Desc   string    `json:"step1_desc,omitempty"`
	Step2Title  string    `json:"step2_title,omitempty"`
	Step2Desc   string    `json:"step2_desc,omitempty"`
	Step3Title  string    `json:"step3_title,omitempty"`
	Step3Desc   string    `json:"step3_desc,omitempty"`
	Link        string    `json:"link,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
