// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Solidarity action icon types.
const (
	IconTypeLight = "light"
	IconTypeHands = "hands"
	IconTypeBook  = "book"
	IconTypeHeart = "heart"
)

// ValidIconTypes contains all valid solidarity action icon types.
var ValidIconTypes = []string{IconTypeLight, IconTypeHands, IconTypeBook, IconTypeHeart}

// IsValidIconType reports whether s is a known icon type.
func IsValidIconType(s string) bool {
	for _, t := range ValidIconTypes {
		if s == t {
			return true
		}
	}
	return false
}

// SolidariteAction is a progress-tracked cause or initiative listing.
// Progress is a percentage between 0 and 100.
type SolidariteAction struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Progress    int64     `json:"progress"`
	IconType    string    `json:"icon_type"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsFeatured  bool      `json:"is_featured"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
