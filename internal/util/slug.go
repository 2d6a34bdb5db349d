// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode normalization support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugDisallowed matches characters outside letters, digits,
	// underscore, whitespace and hyphen.
	slugDisallowed = regexp.MustCompile(`[^a-z0-9_\s-]+`)
	// slugSeparators matches runs of whitespace, underscores and hyphens.
	slugSeparators = regexp.MustCompile(`[\s_-]+`)
)

// Slugify converts a title to a URL-friendly slug: accents are
// transliterated, the result is lowercased and trimmed, characters outside
// letters/digits/underscore/whitespace/hyphen are removed, and any run of
// whitespace, underscores or hyphens collapses to a single hyphen.
// Applying Slugify to an already valid slug returns it unchanged.
func Slugify(s string) string {
	// Normalize unicode characters (decompose accents)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	// Transliterate any remaining non-Latin runes to ASCII
	result = unidecode.Unidecode(result)

	result = strings.ToLower(strings.TrimSpace(result))

	result = slugDisallowed.ReplaceAllString(result, "")
	result = slugSeparators.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
