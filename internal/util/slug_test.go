package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Mon Titre",
			expected: "mon-titre",
		},
		{
			name:     "with special characters",
			input:    "Hello, World!",
			expected: "hello-world",
		},
		{
			name:     "with numbers",
			input:    "Défi 123",
			expected: "defi-123",
		},
		{
			name:     "with accents",
			input:    "Café résumé",
			expected: "cafe-resume",
		},
		{
			name:     "with multiple spaces",
			input:    "Hello   World",
			expected: "hello-world",
		},
		{
			name:     "with underscores",
			input:    "hello_world_again",
			expected: "hello-world-again",
		},
		{
			name:     "mixed separators",
			input:    "Hello _ - World",
			expected: "hello-world",
		},
		{
			name:     "with leading/trailing spaces",
			input:    "  Hello World  ",
			expected: "hello-world",
		},
		{
			name:     "all special characters",
			input:    "!@#$%^&*()",
			expected: "",
		},
		{
			name:     "german umlauts",
			input:    "Über München",
			expected: "uber-munchen",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "mixed case",
			input:    "HeLLo WoRLd",
			expected: "hello-world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSlugify_Idempotent(t *testing.T) {
	inputs := []string{
		"Mon Titre",
		"Café résumé",
		"Hello, World!",
		"  plusieurs   mots  ",
		"deja-un-slug",
		"Agir ensemble : le défi d'août",
	}

	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Errorf("Slugify not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSlugify_OutputAlphabet(t *testing.T) {
	for _, in := range []string{"Mon Titre!", "É_té  2024", "a--b__c  d"} {
		out := Slugify(in)
		for _, r := range out {
			if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
				t.Errorf("Slugify(%q) = %q contains invalid rune %q", in, out, r)
			}
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "valid simple slug", input: "mon-titre", expected: true},
		{name: "valid slug with numbers", input: "defi-123", expected: true},
		{name: "valid single word", input: "hello", expected: true},
		{name: "valid numbers only", input: "123", expected: true},
		{name: "invalid - empty", input: "", expected: false},
		{name: "invalid - uppercase", input: "Mon-Titre", expected: false},
		{name: "invalid - spaces", input: "mon titre", expected: false},
		{name: "invalid - special chars", input: "mon!titre", expected: false},
		{name: "invalid - starts with hyphen", input: "-mon", expected: false},
		{name: "invalid - ends with hyphen", input: "mon-", expected: false},
		{name: "invalid - consecutive hyphens", input: "mon--titre", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidSlug(tt.input)
			if result != tt.expected {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}
