// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides text helpers shared across the lexflow TUI.
package util

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"trims whitespace", "  hello  ", "hello"},
		{"escapes angle brackets", "<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{"keeps newlines", "line one\nline two", "line one\nline two"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeText(tc.input); got != tc.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestEscapeMarkupKeepsWhitespace(t *testing.T) {
	if got := EscapeMarkup(" <b>hi</b> "); got != " &lt;b&gt;hi&lt;/b&gt; " {
		t.Errorf("EscapeMarkup = %q", got)
	}
}

func TestStripMarkdownMarkers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no markers", "plain text", "plain text"},
		{"bold marker", " is**", " is"},
		{"heading marker", "## Heading", " Heading"},
		{"first occurrence only", "**bold** text", "bold** text"},
		{"double then triple hash", "## one ### two", " one  two"},
		{"empty chunk", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripMarkdownMarkers(tc.input); got != tc.want {
				t.Errorf("StripMarkdownMarkers(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestStripMarkdownMarkersAccumulation(t *testing.T) {
	// Chunk sequence from a typical completion stream: the stripped display
	// text should read cleanly even when a marker spans a chunk on its own.
	chunks := []string{"The", " statute", " is**", " four years."}
	var display string
	for _, c := range chunks {
		display += StripMarkdownMarkers(c)
	}

	want := "The statute is four years."
	if display != want {
		t.Errorf("accumulated display = %q, want %q", display, want)
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation", "short", 10, "short"},
		{"exact fit", "12345", 5, "12345"},
		{"truncated", "a long string here", 10, "a long ..."},
		{"zero width", "anything", 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateWidth(tc.input, tc.maxWidth)
			if got != tc.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.input, tc.maxWidth, got, tc.want)
			}
			if StringWidth(got) > tc.maxWidth {
				t.Errorf("TruncateWidth result %q wider than %d", got, tc.maxWidth)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		input    string
		maxRunes int
		want     string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
	}

	for _, tc := range tests {
		if got := TruncateRunes(tc.input, tc.maxRunes); got != tc.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.want)
		}
	}
}
