// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides text helpers shared across the lexflow TUI.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// EscapeMarkup escapes literal angle brackets so pasted markup never renders
// as-is. Whitespace is left alone; streamed fragments carry meaningful
// leading and trailing spaces.
func EscapeMarkup(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// SanitizeText prepares user-supplied or retrieved text for display:
// EscapeMarkup plus surrounding-whitespace trim.
func SanitizeText(s string) string {
	return EscapeMarkup(strings.TrimSpace(s))
}

// SanitizeMessage sanitizes message text and normalizes line endings so that
// multi-line user messages keep their line breaks in the bubble. Query/code
// text should go through SanitizeText instead: it keeps newlines untouched.
func SanitizeMessage(s string) string {
	s = SanitizeText(s)
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// StripMarkdownMarkers removes the literal substrings "**", "##" and "###"
// from a streamed chunk, first occurrence of each only.
//
// This mirrors the display-side cleanup the completion endpoint was designed
// against: a known-incomplete stand-in for a real markdown renderer. The
// limited first-occurrence behavior is intentional and relied upon; do not
// generalize it to a global replace or a parser.
func StripMarkdownMarkers(chunk string) string {
	chunk = strings.Replace(chunk, "**", "", 1)
	chunk = strings.Replace(chunk, "##", "", 1)
	return strings.Replace(chunk, "###", "", 1)
}

// TruncateWidth truncates a string to a maximum display width, appending
// "..." when truncation occurs. Double-width (CJK) characters count as two
// columns.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// TruncateRunes truncates a string to a maximum number of runes, appending
// "..." when truncation occurs. Safe for UTF-8: counts characters, not bytes.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// StringWidth returns the display width of a string in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}
