// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/lexflow-tui/internal/model"
	"github.com/jeranaias/lexflow-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme()
}

func TestUserBubbleSanitizesContent(t *testing.T) {
	b := NewUserBubble("is <b>this</b> legal?", testTheme())

	if strings.Contains(b.Content, "<b>") {
		t.Errorf("markup survived sanitization: %q", b.Content)
	}
	if !strings.Contains(b.View(), "this") {
		t.Error("content missing from rendered bubble")
	}
}

func TestAIBubbleStripsMarkersPerFragment(t *testing.T) {
	b := NewAIBubble(testTheme())

	for _, fragment := range []string{"The", " statute", " is**", " four years."} {
		b.AppendText(fragment)
	}
	b.FinishStreaming()

	if b.Content != "The statute is four years." {
		t.Errorf("Content = %q", b.Content)
	}
	if b.Streaming {
		t.Error("FinishStreaming should clear the flag")
	}
}

func TestConfirmBubbleDecideIsIdempotent(t *testing.T) {
	b := NewConfirmBubble("statute of limitations contract", "courtlistener", testTheme())

	if !b.Decide(ButtonSearch) {
		t.Fatal("first decision should be accepted")
	}
	if b.Decide(ButtonSkip) {
		t.Error("second decision should be rejected")
	}
	if b.FocusedButton != ButtonSearch {
		t.Error("late decision must not override the recorded choice")
	}
}

func TestConfirmBubbleRendersStatementAndButtons(t *testing.T) {
	b := NewConfirmBubble("adverse possession California", "courtlistener", testTheme())
	view := b.View()

	for _, want := range []string{"adverse possession California", "Search", "Skip", "courtlistener"} {
		if !strings.Contains(view, want) {
			t.Errorf("confirm bubble missing %q", want)
		}
	}
}

func TestSourcesBubbleEmptyResults(t *testing.T) {
	// Ran-but-found-nothing renders the explicit no-sources notice.
	b := NewSourcesBubble(model.SearchResults{"courtlistener": {}}, testTheme())

	if !strings.Contains(b.View(), "No matching case law") {
		t.Error("empty result set should render the no-sources notice")
	}
}

func TestSourcesBubbleListsResults(t *testing.T) {
	results := model.SearchResults{
		"courtlistener": {
			{CaseName: "Foo v. Bar", UIText: "[1] Foo v. Bar (1996)", UIURL: "https://example.org/foo"},
		},
	}
	view := NewSourcesBubble(results, testTheme()).View()

	if !strings.Contains(view, "Foo v. Bar (1996)") {
		t.Error("result line missing")
	}
	if !strings.Contains(view, "https://example.org/foo") {
		t.Error("result link missing")
	}
}

func TestErrorBubbleRenders(t *testing.T) {
	b := NewErrorBubble("An error occurred while processing your message.", testTheme())
	if !strings.Contains(b.View(), "An error occurred") {
		t.Error("error text missing")
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short line untouched", "hello world", 40, "hello world"},
		{"wraps at width", "one two three four", 9, "one two\nthree\nfour"},
		{"zero width untouched", "hello world", 0, "hello world"},
		{"preserves blank lines", "a\n\nb", 10, "a\n\nb"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := wordWrap(tc.text, tc.width); got != tc.want {
				t.Errorf("wordWrap(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.want)
			}
		})
	}
}
