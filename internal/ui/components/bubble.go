// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the lexflow TUI.
package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lexflow-tui/internal/model"
	"github.com/jeranaias/lexflow-tui/internal/ui/styles"
	"github.com/jeranaias/lexflow-tui/internal/util"
)

// =============================================================================
// CONVERSATION BUBBLES
// =============================================================================

// BubbleKind tags the rendering variant of a conversation bubble.
type BubbleKind int

const (
	BubbleUser BubbleKind = iota
	BubbleAI
	BubbleAnalyzing
	BubbleConfirmSearch
	BubbleSources
	BubbleError
)

// Confirm bubble button indexes.
const (
	ButtonSearch = 0
	ButtonSkip   = 1
)

// Bubble is one entry in the conversation log. The AI bubble accumulates
// streamed text in place; the confirm bubble carries interactive buttons.
type Bubble struct {
	Kind    BubbleKind
	Content string

	// Confirm-search fields
	Statement     string
	Target        string
	FocusedButton int
	Decided       bool

	// Sources fields
	Results model.SearchResults

	Streaming bool
	Width     int

	theme *styles.Theme
}

// NewUserBubble creates a bubble echoing the user's submitted message. The
// text is sanitized before it ever reaches the screen.
func NewUserBubble(text string, theme *styles.Theme) *Bubble {
	return &Bubble{
		Kind:    BubbleUser,
		Content: util.SanitizeMessage(text),
		Width:   80,
		theme:   theme,
	}
}

// NewAIBubble creates an empty assistant bubble ready to receive streamed
// fragments.
func NewAIBubble(theme *styles.Theme) *Bubble {
	return &Bubble{
		Kind:      BubbleAI,
		Streaming: true,
		Width:     80,
		theme:     theme,
	}
}

// NewAnalyzingBubble creates the transient "analyzing" indicator bubble.
func NewAnalyzingBubble(theme *styles.Theme) *Bubble {
	return &Bubble{
		Kind:    BubbleAnalyzing,
		Content: "Analyzing your question",
		Width:   80,
		theme:   theme,
	}
}

// NewConfirmBubble creates the confirm-search prompt for an extracted query.
func NewConfirmBubble(statement, target string, theme *styles.Theme) *Bubble {
	return &Bubble{
		Kind:          BubbleConfirmSearch,
		Statement:     util.SanitizeText(statement),
		Target:        target,
		FocusedButton: ButtonSearch,
		Width:         80,
		theme:         theme,
	}
}

// NewSourcesBubble creates a bubble listing the search results backing the
// upcoming answer. A non-nil empty result set renders as "no sources".
func NewSourcesBubble(results model.SearchResults, theme *styles.Theme) *Bubble {
	return &Bubble{
		Kind:    BubbleSources,
		Results: results,
		Width:   80,
		theme:   theme,
	}
}

// NewErrorBubble creates a bubble for a user-facing failure notice.
func NewErrorBubble(text string, theme *styles.Theme) *Bubble {
	return &Bubble{
		Kind:    BubbleError,
		Content: util.SanitizeText(text),
		Width:   80,
		theme:   theme,
	}
}

// AppendText adds a streamed fragment to an AI bubble. Display formatting
// strips stray markdown emphasis markers per fragment and escapes markup
// without touching whitespace; callers keep the raw text for the history
// themselves.
func (b *Bubble) AppendText(fragment string) {
	b.Content += util.StripMarkdownMarkers(util.EscapeMarkup(fragment))
}

// FinishStreaming marks the AI bubble as complete.
func (b *Bubble) FinishStreaming() {
	b.Streaming = false
}

// SetWidth sets the bubble's layout width.
func (b *Bubble) SetWidth(width int) {
	b.Width = width
}

// Decide locks the confirm bubble's buttons. Returns false when a choice was
// already recorded, so a second activation cannot fire the branch twice.
func (b *Bubble) Decide(button int) bool {
	if b.Decided {
		return false
	}
	b.Decided = true
	b.FocusedButton = button
	return true
}

// View renders the bubble.
func (b *Bubble) View() string {
	switch b.Kind {
	case BubbleUser:
		return b.renderUser()
	case BubbleAI:
		return b.renderAI()
	case BubbleAnalyzing:
		return b.renderAnalyzing()
	case BubbleConfirmSearch:
		return b.renderConfirm()
	case BubbleSources:
		return b.renderSources()
	case BubbleError:
		return b.renderError()
	default:
		return ""
	}
}

// ==========================================================================
// USER BUBBLE
// ==========================================================================

func (b *Bubble) renderUser() string {
	content := b.Content
	if content == "" {
		content = "..."
	}

	wrapped := wordWrap(content, b.contentWidth())
	bubble := b.theme.UserBubble.Width(b.boxWidth(wrapped)).Render(wrapped)
	label := b.theme.ShortcutDesc.Render("you")

	return lipgloss.JoinVertical(lipgloss.Right, bubble, label)
}

// ==========================================================================
// AI BUBBLE
// ==========================================================================

func (b *Bubble) renderAI() string {
	content := b.Content
	if content == "" && b.Streaming {
		content = "..."
	}

	wrapped := wordWrap(content, b.contentWidth())
	bubble := b.theme.AIBubble.Width(b.boxWidth(wrapped)).Render(wrapped)
	label := b.theme.ShortcutDesc.Render("assistant")

	return lipgloss.JoinVertical(lipgloss.Left, bubble, label)
}

// ==========================================================================
// ANALYZING BUBBLE
// ==========================================================================

func (b *Bubble) renderAnalyzing() string {
	return b.theme.AnalyzingBubble.Render(b.Content + "...")
}

// ==========================================================================
// CONFIRM-SEARCH BUBBLE
// ==========================================================================

func (b *Bubble) renderConfirm() string {
	var sb strings.Builder

	sb.WriteString("Search " + b.Target + " for case law matching:")
	sb.WriteString("\n\n")
	sb.WriteString(b.theme.ConfirmStatement.Render(wordWrap(b.Statement, b.contentWidth())))
	sb.WriteString("\n\n")
	sb.WriteString(b.renderConfirmButtons())

	return b.theme.ConfirmBubble.Render(sb.String())
}

func (b *Bubble) renderConfirmButtons() string {
	labels := []string{"[ Search ]", "[ Skip ]"}
	parts := make([]string, len(labels))

	for i, label := range labels {
		switch {
		case b.Decided:
			parts[i] = b.theme.ConfirmButtonDisabled.Render(label)
		case i == b.FocusedButton:
			parts[i] = b.theme.ConfirmButtonFocused.Render(label)
		default:
			parts[i] = b.theme.ConfirmButton.Render(label)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts[0], "  ", parts[1])
}

// ==========================================================================
// SOURCES BUBBLE
// ==========================================================================

func (b *Bubble) renderSources() string {
	var sb strings.Builder
	sb.WriteString(b.theme.SourcesTitle.Render("Sources"))
	sb.WriteString("\n")

	if b.Results.Total() == 0 {
		sb.WriteString(b.theme.ShortcutDesc.Render("No matching case law was found."))
		return b.theme.SourcesBubble.Render(sb.String())
	}

	// Map iteration order is random; keep targets stable across renders.
	targets := make([]string, 0, len(b.Results))
	for target := range b.Results {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		for _, result := range b.Results[target] {
			line := util.SanitizeText(result.UIText)
			if line == "" {
				line = util.SanitizeText(result.CaseName)
			}
			sb.WriteString(util.TruncateWidth(line, b.contentWidth()))
			sb.WriteString("\n")
			if result.UIURL != "" {
				sb.WriteString("  " + b.theme.SourcesLink.Render(result.UIURL))
				sb.WriteString("\n")
			}
		}
	}

	return b.theme.SourcesBubble.Render(strings.TrimRight(sb.String(), "\n"))
}

// ==========================================================================
// ERROR BUBBLE
// ==========================================================================

func (b *Bubble) renderError() string {
	return b.theme.ErrorBubble.Render(wordWrap(b.Content, b.contentWidth()))
}

// ==========================================================================
// LAYOUT HELPERS
// ==========================================================================

func (b *Bubble) contentWidth() int {
	w := b.Width - 12
	if w < 20 {
		w = 20
	}
	return w
}

func (b *Bubble) boxWidth(wrapped string) int {
	return minInt(maxLineWidth(wrapped)+4, b.Width-8)
}
