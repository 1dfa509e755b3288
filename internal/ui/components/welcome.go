// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the lexflow TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lexflow-tui/internal/ui/styles"
)

// =============================================================================
// WELCOME SCREEN
// =============================================================================

// Welcome fills the empty conversation area before the first exchange.
type Welcome struct {
	version   string
	modelName string
	backend   string

	width  int
	height int

	theme *styles.Theme
}

// NewWelcome creates the welcome screen.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{
		version: "dev",
		theme:   theme,
	}
}

// SetVersion sets the version string.
func (w *Welcome) SetVersion(version string) {
	w.version = version
}

// SetModelName sets the displayed default model.
func (w *Welcome) SetModelName(name string) {
	w.modelName = name
}

// SetBackend sets the displayed backend URL.
func (w *Welcome) SetBackend(url string) {
	w.backend = url
}

// SetSize updates the layout dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// View renders the welcome screen centered in the available space.
func (w Welcome) View() string {
	var sb strings.Builder

	sb.WriteString(w.theme.WelcomeTitle.Render("lexflow " + w.version))
	sb.WriteString("\n\n")
	sb.WriteString(w.theme.WelcomeInfo.Render("Ask a legal question. When it calls for case law,"))
	sb.WriteString("\n")
	sb.WriteString(w.theme.WelcomeInfo.Render("you'll be offered a search before the answer."))
	sb.WriteString("\n\n")
	if w.modelName != "" {
		sb.WriteString(w.theme.WelcomeInfo.Render("model: " + w.modelName))
		sb.WriteString("\n")
	}
	if w.backend != "" {
		sb.WriteString(w.theme.WelcomeInfo.Render("backend: " + w.backend))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(w.theme.WelcomePressKey.Render("Type a message and press Enter to begin."))

	box := w.theme.WelcomeBox.Render(sb.String())

	if w.width <= 0 || w.height <= 0 {
		return box
	}
	return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, box)
}
