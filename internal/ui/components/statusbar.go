// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the lexflow TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lexflow-tui/internal/model"
	"github.com/jeranaias/lexflow-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// phaseLabels maps the turn phase to its status bar text.
var phaseLabels = map[model.TurnPhase]string{
	model.PhaseIdle:                 "Ready",
	model.PhaseSubmitting:           "Submitting...",
	model.PhaseAnalyzing:            "Analyzing...",
	model.PhaseAwaitingConfirmation: "Confirm search?",
	model.PhaseSearching:            "Searching case law...",
	model.PhaseCompleting:           "Answering...",
}

// StatusBar is the bottom status bar: current model, turn phase, and the
// always-relevant shortcuts.
type StatusBar struct {
	ModelName   string
	Temperature float64
	Phase       model.TurnPhase
	Offline     bool
	Width       int

	theme *styles.Theme
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width: 80,
		theme: theme,
	}
}

// SetWidth sets the bar's layout width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// PhaseLabel returns the display text for the current phase.
func (s *StatusBar) PhaseLabel() string {
	if label, ok := phaseLabels[s.Phase]; ok {
		return label
	}
	return "Ready"
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.theme.StatusModel.Render(s.ModelName) +
		s.theme.ShortcutDesc.Render(" @ "+strconv.FormatFloat(s.Temperature, 'f', 1, 64))
	if s.Offline {
		left += "  " + s.theme.StatusPhase.Render("backend offline")
	}

	middle := s.theme.StatusPhase.Render(s.PhaseLabel())

	right := strings.Join([]string{
		s.theme.ShortcutKey.Render("^s") + s.theme.ShortcutDesc.Render(" settings"),
		s.theme.ShortcutKey.Render("^g") + s.theme.ShortcutDesc.Render(" inspect"),
		s.theme.ShortcutKey.Render("esc") + s.theme.ShortcutDesc.Render(" stop"),
		s.theme.ShortcutKey.Render("^c") + s.theme.ShortcutDesc.Render(" quit"),
	}, "  ")

	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right) - 4
	if gap < 2 {
		// Narrow terminal: drop the shortcuts before the phase.
		return s.theme.StatusBar.Width(s.Width).Render(left + "  " + middle)
	}

	half := gap / 2
	line := left + strings.Repeat(" ", half) + middle + strings.Repeat(" ", gap-half) + right
	return s.theme.StatusBar.Width(s.Width).Render(line)
}
