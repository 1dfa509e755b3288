// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation view and the turn state machine.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/lexflow-tui/internal/model"
)

// newViewport builds the conversation viewport.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return vp
}

// View renders the whole chat screen.
func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	sections := []string{
		m.renderHeader(),
		m.renderConversation(),
		m.renderInput(),
		m.status.View(),
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.showSettings {
		return m.renderOverlayOn(m.viewSettings())
	}
	if m.showInspect {
		return m.renderOverlayOn(m.viewInspect())
	}
	return screen
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("lexflow")
	subtitle := m.theme.HeaderSubtitle.Render(" legal research assistant")
	return m.theme.Header.Width(m.width).Render(title + subtitle)
}

func (m Model) renderConversation() string {
	if len(m.bubbles) == 0 {
		return m.welcome.View()
	}
	return m.viewport.View()
}

func (m Model) renderInput() string {
	if m.state.Processing {
		hint := m.phaseHint()
		body := m.theme.InputDisabled.Render(hint)
		return m.theme.InputContainer.Width(m.width - 2).Render(body)
	}
	return m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())
}

// phaseHint is the line shown in place of the input while a turn runs.
func (m Model) phaseHint() string {
	indicator := m.spin.View()
	if m.cfg.UI.ReducedMotion {
		indicator = m.spin.Spinner.Frames[0]
	}

	switch m.state.Phase {
	case model.PhaseAwaitingConfirmation:
		return "Choose whether to search before the answer (y/n, arrows + Enter)."
	case model.PhaseCompleting:
		return indicator + " Answering... press Esc to stop."
	case model.PhaseSearching:
		return indicator + " Searching case law..."
	default:
		return indicator + " Working..."
	}
}

// renderOverlayOn centers an overlay and dims nothing else; terminals have
// no compositing, so the overlay simply replaces the screen area.
func (m Model) renderOverlayOn(overlay string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.theme.OverlayBox.Render(overlay))
}

// renderRows joins label/value pairs for overlay bodies, highlighting the
// selected row.
func (m Model) renderRows(rows [][2]string, selected int) string {
	var sb strings.Builder
	for i, row := range rows {
		if i == selected {
			sb.WriteString(m.theme.OverlayItemSelected.Render(row[0] + "  " + row[1]))
		} else {
			sb.WriteString(m.theme.OverlayLabel.Render(row[0]) + "  " + m.theme.OverlayValue.Render(row[1]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
