// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation view and the turn state machine.
//
// This file implements the two modal overlays: the settings panel for the
// generation parameters and the inspector showing backend traffic.
package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lexflow-tui/internal/util"
)

// Settings rows, top to bottom.
const (
	settingsRowModel = iota
	settingsRowTemperature
	settingsRowMaxTokens
	settingsRowCount
)

// maxTokensStep is the increment for the max-tokens row. Zero means the
// backend decides.
const maxTokensStep = 256

// inspectPageSize is how many inspector entries fit in the overlay.
const inspectPageSize = 12

// =============================================================================
// SETTINGS OVERLAY
// =============================================================================

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keyMap.Settings):
		m.showSettings = false
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.settingsRow > 0 {
			m.settingsRow--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.settingsRow < settingsRowCount-1 {
			m.settingsRow++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Left):
		m.adjustSetting(-1)
		return m, nil

	case key.Matches(msg, m.keyMap.Right):
		m.adjustSetting(+1)
		return m, nil
	}

	return m, nil
}

// adjustSetting applies one left/right step to the selected row. Changes
// take effect on the next turn; a turn already in flight keeps the values it
// started with.
func (m *Model) adjustSetting(direction int) {
	switch m.settingsRow {
	case settingsRowModel:
		n := len(m.cfg.AvailableModels)
		if n == 0 {
			return
		}
		m.modelIndex = (m.modelIndex + direction + n) % n
		m.state.Model = m.cfg.AvailableModels[m.modelIndex]
		m.status.ModelName = m.state.Model

	case settingsRowTemperature:
		m.state.SetTemperature(m.state.Temperature + 0.1*float64(direction))
		m.status.Temperature = m.state.Temperature

	case settingsRowMaxTokens:
		next := m.state.MaxTokens + maxTokensStep*direction
		if next < 0 {
			next = 0
		}
		m.state.MaxTokens = next
	}
}

func (m Model) viewSettings() string {
	maxTokens := "backend default"
	if m.state.MaxTokens > 0 {
		maxTokens = strconv.Itoa(m.state.MaxTokens)
	}

	rows := [][2]string{
		{"model", m.state.Model},
		{"temperature", strconv.FormatFloat(m.state.Temperature, 'f', 1, 64)},
		{"max tokens", maxTokens},
	}

	var sb strings.Builder
	sb.WriteString(m.theme.OverlayTitle.Render("Settings"))
	sb.WriteString("\n")
	sb.WriteString(m.renderRows(rows, m.settingsRow))
	sb.WriteString("\n")
	sb.WriteString(m.theme.ShortcutDesc.Render("arrows adjust - Esc closes"))

	return sb.String()
}

// =============================================================================
// INSPECT OVERLAY
// =============================================================================

func (m Model) handleInspectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc, key.Matches(msg, m.keyMap.Inspect):
		m.showInspect = false
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.inspectTop > 0 {
			m.inspectTop--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.inspectTop < m.inspector.Len()-1 {
			m.inspectTop++
		}
		return m, nil
	}

	return m, nil
}

func (m Model) viewInspect() string {
	entries := m.inspector.Entries()

	var sb strings.Builder
	sb.WriteString(m.theme.OverlayTitle.Render("Inspect"))
	sb.WriteString("\n")

	if len(entries) == 0 {
		sb.WriteString(m.theme.ShortcutDesc.Render("No backend traffic yet."))
		return sb.String()
	}

	// Newest last, window scrolled by inspectTop from the tail.
	end := len(entries) - m.inspectTop
	if end < 1 {
		end = 1
	}
	start := end - inspectPageSize
	if start < 0 {
		start = 0
	}

	width := m.width/2 + 10
	if width < 40 {
		width = 40
	}

	for _, e := range entries[start:end] {
		sb.WriteString(m.theme.OverlayValue.Render(e.Title))
		sb.WriteString("\n")
		if e.Body != "" {
			sb.WriteString(m.theme.OverlayLabel.Render("  " + util.TruncateWidth(e.Body, width)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.theme.ShortcutDesc.Render("arrows scroll - Esc closes"))

	return sb.String()
}
