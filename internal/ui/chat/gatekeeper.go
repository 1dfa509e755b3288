// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation view and the turn state machine.
//
// This file holds the input gatekeeper. The text area's enabled state is not
// toggled at each transition; it is re-derived from the state snapshot on a
// fixed tick, so no exit path out of a turn can leave the input wedged shut.
package chat

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// handleGateTick reconciles the text area with the processing flag and
// schedules the next tick. Reopening latency is bounded by gateInterval.
func (m Model) handleGateTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{gateTickCmd()}

	if m.state.Processing || m.showSettings || m.showInspect {
		if m.input.Focused() {
			m.input.Blur()
		}
	} else if !m.input.Focused() {
		m.input.Focus()
		cmds = append(cmds, textarea.Blink)
	}

	return m, tea.Batch(cmds...)
}
