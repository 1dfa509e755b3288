// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation view and the turn state machine.
package chat

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/lexflow-tui/internal/api"
	"github.com/jeranaias/lexflow-tui/internal/model"
	"github.com/jeranaias/lexflow-tui/internal/ui/components"
)

// User-facing failure notices. Details go to the inspector, not the screen.
const (
	noticeExtractFailed = "An error occurred while analyzing your message. Please try again."
	noticeSearchFailed  = "The case-law search failed. Answering without sources."
	noticeStreamFailed  = "An error occurred while generating the answer."
	noticeBackendDown   = "The backend is not reachable. Check that it is running, then try again."
)

// Update handles messages and advances the turn state machine.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case GateTickMsg:
		return m.handleGateTick()

	case AnalyzeStartMsg:
		return m.handleAnalyzeStart(msg)

	case ExtractResultMsg:
		return m.handleExtractResult(msg)

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case StreamTokenMsg:
		return m.handleStreamToken(msg)

	case StreamCompleteMsg:
		return m.handleStreamComplete(msg)

	case StreamErrorMsg:
		return m.handleStreamError(msg)

	case BackendStatusMsg:
		return m.handleBackendStatus(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case spinner.TickMsg:
		if m.state.Processing {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Everything else feeds the focused text area.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	headerHeight := 1
	inputHeight := m.input.Height() + 2
	statusHeight := 1
	viewportHeight := msg.Height - headerHeight - inputHeight - statusHeight
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = newViewport(msg.Width, viewportHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = viewportHeight
	}

	m.input.SetWidth(msg.Width - 4)
	m.status.SetWidth(msg.Width)
	m.welcome.SetSize(msg.Width, viewportHeight)

	for _, b := range m.bubbles {
		b.SetWidth(m.contentWidth())
	}
	m.syncViewport()

	return m, nil
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always wins, even mid-stream. The deferred cancel in the stream
	// command dies with the process.
	if key.Matches(msg, m.keyMap.Quit) {
		m.cancelMgr.cancel()
		return m, tea.Quit
	}

	if m.showSettings {
		return m.handleSettingsKey(msg)
	}
	if m.showInspect {
		return m.handleInspectKey(msg)
	}

	switch {
	case key.Matches(msg, m.keyMap.Settings):
		m.showSettings = true
		return m, nil

	case key.Matches(msg, m.keyMap.Inspect):
		m.showInspect = true
		m.inspectTop = 0
		return m, nil

	case key.Matches(msg, m.keyMap.Stop):
		return m.handleStop()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	if m.state.Phase == model.PhaseAwaitingConfirmation {
		return m.handleConfirmKey(msg)
	}

	if msg.Type == tea.KeyEnter && !msg.Alt {
		return m.handleSubmit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleConfirmKey drives the confirm-search bubble. The decided flag flips
// synchronously with the first accepted key, so a queued second keypress can
// never fire the branch twice.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmBubble == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Left):
		if !m.confirmBubble.Decided {
			m.confirmBubble.FocusedButton = components.ButtonSearch
			m.syncViewport()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Right):
		if !m.confirmBubble.Decided {
			m.confirmBubble.FocusedButton = components.ButtonSkip
			m.syncViewport()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Reject):
		if m.confirmBubble.Decide(components.ButtonSkip) {
			return m.skipSearch()
		}
		return m, nil

	case msg.String() == "y":
		if m.confirmBubble.Decide(components.ButtonSearch) {
			return m.acceptSearch()
		}
		return m, nil

	case msg.Type == tea.KeyEnter:
		chosen := m.confirmBubble.FocusedButton
		if !m.confirmBubble.Decide(chosen) {
			return m, nil
		}
		if chosen == components.ButtonSearch {
			return m.acceptSearch()
		}
		return m.skipSearch()
	}

	return m, nil
}

// =============================================================================
// TURN: SUBMISSION
// =============================================================================

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.state.Processing {
		return m, nil
	}

	text := strings.TrimSpace(m.input.Value())

	m.state.Message = text
	m.state.Model = m.cfg.AvailableModels[m.modelIndex]
	if err := m.state.ValidateTurnInputs(); err != nil {
		m.state.Message = ""
		m.appendBubble(components.NewErrorBubble(err.Error(), m.theme))
		return m, nil
	}

	m.turnID = uuid.NewString()
	m.rawAnswer = ""
	m.stopRequested = false
	m.state.BeginTurn()
	m.status.Phase = m.state.Phase

	m.appendBubble(components.NewUserBubble(text, m.theme))
	m.input.Reset()

	m.inspector.Record("turn "+m.turnID+" submitted", text)

	return m, analyzeDelayCmd(m.turnID)
}

// =============================================================================
// TURN: ANALYZING
// =============================================================================

func (m Model) handleAnalyzeStart(msg AnalyzeStartMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID || !m.state.Processing {
		return m, nil
	}

	m.state.Phase = model.PhaseAnalyzing
	m.status.Phase = m.state.Phase

	m.analyzingAt = len(m.bubbles)
	m.appendBubble(components.NewAnalyzingBubble(m.theme))

	return m, extractCmd(m.client, m.turnID, m.state.Message, m.state.Model, m.state.Temperature)
}

func (m Model) handleExtractResult(msg ExtractResultMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID || !m.state.Processing {
		return m, nil
	}

	m.removeAnalyzingBubble()

	if msg.Err != nil {
		// A failed extraction ends the turn; there is no routing decision
		// to answer without.
		m.inspector.RecordError("turn "+m.turnID+" extract failed", msg.Err)
		m.appendBubble(components.NewErrorBubble(noticeExtractFailed, m.theme))
		return m.endTurn(), nil
	}

	if msg.Response.Found() {
		if err := m.state.SetSearchQuery(msg.Response.SearchStatement, msg.Response.SearchTarget); err != nil {
			m.inspector.RecordError("turn "+m.turnID+" bad extraction pairing", err)
			return m.startCompletion()
		}

		m.inspector.Record("turn "+m.turnID+" extracted",
			msg.Response.SearchStatement+" @ "+msg.Response.SearchTarget)

		m.state.Phase = model.PhaseAwaitingConfirmation
		m.status.Phase = m.state.Phase

		m.confirmBubble = components.NewConfirmBubble(
			msg.Response.SearchStatement, msg.Response.SearchTarget, m.theme)
		m.appendBubble(m.confirmBubble)
		return m, nil
	}

	// No legal question detected: straight to the answer.
	m.inspector.Record("turn "+m.turnID+" extracted", "no legal question detected")
	return m.startCompletion()
}

// =============================================================================
// TURN: SEARCH BRANCH
// =============================================================================

func (m Model) acceptSearch() (tea.Model, tea.Cmd) {
	m.state.Phase = model.PhaseSearching
	m.status.Phase = m.state.Phase
	m.syncViewport()

	m.inspector.Record("turn "+m.turnID+" search confirmed", m.state.SearchStatement)
	return m, searchCmd(m.client, m.turnID, m.state.SearchStatement, m.state.SearchTarget)
}

func (m Model) skipSearch() (tea.Model, tea.Cmd) {
	m.syncViewport()
	m.inspector.Record("turn "+m.turnID+" search skipped", m.state.SearchStatement)
	return m.startCompletion()
}

func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID || !m.state.Processing {
		return m, nil
	}

	if msg.Err != nil {
		// A failed search degrades the answer, it does not block it.
		m.inspector.RecordError("turn "+m.turnID+" search failed", msg.Err)
		m.appendBubble(components.NewErrorBubble(noticeSearchFailed, m.theme))
		return m.startCompletion()
	}

	m.state.SearchResults = msg.Results
	m.inspector.Record("turn "+m.turnID+" search done", searchSummary(msg.Results))
	m.appendBubble(components.NewSourcesBubble(msg.Results, m.theme))

	return m.startCompletion()
}

func searchSummary(results model.SearchResults) string {
	n := results.Total()
	if n == 1 {
		return "1 result"
	}
	return strconv.Itoa(n) + " results"
}

// =============================================================================
// TURN: COMPLETION
// =============================================================================

// startCompletion opens the answer stream. Whatever happened before this
// point, the request carries the raw message, the session history, and the
// search results when a search ran this turn.
func (m Model) startCompletion() (tea.Model, tea.Cmd) {
	// The completion endpoint requires a message, a model, and an in-range
	// temperature. A violation here ends the turn like any other failure.
	if err := m.state.ValidateTurnInputs(); err != nil {
		m.inspector.RecordError("turn "+m.turnID+" invalid completion inputs", err)
		m.appendBubble(components.NewErrorBubble(noticeStreamFailed, m.theme))
		return m.endTurn(), nil
	}

	// Streaming stays false until the stream actually delivers; a request
	// that dies before the first fragment never counts as streaming.
	m.state.Phase = model.PhaseCompleting
	m.status.Phase = m.state.Phase

	m.aiBubble = components.NewAIBubble(m.theme)
	m.appendBubble(m.aiBubble)

	req := api.CompleteRequest{
		Message:       m.state.Message,
		Model:         m.state.Model,
		Temperature:   m.state.Temperature,
		MaxTokens:     m.state.MaxTokens,
		History:       m.state.History,
		SearchResults: m.state.SearchResults,
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)
	m.streamCh = m.client.CompleteStream(ctx, req)

	m.inspector.Record("turn "+m.turnID+" completing", "model "+req.Model)

	return m, waitForChunkCmd(m.turnID, m.streamCh)
}

func (m Model) handleStreamToken(msg StreamTokenMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID || m.streamCh == nil {
		return m, nil
	}

	if m.stopRequested {
		// Keep draining so the producer goroutine can finish; nothing
		// received after the stop reaches the screen or the history.
		return m, waitForChunkCmd(m.turnID, m.streamCh)
	}

	m.state.Streaming = true
	m.rawAnswer += msg.Text
	m.aiBubble.AppendText(msg.Text)
	m.syncViewport()

	return m, waitForChunkCmd(m.turnID, m.streamCh)
}

func (m Model) handleStreamComplete(msg StreamCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID || m.streamCh == nil {
		return m, nil
	}
	return m.finishCompletion(), nil
}

func (m Model) handleStreamError(msg StreamErrorMsg) (tea.Model, tea.Cmd) {
	if msg.TurnID != m.turnID || m.streamCh == nil {
		return m, nil
	}

	if m.stopRequested {
		// The user stopped the answer; this is the stream winding down,
		// not a failure. The exchange is still recorded, partial or empty.
		return m.finishCompletion(), nil
	}

	// A genuine failure records no exchange: the history only ever holds
	// turns the assistant actually answered.
	m.inspector.RecordError("turn "+m.turnID+" stream failed", msg.Err)
	m.appendBubble(components.NewErrorBubble(noticeStreamFailed, m.theme))
	if m.aiBubble != nil {
		m.aiBubble.FinishStreaming()
	}
	return m.endTurn(), nil
}

// finishCompletion seals the exchange. The history records the raw text
// whenever the answer ran to the end or was stopped by the user, so follow-up
// turns keep their context. Failed completions never reach here.
func (m Model) finishCompletion() Model {
	if m.aiBubble != nil {
		m.aiBubble.FinishStreaming()
	}
	m.state.AppendExchange(m.state.Message, m.rawAnswer)
	m.inspector.Record("turn "+m.turnID+" finished", m.rawAnswer)
	return m.endTurn()
}

// =============================================================================
// TURN: TEARDOWN
// =============================================================================

// endTurn is the single exit point of a turn. Every path, success or
// failure, funnels through here so the shared state always returns to its
// between-turns shape.
func (m Model) endTurn() Model {
	m.cancelMgr.cancel()
	m.streamCh = nil
	m.aiBubble = nil
	m.confirmBubble = nil
	m.removeAnalyzingBubble()

	m.state.ResetTurn()
	m.state.EndTurn()
	m.status.Phase = m.state.Phase

	m.turnID = ""
	m.rawAnswer = ""
	m.stopRequested = false
	m.syncViewport()

	return m
}

// handleStop requests a cooperative stop of the streaming answer. Text
// already shown stays; the remainder of the stream is discarded. Live for
// the whole completing phase, so a request hung before its first fragment
// can still be abandoned.
func (m Model) handleStop() (tea.Model, tea.Cmd) {
	if m.state.Phase != model.PhaseCompleting || m.stopRequested {
		return m, nil
	}

	m.stopRequested = true
	m.state.Streaming = false
	m.cancelMgr.cancel()
	m.inspector.Record("turn "+m.turnID+" stop requested", "")

	return m, nil
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func (m Model) handleBackendStatus(msg BackendStatusMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.status.Offline = true
		m.inspector.RecordError("backend unreachable", msg.Err)
		m.appendBubble(components.NewErrorBubble(noticeBackendDown, m.theme))
	}
	return m, nil
}

func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Keep running on the old config; a broken edit should not take
		// the session down.
		m.inspector.RecordError("config reload rejected", msg.Err)
		return m, nil
	}

	m.cfg = msg.Config
	if m.modelIndex >= len(m.cfg.AvailableModels) {
		m.modelIndex = 0
	}

	current := m.state.Model
	found := false
	for i, name := range m.cfg.AvailableModels {
		if name == current {
			m.modelIndex = i
			found = true
			break
		}
	}
	if !found {
		m.state.Model = m.cfg.DefaultModel
		for i, name := range m.cfg.AvailableModels {
			if name == m.cfg.DefaultModel {
				m.modelIndex = i
				break
			}
		}
	}

	m.status.ModelName = m.state.Model
	m.inspector.Record("config reloaded", "")
	return m, nil
}
