// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation view and the turn state machine.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lexflow-tui/internal/api"
	"github.com/jeranaias/lexflow-tui/internal/config"
	"github.com/jeranaias/lexflow-tui/internal/inspect"
	"github.com/jeranaias/lexflow-tui/internal/model"
	"github.com/jeranaias/lexflow-tui/internal/ui/components"
	"github.com/jeranaias/lexflow-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the conversation view. It owns the shared
// chat state; everything else reads it through renders.
type Model struct {
	// Shared conversation state, mutated only here
	state *model.ChatState

	// Collaborators
	client    *api.Client
	inspector *inspect.Log
	cfg       *config.Config

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int
	ready  bool

	// UI components
	viewport viewport.Model
	input    textarea.Model
	spin     spinner.Model
	keyMap   KeyMap
	status   *components.StatusBar
	welcome  components.Welcome

	// Conversation log
	bubbles       []*components.Bubble
	analyzingAt   int // index of the transient analyzing bubble, -1 when absent
	aiBubble      *components.Bubble
	confirmBubble *components.Bubble

	// Current turn
	turnID        string
	rawAnswer     string // unstripped streamed text, destined for history
	stopRequested bool

	// Streaming plumbing
	streamCh  <-chan api.StreamChunk
	cancelMgr *cancelManager

	// Overlays
	showSettings bool
	settingsRow  int
	modelIndex   int
	showInspect  bool
	inspectTop   int
}

// New creates the conversation view.
func New(cfg *config.Config, client *api.Client, inspector *inspect.Log, theme *styles.Theme) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a legal question..."
	ta.Prompt = "> "
	ta.CharLimit = 4096
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.LineSpinner.Frames,
		FPS:    styles.LineSpinner.Duration(),
	}
	sp.Style = theme.Spinner

	status := components.NewStatusBar(theme)
	status.ModelName = cfg.DefaultModel

	welcome := components.NewWelcome(theme)
	welcome.SetModelName(cfg.DefaultModel)
	welcome.SetBackend(cfg.BackendURL)

	modelIndex := 0
	for i, name := range cfg.AvailableModels {
		if name == cfg.DefaultModel {
			modelIndex = i
			break
		}
	}

	// The configured prompt transcripts are read-only here; surfacing them
	// in the inspector makes the backend's behavior reviewable in-session.
	for title, body := range map[string]string{
		"prompt transcript: base":    cfg.Prompts.Base,
		"prompt transcript: history": cfg.Prompts.History,
		"prompt transcript: rag":     cfg.Prompts.RAG,
		"prompt transcript: extract": cfg.Prompts.ExtractSearchStatement,
	} {
		if body != "" {
			inspector.Record(title, body)
		}
	}

	return Model{
		state:       model.NewChatState(cfg.DefaultModel),
		client:      client,
		inspector:   inspector,
		cfg:         cfg,
		theme:       theme,
		input:       ta,
		spin:        sp,
		keyMap:      DefaultKeyMap(),
		status:      status,
		welcome:     welcome,
		analyzingAt: -1,
		modelIndex:  modelIndex,
		cancelMgr:   newCancelManager(),
	}
}

// State exposes the shared conversation state for tests and the inspector.
func (m *Model) State() *model.ChatState {
	return m.state
}

// Init starts the blink cursor, the spinner, the input gatekeeper, and the
// backend reachability probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spin.Tick,
		gateTickCmd(),
		checkBackendCmd(m.client),
	)
}

// =============================================================================
// CONVERSATION LOG HELPERS
// =============================================================================

// appendBubble adds a bubble to the log and refreshes the viewport.
func (m *Model) appendBubble(b *components.Bubble) {
	b.SetWidth(m.contentWidth())
	m.bubbles = append(m.bubbles, b)
	m.syncViewport()
}

// removeAnalyzingBubble drops the transient analyzing indicator, if present.
func (m *Model) removeAnalyzingBubble() {
	if m.analyzingAt < 0 || m.analyzingAt >= len(m.bubbles) {
		m.analyzingAt = -1
		return
	}
	m.bubbles = append(m.bubbles[:m.analyzingAt], m.bubbles[m.analyzingAt+1:]...)
	m.analyzingAt = -1
	m.syncViewport()
}

// syncViewport re-renders the conversation into the viewport and follows the
// bottom.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}

	var sb strings.Builder
	for i, b := range m.bubbles {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(b.View())
		sb.WriteString("\n")
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

// contentWidth is the width bubbles lay themselves out in.
func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width - 2
}
