// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation view and the turn state machine.
//
// This file defines all Bubble Tea message types used by the chat view.
// Messages are organized into the following categories:
//   - Turn lifecycle: submission, the analyzing delay, extraction results
//   - Search: confirm/reject decisions and search results
//   - Streaming: token delivery, completion, and errors
//   - Gatekeeper: the periodic input-enablement tick
//   - Configuration: hot-reload notifications
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"time"

	"github.com/jeranaias/lexflow-tui/internal/api"
	"github.com/jeranaias/lexflow-tui/internal/config"
	"github.com/jeranaias/lexflow-tui/internal/model"
)

// =============================================================================
// TURN LIFECYCLE MESSAGES
// =============================================================================

// AnalyzeStartMsg fires after the short post-submission delay and moves the
// turn into the analyzing phase. The delay exists so the user's own bubble is
// visible for a beat before the analyzing indicator appears.
type AnalyzeStartMsg struct {
	TurnID string
}

// ExtractResultMsg delivers the intent-extraction outcome for a turn.
type ExtractResultMsg struct {
	TurnID   string
	Response *api.ExtractResponse
	Err      error
}

// =============================================================================
// SEARCH MESSAGES
// =============================================================================

// SearchResultMsg delivers the case-law search outcome for a turn. A search
// error is reported to the user but the turn still proceeds to completion.
type SearchResultMsg struct {
	TurnID  string
	Results model.SearchResults
	Err     error
}

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamTokenMsg delivers one decoded text fragment from the completion
// stream.
type StreamTokenMsg struct {
	TurnID string
	Text   string
}

// StreamCompleteMsg signals that the completion stream finished normally.
type StreamCompleteMsg struct {
	TurnID string
}

// StreamErrorMsg signals that the completion stream failed or was cancelled.
type StreamErrorMsg struct {
	TurnID string
	Err    error
}

// =============================================================================
// GATEKEEPER MESSAGES
// =============================================================================

// GateTickMsg drives the input gatekeeper. On every tick the text area's
// enabled state is reconciled against the processing flag.
type GateTickMsg time.Time

// =============================================================================
// CONFIGURATION MESSAGES
// =============================================================================

// ConfigReloadedMsg announces that the config file changed on disk. Carries
// the freshly loaded config, or the load error when the new file is invalid,
// in which case the running config stays in effect.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// BackendStatusMsg reports the startup reachability probe.
type BackendStatusMsg struct {
	Err error
}
