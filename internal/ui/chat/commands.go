// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation view and the turn state machine.
//
// This file holds the command creators. Commands run off the Update
// goroutine and report back via the message types in messages.go, so the
// state machine itself stays synchronous and testable.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/lexflow-tui/internal/api"
)

// Timing constants for the turn lifecycle.
const (
	// analyzeDelay keeps the user's bubble alone on screen for a beat
	// before the analyzing indicator appears.
	analyzeDelay = 500 * time.Millisecond

	// gateInterval is how often the input gatekeeper reconciles the text
	// area against the processing flag.
	gateInterval = 100 * time.Millisecond

	// requestTimeout bounds the non-streaming backend calls of a turn.
	requestTimeout = 60 * time.Second
)

// analyzeDelayCmd fires AnalyzeStartMsg after the cosmetic delay.
func analyzeDelayCmd(turnID string) tea.Cmd {
	return tea.Tick(analyzeDelay, func(time.Time) tea.Msg {
		return AnalyzeStartMsg{TurnID: turnID}
	})
}

// gateTickCmd schedules the next gatekeeper tick.
func gateTickCmd() tea.Cmd {
	return tea.Tick(gateInterval, func(t time.Time) tea.Msg {
		return GateTickMsg(t)
	})
}

// checkBackendCmd probes the backend once at startup.
func checkBackendCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return BackendStatusMsg{Err: client.CheckReachable(ctx)}
	}
}

// extractCmd asks the backend whether the message holds a legal question.
func extractCmd(client *api.Client, turnID, message, modelName string, temperature float64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := client.ExtractSearchStatement(ctx, message, modelName, temperature)
		return ExtractResultMsg{TurnID: turnID, Response: resp, Err: err}
	}
}

// searchCmd runs the confirmed statement against the legal data source.
func searchCmd(client *api.Client, turnID, statement, target string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		results, err := client.Search(ctx, statement, target)
		return SearchResultMsg{TurnID: turnID, Results: results, Err: err}
	}
}

// waitForChunkCmd blocks on the stream channel for the next fragment. The
// update loop re-issues it after every delivery, one message per chunk.
func waitForChunkCmd(turnID string, ch <-chan api.StreamChunk) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return StreamCompleteMsg{TurnID: turnID}
		}
		if chunk.Err != nil {
			return StreamErrorMsg{TurnID: turnID, Err: chunk.Err}
		}
		if chunk.Done {
			return StreamCompleteMsg{TurnID: turnID}
		}
		return StreamTokenMsg{TurnID: turnID, Text: chunk.Text}
	}
}
