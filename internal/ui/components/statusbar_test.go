// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/lexflow-tui/internal/model"
)

func TestStatusBarPhaseLabels(t *testing.T) {
	bar := NewStatusBar(testTheme())

	tests := []struct {
		phase model.TurnPhase
		want  string
	}{
		{model.PhaseIdle, "Ready"},
		{model.PhaseAnalyzing, "Analyzing..."},
		{model.PhaseAwaitingConfirmation, "Confirm search?"},
		{model.PhaseSearching, "Searching case law..."},
		{model.PhaseCompleting, "Answering..."},
	}

	for _, tc := range tests {
		bar.Phase = tc.phase
		if got := bar.PhaseLabel(); got != tc.want {
			t.Errorf("PhaseLabel(%v) = %q, want %q", tc.phase, got, tc.want)
		}
	}
}

func TestStatusBarViewShowsModel(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.ModelName = "gpt-4o"
	bar.Temperature = 0.7
	bar.SetWidth(120)

	view := bar.View()
	if !strings.Contains(view, "gpt-4o") {
		t.Error("model name missing from status bar")
	}
	if !strings.Contains(view, "0.7") {
		t.Error("temperature missing from status bar")
	}
}

func TestStatusBarNarrowWidthDropsShortcuts(t *testing.T) {
	bar := NewStatusBar(testTheme())
	bar.ModelName = "gpt-4o"
	bar.SetWidth(30)

	if strings.Contains(bar.View(), "settings") {
		t.Error("shortcuts should be dropped on narrow terminals")
	}
}
