// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"
)

func TestNewThemeInitializesStyles(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}

	// Rendering through a few representative styles must not panic and must
	// keep the content.
	for name, rendered := range map[string]string{
		"user bubble":    theme.UserBubble.Render("hello"),
		"ai bubble":      theme.AIBubble.Render("hello"),
		"error bubble":   theme.ErrorBubble.Render("hello"),
		"confirm bubble": theme.ConfirmBubble.Render("hello"),
	} {
		if rendered == "" {
			t.Errorf("%s rendered empty", name)
		}
	}
}

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize: got %dx%d", theme.Width, theme.Height)
	}
}

func TestSpinnerConfig(t *testing.T) {
	if LineSpinner.Duration() != time.Second/10 {
		t.Errorf("LineSpinner.Duration() = %v", LineSpinner.Duration())
	}
	if LineSpinner.StaticFrame() != "|" {
		t.Errorf("StaticFrame() = %q", LineSpinner.StaticFrame())
	}
	if (SpinnerConfig{}).StaticFrame() != "" {
		t.Error("empty spinner should have empty static frame")
	}
}
