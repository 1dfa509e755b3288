// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the lexflow TUI:
// the conversation bubbles, the confirm-search prompt, the status bar, and
// the welcome screen. Components are pure renderers; all state transitions
// happen in the chat model's update loop.
package components
