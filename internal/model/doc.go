// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the shared conversation state and the data records
// exchanged with the lexflow backend.
//
// A single ChatState instance lives for the whole program session. It is
// owned and mutated by the chat view's update loop and read by the renderer
// and the input gatekeeper; the Bubble Tea single-threaded update model means
// no mutation ever interleaves mid-step.
package model
