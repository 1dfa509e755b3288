// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the conversation view and the turn state machine
// driving it.
//
// A turn moves through a fixed sequence of phases:
//
//	Idle -> Submitting -> Analyzing -> [AwaitingConfirmation -> Searching] -> Completing -> Idle
//
// Submission echoes the user's message, then asks the backend whether it
// contains a legal question. When it does, the user is shown the extracted
// search statement and chooses whether to run the case-law search before the
// answer streams in. A failed search is reported but does not block the
// answer; a failed extraction ends the turn.
//
// All mutation happens in Update on the Bubble Tea goroutine. Network work
// runs in commands; their results come back as messages. The input gatekeeper
// re-checks the processing flag on a 100ms tick so the text area opens the
// moment a turn ends, however it ended.
package chat
