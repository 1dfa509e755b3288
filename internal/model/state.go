// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"math"
)

// Temperature bounds accepted by the backend, one decimal of precision.
const (
	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// ErrMissingInputs signals that a turn was attempted without the inputs the
// completion endpoint requires.
var ErrMissingInputs = errors.New("message, model and temperature are required")

// ErrPartialSearchQuery signals an attempt to store a search statement
// without a target or vice versa. The two travel together or not at all.
var ErrPartialSearchQuery = errors.New("search statement and target must be set together")

// =============================================================================
// ROLES AND HISTORY
// =============================================================================

// Role identifies the author of a history entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TurnEntry is one entry of the conversation history fed back to the
// completion endpoint for context.
type TurnEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// =============================================================================
// TURN PHASE
// =============================================================================

// TurnPhase tracks where the current turn is in its lifecycle. Idle is both
// the initial and the terminal phase of every turn.
type TurnPhase int

const (
	PhaseIdle TurnPhase = iota
	PhaseSubmitting
	PhaseAnalyzing
	PhaseAwaitingConfirmation
	PhaseSearching
	PhaseCompleting
)

// String returns a short label for status display.
func (p TurnPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAnalyzing:
		return "analyzing"
	case PhaseAwaitingConfirmation:
		return "awaiting confirmation"
	case PhaseSearching:
		return "searching"
	case PhaseCompleting:
		return "completing"
	default:
		return "unknown"
	}
}

// =============================================================================
// CHAT STATE
// =============================================================================

// ChatState is the app-wide conversation state. All components read from it;
// only the chat update loop writes to it.
//
// Invariants:
//   - Processing is true from submission until the turn ends, success or not.
//   - Streaming can only be true while Processing is true.
//   - SearchStatement and SearchTarget are both set or both empty.
//   - History entries append in chronological order, user before assistant.
type ChatState struct {
	// In-flight flags
	Processing bool
	Streaming  bool
	Phase      TurnPhase

	// Current turn inputs, cleared when the turn ends
	Message         string
	SearchStatement string
	SearchTarget    string

	// SearchResults is nil until a search has run this turn. An empty
	// non-nil map means the search ran and found nothing; the renderer
	// treats the two differently.
	SearchResults SearchResults

	// Generation parameters, user-adjustable, persist across turns
	Model       string
	Temperature float64
	MaxTokens   int // 0 means "let the backend decide"

	// History is append-only for the session and is never truncated here.
	History []TurnEntry
}

// NewChatState creates the session state with defaults.
func NewChatState(defaultModel string) *ChatState {
	return &ChatState{
		Phase:       PhaseIdle,
		Model:       defaultModel,
		Temperature: 0.0,
		History:     make([]TurnEntry, 0),
	}
}

// ValidateTurnInputs checks the preconditions shared by submission and
// completion: a message, a model, and an in-range temperature.
func (s *ChatState) ValidateTurnInputs() error {
	if s.Message == "" || s.Model == "" {
		return ErrMissingInputs
	}
	if s.Temperature < MinTemperature || s.Temperature > MaxTemperature {
		return ErrMissingInputs
	}
	return nil
}

// BeginTurn marks the turn as in flight. Callers must have validated inputs.
func (s *ChatState) BeginTurn() {
	s.Processing = true
	s.Phase = PhaseSubmitting
}

// EndTurn returns the conversation to an input-accepting state. Every code
// path of a turn, including failures, must reach this.
func (s *ChatState) EndTurn() {
	s.Processing = false
	s.Phase = PhaseIdle
}

// SetSearchQuery stores the extracted search statement and target. Both must
// be non-empty; storing only one would break the pairing invariant.
func (s *ChatState) SetSearchQuery(statement, target string) error {
	if statement == "" || target == "" {
		return ErrPartialSearchQuery
	}
	s.SearchStatement = statement
	s.SearchTarget = target
	return nil
}

// HasSearchQuery reports whether intent extraction produced a query this turn.
func (s *ChatState) HasSearchQuery() bool {
	return s.SearchStatement != "" && s.SearchTarget != ""
}

// SearchRan reports whether a search completed this turn, regardless of how
// many results it found.
func (s *ChatState) SearchRan() bool {
	return s.SearchResults != nil
}

// AppendExchange records one completed exchange: the user entry first, then
// the assistant entry, even when the assistant content is partial because the
// stream was stopped early.
func (s *ChatState) AppendExchange(userContent, assistantContent string) {
	s.History = append(s.History,
		TurnEntry{Role: RoleUser, Content: userContent},
		TurnEntry{Role: RoleAssistant, Content: assistantContent},
	)
}

// ResetTurn clears everything scoped to the current turn. Generation
// parameters and history survive; the search query pairing is cleared as a
// unit so the invariant holds on every observation.
func (s *ChatState) ResetTurn() {
	s.SearchStatement = ""
	s.SearchTarget = ""
	s.SearchResults = nil
	s.Message = ""
	s.Streaming = false
}

// SetTemperature clamps to the accepted range and rounds to one decimal,
// matching the backend contract.
func (s *ChatState) SetTemperature(t float64) {
	if t < MinTemperature {
		t = MinTemperature
	}
	if t > MaxTemperature {
		t = MaxTemperature
	}
	s.Temperature = math.Round(t*10) / 10
}
