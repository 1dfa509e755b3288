// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the lexflow legal-RAG backend.
package api

import (
	"github.com/jeranaias/lexflow-tui/internal/model"
)

// ExtractRequest is the payload for /api/extract-search-statement.
type ExtractRequest struct {
	Message     string  `json:"message"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
}

// ExtractResponse is the reply from /api/extract-search-statement. Both
// fields are empty when no legal question was detected.
type ExtractResponse struct {
	SearchStatement string `json:"search_statement"`
	SearchTarget    string `json:"search_target"`
}

// Found reports whether the extraction produced a usable query. The backend
// returns the pair together or not at all; a half-filled reply counts as not
// found rather than propagating a broken pairing.
func (r ExtractResponse) Found() bool {
	return r.SearchStatement != "" && r.SearchTarget != ""
}

// SearchRequest is the payload for /api/search, echoing the extraction
// output back to the backend.
type SearchRequest struct {
	SearchStatement string `json:"search_statement"`
	SearchTarget    string `json:"search_target"`
}

// CompleteRequest is the payload for /api/complete.
type CompleteRequest struct {
	Message       string              `json:"message"`
	Model         string              `json:"model"`
	Temperature   float64             `json:"temperature"`
	MaxTokens     int                 `json:"max_tokens,omitempty"`
	History       []model.TurnEntry   `json:"history"`
	SearchResults model.SearchResults `json:"search_results,omitempty"`
}

// errorBody is the error envelope non-200 replies may carry.
type errorBody struct {
	Error string `json:"error"`
}
