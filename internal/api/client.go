// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the lexflow legal-RAG backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/lexflow-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents a failure talking to the backend. The Message is
// developer-facing; the UI shows users a generic bubble regardless.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotReachable
	ErrTypeTimeout
	ErrTypeBadStatus
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotReachable = &ClientError{Type: ErrTypeNotReachable, Message: "backend is not reachable"}
	ErrTimeout      = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsNotReachable reports whether err indicates the backend is down.
func IsNotReachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotReachable
	}
	return false
}

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return false
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds options for the backend client.
type ClientConfig struct {
	// BaseURL of the backend (default: http://127.0.0.1:5000).
	BaseURL string

	// Timeout for non-streaming requests (default: 30s). The completion
	// stream is not subject to it; cancellation there is cooperative.
	Timeout time.Duration

	// SearchesPerMinute bounds how often /api/search is called. The
	// backend rate-limits the endpoint; staying under the limit client-side
	// turns a hard 429 into a short wait (default: 30).
	SearchesPerMinute int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:           "http://127.0.0.1:5000",
		Timeout:           30 * time.Second,
		SearchesPerMinute: 30,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the lexflow backend. Safe for concurrent use.
type Client struct {
	config        *ClientConfig
	httpClient    *http.Client
	searchLimiter *rate.Limiter
}

// NewClient creates a backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a backend client, filling in defaults for any
// zero values.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.SearchesPerMinute == 0 {
		config.SearchesPerMinute = 30
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		searchLimiter: rate.NewLimiter(rate.Limit(float64(config.SearchesPerMinute)/60.0), 1),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// CheckReachable verifies that the backend answers at all.
func (c *Client) CheckReachable(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeNotReachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrNotReachable
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "unexpected status from backend: " + resp.Status,
		}
	}
	return nil
}

// =============================================================================
// INTENT EXTRACTION
// =============================================================================

// ExtractSearchStatement asks the backend whether the message contains a
// legal question. On success the response carries either both fields or
// neither; any transport failure or non-2xx status is an error. Never
// retried: the caller renders an error bubble and ends the turn.
func (c *Client) ExtractSearchStatement(ctx context.Context, message, modelName string, temperature float64) (*ExtractResponse, error) {
	body, err := json.Marshal(ExtractRequest{
		Message:     message,
		Model:       modelName,
		Temperature: temperature,
	})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/extract-search-statement", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeNotReachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotReachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "extract-search-statement failed: " + resp.Status,
		}
	}

	var result ExtractResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return &result, nil
}

// =============================================================================
// SEARCH
// =============================================================================

// Search runs the extracted statement against the named legal data source.
// Non-200 replies surface the backend's error message when the body carries
// one. The call waits on the client-side rate limiter first.
func (c *Client) Search(ctx context.Context, statement, target string) (model.SearchResults, error) {
	if err := c.searchLimiter.Wait(ctx); err != nil {
		return nil, &ClientError{Type: ErrTypeTimeout, Message: "rate limit wait aborted", Cause: err}
	}

	body, err := json.Marshal(SearchRequest{
		SearchStatement: statement,
		SearchTarget:    target,
	})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/search", bytes.NewReader(body))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeNotReachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotReachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var backendErr errorBody
		if err := json.NewDecoder(resp.Body).Decode(&backendErr); err == nil && backendErr.Error != "" {
			return nil, &ClientError{Type: ErrTypeBadStatus, Message: backendErr.Error}
		}
		return nil, &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "search failed: " + resp.Status,
		}
	}

	var results model.SearchResults
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return results, nil
}
