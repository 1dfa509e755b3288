// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the lexflow legal-RAG backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// =============================================================================
// STREAMING COMPLETION
// =============================================================================

// StreamCallback receives one decoded text fragment per call, in order.
type StreamCallback func(text string)

// StreamChunk is one item delivered by CompleteStream. Err, when set, is the
// terminal item of the channel.
type StreamChunk struct {
	Text string
	Done bool
	Err  error
}

// Complete posts the completion request and consumes the response body
// incrementally, invoking the callback once per decoded fragment.
//
// Decoding is stateful across the whole stream: a multi-byte UTF-8 sequence
// split across transport chunks is reassembled, and malformed bytes decode to
// U+FFFD rather than aborting. The stream is finite and not restartable; the
// caller may stop consuming early by cancelling ctx, and nothing discarded is
// buffered.
func (c *Client) Complete(ctx context.Context, reqBody CompleteRequest, callback StreamCallback) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	// No client-level timeout for streaming: generation can legitimately
	// take minutes. ctx governs the request's lifetime instead.
	streamClient := &http.Client{}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/api/complete", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeNotReachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return ErrTimeout
		}
		return ErrNotReachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var backendErr errorBody
		if err := json.NewDecoder(resp.Body).Decode(&backendErr); err == nil && backendErr.Error != "" {
			return &ClientError{Type: ErrTypeBadStatus, Message: backendErr.Error}
		}
		return &ClientError{
			Type:    ErrTypeBadStatus,
			Message: "complete request failed: " + resp.Status,
		}
	}

	// The decoder carries partial sequences between reads and substitutes
	// U+FFFD for invalid input, matching best-effort text decoding.
	decoded := transform.NewReader(resp.Body, unicode.UTF8.NewDecoder())
	buf := make([]byte, 4096)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := decoded.Read(buf)
		if n > 0 {
			callback(string(buf[:n]))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "stream read failed", Cause: err}
		}
	}
}

// CompleteStream runs Complete in a goroutine and delivers fragments over a
// channel, which suits the update loop's one-message-at-a-time consumption.
// The channel closes after the terminal chunk (Done or Err set).
func (c *Client) CompleteStream(ctx context.Context, reqBody CompleteRequest) <-chan StreamChunk {
	ch := make(chan StreamChunk)

	go func() {
		defer close(ch)

		err := c.Complete(ctx, reqBody, func(text string) {
			select {
			case ch <- StreamChunk{Text: text}:
			case <-ctx.Done():
			}
		})

		if err != nil {
			select {
			case ch <- StreamChunk{Err: err, Done: true}:
			case <-ctx.Done():
			}
			return
		}

		select {
		case ch <- StreamChunk{Done: true}:
		case <-ctx.Done():
		}
	}()

	return ch
}
