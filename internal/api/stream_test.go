// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/lexflow-tui/internal/model"
)

func TestCompleteDeliversFragmentsInOrder(t *testing.T) {
	var gotReq CompleteRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/complete", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		flusher := w.(http.Flusher)
		for _, piece := range []string{"The", " statute", " of limitations", " is four years."} {
			w.Write([]byte(piece))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	var collected strings.Builder
	err := newTestClient(srv.URL).Complete(context.Background(), CompleteRequest{
		Message:     "How long do I have to sue?",
		Model:       "gpt-x",
		Temperature: 0.5,
	}, func(text string) {
		collected.WriteString(text)
	})
	require.NoError(t, err)

	assert.Equal(t, "The statute of limitations is four years.", collected.String())
	assert.Equal(t, "How long do I have to sue?", gotReq.Message)
	assert.Equal(t, "gpt-x", gotReq.Model)
}

func TestCompleteReassemblesSplitRune(t *testing.T) {
	// "§" is 0xC2 0xA7; deliver the two bytes in separate flushes so the
	// decoder has to carry state between reads.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Write([]byte("See "))
		flusher.Flush()
		w.Write([]byte{0xC2})
		flusher.Flush()
		time.Sleep(10 * time.Millisecond)
		w.Write([]byte{0xA7})
		flusher.Flush()
		w.Write([]byte(" 337."))
		flusher.Flush()
	}))
	defer srv.Close()

	var collected strings.Builder
	err := newTestClient(srv.URL).Complete(context.Background(), CompleteRequest{Model: "gpt-x"}, func(text string) {
		collected.WriteString(text)
	})
	require.NoError(t, err)

	assert.Equal(t, "See § 337.", collected.String())
	assert.NotContains(t, collected.String(), "�")
}

func TestCompleteSurfacesBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Model can only be one of the models served."}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Complete(context.Background(), CompleteRequest{Model: "bogus"}, func(string) {
		t.Error("callback must not fire on a failed request")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Model can only be")
}

func TestCompleteStopsOnContextCancel(t *testing.T) {
	firstChunk := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		w.Write([]byte("partial"))
		flusher.Flush()
		close(firstChunk)
		// Keep the stream open until the client gives up.
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-firstChunk
		cancel()
	}()

	err := newTestClient(srv.URL).Complete(ctx, CompleteRequest{Model: "gpt-x"}, func(string) {})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompleteStreamTerminalChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	ch := newTestClient(srv.URL).CompleteStream(context.Background(), CompleteRequest{Model: "gpt-x"})

	var text strings.Builder
	var sawDone bool
	for chunk := range ch {
		require.NoError(t, chunk.Err)
		if chunk.Done {
			sawDone = true
			continue
		}
		text.WriteString(chunk.Text)
	}

	assert.True(t, sawDone, "stream must end with a Done chunk")
	assert.Equal(t, "hello", text.String())
}

func TestCompleteStreamErrorIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ch := newTestClient(srv.URL).CompleteStream(context.Background(), CompleteRequest{Model: "gpt-x"})

	var last StreamChunk
	for chunk := range ch {
		last = chunk
	}

	require.Error(t, last.Err)
	assert.True(t, last.Done)
}

func TestCompleteRequestOmitsUnsetMaxTokens(t *testing.T) {
	body, err := json.Marshal(CompleteRequest{Message: "hi", Model: "gpt-x"})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "max_tokens")

	body, err = json.Marshal(CompleteRequest{Message: "hi", Model: "gpt-x", MaxTokens: 256})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"max_tokens":256`)
}

func TestCompleteRequestOmitsSearchResultsWhenNoSearchRan(t *testing.T) {
	body, err := json.Marshal(CompleteRequest{Message: "hi", Model: "gpt-x"})
	require.NoError(t, err)
	assert.NotContains(t, string(body), "search_results", "a nil result set must not serialize as null")

	body, err = json.Marshal(CompleteRequest{
		Message: "hi",
		Model:   "gpt-x",
		SearchResults: model.SearchResults{
			"courtlistener": {{CaseName: "Foo v. Bar"}},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"search_results"`)
}
