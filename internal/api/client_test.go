// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL:           baseURL,
		Timeout:           5 * time.Second,
		SearchesPerMinute: 6000, // effectively unthrottled for tests
	})
}

func TestExtractSearchStatementFound(t *testing.T) {
	var gotBody ExtractRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/extract-search-statement", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]string{
			"search_statement": "statute of limitations contract California",
			"search_target":    "courtlistener",
		})
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.ExtractSearchStatement(context.Background(),
		"What is the statute of limitations for contract claims in California?", "gpt-x", 1.0)
	require.NoError(t, err)

	assert.True(t, resp.Found())
	assert.Equal(t, "statute of limitations contract California", resp.SearchStatement)
	assert.Equal(t, "courtlistener", resp.SearchTarget)

	// The exact user inputs must reach the endpoint unchanged.
	assert.Equal(t, "What is the statute of limitations for contract claims in California?", gotBody.Message)
	assert.Equal(t, "gpt-x", gotBody.Model)
	assert.Equal(t, 1.0, gotBody.Temperature)
}

func TestExtractSearchStatementNoLegalQuestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).ExtractSearchStatement(context.Background(), "hello there", "gpt-x", 0.0)
	require.NoError(t, err)
	assert.False(t, resp.Found())
}

func TestExtractSearchStatementHalfFilledReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"search_statement": "orphaned statement"}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).ExtractSearchStatement(context.Background(), "hmm", "gpt-x", 0.0)
	require.NoError(t, err)
	assert.False(t, resp.Found(), "a reply missing either field must not count as found")
}

func TestExtractSearchStatementBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ExtractSearchStatement(context.Background(), "hi", "gpt-x", 0.0)
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeBadStatus, clientErr.Type)
}

func TestExtractSearchStatementTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the dial fails

	_, err := newTestClient(srv.URL).ExtractSearchStatement(context.Background(), "hi", "gpt-x", 0.0)
	assert.True(t, IsNotReachable(err), "expected not-reachable, got %v", err)
}

func TestSearchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/search", r.URL.Path)

		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "adverse possession California", req.SearchStatement)
		assert.Equal(t, "courtlistener", req.SearchTarget)

		w.Write([]byte(`{
			"courtlistener": [
				{"case_name": "Foo v. Bar", "ui_text": "[1] Foo v. Bar (1996)", "ui_url": "https://example.org/foo"}
			]
		}`))
	}))
	defer srv.Close()

	results, err := newTestClient(srv.URL).Search(context.Background(), "adverse possession California", "courtlistener")
	require.NoError(t, err)

	require.Len(t, results["courtlistener"], 1)
	assert.Equal(t, "[1] Foo v. Bar (1996)", results["courtlistener"][0].UIText)
	assert.Equal(t, 1, results.Total())
}

func TestSearchEmptyResultsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"courtlistener": []}`))
	}))
	defer srv.Close()

	results, err := newTestClient(srv.URL).Search(context.Background(), "no such case", "courtlistener")
	require.NoError(t, err)
	require.NotNil(t, results)
	assert.Equal(t, 0, results.Total())
}

func TestSearchSurfacesBackendErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Search target can only be: courtlistener."}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "x", "unknown-target")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Search target can only be")
}

func TestSearchGenericErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search(context.Background(), "x", "courtlistener")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}

func TestCheckReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(srv.URL).CheckReachable(context.Background()))

	srv.Close()
	assert.Error(t, newTestClient(srv.URL).CheckReachable(context.Background()))
}

func TestClientConfigDefaults(t *testing.T) {
	c := NewClientWithConfig(&ClientConfig{})
	assert.Equal(t, "http://127.0.0.1:5000", c.GetConfig().BaseURL)
	assert.Equal(t, 30*time.Second, c.GetConfig().Timeout)
	assert.Equal(t, 30, c.GetConfig().SearchesPerMinute)
}
