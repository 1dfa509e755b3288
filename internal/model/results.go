// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// SearchResult is one record returned by the search endpoint. The shape is
// target-specific; the client only relies on the ui_* fields for display and
// passes the rest through to the completion endpoint untouched.
type SearchResult struct {
	ID          any    `json:"id,omitempty"`
	CaseName    string `json:"case_name,omitempty"`
	Court       string `json:"court,omitempty"`
	AbsoluteURL string `json:"absolute_url,omitempty"`
	Status      string `json:"status,omitempty"`
	DateFiled   string `json:"date_filed,omitempty"`
	Text        string `json:"text,omitempty"`
	PromptText  string `json:"prompt_text,omitempty"`
	UIText      string `json:"ui_text,omitempty"`
	UIURL       string `json:"ui_url,omitempty"`
}

// SearchResults maps a search target name to its ordered result records.
type SearchResults map[string][]SearchResult

// Total returns the number of records across all targets.
func (r SearchResults) Total() int {
	n := 0
	for _, records := range r {
		n += len(records)
	}
	return n
}
