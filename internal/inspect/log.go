// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package inspect records developer-facing events for the inspect overlay.
//
// Users only ever see generic error bubbles; the full detail of every
// exchange (messages, extraction outcomes, raw search results, stream
// interruptions, error causes) lands here, both in an in-memory ring buffer
// that backs the overlay and in a structured log file for post-mortems.
package inspect

import (
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// MaxEntries bounds the in-memory buffer. Older entries rotate out; the log
// file keeps everything.
const MaxEntries = 500

// Entry is one recorded event.
type Entry struct {
	Time  time.Time
	Title string
	Body  string
}

// Log collects entries and mirrors them to a zerolog writer.
//
// Safe for concurrent use: commands run off the update loop and log from
// their own goroutines.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	logger  zerolog.Logger
}

// New creates a Log writing structured events to w. Pass io.Discard to keep
// the overlay buffer without a file sink.
func New(w io.Writer) *Log {
	return &Log{
		entries: make([]Entry, 0, 64),
		logger:  zerolog.New(w).With().Timestamp().Logger(),
	}
}

// Record appends an event. Title names the source (an endpoint path or a
// component); body carries the full detail.
func (l *Log) Record(title, body string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{Time: time.Now(), Title: title, Body: body})
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[len(l.entries)-MaxEntries:]
	}

	l.logger.Info().Str("source", title).Msg(body)
}

// RecordError appends an error event with its full cause. The user-visible
// surface stays generic; this is the only place the detail goes.
func (l *Log) RecordError(title string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	body := "unknown error"
	if err != nil {
		body = err.Error()
	}

	l.entries = append(l.entries, Entry{Time: time.Now(), Title: title, Body: body})
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[len(l.entries)-MaxEntries:]
	}

	l.logger.Error().Str("source", title).Err(err).Msg("request failed")
}

// Entries returns a snapshot of the buffer, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of buffered entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
