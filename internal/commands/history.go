// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"sync"
	"time"
)

// DefaultHistoryCapacity bounds the in-session command log when the caller
// does not choose a size.
const DefaultHistoryCapacity = 50

// =============================================================================
// HISTORY LOG
// =============================================================================

// HistoryEntry records one executed command line.
type HistoryEntry struct {
	Raw       string
	Timestamp time.Time
	Success   bool
}

// History is a bounded in-memory log of executed commands, oldest evicted
// first. It lives for the session only. Appends happen from bubbletea
// command goroutines, so the log is mutex-guarded.
type History struct {
	mu       sync.Mutex
	entries  []HistoryEntry
	capacity int
}

// NewHistory returns a log bounded at capacity. Zero or negative uses
// DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Append records a command line and whether it succeeded, evicting the
// oldest entry once the log is full.
func (h *History) Append(raw string, success bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, HistoryEntry{
		Raw:       raw,
		Timestamp: time.Now(),
		Success:   success,
	})
	if len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

// Entries returns a copy of the log, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len reports the number of recorded entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
