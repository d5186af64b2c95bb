// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"time"
)

// =============================================================================
// EXECUTION CONTEXT
// =============================================================================

// Context carries the state and collaborators handlers may use. Every
// collaborator field is optional; handlers degrade to a structured failure
// when one they need is absent. There is no ambient state beyond this.
type Context struct {
	NotebookID string // active notebook, empty when none is selected
	Root       string // vault root path, empty when no vault is open

	Notes     NoteStore
	Notebooks NotebookStore
	Tags      TagSource
	Search    Searcher
	Reminders ReminderScheduler

	// Clock is injected so time-sensitive commands are testable against a
	// fixed instant. Nil falls back to time.Now.
	Clock func() time.Time
}

// Now returns the injected clock's time, or the wall clock.
func (c *Context) Now() time.Time {
	if c != nil && c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// Notebook describes one notebook for listing and switching.
type Notebook struct {
	ID        string
	Name      string
	NoteCount int
}

// SearchHit is one search result row.
type SearchHit struct {
	Path    string
	Title   string
	Snippet string
}

// NoteStore persists new notes. The returned string is the created file's
// path relative to the vault root.
type NoteStore interface {
	CreateNote(root, notebookID, content string) (string, error)
}

// NotebookStore lists notebooks and records the active one.
type NotebookStore interface {
	ListNotebooks() ([]Notebook, error)
	SetActiveNotebook(id string) error
}

// TagSource enumerates every tag known to the vault.
type TagSource interface {
	ListAllTags() ([]string, error)
}

// Searcher answers full-text and tag queries.
type Searcher interface {
	SearchNotes(root, query string) ([]SearchHit, error)
	SearchByTag(root, tag string) ([]SearchHit, error)
}

// ReminderScheduler records reminders for later delivery.
type ReminderScheduler interface {
	CreateReminder(message string, dueAt time.Time, notebookID string) error
}
