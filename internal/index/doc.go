// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index maintains the searchable SQLite index of a vault.
//
// This package creates and maintains a SQLite-based index of markdown
// notes, enabling fast full-text and tag search across large vaults.
//
// # Key Types
//
//   - NoteIndex: Main indexer with SQLite backend
//   - Config: Index location, ignore patterns, and watch settings
//   - Stats: Note and tag counts plus database size
//   - FileWatcher: File system watcher for incremental updates
//
// # Matching
//
// Queries and note text are NFC-normalized and lower-cased before
// comparison, so "Reunion", "réunion" and its decomposed spelling all
// find the same note. Hits carry a short snippet around the match.
//
// # Usage
//
// Create and populate an index:
//
//	idx, err := index.NewNoteIndex(index.DefaultConfig(vaultRoot))
//	err = idx.Reindex(ctx)
//
// Search the index:
//
//	hits, err := idx.SearchNotes(vaultRoot, "standup")
//	for _, h := range hits {
//	    fmt.Printf("%s  %s\n", h.Path, h.Snippet)
//	}
//
// Reindex starts a file watcher (fsnotify, or polling where fsnotify is
// unavailable) when Config.EnableWatch is set, keeping the index current
// as notes change on disk.
package index
