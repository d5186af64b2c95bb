// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index maintains the searchable SQLite index of a vault.
package index

const (
	// SchemaVersion tracks the database schema version for migrations
	SchemaVersion = 1
)

// SQLite schema for the note index
const Schema = `
-- Metadata table for schema version and index state
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Notes table: one row per indexed markdown file
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,  -- vault-relative, slash-separated
    notebook TEXT,              -- first path segment, '' for vault root
    title TEXT,
    checksum TEXT NOT NULL,     -- blake2b-256 of the raw file
    mod_time INTEGER NOT NULL,  -- Unix timestamp
    size INTEGER NOT NULL,
    line_count INTEGER,
    content TEXT,               -- NFC-normalized note body
    norm_content TEXT,          -- lower-cased title + body, for matching
    indexed_at INTEGER NOT NULL -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_notes_path ON notes(path);
CREATE INDEX IF NOT EXISTS idx_notes_notebook ON notes(notebook);
CREATE INDEX IF NOT EXISTS idx_notes_checksum ON notes(checksum);

-- Tags table: declared and inline tags per note
CREATE TABLE IF NOT EXISTS tags (
    note_id INTEGER NOT NULL,
    tag TEXT NOT NULL,
    FOREIGN KEY(note_id) REFERENCES notes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_tags_note_id ON tags(note_id);
CREATE INDEX IF NOT EXISTS idx_tags_tag ON tags(tag);
`

// InitMetadata initializes the metadata table with default values
const InitMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
INSERT OR IGNORE INTO metadata (key, value) VALUES ('last_full_index', '0');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('root_path', '');
`
