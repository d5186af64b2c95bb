// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index maintains the searchable SQLite index of a vault.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jotkit/jot-tui/internal/notes"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotIndexed    = errors.New("vault not indexed")
	ErrIndexing      = errors.New("indexing in progress")
	ErrDatabaseError = errors.New("database error")
	ErrInvalidPath   = errors.New("invalid path")
)

// =============================================================================
// NOTE INDEX
// =============================================================================

// NoteIndex indexes a vault's markdown notes for fast search
type NoteIndex struct {
	db      *sql.DB
	watcher FileWatcher // Interface for file watching (fsnotify or polling)
	root    string
	mu      sync.RWMutex

	// Indexing state
	indexing    bool
	indexingMu  sync.Mutex
	lastIndexed time.Time
	noteCount   int
	tagCount    int

	// Configuration
	config *Config
}

// Config holds index configuration
type Config struct {
	// Root is the vault root directory
	Root string

	// DatabasePath is where to store the SQLite database
	DatabasePath string

	// MaxFileSize is the maximum note size to index (bytes)
	MaxFileSize int64

	// IgnorePatterns are glob patterns to ignore
	IgnorePatterns []string

	// EnableWatch enables file watching for incremental updates
	EnableWatch bool

	// WatchDebounce is the debounce duration for file change events
	WatchDebounce time.Duration

	// PollInterval is the scan interval of the polling fallback watcher
	PollInterval time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig(root string) *Config {
	return &Config{
		Root:         root,
		DatabasePath: filepath.Join(root, notes.StateDir, "index.db"),
		MaxFileSize:  4 * 1024 * 1024, // 4MB is a very long note
		IgnorePatterns: []string{
			".*", // dot dirs and dotfiles: .jot, .git, .obsidian, ...
			"node_modules",
			"*.tmp", "*.swp", "*~",
		},
		EnableWatch:   true,
		WatchDebounce: 500 * time.Millisecond,
		PollInterval:  5 * time.Second,
	}
}

// NewNoteIndex opens (creating if needed) the index database for a vault
func NewNoteIndex(config *Config) (*NoteIndex, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	// Validate root path
	info, err := os.Stat(config.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory", ErrInvalidPath)
	}

	// Create database directory if needed
	dbDir := filepath.Dir(config.DatabasePath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", config.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0) // No lifetime limit

	// Configure SQLite for better performance
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-64000", // 64MB cache
		"PRAGMA temp_store=MEMORY",
		"PRAGMA mmap_size=268435456",     // 256MB mmap
		"PRAGMA foreign_keys=ON",         // Enable foreign key constraints
		"PRAGMA wal_autocheckpoint=1000", // Checkpoint every 1000 pages
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	idx := &NoteIndex{
		db:     db,
		root:   config.Root,
		config: config,
	}

	// Initialize schema
	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Load statistics
	if err := idx.loadStats(); err != nil {
		// Non-fatal, continue
	}

	return idx, nil
}

// initSchema creates the database schema
func (idx *NoteIndex) initSchema() error {
	// Create tables
	if _, err := idx.db.Exec(Schema); err != nil {
		return err
	}

	// Initialize metadata
	if _, err := idx.db.Exec(InitMetadata); err != nil {
		return err
	}

	// Set root path in metadata
	_, err := idx.db.Exec("UPDATE metadata SET value = ? WHERE key = 'root_path'", idx.root)
	return err
}

// Close closes the index and releases resources
func (idx *NoteIndex) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.watcher != nil {
		idx.watcher.Close()
	}

	if idx.db != nil {
		return idx.db.Close()
	}

	return nil
}

// =============================================================================
// INDEXING
// =============================================================================

// Reindex performs a full index of the vault. Notes whose blake2b checksum
// matches the stored row are left untouched; everything else is reparsed.
// The whole pass runs in one transaction.
func (idx *NoteIndex) Reindex(ctx context.Context) error {
	idx.indexingMu.Lock()
	if idx.indexing {
		idx.indexingMu.Unlock()
		return ErrIndexing
	}
	idx.indexing = true
	idx.indexingMu.Unlock()

	defer func() {
		idx.indexingMu.Lock()
		idx.indexing = false
		idx.indexingMu.Unlock()
	}()

	startTime := time.Now()

	// Begin transaction
	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	// Snapshot known checksums so unchanged notes can be skipped
	existing := make(map[string]string) // path -> checksum
	rows, err := tx.Query("SELECT path, checksum FROM notes")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	for rows.Next() {
		var path, sum string
		if err := rows.Scan(&path, &sum); err == nil {
			existing[path] = sum
		}
	}
	rows.Close()

	// Walk the vault
	seen := make(map[string]bool)
	err = filepath.Walk(idx.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Skip ignored directories
		if info.IsDir() {
			if idx.shouldIgnore(filepath.Base(path)) && path != idx.root {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip ignored, non-markdown, and oversized files
		if idx.shouldIgnore(filepath.Base(path)) {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		if info.Size() > idx.config.MaxFileSize {
			return nil
		}

		rel, err := filepath.Rel(idx.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(path)
		if err != nil {
			return nil // Unreadable notes are not fatal
		}

		seen[rel] = true
		if existing[rel] == notes.Checksum(data) {
			return nil // Unchanged
		}

		if err := idx.indexNote(tx, rel, info, data); err != nil {
			// Malformed note, leave it out and continue
			return nil
		}
		return nil
	})

	if err != nil {
		// A cancelled pass rolls back rather than committing half an index
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("failed to walk vault: %w", err)
	}

	// Drop rows for notes that no longer exist
	for path := range existing {
		if !seen[path] {
			if _, err := tx.Exec("DELETE FROM notes WHERE path = ?", path); err != nil {
				return fmt.Errorf("%w: %v", ErrDatabaseError, err)
			}
		}
	}

	// Update metadata
	now := time.Now().Unix()
	if _, err := tx.Exec("UPDATE metadata SET value = ? WHERE key = 'last_full_index'", now); err != nil {
		return err
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	idx.mu.Lock()
	idx.lastIndexed = startTime
	idx.mu.Unlock()
	idx.refreshCounts()

	// Start file watcher if enabled
	if idx.config.EnableWatch && idx.watcher == nil {
		if err := idx.startWatcher(); err != nil {
			// Non-fatal, the index still works without live updates
		}
	}

	return nil
}

// UpdateNote incrementally reindexes a single note. The path may be
// absolute or vault-relative. A vanished file is removed from the index.
func (idx *NoteIndex) UpdateNote(path string) error {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(idx.root, filepath.FromSlash(path))
	}

	info, err := os.Stat(abs)
	if err != nil {
		return idx.RemoveNote(path)
	}
	if info.IsDir() || info.Size() > idx.config.MaxFileSize {
		return nil
	}
	if !strings.EqualFold(filepath.Ext(abs), ".md") {
		return nil
	}

	rel, err := filepath.Rel(idx.root, abs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	rel = filepath.ToSlash(rel)
	if idx.ignoredPath(rel) {
		return nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return err
	}

	tx, err := idx.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := idx.indexNote(tx, rel, info, data); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	idx.refreshCounts()
	return nil
}

// RemoveNote drops a note from the index. The path may be absolute or
// vault-relative.
func (idx *NoteIndex) RemoveNote(path string) error {
	rel := path
	if filepath.IsAbs(path) {
		r, err := filepath.Rel(idx.root, path)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		rel = r
	}
	rel = filepath.ToSlash(rel)

	// Tag rows go with the note via the foreign key cascade
	if _, err := idx.db.Exec("DELETE FROM notes WHERE path = ?", rel); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}

	idx.refreshCounts()
	return nil
}

// indexNote replaces the index row for one note inside a transaction
func (idx *NoteIndex) indexNote(tx *sql.Tx, rel string, info os.FileInfo, data []byte) error {
	n, err := notes.ParseNote(data)
	if err != nil {
		return err
	}

	title := n.Title
	if title == "" {
		title = notes.DeriveTitle(n.Body)
	}
	body := norm.NFC.String(n.Body)
	tags := notes.MergeTags(n.Tags, n.Body)
	lineCount := strings.Count(string(data), "\n") + 1

	// Replace any previous row; tags cascade away with it
	if _, err := tx.Exec("DELETE FROM notes WHERE path = ?", rel); err != nil {
		return err
	}

	result, err := tx.Exec(`
		INSERT INTO notes (path, notebook, title, checksum, mod_time, size, line_count, content, norm_content, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rel, notebookFromPath(rel), title, notes.Checksum(data),
		info.ModTime().Unix(), info.Size(), lineCount,
		body, normFold(title)+"\n"+normFold(body), time.Now().Unix())
	if err != nil {
		return err
	}

	noteID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for _, tag := range tags {
		if _, err := tx.Exec("INSERT INTO tags (note_id, tag) VALUES (?, ?)", noteID, tag); err != nil {
			return err
		}
	}

	return nil
}

// shouldIgnore checks if a file/directory name should be ignored
func (idx *NoteIndex) shouldIgnore(name string) bool {
	for _, pattern := range idx.config.IgnorePatterns {
		matched, _ := filepath.Match(pattern, name)
		if matched {
			return true
		}
	}
	return false
}

// ignoredPath checks every segment of a vault-relative path
func (idx *NoteIndex) ignoredPath(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if idx.shouldIgnore(seg) {
			return true
		}
	}
	return false
}

// notebookFromPath derives the notebook from a vault-relative path
func notebookFromPath(rel string) string {
	if i := strings.Index(rel, "/"); i > 0 {
		return rel[:i]
	}
	return ""
}

// normFold lower-cases NFC-normalized text so comparisons ignore case
// and Unicode composition differences
func normFold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// loadStats loads statistics from the database
func (idx *NoteIndex) loadStats() error {
	var lastIndexed int64
	err := idx.db.QueryRow("SELECT value FROM metadata WHERE key = 'last_full_index'").Scan(&lastIndexed)
	if err != nil {
		return err
	}

	if lastIndexed > 0 {
		idx.lastIndexed = time.Unix(lastIndexed, 0)
	}

	// Count notes
	err = idx.db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&idx.noteCount)
	if err != nil {
		return err
	}

	// Count distinct tags
	err = idx.db.QueryRow("SELECT COUNT(DISTINCT tag) FROM tags").Scan(&idx.tagCount)
	if err != nil {
		return err
	}

	return nil
}

// refreshCounts re-reads the note and tag counters
func (idx *NoteIndex) refreshCounts() {
	var noteCount, tagCount int
	if err := idx.db.QueryRow("SELECT COUNT(*) FROM notes").Scan(&noteCount); err != nil {
		return
	}
	if err := idx.db.QueryRow("SELECT COUNT(DISTINCT tag) FROM tags").Scan(&tagCount); err != nil {
		return
	}

	idx.mu.Lock()
	idx.noteCount = noteCount
	idx.tagCount = tagCount
	idx.mu.Unlock()
}

// =============================================================================
// STATISTICS
// =============================================================================

// Stats returns index statistics
type Stats struct {
	NoteCount    int
	TagCount     int
	LastIndexed  time.Time
	IsIndexing   bool
	DatabaseSize int64
}

// Stats returns current index statistics
func (idx *NoteIndex) Stats() Stats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.indexingMu.Lock()
	indexing := idx.indexing
	idx.indexingMu.Unlock()

	// Get database file size
	var dbSize int64
	if info, err := os.Stat(idx.config.DatabasePath); err == nil {
		dbSize = info.Size()
	}

	return Stats{
		NoteCount:    idx.noteCount,
		TagCount:     idx.tagCount,
		LastIndexed:  idx.lastIndexed,
		IsIndexing:   indexing,
		DatabaseSize: dbSize,
	}
}

// IsIndexed returns true if the vault has been indexed
func (idx *NoteIndex) IsIndexed() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return !idx.lastIndexed.IsZero()
}
