// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index maintains the searchable SQLite index of a vault.
package index

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/jotkit/jot-tui/internal/logger"
)

// =============================================================================
// FILE WATCHER INTERFACE
// =============================================================================

// FileWatcher is the interface for file watching implementations
type FileWatcher interface {
	// Watch starts watching for file changes
	Watch() error

	// Close stops watching and releases resources
	Close() error
}

// =============================================================================
// FSNOTIFY WATCHER
// =============================================================================

// FsnotifyWatcher implements FileWatcher using fsnotify
type FsnotifyWatcher struct {
	idx      *NoteIndex
	watcher  *fsnotify.Watcher
	debounce time.Duration
	limiter  *rate.Limiter
	mu       sync.Mutex
	pending  map[string]time.Time // File path -> last change time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewFsnotifyWatcher creates a new fsnotify-based watcher
func NewFsnotifyWatcher(idx *NoteIndex, debounce time.Duration) (*FsnotifyWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	fw := &FsnotifyWatcher{
		idx:      idx,
		watcher:  watcher,
		debounce: debounce,
		// A sync or git checkout touches hundreds of notes at once;
		// pace the incremental updates instead of hammering SQLite.
		limiter: rate.NewLimiter(rate.Limit(20), 40),
		pending: make(map[string]time.Time),
		ctx:     ctx,
		cancel:  cancel,
	}

	return fw, nil
}

// Watch starts watching for file changes
func (fw *FsnotifyWatcher) Watch() error {
	// Add root directory and all subdirectories
	if err := fw.addRecursive(fw.idx.root); err != nil {
		return err
	}

	// Start event processing goroutine
	go fw.processEvents()

	// Start debounce timer goroutine
	go fw.processPending()

	return nil
}

// addRecursive adds a directory and all its subdirectories to the watch list
func (fw *FsnotifyWatcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}

		if !info.IsDir() {
			return nil
		}

		// Skip ignored directories
		if fw.idx.shouldIgnore(filepath.Base(path)) && path != fw.idx.root {
			return filepath.SkipDir
		}

		// Add directory to watcher
		if err := fw.watcher.Add(path); err != nil {
			// Non-fatal, continue
			return nil
		}

		return nil
	})
}

// processEvents processes file system events
func (fw *FsnotifyWatcher) processEvents() {
	// Add panic recovery so a watcher failure never takes the app down
	defer func() {
		if r := recover(); r != nil {
			logger.Error("vault watcher stopped", "panic", r)
		}
	}()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			// Handle Write and Create events
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				fw.handleFileChange(event.Name)
			}

			// Handle Rename events (treat as delete of old name)
			if event.Op&fsnotify.Rename == fsnotify.Rename {
				logger.IndexEvent("remove", event.Name)
				_ = fw.idx.RemoveNote(event.Name)
			}

			// Handle Remove events
			if event.Op&fsnotify.Remove == fsnotify.Remove {
				logger.IndexEvent("remove", event.Name)
				_ = fw.idx.RemoveNote(event.Name)
			}

			// Handle new directories
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// Add directory with retry logic
					if err := fw.addRecursive(event.Name); err != nil {
						// Retry once after a short delay
						time.Sleep(100 * time.Millisecond)
						fw.addRecursive(event.Name)
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal: a missed event is caught by the next full reindex.
			logger.Warn("vault watcher error", "error", err)
		}
	}
}

// handleFileChange handles a file change event
func (fw *FsnotifyWatcher) handleFileChange(path string) {
	// Only markdown notes matter
	if !strings.EqualFold(filepath.Ext(path), ".md") {
		return
	}
	if fw.idx.shouldIgnore(filepath.Base(path)) {
		return
	}

	// Add to pending with debounce
	fw.mu.Lock()
	fw.pending[path] = time.Now()
	fw.mu.Unlock()
}

// processPending processes pending file changes with debounce
func (fw *FsnotifyWatcher) processPending() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-fw.ctx.Done():
			return

		case <-ticker.C:
			now := time.Now()

			fw.mu.Lock()
			var toProcess []string

			for path, changeTime := range fw.pending {
				if now.Sub(changeTime) >= fw.debounce {
					toProcess = append(toProcess, path)
					delete(fw.pending, path)
				}
			}
			fw.mu.Unlock()

			// Process the files, paced by the limiter
			for _, path := range toProcess {
				if err := fw.limiter.Wait(fw.ctx); err != nil {
					return
				}
				logger.IndexEvent("update", path)
				if err := fw.idx.UpdateNote(path); err != nil {
					logger.Warn("incremental reindex failed", "path", path, "error", err)
				}
			}
		}
	}
}

// Close stops watching and releases resources
func (fw *FsnotifyWatcher) Close() error {
	fw.cancel()
	if fw.watcher != nil {
		return fw.watcher.Close()
	}
	return nil
}

// =============================================================================
// POLLING WATCHER (FALLBACK)
// =============================================================================

// PollingWatcher implements FileWatcher using periodic polling
type PollingWatcher struct {
	idx      *NoteIndex
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	files    map[string]time.Time // File path -> mod time
	mu       sync.Mutex
}

// NewPollingWatcher creates a new polling-based watcher
func NewPollingWatcher(idx *NoteIndex, interval time.Duration) *PollingWatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &PollingWatcher{
		idx:      idx,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		files:    make(map[string]time.Time),
	}
}

// Watch starts watching for file changes
func (pw *PollingWatcher) Watch() error {
	// Initial scan
	if err := pw.scan(); err != nil {
		return err
	}

	// Start polling goroutine
	go pw.poll()

	return nil
}

// scan scans the vault and records note modification times
func (pw *PollingWatcher) scan() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	newFiles := make(map[string]time.Time)

	err := filepath.Walk(pw.idx.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			if pw.idx.shouldIgnore(filepath.Base(path)) && path != pw.idx.root {
				return filepath.SkipDir
			}
			return nil
		}

		// Only track markdown notes
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		if pw.idx.shouldIgnore(filepath.Base(path)) {
			return nil
		}

		newFiles[path] = info.ModTime()
		return nil
	})

	if err != nil {
		return err
	}

	pw.files = newFiles
	return nil
}

// poll periodically checks for file changes
func (pw *PollingWatcher) poll() {
	ticker := time.NewTicker(pw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-pw.ctx.Done():
			return

		case <-ticker.C:
			pw.checkChanges()
		}
	}
}

// checkChanges checks for file changes and updates the index
func (pw *PollingWatcher) checkChanges() {
	pw.mu.Lock()
	oldFiles := make(map[string]time.Time)
	for k, v := range pw.files {
		oldFiles[k] = v
	}
	pw.mu.Unlock()

	// Scan current state
	if err := pw.scan(); err != nil {
		return
	}

	pw.mu.Lock()
	currentFiles := pw.files
	pw.mu.Unlock()

	// Check for changes
	for path, modTime := range currentFiles {
		if oldTime, exists := oldFiles[path]; !exists || !oldTime.Equal(modTime) {
			logger.IndexEvent("update", path)
			if err := pw.idx.UpdateNote(path); err != nil {
				logger.Warn("incremental reindex failed", "path", path, "error", err)
			}
		}
	}

	// Check for deletions
	for path := range oldFiles {
		if _, exists := currentFiles[path]; !exists {
			logger.IndexEvent("remove", path)
			_ = pw.idx.RemoveNote(path)
		}
	}
}

// Close stops watching
func (pw *PollingWatcher) Close() error {
	pw.cancel()
	return nil
}

// =============================================================================
// WATCHER FACTORY
// =============================================================================

// startWatcher starts the file watcher (fsnotify or polling fallback)
func (idx *NoteIndex) startWatcher() error {
	// Try fsnotify first
	fw, err := NewFsnotifyWatcher(idx, idx.config.WatchDebounce)
	if err == nil {
		err = fw.Watch()
		if err == nil {
			idx.watcher = fw
			return nil
		}
		fw.Close()
	}
	logger.Debug("fsnotify unavailable, polling the vault instead", "error", err)

	// Fallback to polling watcher
	interval := idx.config.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	pw := NewPollingWatcher(idx, interval)
	if err := pw.Watch(); err != nil {
		return err
	}

	idx.watcher = pw
	return nil
}
