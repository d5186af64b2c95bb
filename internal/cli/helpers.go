// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/config"
	"github.com/jotkit/jot-tui/internal/index"
	"github.com/jotkit/jot-tui/internal/logger"
	"github.com/jotkit/jot-tui/internal/notes"
	"github.com/jotkit/jot-tui/internal/reminders"
)

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// formatTimeAgo renders a timestamp relative to now for table output, falling
// back to the date once it stops being recent.
func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// formatBytes renders a byte count with a human unit.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// ExpandVaultPath expands a leading ~ in a --vault override. Config-sourced
// paths are already expanded by the config loader.
func ExpandVaultPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// =============================================================================
// COMMAND ENVIRONMENT
// =============================================================================

// cmdEnv bundles the vault collaborators a command handler needs: loaded
// config, the notes store, and lazily opened index and reminder scheduler.
// Lazy opening keeps cheap commands (list, cat) from paying SQLite startup.
type cmdEnv struct {
	cfg      *config.Config
	store    *notes.Store
	root     string
	notebook string

	idx       *index.NoteIndex
	remStore  *reminders.Store
	scheduler *reminders.Scheduler
}

// newCmdEnv loads config, configures logging, and opens the vault. A broken
// config file degrades to defaults with a warning instead of blocking every
// command, since jot doctor is the tool for diagnosing it.
func newCmdEnv(args Args) (*cmdEnv, error) {
	cfg, err := config.Load()
	if cfg == nil {
		return nil, WrapError(err, "loading config")
	}
	if err != nil && !args.Quiet {
		StderrPrintf("Warning: %v (using defaults)\n", err)
	}

	level := cfg.Log.Level
	if args.Verbose {
		level = "debug"
	} else if args.Quiet {
		level = "error"
	}
	if err := logger.Configure(level, cfg.Log.File, false); err != nil && !args.Quiet {
		StderrPrintf("Warning: %v\n", err)
	}

	root := cfg.Vault.Root
	if args.Vault != "" {
		root = ExpandVaultPath(args.Vault)
	}

	store := notes.NewStore(root)
	if err := store.EnsureVault(); err != nil {
		return nil, WrapError(err, "opening vault")
	}

	notebook := args.Notebook
	if notebook == "" {
		notebook = store.ActiveNotebook()
	}
	if notebook == "" {
		notebook = cfg.Vault.DefaultNotebook
	}

	return &cmdEnv{
		cfg:      cfg,
		store:    store,
		root:     root,
		notebook: notebook,
	}, nil
}

// openIndex opens the SQLite index on first use.
func (e *cmdEnv) openIndex() (*index.NoteIndex, error) {
	if e.idx != nil {
		return e.idx, nil
	}

	idxCfg := index.DefaultConfig(e.root)
	idx, err := index.NewNoteIndex(idxCfg)
	if err != nil {
		return nil, WrapError(err, "opening index")
	}
	e.idx = idx
	return idx, nil
}

// openScheduler opens the reminders store and scheduler on first use.
func (e *cmdEnv) openScheduler() (*reminders.Scheduler, error) {
	if e.scheduler != nil {
		return e.scheduler, nil
	}

	rs, err := reminders.NewStore(e.root)
	if err != nil {
		return nil, WrapError(err, "opening reminders")
	}
	e.remStore = rs
	e.scheduler = reminders.NewScheduler(rs)
	return e.scheduler, nil
}

// commandContext builds the execution context slash commands run against,
// wired the same way the composer wires it.
func (e *cmdEnv) commandContext() (*commands.Context, error) {
	ctx := &commands.Context{
		NotebookID: e.notebook,
		Root:       e.root,
		Notes:      e.store,
		Notebooks:  e.store,
	}

	idx, err := e.openIndex()
	if err == nil {
		ctx.Search = idx
		ctx.Tags = idx
	}

	sched, err := e.openScheduler()
	if err != nil {
		return nil, err
	}
	ctx.Reminders = sched

	return ctx, nil
}

// close releases the index handle if one was opened.
func (e *cmdEnv) close() {
	if e.idx != nil {
		if err := e.idx.Close(); err != nil {
			logger.Debug("index close failed", "error", err)
		}
		e.idx = nil
	}
}
