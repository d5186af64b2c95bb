// jot - a notebook that lives in your terminal.
//
// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jotkit/jot-tui/internal/cli"
	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/config"
	"github.com/jotkit/jot-tui/internal/index"
	"github.com/jotkit/jot-tui/internal/logger"
	"github.com/jotkit/jot-tui/internal/notes"
	"github.com/jotkit/jot-tui/internal/reminders"
	"github.com/jotkit/jot-tui/internal/ui/composer"
	"github.com/jotkit/jot-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdNew:
		exitOnError(cli.HandleNew(args))
	case cli.CmdList:
		exitOnError(cli.HandleList(args))
	case cli.CmdSearch:
		exitOnError(cli.HandleSearch(args))
	case cli.CmdTags:
		exitOnError(cli.HandleTags(args))
	case cli.CmdNotebooks:
		exitOnError(cli.HandleNotebooks(args))
	case cli.CmdRemind:
		exitOnError(cli.HandleRemind(args))
	case cli.CmdReminders:
		exitOnError(cli.HandleReminders(args))
	case cli.CmdCapture:
		exitOnError(cli.HandleCapture(args))
	case cli.CmdCat:
		exitOnError(cli.HandleCat(args))
	case cli.CmdExport:
		exitOnError(cli.HandleExport(args))
	case cli.CmdIndex:
		exitOnError(cli.HandleIndex(args))
	case cli.CmdConfig:
		exitOnError(cli.HandleConfig(args))
	case cli.CmdDoctor:
		exitOnError(cli.HandleDoctor(args))
	case cli.CmdVersion:
		cli.HandleVersion(args)
	case cli.CmdHelp:
		cli.HandleHelp(args)
	case cli.CmdUnknown:
		cli.HandleUnknown(args)
		os.Exit(cli.ExitUsageError)
	default:
		runTUI(args)
	}
}

// exitOnError prints the error and exits with its mapped code. Handlers
// have already written any command output by the time they return.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

// runTUI opens the full-screen composer.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if cfg == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitConfigError)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	// The composer owns the terminal, so logs go to a file instead of
	// stderr. An explicit log.file setting wins.
	logFile := cfg.Log.File
	if logFile == "" {
		if dir, dirErr := config.ConfigDir(); dirErr == nil {
			logFile = filepath.Join(dir, "jot.log")
		}
	}
	level := cfg.Log.Level
	if args.Verbose {
		level = "debug"
	}
	if err := logger.Configure(level, logFile, false); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if args.Vault != "" {
		cfg.Vault.Root = cli.ExpandVaultPath(args.Vault)
	}

	store := notes.NewStore(cfg.Vault.Root)
	if err := store.EnsureVault(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitVaultError)
	}

	// -n switches notebooks for this launch and is recorded in the vault
	// state, the same as `jot notebooks use`.
	if args.Notebook != "" {
		if err := store.SetActiveNotebook(args.Notebook); err != nil {
			fmt.Fprintf(os.Stderr, "Error: notebook %q: %v\n", args.Notebook, err)
			os.Exit(cli.ExitNotFoundError)
		}
	}

	// Search index. The composer degrades to store-only browsing when the
	// index cannot be opened.
	var idx *index.NoteIndex
	if cfg.Index.Enabled {
		icfg := index.DefaultConfig(cfg.Vault.Root)
		icfg.EnableWatch = cfg.Index.Watch
		icfg.WatchDebounce = cfg.WatchDebounce()
		icfg.PollInterval = cfg.PollInterval()
		icfg.MaxFileSize = cfg.MaxFileSize()

		idx, err = index.NewNoteIndex(icfg)
		if err != nil {
			logger.Warn("Search index unavailable", "error", err)
			idx = nil
		} else {
			defer idx.Close()
			// Refresh in the background: this picks up notes edited while
			// jot was closed and starts the file watcher.
			go func() {
				if err := idx.Reindex(context.Background()); err != nil {
					logger.Warn("Startup reindex failed", "error", err)
				}
			}()
		}
	}

	// The scheduler always runs so /remind works; Reminders.Enabled only
	// gates the due-banner tick loop inside the composer.
	var sched *reminders.Scheduler
	if rstore, rerr := reminders.NewStore(cfg.Vault.Root); rerr != nil {
		logger.Warn("Reminders unavailable", "error", rerr)
	} else {
		sched = reminders.NewScheduler(rstore)
		sched.SetInterval(cfg.CheckInterval())
	}

	reg := commands.NewRegistry()
	if err := commands.RegisterBuiltins(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
	exec := commands.NewExecutor(reg, commands.NewHistory(cfg.History.Size))

	m := composer.New(styles.NewTheme(), composer.Options{
		Config:    cfg,
		Store:     store,
		Index:     idx,
		Scheduler: sched,
		Registry:  reg,
		Executor:  exec,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running jot: %v\n", err)
		os.Exit(cli.ExitGeneralError)
	}
}
