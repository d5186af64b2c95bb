// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jotkit/jot-tui/internal/index"
)

// =============================================================================
// JOT INDEX
// =============================================================================

// HandleIndex manages the SQLite search index. "rebuild" re-scans the vault;
// "stats", the default, reports what the index holds.
func HandleIndex(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "stats":
		return indexStats(args)
	case "rebuild":
		return indexRebuild(args)
	default:
		return NewValidationError("verb", parser.Subcommand(), "expected rebuild or stats", "jot index rebuild")
	}
}

func indexRebuild(args Args) error {
	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	idx, err := env.openIndex()
	if err != nil {
		return err
	}

	if !args.Quiet && !args.JSON {
		fmt.Println("Scanning vault...")
	}

	start := time.Now()
	if err := idx.Reindex(context.Background()); err != nil {
		return WrapError(err, "rebuilding index")
	}
	elapsed := time.Since(start).Round(time.Millisecond)

	stats := idx.Stats()

	if args.JSON {
		NewJSONResponse("index", indexStatsData(env.root, stats)).Print()
		return nil
	}

	fmt.Printf("%s Indexed %d note(s), %d tag(s) in %s\n",
		RenderStatus("ok"), stats.NoteCount, stats.TagCount, elapsed)
	return nil
}

func indexStats(args Args) error {
	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	idx, err := env.openIndex()
	if err != nil {
		return err
	}
	stats := idx.Stats()

	if args.JSON {
		NewJSONResponse("index", indexStatsData(env.root, stats)).Print()
		return nil
	}

	fmt.Println(titleStyle.Render("Search Index"))
	fmt.Println(RenderSeparator())
	fmt.Printf("%s %d\n", RenderLabel("Notes"), stats.NoteCount)
	fmt.Printf("%s %d\n", RenderLabel("Tags"), stats.TagCount)
	fmt.Printf("%s %s\n", RenderLabel("Last indexed"), formatTimeAgo(stats.LastIndexed))
	fmt.Printf("%s %s %s\n", RenderLabel("Database"),
		pathStyle.Render(index.DefaultConfig(env.root).DatabasePath),
		mutedStyle.Render("("+formatBytes(stats.DatabaseSize)+")"))
	if stats.IsIndexing {
		fmt.Printf("%s %s\n", RenderLabel("State"), warnStyle.Render("indexing"))
	}

	if stats.NoteCount == 0 && !args.Quiet {
		fmt.Println()
		fmt.Println(mutedStyle.Render("Index is empty. Run 'jot index rebuild' to scan the vault."))
	}
	return nil
}

// indexStatsData converts index stats into the JSON payload shape.
func indexStatsData(root string, stats index.Stats) IndexStatsData {
	lastIndexed := ""
	if !stats.LastIndexed.IsZero() {
		lastIndexed = stats.LastIndexed.Format("2006-01-02 15:04")
	}
	return IndexStatsData{
		Notes:        stats.NoteCount,
		Tags:         stats.TagCount,
		LastIndexed:  lastIndexed,
		Indexing:     stats.IsIndexing,
		DatabasePath: index.DefaultConfig(root).DatabasePath,
		DatabaseSize: stats.DatabaseSize,
	}
}
