// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/util"
)

// =============================================================================
// JOT SEARCH
// =============================================================================

// HandleSearch runs a full-text query, or a tag lookup with --tag, against
// the SQLite index. A vault that has never been indexed gets a first pass
// automatically.
func HandleSearch(args Args) error {
	if args.Query == "" && args.Tag == "" {
		return NewValidationError("query", "", "a search query or --tag is required", "jot search standup notes")
	}

	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	idx, err := env.openIndex()
	if err != nil {
		return err
	}

	if !idx.IsIndexed() {
		if !args.Quiet && !args.JSON {
			StderrPrintln("Index is empty, scanning vault first...")
		}
		if err := idx.Reindex(context.Background()); err != nil {
			return WrapError(err, "building index")
		}
	}

	var hits []commands.SearchHit
	if args.Tag != "" {
		hits, err = idx.SearchByTag(env.root, args.Tag)
	} else {
		hits, err = idx.SearchNotes(env.root, args.Query)
	}
	if err != nil {
		return WrapError(err, "searching")
	}

	if args.JSON {
		data := SearchData{Query: args.Query, Tag: args.Tag, Hits: make([]SearchHitData, 0, len(hits)), Count: len(hits)}
		for _, h := range hits {
			data.Hits = append(data.Hits, SearchHitData{Path: h.Path, Title: h.Title, Snippet: h.Snippet})
		}
		NewJSONResponse("search", data).Print()
		return nil
	}

	if len(hits) == 0 {
		if args.Tag != "" {
			fmt.Printf("No notes tagged #%s\n", args.Tag)
		} else {
			fmt.Printf("No matches for %q\n", args.Query)
		}
		return nil
	}

	for _, h := range hits {
		title := h.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %s\n", util.TruncateRunes(title, 44), pathStyle.Render(h.Path))
		if h.Snippet != "" {
			fmt.Printf("  %s\n", mutedStyle.Render(util.TruncateRunes(h.Snippet, 76)))
		}
	}

	if !args.Quiet {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("%d match(es)", len(hits))))
	}
	return nil
}

// =============================================================================
// JOT TAGS
// =============================================================================

// HandleTags lists every tag known to the index.
func HandleTags(args Args) error {
	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	idx, err := env.openIndex()
	if err != nil {
		return err
	}

	if !idx.IsIndexed() {
		if err := idx.Reindex(context.Background()); err != nil {
			return WrapError(err, "building index")
		}
	}

	tags, err := idx.ListAllTags()
	if err != nil {
		return WrapError(err, "listing tags")
	}

	if args.JSON {
		NewJSONResponse("tags", TagsData{Tags: tags, Count: len(tags)}).Print()
		return nil
	}

	if len(tags) == 0 {
		fmt.Println("No tags yet. Add #tags inside your notes.")
		return nil
	}

	for _, tag := range tags {
		fmt.Println(tagStyle.Render("#" + tag))
	}
	if !args.Quiet {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("%d tag(s)", len(tags))))
	}
	return nil
}
