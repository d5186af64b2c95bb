// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jotkit/jot-tui/internal/logger"
	"github.com/jotkit/jot-tui/internal/notes"
	"github.com/jotkit/jot-tui/internal/util"
)

// =============================================================================
// JOT NEW
// =============================================================================

// HandleNew creates a note from argument words, a --file source, or piped
// stdin, in that order of preference.
func HandleNew(args Args) error {
	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	content, err := newNoteContent(args)
	if err != nil {
		return err
	}

	rel, err := env.store.CreateNote(env.root, env.notebook, content)
	if err != nil {
		return WrapError(err, "creating note")
	}

	// Keep the index current so the note is searchable immediately.
	if env.cfg.Index.Enabled {
		if idx, idxErr := env.openIndex(); idxErr == nil {
			if updErr := idx.UpdateNote(rel); updErr != nil {
				logger.Debug("index update failed", "path", rel, "error", updErr)
			}
		}
	}

	n, loadErr := env.store.Load(rel)

	if args.JSON {
		data := NoteData{Path: rel, Notebook: env.notebook}
		if loadErr == nil {
			data.Title = n.Title
			data.Notebook = n.Notebook
			data.Tags = n.Tags
			data.Created = n.Created.Format("2006-01-02 15:04")
		}
		NewJSONResponse("new", data).Print()
		return nil
	}

	if args.Quiet {
		fmt.Println(rel)
		return nil
	}

	fmt.Printf("%s %s\n", successStyle.Render("Created"), pathStyle.Render(rel))
	if loadErr == nil && len(n.Tags) > 0 {
		fmt.Printf("  %s\n", tagStyle.Render("#"+strings.Join(n.Tags, " #")))
	}
	return nil
}

// newNoteContent resolves where the note body comes from.
func newNoteContent(args Args) (string, error) {
	if args.File != "" {
		data, err := os.ReadFile(args.File)
		if err != nil {
			return "", WrapError(err, "reading --file")
		}
		return string(data), nil
	}

	if args.Query != "" {
		return args.Query, nil
	}

	// Piped input: jot new < notes.txt, echo "..." | jot new
	if !IsTTY() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", WrapError(err, "reading stdin")
		}
		if content := strings.TrimSpace(string(data)); content != "" {
			return content, nil
		}
	}

	return "", NewValidationError("content", "", "nothing to save", "jot new buy oat milk #errands")
}

// =============================================================================
// JOT LIST
// =============================================================================

// HandleList prints the notes in the selected notebook, most recently
// updated first.
func HandleList(args Args) error {
	parser := NewArgParser(args.Raw)
	limit := 0
	if parser.HasFlag("limit") || parser.HasFlag("l") {
		raw := parser.FlagOrDefault("limit", parser.Flag("l"))
		n, err := ParseIntWithValidation(raw, "limit")
		if err != nil {
			return NewValidationError("limit", raw, err.Error(), "jot list --limit 10")
		}
		limit = n
	}

	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	list, err := env.store.List(env.notebook)
	if err != nil {
		if errors.Is(err, notes.ErrNotebookNotFound) {
			return NewNotFoundError("notebook", env.notebook)
		}
		return WrapError(err, "listing notes")
	}

	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	scope := env.notebook
	if scope == "" {
		scope = "all notebooks"
	}

	if args.JSON {
		data := ListData{Notebook: env.notebook, Notes: make([]NoteSummaryData, 0, len(list)), Count: len(list)}
		for _, n := range list {
			data.Notes = append(data.Notes, NoteSummaryData{
				Path:    n.Path,
				Title:   displayTitle(n),
				Updated: n.Updated.Format("2006-01-02 15:04"),
				Tags:    n.Tags,
			})
		}
		NewJSONResponse("list", data).Print()
		return nil
	}

	if len(list) == 0 {
		fmt.Printf("No notes in %s. Create one with 'jot new'.\n", scope)
		return nil
	}

	if !args.Quiet {
		fmt.Println(titleStyle.Render("Notes in " + scope))
		fmt.Println(RenderSeparator(64))
	}

	for _, n := range list {
		title := util.TruncateRunes(displayTitle(n), 38)
		fmt.Printf("  %-38s  %-10s  %s\n", title, formatTimeAgo(n.Updated), pathStyle.Render(n.Path))
		if len(n.Tags) > 0 {
			fmt.Printf("  %s\n", tagStyle.Render("    #"+strings.Join(n.Tags, " #")))
		}
	}

	if !args.Quiet {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("%d note(s)", len(list))))
	}
	return nil
}

// displayTitle returns the note title or a placeholder.
func displayTitle(n *notes.Note) string {
	if strings.TrimSpace(n.Title) != "" {
		return n.Title
	}
	return "(untitled)"
}

// =============================================================================
// JOT CAT
// =============================================================================

// HandleCat prints a single note. Output is rendered with glamour when
// stdout is a terminal; --raw or piped output prints the file verbatim.
func HandleCat(args Args) error {
	if args.Path == "" {
		return NewValidationError("path", "", "a note path is required", "jot cat inbox/2025-06-01-standup.md")
	}

	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	n, err := env.store.Load(args.Path)
	if err != nil {
		if errors.Is(err, notes.ErrNoteNotFound) {
			return NewNotFoundError("note", args.Path)
		}
		return WrapError(err, "loading note")
	}

	if args.JSON {
		data := NoteData{
			Path:     n.Path,
			Title:    displayTitle(n),
			Notebook: n.Notebook,
			Tags:     n.Tags,
			Created:  n.Created.Format("2006-01-02 15:04"),
			Updated:  n.Updated.Format("2006-01-02 15:04"),
			Body:     n.Body,
		}
		NewJSONResponse("cat", data).Print()
		return nil
	}

	if args.RawOutput || !IsStdoutTTY() {
		data, err := os.ReadFile(filepath.Join(env.root, filepath.FromSlash(args.Path)))
		if err != nil {
			return WrapError(err, "reading note")
		}
		os.Stdout.Write(data)
		return nil
	}

	if !args.Quiet {
		fmt.Println(titleStyle.Render(displayTitle(n)))
		meta := "updated " + formatTimeAgo(n.Updated)
		if n.Notebook != "" {
			meta = n.Notebook + " · " + meta
		}
		if len(n.Tags) > 0 {
			meta += " · #" + strings.Join(n.Tags, " #")
		}
		fmt.Println(mutedStyle.Render(meta))
		fmt.Println()
	}

	width := GetTerminalWidth()
	if width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		fmt.Println(n.Body)
		return nil
	}
	out, err := r.Render(n.Body)
	if err != nil {
		fmt.Println(n.Body)
		return nil
	}
	fmt.Print(out)
	return nil
}
