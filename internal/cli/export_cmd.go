// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/jotkit/jot-tui/internal/export"
	"github.com/jotkit/jot-tui/internal/notes"
)

// =============================================================================
// JOT EXPORT
// =============================================================================

// HandleExport renders a note, or a whole notebook with -n, into another
// format on disk.
func HandleExport(args Args) error {
	if args.Path == "" && args.Notebook == "" {
		return NewValidationError("path", "",
			"a note path or -n <notebook> is required", "jot export inbox/idea.md --format html")
	}

	formatName := args.Format
	if formatName == "" {
		formatName = "markdown"
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return NewValidationError("format", formatName, "unsupported format", "jot export idea.md --format html")
	}

	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	opts := export.DefaultOptions()
	if args.Output != "" {
		opts.OutputDir = args.Output
	}
	if env.cfg.UI.Theme == "light" {
		opts.Theme = "light"
	}

	var source, outPath string
	if args.Path != "" {
		source = args.Path
		n, loadErr := env.store.Load(args.Path)
		if loadErr != nil {
			if errors.Is(loadErr, notes.ErrNoteNotFound) {
				return NewNotFoundError("note", args.Path)
			}
			return WrapError(loadErr, "loading note")
		}
		outPath, err = export.ExportNoteToFile(n, format, opts)
	} else {
		source = args.Notebook
		ns, listErr := env.store.List(args.Notebook)
		if listErr != nil {
			if errors.Is(listErr, notes.ErrNotebookNotFound) {
				return NewNotFoundError("notebook", args.Notebook)
			}
			return WrapError(listErr, "listing notebook")
		}
		if len(ns) == 0 {
			return NewValidationError("notebook", args.Notebook, "notebook has no notes to export", "")
		}
		outPath, err = export.ExportNotebookToFile(args.Notebook, ns, format, opts)
	}
	if err != nil {
		return NewCommandError("export", "writing output", "", err)
	}

	var size int64
	if info, statErr := os.Stat(outPath); statErr == nil {
		size = info.Size()
	}

	if args.JSON {
		NewJSONResponse("export", ExportData{
			Source: source,
			Output: outPath,
			Format: string(format),
			Size:   size,
		}).Print()
		return nil
	}

	if args.Quiet {
		fmt.Println(outPath)
		return nil
	}

	fmt.Printf("%s Exported %s to %s %s\n",
		RenderStatus("ok"),
		valueStyle.Render(source),
		pathStyle.Render(outPath),
		mutedStyle.Render("("+formatBytes(size)+")"))
	return nil
}
