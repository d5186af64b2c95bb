// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/jotkit/jot-tui/internal/notes"
)

// =============================================================================
// JOT NOTEBOOKS
// =============================================================================

// HandleNotebooks lists notebooks by default; the "create" and "use" verbs
// add a notebook and switch the active one.
func HandleNotebooks(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "":
		return listNotebooks(args)
	case "create":
		return createNotebook(args, JoinPositionalArgs(parser, 1))
	case "use":
		return useNotebook(args, parser.Positional(1))
	default:
		return NewValidationError("verb", parser.Subcommand(), "expected create or use", "jot notebooks create work")
	}
}

func listNotebooks(args Args) error {
	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	books, err := env.store.ListNotebooks()
	if err != nil {
		return WrapError(err, "listing notebooks")
	}
	active := env.store.ActiveNotebook()

	if args.JSON {
		data := NotebooksData{Notebooks: make([]NotebookData, 0, len(books)), Active: active}
		for _, b := range books {
			data.Notebooks = append(data.Notebooks, NotebookData{
				ID:        b.ID,
				Name:      b.Name,
				NoteCount: b.NoteCount,
				Active:    b.ID == active,
			})
		}
		NewJSONResponse("notebooks", data).Print()
		return nil
	}

	if len(books) == 0 {
		fmt.Println("No notebooks yet. Create one with 'jot notebooks create <name>'.")
		return nil
	}

	for _, b := range books {
		marker := " "
		if b.ID == active {
			marker = successStyle.Render("*")
		}
		fmt.Printf("%s %-24s %s\n", marker, b.Name, mutedStyle.Render(fmt.Sprintf("%d note(s)", b.NoteCount)))
	}
	return nil
}

func createNotebook(args Args, name string) error {
	if name == "" {
		return NewValidationError("name", "", "a notebook name is required", "jot notebooks create work")
	}

	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.store.CreateNotebook(name); err != nil {
		if errors.Is(err, notes.ErrNotebookExists) {
			return NewValidationError("name", name, "notebook already exists", "")
		}
		return WrapError(err, "creating notebook")
	}

	if args.JSON {
		NewJSONResponse("notebooks", NotebookData{ID: name, Name: name}).Print()
		return nil
	}
	fmt.Printf("%s notebook %s\n", successStyle.Render("Created"), valueStyle.Render(name))
	return nil
}

func useNotebook(args Args, id string) error {
	if id == "" {
		return NewValidationError("notebook", "", "a notebook id is required", "jot notebooks use work")
	}

	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	if err := env.store.SetActiveNotebook(id); err != nil {
		if errors.Is(err, notes.ErrNotebookNotFound) {
			return NewNotFoundError("notebook", id)
		}
		return WrapError(err, "switching notebook")
	}

	if args.JSON {
		NewJSONResponse("notebooks", NotebookData{ID: id, Name: id, Active: true}).Print()
		return nil
	}
	fmt.Printf("Active notebook is now %s\n", valueStyle.Render(id))
	return nil
}
