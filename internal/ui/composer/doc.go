// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package composer provides the main composition view for the jot TUI.

The composer package implements the note-taking screen using the Bubble Tea
framework: a draft pane, a single-line composition input, and the slash
command interpreter that drives everything else.

# Key Components

## Model (model.go)

The Model struct is the central Bubble Tea model that maintains all
composition state:
  - The draft: committed lines plus the line being typed
  - Input handling through a bubbles textinput
  - Viewport for scrolling long drafts and previews
  - The suggestion engine and its popup
  - Banners, the status bar, and the feedback line

## Update Loop (update.go)

Handles all Bubble Tea messages and user interactions:
  - Keyboard input processing with a strict priority order
    (overlays, then suggestions, then global shortcuts, then the input)
  - Command execution results
  - Reminder ticks and due reminders
  - Banner expiry ticks
  - Window resize handling

## Command Dispatch (input.go)

Enter on a line starting with the command marker sends it through the
command executor in a tea.Cmd; the resulting ExecDoneMsg applies the
execution result: inserted content replaces the input, notes are persisted
through the store, feedback lands on the feedback line, and a handler
failure raises a dismissible banner without ending the session. Enter on
plain text commits the line to the draft.

## View Rendering (view.go)

Rendering logic for the complete composition screen:
  - Header with the vault brand and active notebook
  - Draft pane, or a markdown preview of it (Ctrl+P)
  - Suggestion popup stacked above the input
  - Feedback line for command results
  - Status bar with notebook, draft stats, index state, and reminders
  - Help overlay (F1) and banner overlay

# Usage

Create a new composer model and run it as a Bubble Tea program:

	theme := styles.NewTheme()
	model := composer.New(theme, composer.Options{
		Config:    cfg,
		Store:     store,
		Index:     idx,
		Scheduler: sched,
		Registry:  reg,
		Executor:  exec,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
*/
package composer
