// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
//
// This package handles tokenizing, resolving, validating, and executing
// slash commands typed into the note composer, along with autocomplete
// and a bounded execution history.
//
// # Key Types
//
//   - Registry: command registry with case-insensitive name and alias lookup
//   - Command: a command definition with handler, validator, and arg specs
//   - Invocation: a tokenized command line (name plus quoted-aware args)
//   - Executor: runs the tokenize/resolve/validate/execute pipeline
//   - Engine: autocomplete state machine for command and argument suggestions
//   - History: bounded in-memory log of executed commands
//
// # Built-in Commands
//
//   - /help: show available commands
//   - /note: create a note from the current draft
//   - /notebook: list or switch notebooks
//   - /tag: insert hashtags into the draft
//   - /search: full-text search across notes
//   - /remind: schedule a reminder
//   - /timestamp: insert a formatted timestamp
//   - /clear: clear the composer input
//
// # Usage
//
// Execute a command line:
//
//	res, err := exec.Execute(ctx, "/tag urgent")
//	if res.InsertContent != "" {
//	    input.SetValue(res.InsertContent)
//	}
//
// Feed the autocomplete engine:
//
//	cmd := engine.OnInput(ctx, "/note")
//	// engine.Visible() reports whether the popup should render
package commands
