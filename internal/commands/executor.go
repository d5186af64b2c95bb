// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"fmt"
)

// =============================================================================
// EXECUTOR
// =============================================================================

// Executor runs the tokenize, resolve, validate, execute pipeline and
// records executions in the history log.
type Executor struct {
	registry *Registry
	history  *History
}

// NewExecutor returns an executor over the given registry. A nil history
// gets a default-capacity log.
func NewExecutor(reg *Registry, hist *History) *Executor {
	if hist == nil {
		hist = NewHistory(0)
	}
	return &Executor{registry: reg, history: hist}
}

// History exposes the executor's log for rendering.
func (e *Executor) History() *History {
	return e.history
}

// Execute runs one raw command line to completion.
//
// Empty input, an unknown command, and a failed validation all come back as
// failed Results with a nil error; none of them reaches the history log.
// Only a handler failure returns an error, a *ExecutionError wrapping the
// handler's, and the history entry is appended before it propagates. When
// the handler returns normally the history entry mirrors the result's own
// Success flag, and a nil result normalizes to plain success.
func (e *Executor) Execute(raw string, ctx *Context) (*Result, error) {
	inv := Tokenize(raw)
	if inv.Name == "" {
		return &Result{Success: false, Message: "no command specified"}, nil
	}

	cmd := e.registry.Get(inv.Name)
	if cmd == nil {
		return &Result{
			Success: false,
			Message: fmt.Sprintf("unknown command %q. Type %shelp for available commands.", Marker+inv.Name, Marker),
		}, nil
	}

	if cmd.Validate != nil {
		if err := cmd.Validate(inv.Args, ctx); err != nil {
			return &Result{Success: false, Message: err.Error()}, nil
		}
	}

	res, err := cmd.Execute(inv.Args, ctx)
	if err != nil {
		e.history.Append(raw, false)
		return nil, &ExecutionError{Command: cmd.Name, Args: inv.Args, Err: err}
	}

	if res == nil {
		res = &Result{Success: true}
	}
	e.history.Append(raw, res.Success)
	return res, nil
}
