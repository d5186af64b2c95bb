// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"fmt"
	"strings"
)

// =============================================================================
// REGISTRATION ERRORS
// =============================================================================

// RegistrationError reports a rejected Register call. Collisions carry the
// contested name or alias in Conflict.
type RegistrationError struct {
	Name     string // command being registered, as given
	Conflict string // lower-cased name or alias that caused the rejection
	Message  string
}

func (e *RegistrationError) Error() string {
	if e.Conflict != "" {
		return fmt.Sprintf("register %s%s: %q %s", Marker, e.Name, e.Conflict, e.Message)
	}
	if e.Name != "" {
		return fmt.Sprintf("register %s%s: %s", Marker, e.Name, e.Message)
	}
	return "register: " + e.Message
}

// =============================================================================
// EXECUTION ERRORS
// =============================================================================

// ExecutionError wraps an error returned by a command handler. Structured
// failures (unknown command, failed validation) never take this path; they
// come back as Results.
type ExecutionError struct {
	Command string   // canonical name of the command that failed
	Args    []string // arguments it was invoked with
	Err     error
}

func (e *ExecutionError) Error() string {
	if len(e.Args) > 0 {
		return fmt.Sprintf("command %s%s %s: %v", Marker, e.Command, strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("command %s%s: %v", Marker, e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
