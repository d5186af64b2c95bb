// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// EXIT CODES
// =============================================================================

// Exit codes are part of jot's scripting surface. GetExitCode maps handler
// errors onto them so shell callers can branch on failure class.
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitUsageError    = 2
	ExitConfigError   = 3
	ExitVaultError    = 4
	ExitIndexError    = 5
	ExitNotFoundError = 6
)

// ErrMissingArgument is returned when a command needs an argument the user
// did not supply.
var ErrMissingArgument = errors.New("missing required argument")

// =============================================================================
// TYPED ERRORS
// =============================================================================

// CommandError wraps a failure inside a command handler with enough context
// to say which command and which step failed.
type CommandError struct {
	Command string // command name ("export", "index")
	Action  string // what was being attempted ("render note", "open database")
	Reason  string // short human explanation
	Err     error  // underlying cause, may be nil
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("jot %s: %s", e.Command, e.Action)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError builds a CommandError.
func NewCommandError(command, action, reason string, err error) *CommandError {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// ValidationError reports user input that failed validation, with an example
// of correct usage when one helps.
type ValidationError struct {
	Field   string // which input ("path", "format", "duration")
	Value   string // what the user typed
	Reason  string // why it was rejected
	Example string // valid usage, may be empty
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	if e.Example != "" {
		msg += fmt.Sprintf(" (example: %s)", e.Example)
	}
	return msg
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, value, reason, example string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason, Example: example}
}

// NotFoundError reports a missing note, notebook, or other vault resource.
type NotFoundError struct {
	Resource string // "note", "notebook", "config key"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError builds a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode maps an error to the exit code main should use. Typed errors
// map precisely; everything else falls back to message inspection and then
// to the general error code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		return ExitNotFoundError
	}

	var validation *ValidationError
	if errors.As(err, &validation) {
		return ExitUsageError
	}

	if errors.Is(err, ErrMissingArgument) {
		return ExitUsageError
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "config"):
		return ExitConfigError
	case strings.Contains(msg, "vault"):
		return ExitVaultError
	case strings.Contains(msg, "index"):
		return ExitIndexError
	}

	return ExitGeneralError
}

// WrapError adds context to an error while preserving the chain for
// errors.Is and errors.As.
func WrapError(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
