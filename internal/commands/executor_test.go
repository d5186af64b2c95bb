// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// =============================================================================
// EXECUTOR TESTS
// =============================================================================

func TestExecutor_EmptyInput(t *testing.T) {
	exec := NewExecutor(NewRegistry(), NewHistory(0))

	for _, input := range []string{"", "   ", "/", "/   ", "plain text"} {
		res, err := exec.Execute(input, nil)
		if err != nil {
			t.Errorf("Execute(%q) error = %v, want nil", input, err)
		}
		if res == nil || res.Success {
			t.Errorf("Execute(%q) should return a failed result", input)
		}
		if res != nil && res.Message != "no command specified" {
			t.Errorf("Execute(%q) message = %q, want %q", input, res.Message, "no command specified")
		}
	}

	if exec.History().Len() != 0 {
		t.Errorf("empty invocations must not reach history, got %d entries", exec.History().Len())
	}
}

func TestExecutor_UnknownCommand(t *testing.T) {
	exec := NewExecutor(NewRegistry(), NewHistory(0))

	res, err := exec.Execute("/ghost now", nil)
	if err != nil {
		t.Fatalf("Execute error = %v, want nil (unknown command is a structured failure)", err)
	}
	if res.Success {
		t.Error("result.Success = true, want false")
	}

	want := `unknown command "/ghost". Type /help for available commands.`
	if res.Message != want {
		t.Errorf("message = %q, want %q", res.Message, want)
	}

	if exec.History().Len() != 0 {
		t.Errorf("unknown commands must not reach history, got %d entries", exec.History().Len())
	}
}

func TestExecutor_ValidationFailure(t *testing.T) {
	reg := NewRegistry()
	executed := false
	cmd := &Command{
		Name: "strict",
		Validate: func(args []string, ctx *Context) error {
			return errors.New("exactly two arguments required")
		},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			executed = true
			return &Result{Success: true}, nil
		},
	}
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	exec := NewExecutor(reg, NewHistory(0))

	res, err := exec.Execute("/strict one", nil)
	if err != nil {
		t.Fatalf("Execute error = %v, want nil (validation failure is a structured result)", err)
	}
	if executed {
		t.Error("Execute handler ran despite failed validation")
	}
	if res.Success {
		t.Error("result.Success = true, want false")
	}
	if res.Message != "exactly two arguments required" {
		t.Errorf("message = %q, want validator text verbatim", res.Message)
	}
	if exec.History().Len() != 0 {
		t.Errorf("invalid invocations must not reach history, got %d entries", exec.History().Len())
	}
}

func TestExecutor_Success(t *testing.T) {
	reg := NewRegistry()
	var gotArgs []string
	cmd := &Command{
		Name:    "echo",
		Aliases: []string{"e"},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			gotArgs = args
			return &Result{Success: true, Message: "echoed"}, nil
		},
	}
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	exec := NewExecutor(reg, NewHistory(0))

	res, err := exec.Execute(`/echo "a b" c`, nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if !res.Success || res.Message != "echoed" {
		t.Errorf("result = %+v, want success with message", res)
	}

	// Arguments arrive from the tokenizer verbatim.
	if len(gotArgs) != 2 || gotArgs[0] != "a b" || gotArgs[1] != "c" {
		t.Errorf("handler args = %v, want [a b, c]", gotArgs)
	}

	entries := exec.History().Entries()
	if len(entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(entries))
	}
	if entries[0].Raw != `/echo "a b" c` || !entries[0].Success {
		t.Errorf("history entry = %+v", entries[0])
	}
}

func TestExecutor_AliasAndCase(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	cmd := &Command{
		Name:    "echo",
		Aliases: []string{"e"},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			calls++
			return nil, nil
		},
	}
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	exec := NewExecutor(reg, NewHistory(0))

	for _, input := range []string{"/echo", "/ECHO", "/e", "/E"} {
		if _, err := exec.Execute(input, nil); err != nil {
			t.Errorf("Execute(%q) error = %v", input, err)
		}
	}
	if calls != 4 {
		t.Errorf("handler ran %d times, want 4", calls)
	}
}

func TestExecutor_NilResultNormalizes(t *testing.T) {
	reg := NewRegistry()
	cmd := &Command{
		Name: "quiet",
		Execute: func(args []string, ctx *Context) (*Result, error) {
			return nil, nil
		},
	}
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	exec := NewExecutor(reg, NewHistory(0))

	res, err := exec.Execute("/quiet", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if res == nil || !res.Success {
		t.Errorf("nil handler result should normalize to success, got %+v", res)
	}

	entries := exec.History().Entries()
	if len(entries) != 1 || !entries[0].Success {
		t.Errorf("history = %+v, want one successful entry", entries)
	}
}

func TestExecutor_ResultFailureMirroredInHistory(t *testing.T) {
	reg := NewRegistry()
	cmd := &Command{
		Name: "sad",
		Execute: func(args []string, ctx *Context) (*Result, error) {
			return &Result{Success: false, Message: "nothing found"}, nil
		},
	}
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	exec := NewExecutor(reg, NewHistory(0))

	res, err := exec.Execute("/sad", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if res.Success {
		t.Error("result.Success = true, want false")
	}

	entries := exec.History().Entries()
	if len(entries) != 1 || entries[0].Success {
		t.Errorf("history = %+v, want one failed entry", entries)
	}
}

func TestExecutor_HandlerError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("disk full")
	cmd := &Command{
		Name: "fail",
		Execute: func(args []string, ctx *Context) (*Result, error) {
			return nil, boom
		},
	}
	if err := reg.Register(cmd); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	exec := NewExecutor(reg, NewHistory(0))

	res, err := exec.Execute("/fail hard", nil)
	if err == nil {
		t.Fatal("Execute error = nil, want *ExecutionError")
	}
	if res != nil {
		t.Errorf("result = %+v, want nil alongside an error", res)
	}

	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error type = %T, want *ExecutionError", err)
	}
	if execErr.Command != "fail" {
		t.Errorf("ExecutionError.Command = %q, want %q", execErr.Command, "fail")
	}
	if len(execErr.Args) != 1 || execErr.Args[0] != "hard" {
		t.Errorf("ExecutionError.Args = %v, want [hard]", execErr.Args)
	}
	if !errors.Is(err, boom) {
		t.Error("errors.Is should reach the handler's error through Unwrap")
	}

	// The failure is recorded before the error propagates.
	entries := exec.History().Entries()
	if len(entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(entries))
	}
	if entries[0].Success {
		t.Error("history entry Success = true, want false")
	}
	if entries[0].Raw != "/fail hard" {
		t.Errorf("history entry Raw = %q, want %q", entries[0].Raw, "/fail hard")
	}
}

func TestExecutionError_Message(t *testing.T) {
	err := &ExecutionError{
		Command: "remind",
		Args:    []string{"10m", "call"},
		Err:     fmt.Errorf("store unavailable"),
	}

	msg := err.Error()
	for _, want := range []string{"/remind", "10m call", "store unavailable"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, should contain %q", msg, want)
		}
	}
}
