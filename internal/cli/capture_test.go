// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"sort"
	"strings"
	"testing"

	"github.com/jotkit/jot-tui/internal/commands"
)

func newTestRegistry(t *testing.T) *commands.Registry {
	t.Helper()
	reg := commands.NewRegistry()
	if err := commands.RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}
	return reg
}

func TestCaptureCompleter_CompletesCommandNames(t *testing.T) {
	complete := captureCompleter(newTestRegistry(t))

	got := complete("/he")
	if len(got) == 0 {
		t.Fatal("expected completions for /he")
	}
	found := false
	for _, c := range got {
		if c == "/help " {
			found = true
		}
		if !strings.HasPrefix(c, "/he") {
			t.Errorf("completion %q does not extend the prefix", c)
		}
	}
	if !found {
		t.Errorf("completions %v should include %q", got, "/help ")
	}
}

func TestCaptureCompleter_IncludesAliases(t *testing.T) {
	complete := captureCompleter(newTestRegistry(t))

	got := complete("/nb")
	found := false
	for _, c := range got {
		if c == "/nb " {
			found = true
		}
	}
	if !found {
		t.Errorf("completions %v should include the /nb alias", got)
	}
}

func TestCaptureCompleter_IgnoresPlainText(t *testing.T) {
	complete := captureCompleter(newTestRegistry(t))

	if got := complete("note about lunch"); got != nil {
		t.Errorf("plain text should not complete, got %v", got)
	}
	if got := complete(""); got != nil {
		t.Errorf("empty input should not complete, got %v", got)
	}
}

func TestCaptureCompleter_SortedOutput(t *testing.T) {
	complete := captureCompleter(newTestRegistry(t))

	got := complete("/")
	if len(got) < 5 {
		t.Fatalf("expected the full command list for bare marker, got %d entries", len(got))
	}
	if !sort.StringsAreSorted(got) {
		t.Errorf("completions should be sorted: %v", got)
	}
}

func TestCaptureHistoryPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := captureHistoryPath()
	if path == "" {
		t.Fatal("history path should never be empty")
	}
	if !strings.Contains(path, "capture_history") {
		t.Errorf("history path %q should name the capture history file", path)
	}
}
