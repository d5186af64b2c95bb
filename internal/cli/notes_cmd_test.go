// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jotkit/jot-tui/internal/notes"
)

func TestNewNoteContent_FromWords(t *testing.T) {
	content, err := newNoteContent(Args{Query: "buy oat milk #errands"})
	if err != nil {
		t.Fatalf("newNoteContent: %v", err)
	}
	if content != "buy oat milk #errands" {
		t.Errorf("content = %q", content)
	}
}

func TestNewNoteContent_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.md")
	if err := os.WriteFile(path, []byte("# Draft\n\nbody text\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	content, err := newNoteContent(Args{File: path})
	if err != nil {
		t.Fatalf("newNoteContent: %v", err)
	}
	if content != "# Draft\n\nbody text\n" {
		t.Errorf("content = %q", content)
	}
}

func TestNewNoteContent_FileBeatsWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.md")
	if err := os.WriteFile(path, []byte("from file"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	content, err := newNoteContent(Args{File: path, Query: "from words"})
	if err != nil {
		t.Fatalf("newNoteContent: %v", err)
	}
	if content != "from file" {
		t.Errorf("content = %q, want the --file source to win", content)
	}
}

func TestNewNoteContent_MissingFile(t *testing.T) {
	_, err := newNoteContent(Args{File: filepath.Join(t.TempDir(), "absent.md")})
	if err == nil {
		t.Fatal("expected an error for a missing --file")
	}
}

func TestNewNoteContent_NothingToSave(t *testing.T) {
	// Test binaries run with stdin on /dev/null, so the pipe branch reads
	// nothing and the validation error fires.
	_, err := newNoteContent(Args{})
	if err == nil {
		t.Fatal("expected an error when no content source exists")
	}
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsageError)
	}
}

func TestDisplayTitle(t *testing.T) {
	if got := displayTitle(&notes.Note{Title: "Standup"}); got != "Standup" {
		t.Errorf("displayTitle = %q", got)
	}
	if got := displayTitle(&notes.Note{Title: "  "}); got != "(untitled)" {
		t.Errorf("displayTitle blank = %q", got)
	}
}

func TestHandleList_RejectsBadLimit(t *testing.T) {
	err := HandleList(Args{Raw: []string{"--limit", "0"}})
	if err == nil {
		t.Fatal("expected an error for a non-positive limit")
	}
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsageError)
	}
}

func TestHandleCat_RequiresPath(t *testing.T) {
	err := HandleCat(Args{})
	if err == nil {
		t.Fatal("expected an error when no path is given")
	}
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsageError)
	}
}

func TestHandleNewAndList_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()

	args := Args{Vault: root, Quiet: true, Query: "grocery run #errands"}
	if err := HandleNew(args); err != nil {
		t.Fatalf("HandleNew: %v", err)
	}

	list, err := notes.NewStore(root).List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d notes, want 1", len(list))
	}
	if list[0].Title != "grocery run #errands" {
		t.Errorf("title = %q", list[0].Title)
	}
	if len(list[0].Tags) != 1 || list[0].Tags[0] != "errands" {
		t.Errorf("tags = %v", list[0].Tags)
	}
	if time.Since(list[0].Created) > time.Minute {
		t.Errorf("created timestamp looks stale: %v", list[0].Created)
	}
}
