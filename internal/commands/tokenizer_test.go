// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"testing"
)

// =============================================================================
// TOKENIZER TESTS
// =============================================================================

func TestIsCommand(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/help", true},
		{"/tag urgent", true},
		{"  /help", true},
		{"hello", false},
		{"hello /help", false},
		{"", false},
		{"   ", false},
		{"/", true},
	}

	for _, tc := range tests {
		if got := IsCommand(tc.input); got != tc.want {
			t.Errorf("IsCommand(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		wantName string
		wantArgs []string
	}{
		{"/help", "help", nil},
		{"/tag urgent", "tag", []string{"urgent"}},
		{`/tag "work stuff" urgent`, "tag", []string{"work stuff", "urgent"}},
		{`/tag 'work stuff' urgent`, "tag", []string{"work stuff", "urgent"}},
		{`/search "it's here"`, "search", []string{"it's here"}},
		{`/search 'say "hi"'`, "search", []string{`say "hi"`}},
		{"/remind 10m call the dentist", "remind", []string{"10m", "call", "the", "dentist"}},
		{"  /help  ", "help", nil},
		{"/tag   a    b", "tag", []string{"a", "b"}},
		{"hello world", "", nil},
		{"", "", nil},
		{"/", "", nil},
		{"/   ", "", nil},
	}

	for _, tc := range tests {
		got := Tokenize(tc.input)
		if got.Name != tc.wantName {
			t.Errorf("Tokenize(%q).Name = %q, want %q", tc.input, got.Name, tc.wantName)
		}
		if len(got.Args) != len(tc.wantArgs) {
			t.Errorf("Tokenize(%q).Args = %v, want %v", tc.input, got.Args, tc.wantArgs)
			continue
		}
		for i := range got.Args {
			if got.Args[i] != tc.wantArgs[i] {
				t.Errorf("Tokenize(%q).Args[%d] = %q, want %q", tc.input, i, got.Args[i], tc.wantArgs[i])
			}
		}
	}
}

func TestTokenize_PreservesCase(t *testing.T) {
	got := Tokenize("/TAG Foo BAR")

	// The tokenizer leaves case alone; lookup folds it instead.
	if got.Name != "TAG" {
		t.Errorf("Name = %q, want %q", got.Name, "TAG")
	}
	if len(got.Args) != 2 || got.Args[0] != "Foo" || got.Args[1] != "BAR" {
		t.Errorf("Args = %v, want [Foo BAR]", got.Args)
	}
}

func TestTokenize_UnterminatedQuote(t *testing.T) {
	tests := []struct {
		input    string
		wantArgs []string
	}{
		{`/search "unterminated quote`, []string{"unterminated quote"}},
		{`/search 'still going on`, []string{"still going on"}},
		{`/tag a "b c`, []string{"a", "b c"}},
	}

	for _, tc := range tests {
		got := Tokenize(tc.input)
		if len(got.Args) != len(tc.wantArgs) {
			t.Errorf("Tokenize(%q).Args = %v, want %v", tc.input, got.Args, tc.wantArgs)
			continue
		}
		for i := range got.Args {
			if got.Args[i] != tc.wantArgs[i] {
				t.Errorf("Tokenize(%q).Args[%d] = %q, want %q", tc.input, i, got.Args[i], tc.wantArgs[i])
			}
		}
	}
}

func TestTokenize_QuoteEdges(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantArgs []string
	}{
		{"empty quoted token dropped", `/tag "" x`, []string{"x"}},
		{"quotes glue into one token", `/tag pre"mid dle"post`, []string{"premid dlepost"}},
		{"quote closes mid word", `/note it"s`, []string{"its"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input)
			if len(got.Args) != len(tc.wantArgs) {
				t.Fatalf("Tokenize(%q).Args = %v, want %v", tc.input, got.Args, tc.wantArgs)
			}
			for i := range got.Args {
				if got.Args[i] != tc.wantArgs[i] {
					t.Errorf("Tokenize(%q).Args[%d] = %q, want %q", tc.input, i, got.Args[i], tc.wantArgs[i])
				}
			}
		})
	}
}
