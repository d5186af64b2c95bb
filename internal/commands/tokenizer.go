// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"strings"
	"unicode"
)

// Marker is the prefix that turns composer input into a command line.
const Marker = "/"

// =============================================================================
// TYPES
// =============================================================================

// Invocation is a tokenized command line.
type Invocation struct {
	Name string   // first token as typed, without the marker
	Args []string // remaining tokens with quoting resolved, case preserved
}

// =============================================================================
// TOKENIZER
// =============================================================================

// IsCommand reports whether the input should be treated as a slash command.
// Leading whitespace is ignored; anything starting with the marker qualifies.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), Marker)
}

// Tokenize splits a raw command line into a command name and arguments.
//
// The first token after the marker becomes the name; remaining tokens become
// arguments. Neither is lower-cased here, lookup folds case instead. Single
// and double quotes group whitespace into a single argument; the quote
// characters themselves are dropped, and an unterminated quote consumes the
// rest of the line as one literal token. Empty tokens are discarded.
//
// Input that is not a command (see IsCommand) yields a zero Invocation, as
// does a bare marker with nothing after it.
func Tokenize(raw string) Invocation {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, Marker) {
		return Invocation{}
	}

	tokens := splitQuoted(trimmed[len(Marker):])
	if len(tokens) == 0 {
		return Invocation{}
	}

	inv := Invocation{Name: tokens[0]}
	if len(tokens) > 1 {
		inv.Args = tokens[1:]
	}
	return inv
}

// splitQuoted splits a string on whitespace, honoring single and double
// quotes. Quote characters never appear in the output and empty tokens are
// dropped.
func splitQuoted(s string) []string {
	var tokens []string
	var current strings.Builder
	inQuote := false
	var quoteChar rune

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case inQuote && r == quoteChar:
			inQuote = false
		case !inQuote && (r == '"' || r == '\''):
			inQuote = true
			quoteChar = r
		case !inQuote && unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}
