// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import "strings"

// =============================================================================
// COMMAND SUGGESTIONS
// =============================================================================

// validCommands lists every command and alias Parse understands, used for
// did-you-mean suggestions on typos.
var validCommands = []string{
	"new", "add",
	"list", "ls",
	"search", "find",
	"tags",
	"notebooks", "nb",
	"remind",
	"reminders",
	"capture", "cap",
	"cat", "show",
	"export",
	"index",
	"config",
	"doctor",
	"version",
	"help",
}

// SuggestCommand returns the closest known command to input, or "" when
// nothing is close enough to suggest. Exact matches also return "" since
// there is nothing to correct.
func SuggestCommand(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if len(input) < 2 {
		return ""
	}

	// Longer inputs tolerate more edits before a suggestion stops being
	// plausible.
	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := maxDistance + 1

	for _, cmd := range validCommands {
		if cmd == input {
			return ""
		}
		distance := levenshteinDistance(input, cmd)
		if distance < bestDistance {
			bestDistance = distance
			bestMatch = cmd
		}
	}

	if bestDistance <= maxDistance {
		return bestMatch
	}
	return ""
}

// levenshteinDistance computes the edit distance between two strings using
// the two-row dynamic programming formulation.
func levenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
