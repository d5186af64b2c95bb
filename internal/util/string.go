// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for jot.
package util

import "github.com/mattn/go-runewidth"

// TruncateRunes truncates s to at most maxRunes characters, appending
// "..." when anything was cut. Counting runes instead of bytes keeps
// multi-byte UTF-8 sequences intact.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// TruncateWidth truncates s to at most maxWidth terminal columns,
// appending "..." when anything was cut. Wide East Asian characters
// count as two columns, so this keeps table layouts aligned where
// TruncateRunes would not.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// ClipWidth truncates s to at most maxWidth terminal columns without an
// ellipsis, for badges and other fixed-width cells.
func ClipWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, "")
}
