// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders notes into shareable formats.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jotkit/jot-tui/internal/notes"
)

// =============================================================================
// DRAFT CONVERSION
// =============================================================================

// DraftNote builds an unsaved note from raw editor content. This lets drafts
// that were never persisted to the vault travel through the same export path
// as stored notes.
func DraftNote(content, notebook string) *notes.Note {
	now := time.Now().UTC().Truncate(time.Second)
	return &notes.Note{
		Title:    notes.DeriveTitle(content),
		Notebook: notebook,
		Created:  now,
		Updated:  now,
		Body:     content,
	}
}

// ExportDraft renders raw editor content directly, parsing the format name.
// This is a convenience function that combines conversion and export.
func ExportDraft(content, notebook, format string, opts *Options) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("draft is empty")
	}

	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}

	return ExportNoteToFile(DraftNote(content, notebook), f, opts)
}
