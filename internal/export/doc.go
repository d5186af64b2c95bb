// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders notes into shareable formats.
//
// Notes export individually or as whole notebooks. Markdown output with
// metadata enabled is the note's own file form, frontmatter plus body, so it
// round-trips through the vault parser. HTML output is a standalone document
// with embedded styling, the body rendered through goldmark. JSON output
// always carries the complete note.
//
// # Key Types
//
//   - Format: export format enumeration (markdown, html, json)
//   - Exporter: per-format rendering interface
//   - Options: export configuration options
//
// # Supported Formats
//
//   - Markdown: the note's vault file form, re-importable
//   - HTML: styled for viewing in browsers
//   - JSON: machine-readable with full metadata
//
// # Usage
//
// Render a note and write it somewhere specific:
//
//	data, err := export.ExportNote(note, export.FormatHTML, nil)
//	if err != nil {
//	    return err
//	}
//	err = export.Write("out/note.html", data)
//
// Or let the package derive a timestamped filename:
//
//	path, err := export.ExportNoteToFile(note, export.FormatMarkdown, opts)
package export
