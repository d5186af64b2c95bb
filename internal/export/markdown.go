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
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports notes to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// ExportNote converts a note to Markdown. With metadata enabled the output is
// the note's own file form, frontmatter fence plus body, so a round trip
// through ParseNote loses nothing. Without metadata only the body survives.
func (e *MarkdownExporter) ExportNote(n *notes.Note) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("note is nil")
	}

	if !e.options.IncludeMetadata {
		return []byte(strings.TrimSpace(n.Body) + "\n"), nil
	}
	return notes.ComposeNote(n)
}

// ExportNotebook converts a notebook's notes into one Markdown document.
// Each note becomes a second-level section; frontmatter is flattened into a
// metadata list because fence blocks mid-document break rendering.
func (e *MarkdownExporter) ExportNotebook(notebook string, ns []*notes.Note) ([]byte, error) {
	if notebook == "" {
		return nil, fmt.Errorf("notebook name is empty")
	}
	if len(ns) == 0 {
		return nil, fmt.Errorf("notebook %q has no notes", notebook)
	}

	var sb strings.Builder

	// Title
	sb.WriteString(fmt.Sprintf("# %s\n\n", escapeMarkdown(notebook)))
	if e.options.IncludeMetadata {
		sb.WriteString(fmt.Sprintf("%d notes, exported %s\n\n", len(ns), formatTimestamp(time.Now())))
	}

	// Notes
	for i, n := range ns {
		if n == nil {
			continue
		}

		sb.WriteString(fmt.Sprintf("## %s\n\n", escapeMarkdown(noteHeading(n))))

		if e.options.IncludeMetadata {
			if meta := e.formatNoteMeta(n); meta != "" {
				sb.WriteString(meta)
				sb.WriteString("\n")
			}
		}

		if body := strings.TrimSpace(n.Body); body != "" {
			sb.WriteString(body)
			sb.WriteString("\n\n")
		}

		// Separator between notes (except last)
		if i < len(ns)-1 {
			sb.WriteString("---\n\n")
		}
	}

	// Footer
	sb.WriteString(fmt.Sprintf("\n---\n\n*Exported from jot on %s*\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// formatNoteMeta renders a note's metadata as a bullet list.
func (e *MarkdownExporter) formatNoteMeta(n *notes.Note) string {
	var sb strings.Builder

	if n.Notebook != "" {
		sb.WriteString(fmt.Sprintf("- **Notebook**: %s\n", n.Notebook))
	}
	if !n.Created.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Created**: %s\n", formatTimestamp(n.Created)))
	}
	if !n.Updated.IsZero() {
		sb.WriteString(fmt.Sprintf("- **Updated**: %s\n", formatTimestamp(n.Updated)))
	}
	if len(n.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("- **Tags**: %s\n", strings.Join(n.Tags, ", ")))
	}

	return sb.String()
}

// noteHeading picks a display heading for a note inside a combined document.
func noteHeading(n *notes.Note) string {
	if n.Title != "" {
		return n.Title
	}
	if t := notes.DeriveTitle(n.Body); t != "" {
		return t
	}
	return "Untitled"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	// Only escape characters that would break formatting in titles/headings
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}
