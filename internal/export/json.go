// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders notes into shareable formats.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jotkit/jot-tui/internal/notes"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports notes to JSON format.
// NOTE: JSON exports always include the complete note, metadata and all,
// and do not respect filtering options. This keeps the exported JSON a
// faithful representation that other tools can re-import.
type JSONExporter struct {
	// Options are accepted but currently not used for filtering.
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
// The options parameter is accepted for consistency with other exporters,
// but JSON exports always include complete note data.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// noteJSON is the wire form of one exported note.
type noteJSON struct {
	ID       string    `json:"id,omitempty"`
	Title    string    `json:"title"`
	Notebook string    `json:"notebook,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
	Path     string    `json:"path,omitempty"`
	Body     string    `json:"body"`
}

// notebookJSON is the wire form of a whole-notebook export.
type notebookJSON struct {
	Notebook string     `json:"notebook"`
	Exported time.Time  `json:"exported"`
	Count    int        `json:"count"`
	Notes    []noteJSON `json:"notes"`
}

// ExportNote converts a note to JSON format.
func (e *JSONExporter) ExportNote(n *notes.Note) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("note is nil")
	}
	return json.MarshalIndent(toNoteJSON(n), "", "  ")
}

// ExportNotebook converts a notebook's notes to a JSON document.
func (e *JSONExporter) ExportNotebook(notebook string, ns []*notes.Note) ([]byte, error) {
	if notebook == "" {
		return nil, fmt.Errorf("notebook name is empty")
	}
	if len(ns) == 0 {
		return nil, fmt.Errorf("notebook %q has no notes", notebook)
	}

	doc := notebookJSON{
		Notebook: notebook,
		Exported: time.Now().UTC(),
		Notes:    make([]noteJSON, 0, len(ns)),
	}
	for _, n := range ns {
		if n == nil {
			continue
		}
		doc.Notes = append(doc.Notes, toNoteJSON(n))
	}
	doc.Count = len(doc.Notes)

	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}

// toNoteJSON maps a note onto its wire form.
func toNoteJSON(n *notes.Note) noteJSON {
	return noteJSON{
		ID:       n.ID,
		Title:    n.Title,
		Notebook: n.Notebook,
		Tags:     n.Tags,
		Created:  n.Created,
		Updated:  n.Updated,
		Path:     n.Path,
		Body:     n.Body,
	}
}
