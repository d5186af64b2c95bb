// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders notes into shareable formats.
package export

import (
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jotkit/jot-tui/internal/logger"
	"github.com/jotkit/jot-tui/internal/notes"
	"github.com/jotkit/jot-tui/internal/util"
)

// =============================================================================
// FORMATS
// =============================================================================

// Format identifies an export output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// ParseFormat resolves a user-supplied format name. Matching is
// case-insensitive and accepts the common aliases "md" and "htm".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format: %q (want markdown, html, or json)", s)
	}
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter renders notes into one target format.
type Exporter interface {
	// ExportNote converts a single note and returns the content.
	ExportNote(n *notes.Note) ([]byte, error)

	// ExportNotebook converts a notebook's notes into one combined document.
	ExportNotebook(notebook string, ns []*notes.Note) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".md", ".html").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// New returns the exporter for a format.
func New(format Format, opts *Options) (Exporter, error) {
	switch format {
	case FormatMarkdown:
		return NewMarkdownExporter(opts), nil
	case FormatHTML:
		return NewHTMLExporter(opts), nil
	case FormatJSON:
		return NewJSONExporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %q", string(format))
	}
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where ExportNoteToFile and
	// ExportNotebookToFile write.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeMetadata carries note metadata (frontmatter, timestamps, tags)
	// into the output. JSON exports always include the complete note.
	IncludeMetadata bool

	// Theme for HTML export ("light" or "dark").
	// Default: "dark"
	Theme string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:       ".",
		OpenAfterExport: false,
		IncludeMetadata: true,
		Theme:           "dark",
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportNote renders one note in the given format.
func ExportNote(n *notes.Note, format Format, opts *Options) ([]byte, error) {
	exporter, err := New(format, opts)
	if err != nil {
		return nil, err
	}
	return exporter.ExportNote(n)
}

// ExportNotebook renders a notebook's notes into one combined document.
func ExportNotebook(notebook string, ns []*notes.Note, format Format, opts *Options) ([]byte, error) {
	exporter, err := New(format, opts)
	if err != nil {
		return nil, err
	}
	return exporter.ExportNotebook(notebook, ns)
}

// Write writes exported content to a path, creating parent directories as
// needed. The write is atomic: a crash mid-export never leaves a truncated
// file behind.
func Write(outputPath string, data []byte) error {
	return util.AtomicWriteFile(outputPath, data, 0644)
}

// ExportNoteToFile renders a note and writes it under opts.OutputDir with a
// derived filename. Returns the output file path.
func ExportNoteToFile(n *notes.Note, format Format, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	exporter, err := New(format, opts)
	if err != nil {
		return "", err
	}

	content, err := exporter.ExportNote(n)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := exportFilename(sanitizeFilename(noteBaseName(n)), exporter.FileExtension())
	return writeExport(filepath.Join(opts.OutputDir, filename), content, opts)
}

// ExportNotebookToFile renders a notebook and writes it under opts.OutputDir.
// Returns the output file path.
func ExportNotebookToFile(notebook string, ns []*notes.Note, format Format, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	exporter, err := New(format, opts)
	if err != nil {
		return "", err
	}

	content, err := exporter.ExportNotebook(notebook, ns)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	filename := exportFilename("notebook_"+sanitizeFilename(notebook), exporter.FileExtension())
	return writeExport(filepath.Join(opts.OutputDir, filename), content, opts)
}

// writeExport writes content and optionally opens it afterwards.
func writeExport(outputPath string, content []byte, opts *Options) (string, error) {
	if err := Write(outputPath, content); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			// Non-fatal: the file was still written.
			logger.Warn("could not open exported file", "path", outputPath, "error", err)
		}
	}

	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// exportFilename builds a timestamped output filename from a sanitized stem.
func exportFilename(stem, ext string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s%s", stem, timestamp, ext)
}

// noteBaseName picks the exported file's stem: the note's own filename when
// it has one, otherwise its title.
func noteBaseName(n *notes.Note) string {
	if n == nil {
		return ""
	}
	if n.Path != "" {
		base := path.Base(n.Path)
		return strings.TrimSuffix(base, path.Ext(base))
	}
	return n.Title
}

// sanitizeFilename removes or replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	// Limit length
	maxLen := 50
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	// Replace problematic characters (Windows and Unix)
	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := []rune{}
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			// Replace control characters
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	if len(result) == 0 {
		return "note"
	}

	return string(result)
}

// openFile opens a file in the default application for the OS.
func openFile(filePath string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// Quoted empty string is the window title; the path must come last.
		cmd = exec.Command("cmd", "/c", "start", `""`, filePath)
	case "darwin":
		cmd = exec.Command("open", filePath)
	case "linux":
		cmd = exec.Command("xdg-open", filePath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
