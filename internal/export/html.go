// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders notes into shareable formats.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jotkit/jot-tui/internal/notes"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports notes to standalone HTML documents with embedded CSS.
// Note bodies render through goldmark with the GitHub-flavored extensions, so
// tables, strikethrough, and task lists come out as real markup. The default
// renderer keeps raw HTML in note bodies escaped.
type HTMLExporter struct {
	options *Options
	md      goldmark.Markdown
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{
		options: opts,
		md:      goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// ExportNote converts a note to a standalone HTML document.
func (e *HTMLExporter) ExportNote(n *notes.Note) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("note is nil")
	}

	body, err := e.renderBody(n.Body)
	if err != nil {
		return nil, err
	}

	title := noteHeading(n)

	var sb strings.Builder
	e.writeHead(&sb, title, n.Created)

	sb.WriteString("    <div class=\"container\">\n")
	if e.options.IncludeMetadata {
		e.writeHeader(&sb, title, e.noteMetaItems(n))
	}
	sb.WriteString("        <main class=\"note\">\n")
	sb.WriteString(body)
	sb.WriteString("        </main>\n")
	e.writeFooter(&sb)
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// ExportNotebook converts a notebook's notes into one HTML document.
func (e *HTMLExporter) ExportNotebook(notebook string, ns []*notes.Note) ([]byte, error) {
	if notebook == "" {
		return nil, fmt.Errorf("notebook name is empty")
	}
	if len(ns) == 0 {
		return nil, fmt.Errorf("notebook %q has no notes", notebook)
	}

	var sb strings.Builder
	e.writeHead(&sb, notebook, time.Now())

	sb.WriteString("    <div class=\"container\">\n")
	if e.options.IncludeMetadata {
		e.writeHeader(&sb, notebook, []string{fmt.Sprintf("<strong>Notes:</strong> %d", len(ns))})
	}

	sb.WriteString("        <main class=\"notes\">\n")
	for _, n := range ns {
		if n == nil {
			continue
		}
		body, err := e.renderBody(n.Body)
		if err != nil {
			return nil, err
		}

		sb.WriteString("            <article class=\"note\">\n")
		sb.WriteString(fmt.Sprintf("                <h2>%s</h2>\n", html.EscapeString(noteHeading(n))))
		if e.options.IncludeMetadata {
			if items := e.noteMetaItems(n); len(items) > 0 {
				sb.WriteString("                <div class=\"metadata\">\n")
				for _, item := range items {
					sb.WriteString(fmt.Sprintf("                    <span class=\"meta-item\">%s</span>\n", item))
				}
				sb.WriteString("                </div>\n")
			}
		}
		sb.WriteString(body)
		sb.WriteString("            </article>\n")
	}
	sb.WriteString("        </main>\n")

	e.writeFooter(&sb)
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

// renderBody converts markdown note content to HTML via goldmark.
func (e *HTMLExporter) renderBody(body string) (string, error) {
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// writeHead writes the document head with embedded CSS and opens the body.
func (e *HTMLExporter) writeHead(sb *strings.Builder, title string, created time.Time) {
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString("    <meta name=\"generator\" content=\"jot\">\n")
	if !created.IsZero() {
		sb.WriteString(fmt.Sprintf("    <meta name=\"date\" content=\"%s\">\n", created.Format(time.RFC3339)))
	}
	sb.WriteString(e.getCSS())
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", e.themeClass()))
}

// writeHeader writes the header section with metadata items.
func (e *HTMLExporter) writeHeader(sb *strings.Builder, title string, items []string) {
	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", html.EscapeString(title)))
	if len(items) > 0 {
		sb.WriteString("            <div class=\"metadata\">\n")
		for _, item := range items {
			sb.WriteString(fmt.Sprintf("                <span class=\"meta-item\">%s</span>\n", item))
		}
		sb.WriteString("            </div>\n")
	}
	sb.WriteString("        </header>\n")
}

// writeFooter writes the document footer.
func (e *HTMLExporter) writeFooter(sb *strings.Builder) {
	sb.WriteString("        <footer class=\"footer\">\n")
	sb.WriteString(fmt.Sprintf("            <p>Exported from <strong>jot</strong> on %s</p>\n",
		time.Now().Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")
}

// noteMetaItems renders a note's metadata as escaped HTML fragments.
func (e *HTMLExporter) noteMetaItems(n *notes.Note) []string {
	var items []string

	if n.Notebook != "" {
		items = append(items, fmt.Sprintf("<strong>Notebook:</strong> %s", html.EscapeString(n.Notebook)))
	}
	if !n.Created.IsZero() {
		items = append(items, fmt.Sprintf("<strong>Created:</strong> %s", formatTimestamp(n.Created)))
	}
	if !n.Updated.IsZero() {
		items = append(items, fmt.Sprintf("<strong>Updated:</strong> %s", formatTimestamp(n.Updated)))
	}
	if len(n.Tags) > 0 {
		items = append(items, fmt.Sprintf("<strong>Tags:</strong> %s", html.EscapeString(strings.Join(n.Tags, ", "))))
	}

	return items
}

// themeClass maps the configured theme onto a stylesheet class.
func (e *HTMLExporter) themeClass() string {
	if e.options.Theme == "light" {
		return "light"
	}
	return "dark"
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

// getCSS returns the embedded CSS for the HTML export.
func (e *HTMLExporter) getCSS() string {
	return `    <style>
        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            --font-mono: "SF Mono", "Monaco", "Inconsolata", "Fira Code", "Source Code Pro", monospace;
        }

        /* Dark theme (default) */
        .dark-theme {
            --bg-primary: #1a1b26;
            --bg-secondary: #24283b;
            --bg-tertiary: #414868;
            --text-primary: #c0caf5;
            --text-secondary: #a9b1d6;
            --text-muted: #565f89;
            --border-color: #414868;
            --code-bg: #1a1b26;
            --accent-blue: #7aa2f7;
            --accent-purple: #bb9af7;
        }

        /* Light theme */
        .light-theme {
            --bg-primary: #ffffff;
            --bg-secondary: #f7f8fa;
            --bg-tertiary: #e1e4e8;
            --text-primary: #24292e;
            --text-secondary: #586069;
            --text-muted: #6a737d;
            --border-color: #e1e4e8;
            --code-bg: #f6f8fa;
            --accent-blue: #0366d6;
            --accent-purple: #6f42c1;
        }

        body {
            font-family: var(--font-sans);
            font-size: 16px;
            line-height: 1.6;
            color: var(--text-primary);
            background: var(--bg-primary);
            padding: 20px;
        }

        .container {
            max-width: 800px;
            margin: 0 auto;
            background: var(--bg-secondary);
            border-radius: 12px;
            box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);
            overflow: hidden;
        }

        /* Header */
        .header {
            padding: 32px;
            background: var(--bg-tertiary);
            border-bottom: 2px solid var(--border-color);
        }

        .header h1 {
            font-size: 28px;
            font-weight: 700;
            margin-bottom: 16px;
            color: var(--text-primary);
        }

        .metadata {
            display: flex;
            flex-wrap: wrap;
            gap: 16px;
            font-size: 14px;
            color: var(--text-secondary);
        }

        .meta-item {
            display: inline-flex;
            align-items: center;
            gap: 4px;
        }

        /* Note content */
        .note, .notes {
            padding: 24px 32px;
        }

        .note h1, .note h2, .note h3, .note h4 {
            margin: 20px 0 12px;
            color: var(--text-primary);
        }

        .note h1:first-child, .note h2:first-child {
            margin-top: 0;
        }

        .note p {
            margin-bottom: 12px;
        }

        .note ul, .note ol {
            margin: 0 0 12px 24px;
        }

        .note blockquote {
            margin: 12px 0;
            padding-left: 16px;
            border-left: 4px solid var(--accent-blue);
            color: var(--text-secondary);
        }

        .note table {
            border-collapse: collapse;
            margin: 16px 0;
        }

        .note th, .note td {
            border: 1px solid var(--border-color);
            padding: 6px 12px;
        }

        .note pre {
            margin: 16px 0;
            padding: 16px;
            border-radius: 8px;
            overflow-x: auto;
            background: var(--code-bg);
            border: 1px solid var(--border-color);
        }

        .note code {
            font-family: var(--font-mono);
            font-size: 14px;
            color: var(--accent-purple);
        }

        .note pre code {
            color: var(--text-primary);
        }

        /* Notebook articles */
        article.note {
            padding: 0 0 20px;
            margin-bottom: 20px;
            border-bottom: 1px solid var(--border-color);
        }

        article.note:last-child {
            margin-bottom: 0;
            border-bottom: none;
        }

        article.note h2 {
            margin-bottom: 8px;
        }

        article.note .metadata {
            margin-bottom: 12px;
            font-size: 13px;
            color: var(--text-muted);
        }

        /* Footer */
        .footer {
            padding: 20px 32px;
            text-align: center;
            font-size: 14px;
            color: var(--text-muted);
            border-top: 1px solid var(--border-color);
        }

        /* Print styles */
        @media print {
            body {
                padding: 0;
            }

            .container {
                box-shadow: none;
                border-radius: 0;
            }

            article.note {
                page-break-inside: avoid;
            }
        }

        /* Responsive */
        @media (max-width: 768px) {
            body {
                padding: 10px;
            }

            .header, .note, .conversation, .footer {
                padding: 16px;
            }
        }
    </style>
`
}
