// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package composer provides the main composition view for the jot TUI.
package composer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jotkit/jot-tui/internal/export"
)

// =============================================================================
// EXPORT
// =============================================================================

// ExportDoneMsg reports a finished draft export.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// exportDraft writes the draft to a markdown file. Unlike saving, the draft
// stays in the composer afterwards.
func (m Model) exportDraft() (tea.Model, tea.Cmd) {
	content := m.draftContent()
	if v := m.input.Value(); strings.TrimSpace(v) != "" {
		if content == "" {
			content = v
		} else {
			content += "\n" + v
		}
	}
	if strings.TrimSpace(content) == "" {
		return m.raiseWarning("Nothing to export: draft is empty")
	}

	m.feedback = "Exporting draft to markdown..."
	m.feedbackIsErr = false

	notebook := m.displayNotebook()
	themeName := "dark"
	if m.theme != nil && !m.theme.IsDark {
		themeName = "light"
	}

	return m, func() tea.Msg {
		opts := export.DefaultOptions()
		opts.Theme = themeName
		path, err := export.ExportDraft(content, notebook, "markdown", opts)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// handleExportDone reports the export outcome on the feedback line.
func (m Model) handleExportDone(msg ExportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.feedback = fmt.Sprintf("[FAIL] Export failed: %v", msg.Err)
		m.feedbackIsErr = true
		return m, nil
	}
	m.feedback = fmt.Sprintf("[OK] Successfully exported to: %s", msg.Path)
	m.feedbackIsErr = false
	return m, nil
}
