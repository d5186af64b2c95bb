// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the jot TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jotkit/jot-tui/internal/ui/styles"
	"github.com/jotkit/jot-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusEditing
	StatusSaving
	StatusIndexing
	StatusError
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusEditing:
		return "Editing"
	case StatusSaving:
		return "Saving..."
	case StatusIndexing:
		return "Indexing..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success // Checkmark for ready
	case StatusEditing:
		return styles.StatusIndicators.Active // Filled for active editing
	case StatusSaving:
		return styles.StatusIndicators.Pending // Empty for in-flight save
	case StatusIndexing:
		return styles.StatusIndicators.Pending // Empty for in-flight index
	case StatusError:
		return styles.StatusIndicators.Error // X mark for error
	default:
		return "?"
	}
}

// IndexState reflects the freshness of the search index shown in the bar.
type IndexState int

const (
	// IndexOff means indexing is disabled in the configuration.
	IndexOff IndexState = iota
	// IndexSyncing means a rebuild or watcher catch-up is in progress.
	IndexSyncing
	// IndexFresh means the index matches the vault on disk.
	IndexFresh
)

// String returns the display string for the index state.
func (s IndexState) String() string {
	switch s {
	case IndexOff:
		return "off"
	case IndexSyncing:
		return "syncing"
	case IndexFresh:
		return "ready"
	default:
		return "unknown"
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	Notebook         string     // Active notebook name
	NoteCount        int        // Notes in the active notebook
	WordCount        int        // Words in the current draft
	CharCount        int        // Characters in the current draft
	Index            IndexState // Search index freshness
	PendingReminders int        // Reminders not yet fired
	Status           Status     // Current status
	Width            int        // Available width
	ShowShortcuts    bool       // Show keyboard shortcuts
	theme            *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Notebook:      "default",
		NoteCount:     0,
		WordCount:     0,
		CharCount:     0,
		Index:         IndexOff,
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetNotebook updates the active notebook and its note count
func (s *StatusBar) SetNotebook(name string, noteCount int) {
	s.Notebook = name
	s.NoteCount = noteCount
}

// SetDraftStats updates the word and character counts for the current draft
func (s *StatusBar) SetDraftStats(words, chars int) {
	s.WordCount = words
	s.CharCount = chars
}

// SetIndexState updates the search index freshness display
func (s *StatusBar) SetIndexState(state IndexState) {
	s.Index = state
}

// SetPendingReminders updates the pending reminder count
func (s *StatusBar) SetPendingReminders(count int) {
	s.PendingReminders = count
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// View renders the status bar
func (s *StatusBar) View() string {
	// Choose layout based on width
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [notebook] 245w Status
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	// Notebook badge (clipped; no room for an ellipsis here)
	notebook := util.ClipWidth(s.Notebook, 10)
	parts = append(parts, s.theme.NotebookBadge.Render("["+notebook+"]"))

	// Word count
	wordStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	parts = append(parts, wordStyle.Render(toStr(s.WordCount)+"w"))

	// Pending reminders (only when non-zero; space is scarce)
	if s.PendingReminders > 0 {
		parts = append(parts, s.theme.ReminderBadge.Render(styles.StatusIndicators.Pending+toStr(s.PendingReminders)))
	}

	// Status icon
	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.Icon()))

	result := strings.Join(parts, " ")

	// Apply background
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar
// Format: notebook | N notes | 245 words | idx ready | Status
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	// Notebook (truncated if needed)
	notebook := util.TruncateWidth(s.Notebook, 15)
	parts = append(parts, s.theme.NotebookBadge.Render(notebook))

	// Note count
	noteStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	parts = append(parts, noteStyle.Render(toStr(s.NoteCount)+" notes"))

	// Draft word count
	wordStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	parts = append(parts, wordStyle.Render(fmtNumber(s.WordCount)+" words"))

	// Index state
	idxLabel := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("idx ")
	parts = append(parts, idxLabel+s.getIndexStyle().Render(s.Index.String()))

	// Pending reminders
	if s.PendingReminders > 0 {
		parts = append(parts, s.theme.ReminderBadge.Render(styles.StatusIndicators.Pending+" "+toStr(s.PendingReminders)))
	}

	// Status
	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.String()))

	result := strings.Join(parts, separator)

	// Apply background
	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals
// Format: notebook | 12 notes | 3 reminders ... 245 words 1,204 chars ... Status shortcuts
func (s *StatusBar) viewWide() string {
	// Left section: notebook, note count, reminders, index
	leftParts := []string{}

	nbBadge := s.theme.NotebookBadge.Render(styles.StatusIndicators.Active + " " + s.Notebook)
	leftParts = append(leftParts, nbBadge)

	noteStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	leftParts = append(leftParts, noteStyle.Render(toStr(s.NoteCount)+" notes"))

	if s.PendingReminders > 0 {
		reminderText := toStr(s.PendingReminders) + " reminder"
		if s.PendingReminders != 1 {
			reminderText += "s"
		}
		leftParts = append(leftParts, s.theme.ReminderBadge.Render(styles.StatusIndicators.Pending+" "+reminderText))
	}

	idxLabel := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("idx ")
	leftParts = append(leftParts, idxLabel+s.getIndexStyle().Render(s.Index.String()))

	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, leftSep)

	// Center section: draft statistics
	centerStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	centerSection := centerStyle.Render(fmtNumber(s.WordCount) + " words  " + fmtNumber(s.CharCount) + " chars")

	// Right section: status and shortcuts
	rightParts := []string{}

	statusStyle := s.getStatusStyle()
	rightParts = append(rightParts, statusStyle.Render(s.Status.Icon()+" "+s.Status.String()))

	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}

	rightSection := strings.Join(rightParts, " ")

	// Calculate spacing
	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)
	totalContent := leftWidth + centerWidth + rightWidth

	// Add spacing between sections
	spacing := s.Width - totalContent - 4 // Account for padding
	if spacing < 4 {
		spacing = 4
	}

	leftSpace := strings.Repeat(" ", spacing/2)
	rightSpace := strings.Repeat(" ", spacing-spacing/2)

	result := leftSection + leftSpace + centerSection + rightSpace + rightSection

	// Apply styled border for wide view
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// getStatusStyle returns the style for the current status.
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusError:
		return s.theme.ErrorStyle
	case StatusSaving, StatusIndexing:
		return s.theme.WarningStyle
	case StatusEditing:
		return s.theme.InfoStyle
	default:
		return s.theme.SuccessStyle
	}
}

// getIndexStyle returns the style for the current index state.
func (s *StatusBar) getIndexStyle() lipgloss.Style {
	switch s.Index {
	case IndexFresh:
		return s.theme.IndexFresh
	case IndexSyncing:
		return s.theme.IndexSyncing
	default:
		return s.theme.IndexOff
	}
}

// renderShortcuts renders the keyboard shortcut hints.
func (s *StatusBar) renderShortcuts() string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"^S", "save"},
		{"^P", "preview"},
		{"F1", "help"},
	}

	var parts []string
	for _, sc := range shortcuts {
		parts = append(parts, s.theme.ShortcutKey.Render(sc.key)+" "+s.theme.ShortcutDesc.Render(sc.desc))
	}

	return strings.Join(parts, "  ")
}
