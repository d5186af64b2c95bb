// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the jot TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/ui/styles"
	"github.com/jotkit/jot-tui/internal/util"
)

// =============================================================================
// COMPLETION POPUP COMPONENT
// =============================================================================

// CompletionPopup displays slash command and argument suggestions above the
// input line. It is a pure renderer: the suggestion list and selection index
// live in the commands.Engine and are pushed in before each View.
type CompletionPopup struct {
	suggestions []commands.Suggestion
	selected    int
	maxVisible  int
	width       int
	theme       *styles.Theme
}

// NewCompletionPopup creates a new completion popup.
func NewCompletionPopup(theme *styles.Theme) *CompletionPopup {
	return &CompletionPopup{
		suggestions: nil,
		selected:    0,
		maxVisible:  8, // Show up to 8 suggestions at once
		width:       50,
		theme:       theme,
	}
}

// SetSuggestions sets the suggestions to display.
func (c *CompletionPopup) SetSuggestions(suggestions []commands.Suggestion) {
	c.suggestions = suggestions
	if c.selected >= len(suggestions) {
		c.selected = 0
	}
}

// SetSelected sets the selected index.
func (c *CompletionPopup) SetSelected(index int) {
	if index < 0 || index >= len(c.suggestions) {
		return
	}
	c.selected = index
}

// HasSuggestions returns true if there are suggestions to show.
func (c *CompletionPopup) HasSuggestions() bool {
	return len(c.suggestions) > 0
}

// Clear clears all suggestions.
func (c *CompletionPopup) Clear() {
	c.suggestions = nil
	c.selected = 0
}

// SetWidth sets the popup width.
func (c *CompletionPopup) SetWidth(width int) {
	c.width = width
}

// SetMaxVisible sets the maximum number of visible suggestions.
func (c *CompletionPopup) SetMaxVisible(max int) {
	c.maxVisible = max
}

// View renders the completion popup.
func (c *CompletionPopup) View() string {
	if len(c.suggestions) == 0 {
		return ""
	}

	// Calculate visible range (scrolling window)
	start := 0
	end := len(c.suggestions)

	if len(c.suggestions) > c.maxVisible {
		// Center the selected item in the window
		start = c.selected - c.maxVisible/2
		if start < 0 {
			start = 0
		}
		end = start + c.maxVisible
		if end > len(c.suggestions) {
			end = len(c.suggestions)
			start = end - c.maxVisible
			if start < 0 {
				start = 0
			}
		}
	}

	// Build suggestion items
	var items []string
	for i := start; i < end; i++ {
		items = append(items, c.renderSuggestionItem(c.suggestions[i], i == c.selected))
	}

	content := strings.Join(items, "\n")

	boxStyle := c.theme.CompletionPopup.
		Width(c.width).
		MaxWidth(c.width)

	return boxStyle.Render(content)
}

// renderSuggestionItem renders a single suggestion row.
func (c *CompletionPopup) renderSuggestionItem(sug commands.Suggestion, isSelected bool) string {
	// Value (left aligned)
	valueStyle := c.theme.CompletionItem.Width(20)

	// Description (right aligned)
	descStyle := lipgloss.NewStyle().
		Width(c.width - 24). // Account for padding and value width
		Foreground(styles.TextSecondary)

	if isSelected {
		// Highlight selected item
		valueStyle = c.theme.CompletionSelected.Width(20)
		descStyle = descStyle.
			Foreground(styles.TextPrimary)
	}

	value := sug.Display
	if value == "" {
		value = sug.Value
	}

	// Truncate to the fixed column widths
	value = util.TruncateWidth(value, 20)

	desc := sug.Description
	if maxDescLen := c.width - 24; maxDescLen > 3 {
		desc = util.TruncateWidth(desc, maxDescLen)
	}

	// Indicator for selected item (ASCII)
	indicator := " "
	if isSelected {
		indicator = ">"
	}

	indicatorStyle := lipgloss.NewStyle().
		Width(2).
		Foreground(styles.Cyan)

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		indicatorStyle.Render(indicator),
		valueStyle.Render(value),
		descStyle.Render(desc),
	)
}

// ViewCompact renders a compact single-line suggestion indicator for narrow
// terminals where the full popup would not fit.
func (c *CompletionPopup) ViewCompact() string {
	if len(c.suggestions) == 0 {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	if len(c.suggestions) == 1 {
		value := c.suggestions[0].Display
		if value == "" {
			value = c.suggestions[0].Value
		}
		return style.Render("Tab: complete \"" + value + "\"")
	}

	return style.Render("Tab: " + formatInt(len(c.suggestions)) + " suggestions")
}

// formatInt converts an integer to string without fmt package.
// Handles all edge cases including MinInt64.
func formatInt(n int) string {
	if n == 0 {
		return "0"
	}

	var digits []byte
	negative := n < 0
	if negative {
		// Handle overflow for minimum int value
		if n == -n {
			// This is the minimum int value (e.g., -9223372036854775808 for int64)
			// We can't negate it directly, so we handle it specially
			n = n / 10
			remainder := -(n*10 - (-n))
			digits = append([]byte{byte('0' + remainder)}, digits...)
		}
		n = -n
	}

	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}

	if negative {
		return "-" + string(digits)
	}
	return string(digits)
}
