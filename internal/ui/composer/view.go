// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package composer provides the main composition view for the jot TUI.
package composer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jotkit/jot-tui/internal/ui/components"
	"github.com/jotkit/jot-tui/internal/ui/styles"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the complete composer screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.height <= 0 {
		return "Loading jot..."
	}

	if m.helpVisible {
		return m.renderHelpOverlay()
	}

	baseView := m.renderComposer()

	// Banners overlay the bottom-right corner without blocking interaction.
	if m.banners.HasBanners() {
		stack := components.RenderBannerStack(m.banners.GetBanners(), m.width, m.height)
		return m.overlayBanners(baseView, stack)
	}

	return baseView
}

// renderComposer lays out the screen top to bottom: header, draft pane,
// optional feedback line, input area, status bar. The pane absorbs whatever
// height the fixed sections leave over, so the total never exceeds the
// terminal even while the suggestion popup is open.
func (m Model) renderComposer() string {
	header := m.renderHeader()
	inputArea := m.renderInputArea()
	status := m.renderStatusBar()

	var feedback string
	if m.feedback != "" {
		feedback = m.renderFeedback()
	}

	fixed := lipgloss.Height(header) + lipgloss.Height(inputArea) + lipgloss.Height(status)
	if feedback != "" {
		fixed += lipgloss.Height(feedback)
	}
	avail := m.height - fixed
	if avail < 1 {
		avail = 1
	}
	pane := m.renderPane(avail)

	sections := []string{header, pane}
	if feedback != "" {
		sections = append(sections, feedback)
	}
	sections = append(sections, inputArea, status)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderPane renders the viewport clamped to an exact height so the
// sections below it never move.
func (m Model) renderPane(height int) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		MaxHeight(height).
		Render(m.viewport.View())
}

// =============================================================================
// HEADER
// =============================================================================

// renderHeader renders the title bar with the active notebook and a status
// indicator. The header uses a dimmed surface background and is always 1
// line high.
func (m Model) renderHeader() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.Purple).
		Render("jot")

	notebookInfo := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Render(" | " + m.displayNotebook())

	var statusIcon string
	switch {
	case m.saving:
		statusIcon = lipgloss.NewStyle().
			Foreground(styles.Amber).
			Render(" " + styles.StatusIndicators.Pending)
	case m.feedbackIsErr:
		statusIcon = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Render(" " + styles.StatusIndicators.Error)
	default:
		statusIcon = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Render(" " + styles.StatusIndicators.Active)
	}

	var previewBadge string
	if m.previewVisible {
		previewBadge = lipgloss.NewStyle().
			Background(styles.Purple).
			Foreground(styles.TextInverse).
			Bold(true).
			Padding(0, 1).
			Render("PREVIEW")
	}

	headerContent := title + notebookInfo + statusIcon
	if previewBadge != "" {
		headerContent = headerContent + " " + previewBadge
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Width(width).
		Padding(0, 1).
		Render(headerContent)
}

// =============================================================================
// DRAFT PANE
// =============================================================================

// renderDraft renders the committed draft lines for the viewport.
func (m Model) renderDraft() string {
	width := m.viewport.Width - 2
	if width < 20 {
		width = 20
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(strings.Join(m.draft, "\n"))
}

// renderEmptyState renders the empty draft state with a welcoming interface.
// Shows: welcome message, active notebook, quick tips, example commands, and
// a help hint.
func (m *Model) renderEmptyState() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	emptyWidth := width - 8
	if emptyWidth < 40 {
		emptyWidth = 40 // Minimum for readable content
	}
	if emptyWidth > 80 {
		emptyWidth = 80 // Cap width for readability
	}

	var sb strings.Builder

	// Welcome header
	welcomeStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true).
		Align(lipgloss.Center).
		Width(emptyWidth)
	sb.WriteString(welcomeStyle.Render("Welcome to jot"))
	sb.WriteString("\n\n")

	// Active notebook
	notebookStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Align(lipgloss.Center).
		Width(emptyWidth)
	sb.WriteString(notebookStyle.Render("Notebook: " + m.displayNotebook()))
	sb.WriteString("\n\n")

	// Separator
	sepStyle := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Align(lipgloss.Center).
		Width(emptyWidth)
	sb.WriteString(sepStyle.Render(strings.Repeat("-", 40)))
	sb.WriteString("\n\n")

	// Quick tips section
	tipsHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)
	sb.WriteString(tipsHeaderStyle.Render("Quick Tips"))
	sb.WriteString("\n\n")

	tipStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Amber).
		Bold(true)

	tips := []struct {
		key  string
		desc string
	}{
		{"Type a line", "Enter commits it to the draft"},
		{"/", "Start a slash command"},
		{"/help", "List available commands"},
		{"Ctrl+S", "Save the draft as a note"},
		{"Ctrl+P", "Preview the draft as markdown"},
		{"F1", "Show keyboard shortcuts"},
	}

	for _, tip := range tips {
		line := fmt.Sprintf("  %s  %s",
			keyStyle.Render(fmt.Sprintf("%-16s", tip.key)),
			tipStyle.Render(tip.desc))
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")

	// Example commands section
	examplesHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Emerald).
		Bold(true)
	sb.WriteString(examplesHeaderStyle.Render("Try"))
	sb.WriteString("\n\n")

	exampleStyle := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true)

	examples := []string{
		"/new Standup notes for Monday",
		"/tag meeting",
		"/remind 30m Review the deploy checklist",
		"/search architecture",
	}

	for _, example := range examples {
		sb.WriteString("  " + exampleStyle.Render(example))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")

	// Help hint at bottom
	hintStyle := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Align(lipgloss.Center).
		Width(emptyWidth)
	sb.WriteString(hintStyle.Render("Press F1 for help | Ctrl+C to quit"))

	// Wrap everything in a centered container
	containerStyle := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Width(width - 4).
		Padding(2, 0)

	return containerStyle.Render(sb.String())
}

// =============================================================================
// PREVIEW
// =============================================================================

// renderPreviewContent renders the draft as markdown for the preview. The
// rendered mode goes through glamour; the plain mode highlights fenced code
// blocks and leaves the rest untouched.
func (m Model) renderPreviewContent() string {
	content := m.draftContent()
	if strings.TrimSpace(content) == "" {
		return "Nothing to preview yet."
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	if width > 100 {
		width = 100
	}

	if m.cfg.UI.RenderedPreview {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			if out, rerr := r.Render(content); rerr == nil {
				return out
			}
		}
		// Fall through to the plain renderer on failure.
	}

	return components.ParseCodeBlocks(content, width)
}

// =============================================================================
// FEEDBACK
// =============================================================================

// renderFeedback renders the one-line command feedback under the draft pane.
func (m Model) renderFeedback() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	style := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(width).
		Padding(0, 2)
	if m.feedbackIsErr {
		style = style.Foreground(styles.Rose)
	}

	return style.Render(truncateToWidth(m.feedback, width-4))
}

// =============================================================================
// INPUT AREA
// =============================================================================

// renderInputArea stacks the suggestion popup, when open, on top of the
// input.
func (m Model) renderInputArea() string {
	base := m.renderInput()

	if m.suggestionsOn && m.engine.Active() && m.popup.HasSuggestions() {
		var popupView string
		if m.width > 0 && m.width < 40 {
			popupView = m.popup.ViewCompact()
		} else {
			popupView = m.popup.View()
		}
		if popupView != "" {
			return lipgloss.JoinVertical(lipgloss.Left, popupView, base)
		}
	}

	return base
}

// renderInput renders the separator, the input line, and the character
// count.
func (m Model) renderInput() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	// Separator color doubles as the focus indicator.
	borderColor := styles.Overlay
	if m.input.Focused() {
		borderColor = styles.FocusRing
	}
	separator := lipgloss.NewStyle().
		Foreground(borderColor).
		Render(strings.Repeat("─", width))

	inputLineWidth := width - 4
	if inputLineWidth < 10 {
		inputLineWidth = 10
	}
	inputLine := lipgloss.NewStyle().
		Width(inputLineWidth).
		Render("  " + m.input.View())

	charCount := m.renderCharCount()

	result := lipgloss.JoinVertical(
		lipgloss.Left,
		separator,
		inputLine,
		charCount,
	)

	// Force exact height of 3 lines to prevent shrinking when the user
	// types.
	return lipgloss.NewStyle().
		Height(3).
		MaxHeight(3).
		Width(width).
		Render(result)
}

// renderCharCount renders the character count indicator.
func (m Model) renderCharCount() string {
	count := len([]rune(m.input.Value()))
	max := m.input.CharLimit

	// Prevent division by zero
	if max <= 0 {
		max = 1
	}

	// Determine color based on usage
	var style lipgloss.Style
	percent := float64(count) / float64(max) * 100

	if percent >= 90 {
		style = lipgloss.NewStyle().Foreground(styles.Rose)
	} else if percent >= 75 {
		style = lipgloss.NewStyle().Foreground(styles.Amber)
	} else {
		style = lipgloss.NewStyle().Foreground(styles.TextMuted)
	}

	countStr := formatInt(count) + " / " + formatInt(max)

	width := m.width
	if width <= 0 {
		width = 80
	}
	charCountWidth := width - 4
	if charCountWidth < 10 {
		charCountWidth = 10
	}

	return lipgloss.NewStyle().
		Width(charCountWidth).
		Align(lipgloss.Right).
		Padding(0, 2).
		Render(style.Render(countStr))
}

// =============================================================================
// STATUS BAR
// =============================================================================

// renderStatusBar feeds the current model state into the status bar.
func (m Model) renderStatusBar() string {
	m.statusBar.SetWidth(m.width)
	m.statusBar.SetIndexState(m.indexState())
	return m.statusBar.View()
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// renderHelpOverlay renders context-sensitive keyboard shortcuts. Only keys
// that work in the context active before help opened are listed.
func (m Model) renderHelpOverlay() string {
	width := m.width
	height := m.height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	activeContext := m.currentHelpContext()

	// Get help items filtered by context and grouped by category
	groupedItems := GetHelpItemsByCategory(activeContext)
	categoryOrder := GetCategoryOrder()

	var sb strings.Builder

	// Header with context indicator
	contextName := GetContextDisplayName(activeContext)
	sb.WriteString(fmt.Sprintf("Keys available now (%s)\n", contextName))
	sb.WriteString(strings.Repeat("─", 35) + "\n\n")

	// Render items grouped by category in preferred order
	hasContent := false
	for _, category := range categoryOrder {
		items, exists := groupedItems[category]
		if !exists || len(items) == 0 {
			continue
		}

		hasContent = true
		categoryStyle := lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)
		sb.WriteString(categoryStyle.Render(string(category)) + "\n")

		for _, item := range items {
			keyStyle := lipgloss.NewStyle().Foreground(styles.Amber)
			descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
			sb.WriteString(fmt.Sprintf("  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-14s", item.Key)),
				descStyle.Render(item.Desc)))
		}
		sb.WriteString("\n")
	}

	if !hasContent {
		sb.WriteString("  No specific keybindings for this mode.\n\n")
	}

	// Current mode info
	sb.WriteString(strings.Repeat("─", 35) + "\n")
	stateStyle := lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)

	var modeInfo string
	switch activeContext {
	case ContextSuggest:
		modeInfo = "Suggestions open: Tab accepts, Esc dismisses"
	case ContextPreview:
		modeInfo = "Preview: Esc returns to the draft"
	default:
		modeInfo = "Editing: Enter commits the line"
	}
	sb.WriteString(stateStyle.Render(modeInfo) + "\n")

	// Close hint
	sb.WriteString("\n")
	closeStyle := lipgloss.NewStyle().Foreground(styles.Overlay)
	sb.WriteString(closeStyle.Render("Press F1 or Esc to close"))

	content := sb.String()

	// Calculate overlay dimensions
	contentWidth := 55
	if contentWidth > width-4 {
		contentWidth = width - 4
	}

	contentLines := strings.Count(content, "\n") + 1
	contentHeight := contentLines + 2 // +2 for padding
	if contentHeight > height-4 {
		contentHeight = height - 4
	}

	helpStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Foreground(styles.TextPrimary).
		Background(styles.Surface).
		Padding(1, 2).
		Width(contentWidth).
		MaxHeight(contentHeight)

	helpBox := helpStyle.Render(content)

	// Center the help box
	helpWidth := lipgloss.Width(helpBox)
	helpHeight := lipgloss.Height(helpBox)

	marginLeft := (width - helpWidth) / 2
	if marginLeft < 0 {
		marginLeft = 0
	}
	marginTop := (height - helpHeight) / 2
	if marginTop < 0 {
		marginTop = 0
	}

	return lipgloss.NewStyle().
		MarginLeft(marginLeft).
		MarginTop(marginTop).
		Render(helpBox)
}

// =============================================================================
// BANNER OVERLAY
// =============================================================================

// overlayBanners renders banners on top of the base view. Banners are
// positioned in the bottom-right corner without blocking interaction.
func (m Model) overlayBanners(baseView, bannerView string) string {
	baseLines := strings.Split(baseView, "\n")
	bannerLines := strings.Split(bannerView, "\n")

	// Pad the base so rows near the bottom always exist; the composed view
	// can be shorter than the terminal.
	for len(baseLines) < m.height {
		baseLines = append(baseLines, "")
	}

	bannerHeight := len(bannerLines)

	// Start overlaying from (height - bannerHeight - 2) to leave space for
	// the status bar.
	startRow := m.height - bannerHeight - 2
	if startRow < 0 {
		startRow = 0
	}

	result := make([]string, len(baseLines))
	for i, baseLine := range baseLines {
		bannerLineIdx := i - startRow
		if bannerLineIdx >= 0 && bannerLineIdx < len(bannerLines) {
			bannerLine := bannerLines[bannerLineIdx]
			if lipgloss.Width(bannerLine) > 0 {
				baseWidth := lipgloss.Width(baseLine)
				bannerLineWidth := lipgloss.Width(bannerLine)

				// Pad base line out to the banner's left edge
				if baseWidth < m.width-bannerLineWidth-1 {
					baseLine = baseLine + strings.Repeat(" ", m.width-bannerLineWidth-1-baseWidth)
				}

				// Truncate base line to make room for the banner
				if baseWidth > m.width-bannerLineWidth-1 {
					cutPoint := m.width - bannerLineWidth - 1
					if cutPoint > 0 {
						baseLine = truncateToWidth(baseLine, cutPoint)
					}
				}

				result[i] = baseLine + bannerLine
			} else {
				result[i] = baseLine
			}
		} else {
			result[i] = baseLine
		}
	}

	return strings.Join(result, "\n")
}

// =============================================================================
// HELPERS
// =============================================================================

// truncateToWidth truncates a string to fit within a given visible width.
func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}

	currentWidth := 0
	var result strings.Builder

	for _, r := range s {
		runeWidth := lipgloss.Width(string(r))
		if currentWidth+runeWidth > width {
			break
		}
		result.WriteRune(r)
		currentWidth += runeWidth
	}

	return result.String()
}

// formatInt renders a count with thousands separators.
func formatInt(n int) string {
	if n < 0 {
		return "-" + formatInt(-n)
	}
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
