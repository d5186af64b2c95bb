// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the jot TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderNotebook lipgloss.Style
	HeaderBrand    lipgloss.Style

	// ==========================================================================
	// PREVIEW STYLES
	// ==========================================================================

	PreviewBox   lipgloss.Style
	PreviewTitle lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style
	CharCount        lipgloss.Style
	CharCountWarning lipgloss.Style
	CharCountDanger  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusBarWide lipgloss.Style
	NotebookBadge lipgloss.Style
	IndexFresh    lipgloss.Style
	IndexSyncing  lipgloss.Style
	IndexOff      lipgloss.Style
	ReminderBadge lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// COMPLETION POPUP STYLES
	// ==========================================================================

	CompletionPopup    lipgloss.Style
	CompletionItem     lipgloss.Style
	CompletionSelected lipgloss.Style
	CompletionMatch    lipgloss.Style

	// ==========================================================================
	// HELP OVERLAY STYLES
	// ==========================================================================

	HelpOverlay lipgloss.Style
	HelpTitle   lipgloss.Style
	HelpSection lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	// SuccessStyle - Used for success states with checkmark indicator
	SuccessStyle lipgloss.Style
	// ErrorStyle - Used for error states with X mark indicator
	ErrorStyle lipgloss.Style
	// WarningStyle - Used for warning states with warning triangle indicator
	WarningStyle lipgloss.Style
	// InfoStyle - Used for info states with info circle indicator
	InfoStyle lipgloss.Style
	// LinkStyle - Used for links with underline for visual distinction
	LinkStyle lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities. Background detection goes through
	// lipgloss so an ApplyThemePreference override is honored.
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := lipgloss.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderNotebook = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	// Preview
	t.PreviewBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.PreviewTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.CharCount = lipgloss.NewStyle().
		Foreground(TextMuted).
		Align(lipgloss.Right)

	t.CharCountWarning = lipgloss.NewStyle().
		Foreground(Amber).
		Align(lipgloss.Right)

	t.CharCountDanger = lipgloss.NewStyle().
		Foreground(Rose).
		Align(lipgloss.Right)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusBarWide = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.NotebookBadge = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.IndexFresh = lipgloss.NewStyle().
		Foreground(Emerald)

	t.IndexSyncing = lipgloss.NewStyle().
		Foreground(Amber)

	t.IndexOff = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ReminderBadge = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Completion popup
	t.CompletionPopup = lipgloss.NewStyle().
		Background(Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.CompletionItem = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.CompletionSelected = lipgloss.NewStyle().
		Background(Purple).
		Foreground(TextInverse).
		Bold(true)

	t.CompletionMatch = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Help overlay
	t.HelpOverlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Background(Surface).
		Padding(1, 2)

	t.HelpTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.HelpSection = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.HelpKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.HelpDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	// SuccessStyle - High contrast green with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Success symbol
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	// ErrorStyle - High contrast red with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Error symbol
	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	// WarningStyle - High contrast amber with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Warning symbol
	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	// InfoStyle - High contrast blue with bold for colorblind accessibility
	// ACCESSIBILITY: Use with StatusIndicators.Info symbol
	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)

	// LinkStyle - Blue with underline for visual distinction beyond color
	// ACCESSIBILITY: Underline provides non-color visual cue for links
	t.LinkStyle = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
