// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jotkit/jot-tui/internal/ui/styles"
)

// =============================================================================
// CLI OUTPUT STYLES
// =============================================================================

// The CLI reuses the composer palette so command output and the TUI read as
// one application.

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(styles.Purple)
	labelStyle     = lipgloss.NewStyle().Foreground(styles.TextSecondary).Width(14)
	valueStyle     = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	successStyle   = lipgloss.NewStyle().Bold(true).Foreground(styles.Emerald)
	warnStyle      = lipgloss.NewStyle().Bold(true).Foreground(styles.Amber)
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(styles.Rose)
	mutedStyle     = lipgloss.NewStyle().Foreground(styles.TextMuted)
	pathStyle      = lipgloss.NewStyle().Foreground(styles.Cyan)
	tagStyle       = lipgloss.NewStyle().Foreground(styles.Cyan)
	separatorStyle = lipgloss.NewStyle().Foreground(styles.TextMuted)
	fixStyle       = lipgloss.NewStyle().Italic(true).Foreground(styles.TextSecondary)
)

// RenderStatus renders a bracketed status tag in the matching color.
func RenderStatus(status string) string {
	switch strings.ToLower(status) {
	case "ok", "pass", "healthy":
		return successStyle.Render("[OK]")
	case "warn", "warning":
		return warnStyle.Render("[WARN]")
	case "fail", "error":
		return errorStyle.Render("[FAIL]")
	default:
		return valueStyle.Render("[" + strings.ToUpper(status) + "]")
	}
}

// RenderSeparator renders a horizontal rule. Width defaults to 48 columns.
func RenderSeparator(width ...int) string {
	w := 48
	if len(width) > 0 && width[0] > 0 {
		w = width[0]
	}
	return separatorStyle.Render(strings.Repeat("=", w))
}

// RenderLabel renders a fixed-width field label for aligned key/value output.
func RenderLabel(label string) string {
	return labelStyle.Render(label + ":")
}

// GetStyleForTTY returns style when colors are enabled, or a plain style
// otherwise, so piped output stays free of escape codes.
func GetStyleForTTY(style lipgloss.Style) lipgloss.Style {
	if ColorsEnabled() {
		return style
	}
	return PlainStyle()
}

// PlainStyle returns an unstyled lipgloss style.
func PlainStyle() lipgloss.Style {
	return lipgloss.NewStyle()
}
