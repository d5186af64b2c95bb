// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the jot TUI.

This package defines the complete color palette and theme used throughout
the application. All colors use Lip Gloss AdaptiveColor for automatic
light/dark terminal detection, and the configured theme preference can
force either variant.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for selections and the active notebook
  - Cyan - Brand color for slash commands and links
  - Emerald - Success states, saved drafts, and a fresh index
  - Amber - Warnings and due reminders
  - Rose - Errors and critical alerts

## Surface Colors

Layered surface system for depth:

	Surface    - Main background
	SurfaceDim - Subtle backgrounds (headers, status bars)
	Overlay    - Borders, separators, popups

## Text Colors

Hierarchical text color system:

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - De-emphasized text
	TextInverse   - Text on colored backgrounds

## Status Indicators

ASCII indicators for various states:

	StatusIndicators.Success - [OK]
	StatusIndicators.Error   - [X]
	StatusIndicators.Warning - [!]
	StatusIndicators.Info    - [i]
	StatusIndicators.Pending - [ ] (pending reminders)
	StatusIndicators.Active  - [*] (active notebook)

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	if theme.HasTrueColor {
		// Terminal supports 16M colors
	}

The configured ui.theme preference overrides detection when set to "dark"
or "light":

	styles.ApplyThemePreference(cfg.UI.Theme)
	theme := styles.NewTheme()

# Usage Example

	import "github.com/jotkit/jot-tui/internal/ui/styles"

	// Use adaptive colors
	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)

	// Responsive layout decisions
	theme := styles.NewTheme()
	theme.SetSize(width, height)
	if theme.GetLayoutMode() == styles.LayoutNarrow {
		// Compact rendering
	}
*/
package styles
