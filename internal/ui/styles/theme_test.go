// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the jot TUI.
package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME CREATION TESTS
// =============================================================================

func TestNewTheme(t *testing.T) {
	theme := NewTheme()

	if theme == nil {
		t.Fatal("NewTheme() returned nil")
	}

	// Verify styles are initialized by rendering a test string
	renderedApp := theme.App.Render("test")
	if renderedApp == "" {
		t.Error("NewTheme() should initialize App style")
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme()

	// Test that various style categories are initialized
	// We test by rendering and checking for non-empty output
	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"HeaderTitle", theme.HeaderTitle},
		{"PreviewBox", theme.PreviewBox},
		{"InputContainer", theme.InputContainer},
		{"StatusBar", theme.StatusBar},
		{"NotebookBadge", theme.NotebookBadge},
		{"CompletionPopup", theme.CompletionPopup},
		{"HelpOverlay", theme.HelpOverlay},
	}

	for _, s := range styles {
		// Verify each style is initialized by rendering a test string
		// An uninitialized style would just return the input unchanged
		rendered := s.style.Render("test")
		if rendered == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

// =============================================================================
// THEME SIZE TESTS
// =============================================================================

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width  int
		height int
	}{
		{80, 24},
		{120, 40},
		{200, 60},
		{40, 10},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, tc.height)
		if theme.Width != tc.width {
			t.Errorf("SetSize(%d, %d) Width = %d, want %d", tc.width, tc.height, theme.Width, tc.width)
		}
		if theme.Height != tc.height {
			t.Errorf("SetSize(%d, %d) Height = %d, want %d", tc.width, tc.height, theme.Height, tc.height)
		}
	}
}

func TestThemeGetLayoutMode(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{80, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{150, LayoutWide},
		{200, LayoutWide},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, 24)
		got := theme.GetLayoutMode()
		if got != tc.want {
			t.Errorf("GetLayoutMode() with width %d = %v, want %v", tc.width, got, tc.want)
		}
	}
}

// =============================================================================
// LAYOUT MODE TESTS
// =============================================================================

func TestLayoutModeConstants(t *testing.T) {
	// Verify layout mode constants have expected values
	if LayoutNarrow != 0 {
		t.Errorf("LayoutNarrow = %d, want 0", LayoutNarrow)
	}
	if LayoutMedium != 1 {
		t.Errorf("LayoutMedium = %d, want 1", LayoutMedium)
	}
	if LayoutWide != 2 {
		t.Errorf("LayoutWide = %d, want 2", LayoutWide)
	}
}

// =============================================================================
// STATUS BAR STYLE TESTS
// =============================================================================

func TestThemeStatusBarStyles(t *testing.T) {
	theme := NewTheme()

	statusStyles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"StatusBar", theme.StatusBar},
		{"StatusBarWide", theme.StatusBarWide},
		{"NotebookBadge", theme.NotebookBadge},
		{"IndexFresh", theme.IndexFresh},
		{"IndexSyncing", theme.IndexSyncing},
		{"IndexOff", theme.IndexOff},
		{"ReminderBadge", theme.ReminderBadge},
		{"ShortcutKey", theme.ShortcutKey},
		{"ShortcutDesc", theme.ShortcutDesc},
	}

	for _, s := range statusStyles {
		rendered := s.style.Render("test")
		if rendered == "" {
			t.Errorf("%s should be initialized", s.name)
		}
	}
}

// =============================================================================
// INPUT STYLE TESTS
// =============================================================================

func TestThemeInputStyles(t *testing.T) {
	theme := NewTheme()

	inputStyles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"InputContainer", theme.InputContainer},
		{"InputPrompt", theme.InputPrompt},
		{"InputText", theme.InputText},
		{"InputPlaceholder", theme.InputPlaceholder},
		{"CharCount", theme.CharCount},
		{"CharCountWarning", theme.CharCountWarning},
		{"CharCountDanger", theme.CharCountDanger},
	}

	for _, s := range inputStyles {
		rendered := s.style.Render("test")
		if rendered == "" {
			t.Errorf("%s should be initialized", s.name)
		}
	}
}

// =============================================================================
// COMPLETION STYLE TESTS
// =============================================================================

func TestThemeCompletionStyles(t *testing.T) {
	theme := NewTheme()

	completionStyles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"CompletionPopup", theme.CompletionPopup},
		{"CompletionItem", theme.CompletionItem},
		{"CompletionSelected", theme.CompletionSelected},
		{"CompletionMatch", theme.CompletionMatch},
	}

	for _, s := range completionStyles {
		rendered := s.style.Render("test")
		if rendered == "" {
			t.Errorf("%s should be initialized", s.name)
		}
	}
}

// =============================================================================
// ACCESSIBILITY STYLE TESTS
// =============================================================================

func TestThemeAccessibilityStyles(t *testing.T) {
	theme := NewTheme()

	// Test that accessibility styles are initialized
	accessibilityStyles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"SuccessStyle", theme.SuccessStyle},
		{"ErrorStyle", theme.ErrorStyle},
		{"WarningStyle", theme.WarningStyle},
		{"InfoStyle", theme.InfoStyle},
		{"LinkStyle", theme.LinkStyle},
	}

	for _, s := range accessibilityStyles {
		rendered := s.style.Render("test")
		if rendered == "" {
			t.Errorf("%s should be initialized", s.name)
		}
	}
}
