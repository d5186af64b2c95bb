// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package composer provides the main composition view for the jot TUI.
package composer

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY BINDINGS
// =============================================================================

// KeyMap defines the keyboard bindings for the composer.
type KeyMap struct {
	// Draft
	Submit      key.Binding
	SaveDraft   key.Binding
	ExportDraft key.Binding
	ClearDraft  key.Binding

	// Suggestions
	AcceptSuggestion   key.Binding
	NextSuggestion     key.Binding
	PrevSuggestion     key.Binding
	DismissSuggestions key.Binding

	// View
	TogglePreview key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding

	// General
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "commit line / run command"),
		),
		SaveDraft: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save draft as note"),
		),
		ExportDraft: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export draft"),
		),
		ClearDraft: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear draft"),
		),
		AcceptSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		NextSuggestion: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next suggestion"),
		),
		PrevSuggestion: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "previous suggestion"),
		),
		DismissSuggestions: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss suggestions"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "toggle preview"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the compact help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.SaveDraft, k.TogglePreview, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped into columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.SaveDraft, k.ExportDraft, k.ClearDraft},
		{k.AcceptSuggestion, k.NextSuggestion, k.PrevSuggestion, k.DismissSuggestions},
		{k.TogglePreview, k.ScrollUp, k.ScrollDown},
		{k.Help, k.Quit},
	}
}

// =============================================================================
// CONTEXT-AWARE HELP
// =============================================================================

// HelpContext identifies what the user is doing, so the help overlay can
// show only the keys that currently work (lazygit-style contextual help).
type HelpContext int

const (
	// ContextEditing - composing the draft, no popup or overlay open
	ContextEditing HelpContext = iota
	// ContextSuggest - the suggestion popup is open
	ContextSuggest
	// ContextPreview - the draft preview is open
	ContextPreview
)

// HelpCategory groups help items in the overlay.
type HelpCategory string

const (
	CategoryDraft    HelpCategory = "Draft"
	CategoryCommands HelpCategory = "Commands"
	CategoryView     HelpCategory = "View"
	CategoryGeneral  HelpCategory = "General"
)

// HelpItem is one key description in the help overlay.
type HelpItem struct {
	Key      string
	Desc     string
	Category HelpCategory
	Contexts []HelpContext
}

// GetHelpItems returns every help item with its applicable contexts.
func GetHelpItems() []HelpItem {
	return []HelpItem{
		// Draft
		{Key: "Enter", Desc: "Commit the line to the draft", Category: CategoryDraft, Contexts: []HelpContext{ContextEditing}},
		{Key: "Ctrl+S", Desc: "Save the draft as a note", Category: CategoryDraft, Contexts: []HelpContext{ContextEditing, ContextPreview}},
		{Key: "Ctrl+E", Desc: "Export the draft to a file", Category: CategoryDraft, Contexts: []HelpContext{ContextEditing, ContextPreview}},
		{Key: "Ctrl+L", Desc: "Discard the draft", Category: CategoryDraft, Contexts: []HelpContext{ContextEditing}},

		// Commands
		{Key: "/command", Desc: "Run a slash command (/help lists them)", Category: CategoryCommands, Contexts: []HelpContext{ContextEditing}},
		{Key: "Tab", Desc: "Accept the highlighted suggestion", Category: CategoryCommands, Contexts: []HelpContext{ContextSuggest}},
		{Key: "Up/Down", Desc: "Move through suggestions", Category: CategoryCommands, Contexts: []HelpContext{ContextSuggest}},
		{Key: "Esc", Desc: "Dismiss the suggestion popup", Category: CategoryCommands, Contexts: []HelpContext{ContextSuggest}},

		// View
		{Key: "Ctrl+P", Desc: "Toggle the draft preview", Category: CategoryView, Contexts: []HelpContext{ContextEditing, ContextPreview}},
		{Key: "PgUp/PgDn", Desc: "Scroll the pane", Category: CategoryView, Contexts: []HelpContext{ContextEditing, ContextPreview}},
		{Key: "Esc", Desc: "Close the preview", Category: CategoryView, Contexts: []HelpContext{ContextPreview}},

		// General
		{Key: "F1", Desc: "Toggle this help", Category: CategoryGeneral, Contexts: []HelpContext{ContextEditing, ContextSuggest, ContextPreview}},
		{Key: "Esc", Desc: "Dismiss the newest banner", Category: CategoryGeneral, Contexts: []HelpContext{ContextEditing}},
		{Key: "Ctrl+C", Desc: "Quit", Category: CategoryGeneral, Contexts: []HelpContext{ContextEditing, ContextSuggest, ContextPreview}},
	}
}

// GetHelpItemsForContext returns the help items that apply in the given
// context, in declaration order.
func GetHelpItemsForContext(ctx HelpContext) []HelpItem {
	var items []HelpItem
	for _, item := range GetHelpItems() {
		for _, c := range item.Contexts {
			if c == ctx {
				items = append(items, item)
				break
			}
		}
	}
	return items
}

// GetHelpItemsByCategory returns the applicable help items grouped by
// category.
func GetHelpItemsByCategory(ctx HelpContext) map[HelpCategory][]HelpItem {
	grouped := make(map[HelpCategory][]HelpItem)
	for _, item := range GetHelpItemsForContext(ctx) {
		grouped[item.Category] = append(grouped[item.Category], item)
	}
	return grouped
}

// GetCategoryOrder returns the categories in display order.
func GetCategoryOrder() []HelpCategory {
	return []HelpCategory{CategoryDraft, CategoryCommands, CategoryView, CategoryGeneral}
}

// GetContextDisplayName returns a human-readable name for a help context.
func GetContextDisplayName(ctx HelpContext) string {
	switch ctx {
	case ContextEditing:
		return "Editing"
	case ContextSuggest:
		return "Suggestions"
	case ContextPreview:
		return "Preview"
	default:
		return "Unknown"
	}
}
