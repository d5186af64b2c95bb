// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the jot TUI.

This package contains a collection of styled components built on top of the
Bubble Tea and Lip Gloss libraries. Each component is designed to be visually
polished and consistent with the jot design language.

# Core Components

## Input Components

CompletionPopup (completion.go) - Suggestion popup for slash commands and
their arguments. The popup is a pure renderer; the suggestion list and the
selection index live in the command engine and are pushed in before each View.

## Display Components

StatusBar (statusbar.go) - Bottom status bar with the active notebook, draft
word count, index state, pending reminders, and keyboard shortcuts. Adapts
its layout to narrow, medium, and wide terminals.
CodeBlock (codeblock.go) - Syntax-highlighted code blocks using Chroma, used
by the plain preview mode for fenced blocks in note bodies.

## Notifications

Banner (banner.go) - Transient notification banners for command results,
errors, and due reminders. BannerManager stacks them bottom-right and expires
them on a tick.

# Key Types

## Theme Integration

Components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	bar := components.NewStatusBar(theme)
	bar.SetWidth(80)
	bar.SetNotebook("work", 12)
	view := bar.View()

## Banner Lifecycle

Banners are managed centrally and expire on their own:

	mgr := components.NewBannerManager()
	mgr.AddReminder("Stand-up in 5 minutes")
	mgr.TickBanners()
	view := components.RenderBannerStack(mgr.GetBanners(), width, height)

# Helper Functions

The package includes shared helper functions in helpers.go:
  - toStr() - Integer to string conversion
  - fmtNumber() - Comma-grouped integer formatting for counters
*/
package components
