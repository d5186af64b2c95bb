// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"sort"
	"strings"
)

// categoryOrder fixes the display order of the built-in categories.
// Categories outside this list render after it, alphabetically.
var categoryOrder = []string{"General", "Notes", "Organize", "Search", "Insert"}

// =============================================================================
// HELP RENDERING
// =============================================================================

// RenderHelp renders the full command table grouped by category. Consumed
// by /help and by the capture REPL.
func RenderHelp(reg *Registry) string {
	var sb strings.Builder

	sb.WriteString("Available Commands\n")
	sb.WriteString("==================\n\n")

	categories := reg.Categories()
	for _, category := range orderedCategories(categories) {
		cmds := categories[category]
		if len(cmds) == 0 {
			continue
		}

		title := category
		if title == "" {
			title = "Other"
		}
		sb.WriteString(title + "\n")
		sb.WriteString(strings.Repeat("-", len(title)) + "\n")

		for _, cmd := range cmds {
			line := "  " + Marker + cmd.Name
			if len(cmd.Aliases) > 0 {
				line += " (" + joinWithMarker(cmd.Aliases) + ")"
			}
			for len(line) < 30 {
				line += " "
			}
			line += cmd.Description
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Type " + Marker + "help <command> for usage details.\n")
	return sb.String()
}

// RenderCommandHelp renders one command's usage, aliases, and arguments.
func RenderCommandHelp(cmd *Command) string {
	var sb strings.Builder

	sb.WriteString(Marker + cmd.Name)
	if len(cmd.Aliases) > 0 {
		sb.WriteString(" (" + joinWithMarker(cmd.Aliases) + ")")
	}
	sb.WriteString("\n")

	if cmd.Description != "" {
		sb.WriteString("  " + cmd.Description + "\n")
	}
	if cmd.Usage != "" {
		sb.WriteString("\n  Usage: " + cmd.Usage + "\n")
	}

	if len(cmd.Args) > 0 {
		sb.WriteString("\n  Arguments:\n")
		for _, arg := range cmd.Args {
			name := arg.Name
			if !arg.Required {
				name = "[" + name + "]"
			}
			line := "    " + name
			for len(line) < 18 {
				line += " "
			}
			line += arg.Description
			if arg.Default != "" {
				line += " (default: " + arg.Default + ")"
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

// orderedCategories lists the map's keys in display order: the fixed
// built-in order first, anything else alphabetical after it.
func orderedCategories(categories map[string][]*Command) []string {
	out := make([]string, 0, len(categories))
	seen := make(map[string]bool)
	for _, c := range categoryOrder {
		if _, ok := categories[c]; ok {
			out = append(out, c)
			seen[c] = true
		}
	}

	var rest []string
	for c := range categories {
		if !seen[c] {
			rest = append(rest, c)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func joinWithMarker(names []string) string {
	marked := make([]string, len(names))
	for i, n := range names {
		marked[i] = Marker + n
	}
	return strings.Join(marked, ", ")
}
