// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// =============================================================================
// REGISTRATION
// =============================================================================

// RegisterBuiltins adds jot's built-in command set to the registry. Each
// built-in is an ordinary Command; hosts can Unregister and replace any of
// them.
func RegisterBuiltins(reg *Registry) error {
	builtins := []*Command{
		helpCommand(reg),
		noteCommand(),
		notebookCommand(),
		tagCommand(),
		searchCommand(),
		taggedCommand(),
		remindCommand(),
		timestampCommand(),
		clearCommand(),
	}
	for _, cmd := range builtins {
		if err := reg.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// GENERAL
// =============================================================================

// helpCommand closes over the registry so /help reflects whatever is
// registered at call time, plugins included.
func helpCommand(reg *Registry) *Command {
	return &Command{
		Name:        "help",
		Aliases:     []string{"h", "?"},
		Description: "Show available commands",
		Usage:       "/help [command]",
		Category:    "General",
		Args: []ArgSpec{
			{Name: "command", Description: "Show details for one command"},
		},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			if len(args) == 0 {
				return &Result{Success: true, Message: RenderHelp(reg)}, nil
			}
			cmd := reg.Get(args[0])
			if cmd == nil {
				return &Result{
					Success: false,
					Message: fmt.Sprintf("unknown command %q. Type %shelp for available commands.", Marker+strings.TrimPrefix(args[0], Marker), Marker),
				}, nil
			}
			return &Result{Success: true, Message: RenderCommandHelp(cmd)}, nil
		},
		Autocomplete: func(args []string, ctx *Context) ([]string, error) {
			partial := strings.ToLower(strings.TrimPrefix(lastArg(args), Marker))
			var out []string
			for _, cmd := range reg.All() {
				if strings.HasPrefix(cmd.Name, partial) {
					out = append(out, cmd.Name)
				}
			}
			return out, nil
		},
	}
}

func clearCommand() *Command {
	return &Command{
		Name:        "clear",
		Aliases:     []string{"cl"},
		Description: "Clear the composer input",
		Usage:       "/clear",
		Category:    "General",
		Execute: func(args []string, ctx *Context) (*Result, error) {
			return &Result{Success: true, ClearInput: true}, nil
		},
	}
}

// =============================================================================
// NOTES
// =============================================================================

func noteCommand() *Command {
	return &Command{
		Name:        "note",
		Aliases:     []string{"new"},
		Description: "Create a note from the given text",
		Usage:       "/note [text...]",
		Category:    "Notes",
		Args: []ArgSpec{
			{Name: "text", Description: "Note content; empty starts from the current draft"},
		},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			return &Result{
				Success:     true,
				CreateNote:  true,
				NoteContent: strings.Join(args, " "),
				ClearInput:  true,
			}, nil
		},
	}
}

func notebookCommand() *Command {
	return &Command{
		Name:        "notebook",
		Aliases:     []string{"nb"},
		Description: "List notebooks or switch the active one",
		Usage:       "/notebook [name]",
		Category:    "Notes",
		Args: []ArgSpec{
			{Name: "name", Description: "Notebook to switch to; omit to list"},
		},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			if ctx == nil || ctx.Notebooks == nil {
				return &Result{Success: false, Message: "notebook store is not available"}, nil
			}
			books, err := ctx.Notebooks.ListNotebooks()
			if err != nil {
				return nil, err
			}

			if len(args) == 0 {
				if len(books) == 0 {
					return &Result{Success: true, Message: "no notebooks yet"}, nil
				}
				var sb strings.Builder
				sb.WriteString("Notebooks\n")
				sb.WriteString("---------\n")
				for _, nb := range books {
					line := "  " + nb.Name
					if nb.ID == ctx.NotebookID {
						line += " (active)"
					}
					for len(line) < 26 {
						line += " "
					}
					fmt.Fprintf(&sb, "%s%d notes\n", line, nb.NoteCount)
				}
				return &Result{Success: true, Message: sb.String()}, nil
			}

			name := args[0]
			for _, nb := range books {
				if strings.EqualFold(nb.Name, name) || strings.EqualFold(nb.ID, name) {
					if err := ctx.Notebooks.SetActiveNotebook(nb.ID); err != nil {
						return nil, err
					}
					return &Result{Success: true, Message: "switched to notebook " + nb.Name}, nil
				}
			}
			return &Result{Success: false, Message: fmt.Sprintf("notebook %q not found", name)}, nil
		},
		Autocomplete: func(args []string, ctx *Context) ([]string, error) {
			if ctx == nil || ctx.Notebooks == nil {
				return nil, nil
			}
			books, err := ctx.Notebooks.ListNotebooks()
			if err != nil {
				return nil, err
			}
			partial := strings.ToLower(lastArg(args))
			var out []string
			for _, nb := range books {
				if strings.HasPrefix(strings.ToLower(nb.Name), partial) {
					out = append(out, nb.Name)
				}
			}
			return out, nil
		},
	}
}

// =============================================================================
// ORGANIZE
// =============================================================================

func tagCommand() *Command {
	return &Command{
		Name:        "tag",
		Aliases:     []string{"t"},
		Description: "Insert hashtags into the draft",
		Usage:       "/tag <tag> [tag...]",
		Category:    "Organize",
		Args: []ArgSpec{
			{Name: "tag", Required: true, Description: "Tag to insert; quote multi-word tags"},
		},
		Validate: func(args []string, ctx *Context) error {
			if len(args) == 0 {
				return fmt.Errorf("%stag requires at least one tag", Marker)
			}
			return nil
		},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			var tags []string
			for _, t := range args {
				if s := slug.Make(t); s != "" {
					tags = append(tags, "#"+s)
				}
			}
			if len(tags) == 0 {
				return &Result{Success: false, Message: "no usable tags in input"}, nil
			}
			return &Result{Success: true, InsertContent: strings.Join(tags, " ") + " "}, nil
		},
		Autocomplete: completeTags,
	}
}

func remindCommand() *Command {
	return &Command{
		Name:        "remind",
		Aliases:     []string{"rem"},
		Description: "Schedule a reminder",
		Usage:       "/remind <in> <message...>",
		Category:    "Organize",
		Args: []ArgSpec{
			{Name: "in", Required: true, Description: "Delay such as 10m, 2h, 1d, 1w"},
			{Name: "message", Required: true, Description: "Reminder text"},
		},
		Validate: func(args []string, ctx *Context) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: %sremind <in> <message...>", Marker)
			}
			_, err := parseRemindIn(args[0])
			return err
		},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			if ctx == nil || ctx.Reminders == nil {
				return &Result{Success: false, Message: "reminders are not available"}, nil
			}
			delay, err := parseRemindIn(args[0])
			if err != nil {
				return &Result{Success: false, Message: err.Error()}, nil
			}
			due := ctx.Now().Add(delay)
			message := strings.Join(args[1:], " ")
			if err := ctx.Reminders.CreateReminder(message, due, ctx.NotebookID); err != nil {
				return nil, err
			}
			return &Result{
				Success:    true,
				ClearInput: true,
				Message:    "reminder set for " + due.Format("2006-01-02 15:04"),
			}, nil
		},
		Autocomplete: func(args []string, ctx *Context) ([]string, error) {
			if len(args) > 1 {
				return nil, nil
			}
			partial := lastArg(args)
			var out []string
			for _, d := range []string{"10m", "30m", "1h", "2h", "1d", "1w"} {
				if strings.HasPrefix(d, partial) {
					out = append(out, d)
				}
			}
			return out, nil
		},
	}
}

// =============================================================================
// SEARCH
// =============================================================================

func searchCommand() *Command {
	return &Command{
		Name:        "search",
		Aliases:     []string{"find"},
		Description: "Search notes by text",
		Usage:       "/search <query...>",
		Category:    "Search",
		Args: []ArgSpec{
			{Name: "query", Required: true, Description: "Text to look for"},
		},
		Validate: func(args []string, ctx *Context) error {
			if len(args) == 0 {
				return fmt.Errorf("%ssearch requires a query", Marker)
			}
			return nil
		},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			if ctx == nil || ctx.Search == nil {
				return &Result{Success: false, Message: "search is not available"}, nil
			}
			query := strings.Join(args, " ")
			hits, err := ctx.Search.SearchNotes(ctx.Root, query)
			if err != nil {
				return nil, err
			}
			if len(hits) == 0 {
				return &Result{Success: true, Message: fmt.Sprintf("no notes match %q", query)}, nil
			}
			return &Result{Success: true, Message: renderHits(hits)}, nil
		},
	}
}

func taggedCommand() *Command {
	return &Command{
		Name:        "tagged",
		Aliases:     []string{"bytag"},
		Description: "List notes carrying a tag",
		Usage:       "/tagged <tag>",
		Category:    "Search",
		Args: []ArgSpec{
			{Name: "tag", Required: true, Description: "Tag to look for"},
		},
		Validate: func(args []string, ctx *Context) error {
			if len(args) == 0 {
				return fmt.Errorf("%stagged requires a tag", Marker)
			}
			return nil
		},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			if ctx == nil || ctx.Search == nil {
				return &Result{Success: false, Message: "search is not available"}, nil
			}
			tag := strings.TrimPrefix(args[0], "#")
			hits, err := ctx.Search.SearchByTag(ctx.Root, tag)
			if err != nil {
				return nil, err
			}
			if len(hits) == 0 {
				return &Result{Success: true, Message: fmt.Sprintf("no notes tagged #%s", tag)}, nil
			}
			return &Result{Success: true, Message: renderHits(hits)}, nil
		},
		Autocomplete: completeTags,
	}
}

// =============================================================================
// INSERT
// =============================================================================

func timestampCommand() *Command {
	return &Command{
		Name:        "timestamp",
		Aliases:     []string{"ts"},
		Description: "Insert the current date and time",
		Usage:       "/timestamp [format]",
		Category:    "Insert",
		Args: []ArgSpec{
			{Name: "format", Description: "One of iso, unix, date, time", Default: "date and time"},
		},
		Validate: func(args []string, ctx *Context) error {
			if len(args) == 0 {
				return nil
			}
			switch strings.ToLower(args[0]) {
			case "iso", "unix", "date", "time":
				return nil
			}
			return fmt.Errorf("unknown timestamp format %q (iso, unix, date, time)", args[0])
		},
		Execute: func(args []string, ctx *Context) (*Result, error) {
			now := ctx.Now()
			format := ""
			if len(args) > 0 {
				format = strings.ToLower(args[0])
			}

			var out string
			switch format {
			case "iso":
				out = now.Format(time.RFC3339)
			case "unix":
				out = strconv.FormatInt(now.Unix(), 10)
			case "date":
				out = now.Format("2006-01-02")
			case "time":
				out = now.Format("15:04:05")
			default:
				out = now.Format("2006-01-02 15:04")
			}
			return &Result{Success: true, InsertContent: out}, nil
		},
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// parseRemindIn parses the /remind delay forms: a positive integer followed
// by m, h, d, or w.
func parseRemindIn(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid delay %q (use forms like 10m, 2h, 1d, 1w)", s)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid delay %q (use forms like 10m, 2h, 1d, 1w)", s)
	}
	switch s[len(s)-1] {
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("invalid delay %q (use forms like 10m, 2h, 1d, 1w)", s)
}

// completeTags suggests known tags matching the partial argument. Shared by
// /tag and /tagged.
func completeTags(args []string, ctx *Context) ([]string, error) {
	if ctx == nil || ctx.Tags == nil {
		return nil, nil
	}
	tags, err := ctx.Tags.ListAllTags()
	if err != nil {
		return nil, err
	}
	partial := strings.ToLower(strings.TrimPrefix(lastArg(args), "#"))
	var out []string
	for _, t := range tags {
		if strings.HasPrefix(strings.ToLower(t), partial) {
			out = append(out, t)
		}
	}
	return out, nil
}

// lastArg returns the final argument, the one being typed, or "".
func lastArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}

// renderHits formats search results for the feedback pane.
func renderHits(hits []SearchHit) string {
	const maxShown = 10

	var sb strings.Builder
	if len(hits) == 1 {
		sb.WriteString("1 match\n")
	} else {
		fmt.Fprintf(&sb, "%d matches\n", len(hits))
	}

	shown := hits
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	for _, h := range shown {
		title := h.Title
		if title == "" {
			title = h.Path
		}
		line := "  " + title
		for len(line) < 28 {
			line += " "
		}
		sb.WriteString(line + h.Path + "\n")
		if h.Snippet != "" {
			sb.WriteString("      " + h.Snippet + "\n")
		}
	}
	if len(hits) > maxShown {
		fmt.Fprintf(&sb, "  ... and %d more\n", len(hits)-maxShown)
	}
	return sb.String()
}
