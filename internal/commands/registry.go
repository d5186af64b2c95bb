// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command defines a slash command. Name and Aliases are marker-less and
// unique across the registry case-insensitively. Execute is required;
// Validate and Autocomplete are optional.
type Command struct {
	Name        string    // canonical name without the marker, e.g. "tag"
	Aliases     []string  // alternate names without the marker, e.g. "t"
	Description string    // one-line summary for help and suggestions
	Usage       string    // display form, e.g. "/tag <tag> [tag...]"
	Category    string    // help grouping, e.g. "Notes"
	Args        []ArgSpec // documentation for help rendering
	Disabled    bool      // excluded from listings; still resolvable by name

	// Validate inspects args before Execute runs. A returned error becomes
	// a failed Result carrying the error text, and Execute is skipped.
	Validate func(args []string, ctx *Context) error

	// Execute runs the command. A nil Result with a nil error is treated
	// as plain success.
	Execute func(args []string, ctx *Context) (*Result, error)

	// Autocomplete supplies argument suggestions for the partial argument
	// list. Errors are swallowed by the engine; suggestions are best effort.
	Autocomplete func(args []string, ctx *Context) ([]string, error)
}

// ArgSpec documents a command argument for help rendering. The tokenizer
// never enforces it.
type ArgSpec struct {
	Name        string
	Description string
	Required    bool
	Default     string
}

// Result is what a command execution hands back to the host UI. The host
// applies the side effects; the interpreter itself touches no storage.
type Result struct {
	Success       bool
	Message       string // feedback line for the user
	InsertContent string // non-empty: replaces the live input buffer
	ClearInput    bool   // reset the input buffer
	CreateNote    bool   // host should persist NoteContent as a new note
	NoteContent   string
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry holds the registered command set. It is constructed at startup
// and passed by reference; registration is single-writer at startup, reads
// are lock-free afterwards.
type Registry struct {
	commands map[string]*Command // keyed by lower-cased canonical name
	order    []string            // lower-cased canonical names, registration order
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
	}
}

// Register adds a command. It fails with a *RegistrationError when the
// command is nil or lacks an Execute handler, when its name is empty, when
// its own name and alias set collide with each other, or when any of them
// is already claimed by a registered command's name or alias. Deliberate
// replacement is Unregister followed by Register.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil {
		return &RegistrationError{Message: "command is nil"}
	}

	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	if name == "" {
		return &RegistrationError{Name: cmd.Name, Message: "command name is empty"}
	}
	if cmd.Execute == nil {
		return &RegistrationError{Name: cmd.Name, Message: "command has no Execute handler"}
	}

	// The command's own claim set must not self-collide.
	claimed := []string{name}
	seen := map[string]bool{name: true}
	for _, alias := range cmd.Aliases {
		key := strings.ToLower(strings.TrimSpace(alias))
		if key == "" {
			return &RegistrationError{Name: cmd.Name, Message: "alias is empty"}
		}
		if seen[key] {
			return &RegistrationError{Name: cmd.Name, Conflict: key, Message: "duplicate name or alias within the command"}
		}
		seen[key] = true
		claimed = append(claimed, key)
	}

	// Nor collide with anything already registered, canonical or alias.
	for _, key := range claimed {
		if existing := r.Get(key); existing != nil {
			return &RegistrationError{
				Name:     cmd.Name,
				Conflict: key,
				Message:  "already registered by " + Marker + existing.Name,
			}
		}
	}

	r.commands[name] = cmd
	r.order = append(r.order, name)
	return nil
}

// Unregister removes a command by its canonical name. Aliases are not
// accepted here. Afterwards Get returns nil for the canonical name and for
// every alias of the removed command.
func (r *Registry) Unregister(name string) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, Marker)))
	if _, ok := r.commands[key]; !ok {
		return
	}
	delete(r.commands, key)
	for i, n := range r.order {
		if n == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get resolves a name or alias to its command, case-insensitively. A single
// leading marker is tolerated. Canonical names win; otherwise aliases are
// scanned in registration order and the first match wins. Returns nil when
// nothing matches.
func (r *Registry) Get(nameOrAlias string) *Command {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(nameOrAlias, Marker)))
	if key == "" {
		return nil
	}

	if cmd, ok := r.commands[key]; ok {
		return cmd
	}

	for _, canonical := range r.order {
		cmd := r.commands[canonical]
		for _, alias := range cmd.Aliases {
			if strings.EqualFold(alias, key) {
				return cmd
			}
		}
	}
	return nil
}

// All returns every command whose Disabled flag is false, sorted by
// canonical name.
func (r *Registry) All() []*Command {
	out := make([]*Command, 0, len(r.commands))
	for _, name := range r.order {
		cmd := r.commands[name]
		if cmd.Disabled {
			continue
		}
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ByCategory returns the enabled commands of one category, sorted by name.
func (r *Registry) ByCategory(category string) []*Command {
	var out []*Command
	for _, cmd := range r.All() {
		if cmd.Category == category {
			out = append(out, cmd)
		}
	}
	return out
}

// Categories groups the enabled commands by category for help rendering.
func (r *Registry) Categories() map[string][]*Command {
	out := make(map[string][]*Command)
	for _, cmd := range r.All() {
		out[cmd.Category] = append(out[cmd.Category], cmd)
	}
	return out
}

// Len reports the number of registered commands, disabled ones included.
func (r *Registry) Len() int {
	return len(r.commands)
}
