// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Suggestion caps keep the popup glanceable.
const (
	MaxCommandSuggestions = 6
	MaxArgSuggestions     = 5
)

// =============================================================================
// TYPES
// =============================================================================

// SuggestMode is the autocomplete state derived from the live input.
type SuggestMode int

const (
	SuggestIdle     SuggestMode = iota // input is not a command line
	SuggestCommands                    // completing the command name
	SuggestArgs                        // completing an argument
)

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Value       string // what Accept inserts
	Display     string // what the popup shows
	Description string
}

// SuggestionsMsg carries an asynchronous provider response back to the
// engine. Generation identifies the keystroke that requested it.
type SuggestionsMsg struct {
	Generation  uint64
	Suggestions []Suggestion
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine is the autocomplete state machine. Feed it the whole input on
// every change via OnInput; it recomputes its state each time rather than
// being driven by explicit transitions. Argument suggestions arrive
// asynchronously as a SuggestionsMsg tagged with a generation counter;
// responses from superseded keystrokes are discarded in Resolve.
//
// The engine is confined to the UI goroutine. Only the tea.Cmd closures it
// returns run elsewhere, and they share nothing with it but captured values.
type Engine struct {
	registry    *Registry
	mode        SuggestMode
	suggestions []Suggestion
	selected    int
	input       string // last input seen, used by Accept to rewrite
	generation  uint64 // bumped on every OnInput and Dismiss
}

// NewEngine returns an idle engine over the registry.
func NewEngine(reg *Registry) *Engine {
	return &Engine{registry: reg}
}

// OnInput recomputes the autocomplete state for the current input. The
// returned tea.Cmd is non-nil only when an argument provider needs to be
// consulted; dispatch it and route the resulting SuggestionsMsg to Resolve.
//
// Command-name filtering is synchronous: a command matches when the typed
// text is a case-insensitive prefix of its canonical name or any alias,
// each command appears once under its canonical name, and the list is
// alphabetical, capped at MaxCommandSuggestions. Argument suggesting
// requires the head token to resolve, the command to carry a provider, and
// a non-empty partial argument; anything less means no suggestions, never
// an error.
func (e *Engine) OnInput(input string, ctx *Context) tea.Cmd {
	e.input = input
	e.generation++
	e.selected = 0

	trimmed := strings.TrimLeftFunc(input, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, Marker) {
		e.mode = SuggestIdle
		e.suggestions = nil
		return nil
	}

	body := trimmed[len(Marker):]
	ws := strings.IndexFunc(body, unicode.IsSpace)
	if ws < 0 {
		e.mode = SuggestCommands
		e.suggestions = e.filterCommands(body)
		return nil
	}

	// Crossing into argument mode drops the command-name suggestions so a
	// Tab cannot apply one as an argument. While an argument fetch is in
	// flight the previous argument list stays visible.
	if e.mode != SuggestArgs {
		e.suggestions = nil
	}
	e.mode = SuggestArgs

	cmd := e.registry.Get(body[:ws])
	partial := lastToken(input)
	if cmd == nil || cmd.Autocomplete == nil || partial == "" {
		e.suggestions = nil
		return nil
	}

	gen := e.generation
	provider := cmd.Autocomplete
	args := Tokenize(input).Args
	return func() tea.Msg {
		values, err := provider(args, ctx)
		if err != nil {
			return SuggestionsMsg{Generation: gen}
		}
		out := make([]Suggestion, 0, len(values))
		for _, v := range values {
			out = append(out, Suggestion{Value: v, Display: v})
		}
		return SuggestionsMsg{Generation: gen, Suggestions: out}
	}
}

// Resolve applies an asynchronous provider response. Responses whose
// generation no longer matches the engine's are stale and ignored.
func (e *Engine) Resolve(msg SuggestionsMsg) {
	if msg.Generation != e.generation {
		return
	}
	s := msg.Suggestions
	if len(s) > MaxArgSuggestions {
		s = s[:MaxArgSuggestions]
	}
	e.suggestions = s
	e.selected = 0
}

// filterCommands builds the command-name suggestion list for a partial
// name. Registry.All is already alphabetical with disabled commands
// excluded.
func (e *Engine) filterCommands(partial string) []Suggestion {
	p := strings.ToLower(partial)
	var out []Suggestion
	for _, cmd := range e.registry.All() {
		if !matchesCommand(cmd, p) {
			continue
		}
		out = append(out, Suggestion{
			Value:       cmd.Name,
			Display:     Marker + cmd.Name,
			Description: cmd.Description,
		})
		if len(out) == MaxCommandSuggestions {
			break
		}
	}
	return out
}

// matchesCommand reports whether the lower-cased partial is a prefix of the
// command's canonical name or any alias.
func matchesCommand(cmd *Command, partial string) bool {
	if strings.HasPrefix(strings.ToLower(cmd.Name), partial) {
		return true
	}
	for _, alias := range cmd.Aliases {
		if strings.HasPrefix(strings.ToLower(alias), partial) {
			return true
		}
	}
	return false
}

// =============================================================================
// SELECTION AND ACCEPTANCE
// =============================================================================

// Mode reports the current autocomplete state.
func (e *Engine) Mode() SuggestMode {
	return e.mode
}

// Suggestions returns the current candidate list.
func (e *Engine) Suggestions() []Suggestion {
	return e.suggestions
}

// Selected reports the index of the highlighted candidate.
func (e *Engine) Selected() int {
	return e.selected
}

// Active reports whether the popup has anything to show.
func (e *Engine) Active() bool {
	return e.mode != SuggestIdle && len(e.suggestions) > 0
}

// Next moves the selection down, wrapping at the end.
func (e *Engine) Next() {
	if n := len(e.suggestions); n > 0 {
		e.selected = (e.selected + 1) % n
	}
}

// Prev moves the selection up, wrapping at the start.
func (e *Engine) Prev() {
	if n := len(e.suggestions); n > 0 {
		e.selected = (e.selected - 1 + n) % n
	}
}

// Accept applies the highlighted suggestion and returns the rewritten
// input. A command suggestion rewrites the whole line to the canonical
// "/name " regardless of which alias matched; an argument suggestion
// replaces only the last whitespace-delimited token and appends a space.
// Returns false when there is nothing to accept.
func (e *Engine) Accept() (string, bool) {
	if !e.Active() {
		return "", false
	}
	sel := e.suggestions[e.selected]

	switch e.mode {
	case SuggestCommands:
		return Marker + sel.Value + " ", true
	case SuggestArgs:
		i := strings.LastIndexFunc(e.input, unicode.IsSpace)
		prefix := ""
		if i >= 0 {
			_, w := utf8.DecodeRuneInString(e.input[i:])
			prefix = e.input[:i+w]
		}
		return prefix + sel.Value + " ", true
	}
	return "", false
}

// Dismiss hides the popup without touching the input. The generation bump
// kills any in-flight argument fetch so the popup does not pop back up.
func (e *Engine) Dismiss() {
	e.mode = SuggestIdle
	e.suggestions = nil
	e.selected = 0
	e.generation++
}

// lastToken returns the substring after the last whitespace rune.
func lastToken(s string) string {
	i := strings.LastIndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s
	}
	_, w := utf8.DecodeRuneInString(s[i:])
	return s[i+w:]
}
