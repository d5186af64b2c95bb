// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser gives multi-verb commands (config, notebooks, index, reminders)
// structured access to their arguments. It handles the flag formats jot
// accepts consistently:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (no value needed)
//   - Positional arguments: the first one is the verb
type ArgParser struct {
	subcommand string            // first positional arg ("create", "rebuild", "set")
	flags      map[string]string // string flags (--output dir)
	boolFlags  map[string]bool   // boolean flags (--all)
	positional []string          // all positional arguments including the verb
	raw        []string          // original raw arguments
}

// NewArgParser parses raw arguments into flags and positionals.
//
// Example:
//
//	p := NewArgParser([]string{"set", "history.size", "500", "--json"})
//	p.Subcommand()       // "set"
//	p.Positional(1)      // "history.size"
//	p.Positional(2)      // "500"
//	p.BoolFlag("json")   // true
func NewArgParser(raw []string) *ArgParser {
	parser := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
		raw:        raw,
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if strings.HasPrefix(arg, "-") {
			// --flag=value form
			if strings.Contains(arg, "=") {
				parts := strings.SplitN(arg, "=", 2)
				flagName := strings.TrimLeft(parts[0], "-")
				flagValue := parts[1]

				// Boolean flags can be explicit: --all=true, --all=false
				if flagValue == "true" || flagValue == "false" {
					parser.boolFlags[flagName] = flagValue == "true"
				} else {
					parser.flags[flagName] = flagValue
				}
				i++
				continue
			}

			flagName := strings.TrimLeft(arg, "-")

			if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
				// Flag with a value
				parser.flags[flagName] = raw[i+1]
				i += 2
			} else {
				// Boolean flag
				parser.boolFlags[flagName] = true
				i++
			}
		} else {
			parser.positional = append(parser.positional, arg)
			i++
		}
	}

	if len(parser.positional) > 0 {
		parser.subcommand = parser.positional[0]
	}

	return parser
}

// Subcommand returns the first positional argument, or "" when there is none.
//
// Example: "jot config set ui.theme light" -> "set"
func (p *ArgParser) Subcommand() string {
	return p.subcommand
}

// Flag returns the value of a string flag, or "" when the flag is absent.
// Leading dashes in name are tolerated.
func (p *ArgParser) Flag(name string) string {
	if val, ok := p.flags[name]; ok {
		return val
	}

	name = strings.TrimLeft(name, "-")
	if val, ok := p.flags[name]; ok {
		return val
	}

	return ""
}

// FlagOrDefault returns the flag value or a default when absent.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// FlagInt returns the flag value as an integer.
func (p *ArgParser) FlagInt(name string) (int, error) {
	val := p.Flag(name)
	if val == "" {
		return 0, fmt.Errorf("flag %s not found", name)
	}
	return strconv.Atoi(val)
}

// FlagIntOrDefault returns the flag value as an integer, or the default when
// the flag is absent or malformed.
func (p *ArgParser) FlagIntOrDefault(name string, defaultValue int) int {
	val, err := p.FlagInt(name)
	if err != nil {
		return defaultValue
	}
	return val
}

// BoolFlag reports whether a boolean flag is set. Leading dashes in name are
// tolerated.
//
// Example:
//
//	p.BoolFlag("all")   // jot reminders --all
func (p *ArgParser) BoolFlag(name string) bool {
	if val, ok := p.boolFlags[name]; ok {
		return val
	}

	name = strings.TrimLeft(name, "-")
	if val, ok := p.boolFlags[name]; ok {
		return val
	}

	return false
}

// Positional returns the positional argument at index, or "" when out of
// bounds. Index 0 is the subcommand.
//
// Example: "jot notebooks create work"
//
//	p.Positional(0)  // "create"
//	p.Positional(1)  // "work"
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns all positional arguments starting at index. Useful
// for joining trailing words into one value.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return []string{}
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// HasFlag reports whether the flag exists, as either a string or bool flag.
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}

// Raw returns the original raw arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}

// =============================================================================
// SHARED PARSING HELPERS
// =============================================================================

// ParseIntWithValidation parses a required positive integer, naming the field
// in error messages.
func ParseIntWithValidation(s string, fieldName string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is required", fieldName)
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", fieldName, err)
	}

	if val <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", fieldName, val)
	}

	return val, nil
}

// ParseBoolString parses a boolean from the spellings people actually type:
// true/false, yes/no, y/n, 1/0, on/off (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}

// JoinPositionalArgs joins positional arguments from startIndex into a single
// string, for verbs that take free-form trailing text.
//
// Example: "jot notebooks create weekend projects" -> "weekend projects"
func JoinPositionalArgs(parser *ArgParser, startIndex int) string {
	return strings.Join(parser.PositionalFrom(startIndex), " ")
}
