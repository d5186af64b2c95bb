// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"errors"
	"os"
	"testing"
	"time"
)

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name: "verb with positionals and bool flag",
			args: []string{"set", "ui.theme", "light", "--json"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Subcommand() != "set" {
					t.Errorf("Subcommand = %q, want %q", p.Subcommand(), "set")
				}
				if p.Positional(1) != "ui.theme" {
					t.Errorf("Positional(1) = %q, want %q", p.Positional(1), "ui.theme")
				}
				if p.Positional(2) != "light" {
					t.Errorf("Positional(2) = %q, want %q", p.Positional(2), "light")
				}
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) = false, want true")
				}
			},
		},
		{
			name: "flag with equals sign",
			args: []string{"--output=exports", "--limit=5"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("output") != "exports" {
					t.Errorf("Flag(output) = %q, want %q", p.Flag("output"), "exports")
				}
				if n := p.FlagIntOrDefault("limit", 0); n != 5 {
					t.Errorf("FlagIntOrDefault(limit) = %d, want 5", n)
				}
			},
		},
		{
			name: "explicit boolean values",
			args: []string{"--all=false", "--json=true"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("all") {
					t.Error("BoolFlag(all) = true, want false")
				}
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) = false, want true")
				}
			},
		},
		{
			name: "short flag with value",
			args: []string{"-o", "out"},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("o") != "out" {
					t.Errorf("Flag(o) = %q, want %q", p.Flag("o"), "out")
				}
			},
		},
		{
			name: "trailing flag without value is boolean",
			args: []string{"rebuild", "--all"},
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("all") {
					t.Error("BoolFlag(all) = false, want true")
				}
				if p.Subcommand() != "rebuild" {
					t.Errorf("Subcommand = %q, want %q", p.Subcommand(), "rebuild")
				}
			},
		},
		{
			name: "no arguments",
			args: []string{},
			validate: func(t *testing.T, p *ArgParser) {
				if p.Subcommand() != "" {
					t.Errorf("Subcommand = %q, want empty", p.Subcommand())
				}
				if p.PositionalCount() != 0 {
					t.Errorf("PositionalCount = %d, want 0", p.PositionalCount())
				}
			},
		},
		{
			name: "positional from joins trailing words",
			args: []string{"create", "weekend", "projects"},
			validate: func(t *testing.T, p *ArgParser) {
				got := JoinPositionalArgs(p, 1)
				if got != "weekend projects" {
					t.Errorf("JoinPositionalArgs = %q, want %q", got, "weekend projects")
				}
			},
		},
		{
			name: "has flag sees both kinds",
			args: []string{"--limit", "10", "--all"},
			validate: func(t *testing.T, p *ArgParser) {
				if !p.HasFlag("limit") || !p.HasFlag("all") {
					t.Error("HasFlag should be true for both limit and all")
				}
				if p.HasFlag("missing") {
					t.Error("HasFlag(missing) = true, want false")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewArgParser(tt.args)
			tt.validate(t, parser)
		})
	}
}

// =============================================================================
// PARSE INTEGRATION TESTS
// =============================================================================

func TestParse_Integration(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name        string
		args        []string
		wantCommand Command
		validate    func(*testing.T, Args)
	}{
		{
			name:        "no arguments opens the TUI",
			args:        []string{"jot"},
			wantCommand: CmdTUI,
		},
		{
			name:        "new joins words into content",
			args:        []string{"jot", "new", "buy", "oat", "milk"},
			wantCommand: CmdNew,
			validate: func(t *testing.T, a Args) {
				if a.Query != "buy oat milk" {
					t.Errorf("Query = %q, want %q", a.Query, "buy oat milk")
				}
			},
		},
		{
			name:        "new with file flag",
			args:        []string{"jot", "new", "--file", "draft.md"},
			wantCommand: CmdNew,
			validate: func(t *testing.T, a Args) {
				if a.File != "draft.md" {
					t.Errorf("File = %q, want %q", a.File, "draft.md")
				}
			},
		},
		{
			name:        "global flags before the command",
			args:        []string{"jot", "--json", "--quiet", "list"},
			wantCommand: CmdList,
			validate: func(t *testing.T, a Args) {
				if !a.JSON || !a.Quiet {
					t.Errorf("JSON=%v Quiet=%v, want both true", a.JSON, a.Quiet)
				}
			},
		},
		{
			name:        "global flags after the command",
			args:        []string{"jot", "list", "--json"},
			wantCommand: CmdList,
			validate: func(t *testing.T, a Args) {
				if !a.JSON {
					t.Error("JSON = false, want true")
				}
			},
		},
		{
			name:        "vault override with equals form",
			args:        []string{"jot", "--vault=/tmp/vault", "list"},
			wantCommand: CmdList,
			validate: func(t *testing.T, a Args) {
				if a.Vault != "/tmp/vault" {
					t.Errorf("Vault = %q, want %q", a.Vault, "/tmp/vault")
				}
			},
		},
		{
			name:        "short notebook flag",
			args:        []string{"jot", "-n", "work", "new", "standup"},
			wantCommand: CmdNew,
			validate: func(t *testing.T, a Args) {
				if a.Notebook != "work" {
					t.Errorf("Notebook = %q, want %q", a.Notebook, "work")
				}
				if a.Query != "standup" {
					t.Errorf("Query = %q, want %q", a.Query, "standup")
				}
			},
		},
		{
			name:        "search with tag filter",
			args:        []string{"jot", "search", "--tag", "errands"},
			wantCommand: CmdSearch,
			validate: func(t *testing.T, a Args) {
				if a.Tag != "errands" {
					t.Errorf("Tag = %q, want %q", a.Tag, "errands")
				}
				if a.Query != "" {
					t.Errorf("Query = %q, want empty", a.Query)
				}
			},
		},
		{
			name:        "search joins query words",
			args:        []string{"jot", "search", "meeting", "notes"},
			wantCommand: CmdSearch,
			validate: func(t *testing.T, a Args) {
				if a.Query != "meeting notes" {
					t.Errorf("Query = %q, want %q", a.Query, "meeting notes")
				}
			},
		},
		{
			name:        "remind splits duration and message",
			args:        []string{"jot", "remind", "10m", "stand", "up"},
			wantCommand: CmdRemind,
			validate: func(t *testing.T, a Args) {
				if a.Duration != "10m" {
					t.Errorf("Duration = %q, want %q", a.Duration, "10m")
				}
				if a.Message != "stand up" {
					t.Errorf("Message = %q, want %q", a.Message, "stand up")
				}
			},
		},
		{
			name:        "cat with raw flag",
			args:        []string{"jot", "cat", "inbox/idea.md", "--raw"},
			wantCommand: CmdCat,
			validate: func(t *testing.T, a Args) {
				if a.Path != "inbox/idea.md" {
					t.Errorf("Path = %q, want %q", a.Path, "inbox/idea.md")
				}
				if !a.RawOutput {
					t.Error("RawOutput = false, want true")
				}
			},
		},
		{
			name:        "export with format and output",
			args:        []string{"jot", "export", "inbox/idea.md", "--format", "html", "--output", "out"},
			wantCommand: CmdExport,
			validate: func(t *testing.T, a Args) {
				if a.Path != "inbox/idea.md" {
					t.Errorf("Path = %q, want %q", a.Path, "inbox/idea.md")
				}
				if a.Format != "html" {
					t.Errorf("Format = %q, want %q", a.Format, "html")
				}
				if a.Output != "out" {
					t.Errorf("Output = %q, want %q", a.Output, "out")
				}
			},
		},
		{
			name:        "doctor fix verb",
			args:        []string{"jot", "doctor", "fix"},
			wantCommand: CmdDoctor,
			validate: func(t *testing.T, a Args) {
				if a.Subcommand != "fix" {
					t.Errorf("Subcommand = %q, want %q", a.Subcommand, "fix")
				}
			},
		},
		{
			name:        "ls alias",
			args:        []string{"jot", "ls"},
			wantCommand: CmdList,
		},
		{
			name:        "nb alias",
			args:        []string{"jot", "nb", "create", "work"},
			wantCommand: CmdNotebooks,
			validate: func(t *testing.T, a Args) {
				if len(a.Raw) != 2 || a.Raw[0] != "create" {
					t.Errorf("Raw = %v, want [create work]", a.Raw)
				}
			},
		},
		{
			name:        "version",
			args:        []string{"jot", "version"},
			wantCommand: CmdVersion,
		},
		{
			name:        "help flag",
			args:        []string{"jot", "--help"},
			wantCommand: CmdHelp,
		},
		{
			name:        "unknown command is preserved for suggestions",
			args:        []string{"jot", "serach", "milk"},
			wantCommand: CmdUnknown,
			validate: func(t *testing.T, a Args) {
				if a.Unknown != "serach" {
					t.Errorf("Unknown = %q, want %q", a.Unknown, "serach")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cmd, parsed := Parse()
			if cmd != tt.wantCommand {
				t.Errorf("Parse() command = %d, want %d", cmd, tt.wantCommand)
			}
			if tt.validate != nil {
				tt.validate(t, parsed)
			}
		})
	}
}

// =============================================================================
// SUGGESTION TESTS
// =============================================================================

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"serach", "search"},
		{"exprot", "export"},
		{"confg", "config"},
		{"remnid", "remind"},
		{"lst", "list"},
		{"search", ""}, // exact match needs no correction
		{"n", ""},      // too short to guess
		{"zzqqk", ""},  // nothing close
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SuggestCommand(tt.input); got != tt.want {
				t.Errorf("SuggestCommand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"list", "list", 0},
		{"lst", "list", 1},
		{"serach", "search", 2},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

// =============================================================================
// ERROR MAPPING TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"validation error", NewValidationError("path", "", "required", ""), ExitUsageError},
		{"not found error", NewNotFoundError("note", "x.md"), ExitNotFoundError},
		{"missing argument", ErrMissingArgument, ExitUsageError},
		{"wrapped missing argument", WrapError(ErrMissingArgument, "new"), ExitUsageError},
		{"config message heuristic", errors.New("failed to load config file"), ExitConfigError},
		{"vault message heuristic", errors.New("vault not writable"), ExitVaultError},
		{"index message heuristic", errors.New("index rebuild failed"), ExitIndexError},
		{"plain error", errors.New("boom"), ExitGeneralError},
		{
			// Typed classification wins over message words.
			name: "not found beats substring",
			err:  NewNotFoundError("config key", "ui.theme"),
			want: ExitNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewCommandError("export", "writing output", "", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	msg := err.Error()
	if msg != "jot export: writing output: disk full" {
		t.Errorf("Error() = %q", msg)
	}
}

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestParseBoolString(t *testing.T) {
	truthy := []string{"true", "yes", "y", "1", "on", "TRUE", "Yes"}
	for _, s := range truthy {
		got, err := ParseBoolString(s)
		if err != nil || !got {
			t.Errorf("ParseBoolString(%q) = %v, %v; want true, nil", s, got, err)
		}
	}

	falsy := []string{"false", "no", "n", "0", "off", "OFF"}
	for _, s := range falsy {
		got, err := ParseBoolString(s)
		if err != nil || got {
			t.Errorf("ParseBoolString(%q) = %v, %v; want false, nil", s, got, err)
		}
	}

	if _, err := ParseBoolString("maybe"); err == nil {
		t.Error("ParseBoolString(maybe) should error")
	}
}

func TestParseIntWithValidation(t *testing.T) {
	if _, err := ParseIntWithValidation("", "limit"); err == nil {
		t.Error("empty value should error")
	}
	if _, err := ParseIntWithValidation("abc", "limit"); err == nil {
		t.Error("non-numeric value should error")
	}
	if _, err := ParseIntWithValidation("-3", "limit"); err == nil {
		t.Error("negative value should error")
	}
	if got, err := ParseIntWithValidation("10", "limit"); err != nil || got != 10 {
		t.Errorf("ParseIntWithValidation(10) = %d, %v; want 10, nil", got, err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTimeAgo(t *testing.T) {
	now := time.Now()

	if got := formatTimeAgo(time.Time{}); got != "never" {
		t.Errorf("zero time = %q, want %q", got, "never")
	}
	if got := formatTimeAgo(now.Add(-30 * time.Second)); got != "just now" {
		t.Errorf("30s = %q, want %q", got, "just now")
	}
	if got := formatTimeAgo(now.Add(-5 * time.Minute)); got != "5m ago" {
		t.Errorf("5m = %q, want %q", got, "5m ago")
	}
	if got := formatTimeAgo(now.Add(-3 * time.Hour)); got != "3h ago" {
		t.Errorf("3h = %q, want %q", got, "3h ago")
	}
	if got := formatTimeAgo(now.Add(-48 * time.Hour)); got != "2d ago" {
		t.Errorf("2d = %q, want %q", got, "2d ago")
	}
}

func TestFormatDueIn(t *testing.T) {
	now := time.Now()

	if got := formatDueIn(now.Add(10*time.Minute), now); got != "in 10m" {
		t.Errorf("10m ahead = %q, want %q", got, "in 10m")
	}
	if got := formatDueIn(now.Add(-2*time.Hour), now); got != "-2h" {
		t.Errorf("2h overdue = %q, want %q", got, "-2h")
	}
	if got := formatDueIn(now.Add(20*time.Second), now); got != "due now" {
		t.Errorf("20s ahead = %q, want %q", got, "due now")
	}
	if got := formatDueIn(now.Add(72*time.Hour), now); got != "in 3d" {
		t.Errorf("3d ahead = %q, want %q", got, "in 3d")
	}
}

// =============================================================================
// BENCHMARKS
// =============================================================================

func BenchmarkArgParser_Typical(b *testing.B) {
	args := []string{"set", "ui.theme", "light", "--json", "--output=exports"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		NewArgParser(args)
	}
}

func BenchmarkSuggestCommand(b *testing.B) {
	for i := 0; i < b.N; i++ {
		SuggestCommand("serach")
	}
}
