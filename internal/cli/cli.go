// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information. Set from main at startup so build flags only need to
// target one package.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMAND DEFINITIONS
// =============================================================================

// Command identifies a parsed top-level command.
type Command int

const (
	// CmdTUI opens the composer TUI (the default when no command is given).
	CmdTUI Command = iota
	// CmdNew creates a note from arguments, a file, or stdin.
	CmdNew
	// CmdList lists notes in a notebook.
	CmdList
	// CmdSearch runs a full-text query against the index.
	CmdSearch
	// CmdTags lists every tag in the vault.
	CmdTags
	// CmdNotebooks lists or manages notebooks.
	CmdNotebooks
	// CmdRemind schedules a reminder.
	CmdRemind
	// CmdReminders lists reminders.
	CmdReminders
	// CmdCapture starts a line-by-line capture session.
	CmdCapture
	// CmdCat prints a single note.
	CmdCat
	// CmdExport renders a note or notebook to another format.
	CmdExport
	// CmdIndex rebuilds or inspects the search index.
	CmdIndex
	// CmdConfig reads and writes configuration values.
	CmdConfig
	// CmdDoctor runs health checks against the vault.
	CmdDoctor
	// CmdVersion prints version information.
	CmdVersion
	// CmdHelp prints usage.
	CmdHelp
	// CmdUnknown is returned for unrecognized commands so main can print a
	// suggestion before exiting.
	CmdUnknown
)

// Args carries parsed global flags and command arguments.
type Args struct {
	// Global flags, accepted anywhere on the command line.
	Vault    string // --vault: vault root override
	Notebook string // --notebook, -n: notebook override
	JSON     bool   // --json: machine-readable output
	Quiet    bool   // -q, --quiet: suppress decorative output
	Verbose  bool   // -v, --verbose: debug logging to stderr

	// Command-specific fields filled by the per-command parsers.
	Query      string // new: note words; search: query text
	File       string // new: --file source
	Path       string // cat, export: note path relative to the vault
	Tag        string // search: --tag filter
	Duration   string // remind: due offset ("10m", "2h", "1d", "1w")
	Message    string // remind: reminder text
	Format     string // export: --format target
	Output     string // export: --output directory
	Subcommand string // doctor: "fix"
	RawOutput  bool   // cat: --raw skips rendering
	Unknown    string // unrecognized command name when Parse returns CmdUnknown

	// Raw holds everything after the command name, unparsed, for handlers
	// that run their own ArgParser pass.
	Raw []string
}

// =============================================================================
// USAGE TEXT
// =============================================================================

const usageText = `jot - a notebook that lives in your terminal

USAGE:
  jot [command] [arguments] [flags]

Running jot without a command opens the composer TUI.

COMMANDS:
  new [words...]       Create a note from words, --file <path>, or piped stdin
  list                 List notes in the active notebook (--limit <n>)
  search <query>       Full-text search (--tag <tag> filters by tag instead)
  tags                 List every tag in the vault
  notebooks [verb]     List notebooks; "create <name>" adds, "use <id>" switches
  remind <in> <text>   Schedule a reminder, e.g. "jot remind 10m stand up"
  reminders            List pending reminders (--all includes fired ones)
  capture              Append lines to a draft until Ctrl+D saves it
  cat <path>           Print a note, rendered when stdout is a terminal (--raw)
  export <path>        Export a note (--format markdown|html|json,
                       --output <dir>; with -n <id> exports a whole notebook)
  index <verb>         "rebuild" re-scans the vault, "stats" prints index totals
  config <verb>        "get <key>", "set <key> <value>", "list", "path"
  doctor [fix]         Check vault, config, index, and log health
  version              Print version information
  help                 Show this help

GLOBAL FLAGS:
  --vault <path>       Vault root (overrides config and JOT_VAULT)
  -n, --notebook <id>  Notebook to operate on (default from config)
  --json               Emit JSON envelopes instead of tables
  -q, --quiet          Only print essential output
  -v, --verbose        Debug logging to stderr

EXAMPLES:
  jot new buy oat milk #errands
  jot list --limit 10
  jot search "meeting notes" --json
  jot remind 2h water the plants
  jot export inbox/2025-06-01-standup.md --format html
  jot config set ui.theme light

Version: %s
`

// PrintUsage writes the full usage text to stdout.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion writes the one-line version banner.
func PrintVersion() {
	fmt.Printf("jot %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
}

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// Parse reads os.Args and returns the selected command plus its arguments.
func Parse() (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(os.Args[1:])

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]
	parsedArgs.Raw = rest

	switch cmd {
	case "new", "add":
		parseNewArgs(&parsedArgs, rest)
		return CmdNew, parsedArgs

	case "list", "ls":
		return CmdList, parsedArgs

	case "search", "find":
		parseSearchArgs(&parsedArgs, rest)
		return CmdSearch, parsedArgs

	case "tags":
		return CmdTags, parsedArgs

	case "notebooks", "nb":
		return CmdNotebooks, parsedArgs

	case "remind":
		parseRemindArgs(&parsedArgs, rest)
		return CmdRemind, parsedArgs

	case "reminders":
		return CmdReminders, parsedArgs

	case "capture", "cap":
		return CmdCapture, parsedArgs

	case "cat", "show":
		parseCatArgs(&parsedArgs, rest)
		return CmdCat, parsedArgs

	case "export":
		parseExportArgs(&parsedArgs, rest)
		return CmdExport, parsedArgs

	case "index":
		return CmdIndex, parsedArgs

	case "config":
		return CmdConfig, parsedArgs

	case "doctor":
		if len(rest) > 0 && strings.ToLower(rest[0]) == "fix" {
			parsedArgs.Subcommand = "fix"
		}
		return CmdDoctor, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Unknown = remaining[0]
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags strips global flags from args, returning what remains.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--vault":
			if i+1 < len(args) {
				parsed.Vault = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--vault="):
			parsed.Vault = strings.TrimPrefix(arg, "--vault=")
		case arg == "--notebook" || arg == "-n":
			if i+1 < len(args) {
				parsed.Notebook = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--notebook="):
			parsed.Notebook = strings.TrimPrefix(arg, "--notebook=")
		case arg == "--json":
			parsed.JSON = true
		case arg == "--quiet" || arg == "-q":
			parsed.Quiet = true
		case arg == "--verbose" || arg == "-v":
			parsed.Verbose = true
		default:
			remaining = append(remaining, arg)
		}
	}

	return remaining, parsed
}

// parseNewArgs collects note words, honoring --file as an alternate source.
func parseNewArgs(a *Args, rest []string) {
	var words []string
	for i := 0; i < len(rest); i++ {
		switch {
		case rest[i] == "--file" || rest[i] == "-f":
			if i+1 < len(rest) {
				a.File = rest[i+1]
				i++
			}
		case strings.HasPrefix(rest[i], "--file="):
			a.File = strings.TrimPrefix(rest[i], "--file=")
		default:
			words = append(words, rest[i])
		}
	}
	a.Query = strings.Join(words, " ")
}

// parseSearchArgs joins query words and reads the --tag filter.
func parseSearchArgs(a *Args, rest []string) {
	var words []string
	for i := 0; i < len(rest); i++ {
		switch {
		case rest[i] == "--tag" || rest[i] == "-t":
			if i+1 < len(rest) {
				a.Tag = rest[i+1]
				i++
			}
		case strings.HasPrefix(rest[i], "--tag="):
			a.Tag = strings.TrimPrefix(rest[i], "--tag=")
		default:
			words = append(words, rest[i])
		}
	}
	a.Query = strings.Join(words, " ")
}

// parseRemindArgs splits "remind <in> <message...>" into its two halves.
func parseRemindArgs(a *Args, rest []string) {
	if len(rest) > 0 {
		a.Duration = rest[0]
	}
	if len(rest) > 1 {
		a.Message = strings.Join(rest[1:], " ")
	}
}

// parseCatArgs reads the note path and the --raw flag.
func parseCatArgs(a *Args, rest []string) {
	for _, arg := range rest {
		switch {
		case arg == "--raw" || arg == "-r":
			a.RawOutput = true
		case a.Path == "" && !strings.HasPrefix(arg, "-"):
			a.Path = arg
		}
	}
}

// parseExportArgs reads the note path plus --format and --output.
func parseExportArgs(a *Args, rest []string) {
	for i := 0; i < len(rest); i++ {
		arg := rest[i]
		switch {
		case arg == "--format" || arg == "-f":
			if i+1 < len(rest) {
				a.Format = rest[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--format="):
			a.Format = strings.TrimPrefix(arg, "--format=")
		case arg == "--output" || arg == "-o":
			if i+1 < len(rest) {
				a.Output = rest[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--output="):
			a.Output = strings.TrimPrefix(arg, "--output=")
		case a.Path == "" && !strings.HasPrefix(arg, "-"):
			a.Path = arg
		}
	}
}

// =============================================================================
// SIMPLE HANDLERS
// =============================================================================

// HandleVersion prints version information, honoring --json.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		NewJSONResponse("version", data).Print()
		return
	}

	PrintVersion()
	if args.Verbose {
		fmt.Printf("  go: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
}

// HandleHelp prints usage.
func HandleHelp(_ Args) {
	PrintUsage()
}

// HandleUnknown reports an unrecognized command on stderr, with a
// did-you-mean suggestion when one is close enough.
func HandleUnknown(args Args) {
	if suggestion := SuggestCommand(args.Unknown); suggestion != "" {
		StderrPrintf("Error: unknown command %q (did you mean %q?)\n", args.Unknown, suggestion)
	} else {
		StderrPrintf("Error: unknown command %q\n", args.Unknown)
	}
	StderrPrintln("Run 'jot help' for usage.")
}
