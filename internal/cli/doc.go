// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
//
// The entry point is Parse, which reads os.Args and returns a Command
// constant plus an Args struct carrying global flags and command arguments.
// main switches on the Command and calls the matching Handle function, so
// adding a command means adding an enum value, a case in Parse, and a
// handler.
//
// # Key Types
//
//   - Command: enum of every top-level command, CmdTUI through CmdUnknown
//   - Args: parsed global flags plus per-command fields and the raw tail
//   - ArgParser: structured flag/positional access for multi-verb commands
//   - JSONResponse: the envelope every --json command emits
//   - HealthCheck: one jot doctor check result
//
// # Command Handling
//
// Simple commands (new, search, cat, remind) are parsed inline by Parse's
// helper functions. Multi-verb commands (notebooks, index, config,
// reminders) run a second ArgParser pass inside their handler, where the
// first positional argument selects the verb.
//
// Handlers return errors rather than exiting; main maps them to exit codes
// with GetExitCode so scripts can branch on failure class. Machine
// consumers pass --json and get a stable JSONResponse envelope on stdout
// with nothing else mixed in.
//
// # Vault Access
//
// Handlers that touch the vault build a cmdEnv, which loads config, applies
// the --vault and --notebook overrides, opens the notes store, and lazily
// opens the SQLite index and reminder scheduler only for commands that need
// them. The capture command additionally builds the same slash-command
// executor the composer uses, so /commands behave identically in both.
package cli
