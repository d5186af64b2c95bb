// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jotkit/jot-tui/internal/config"
	"github.com/jotkit/jot-tui/internal/index"
	"github.com/jotkit/jot-tui/internal/notes"
	"github.com/jotkit/jot-tui/internal/reminders"
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus is the outcome of one health check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

// String returns the machine-readable status name.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the styled status tag for human output.
func (s CheckStatus) Symbol() string {
	switch s {
	case StatusPass:
		return RenderStatus("ok")
	case StatusWarn:
		return RenderStatus("warn")
	default:
		return RenderStatus("fail")
	}
}

// HealthCheck is one named check with its outcome and an optional fix hint.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string
}

// Render formats the check for terminal output.
func (c HealthCheck) Render() string {
	line := fmt.Sprintf("%s %s", c.Status.Symbol(), c.Message)
	if c.Status != StatusPass && c.Fix != "" {
		line += "\n     " + fixStyle.Render("-> "+c.Fix)
	}
	return line
}

// =============================================================================
// JOT DOCTOR
// =============================================================================

// HandleDoctor checks vault, config, index, log, and reminder health.
// "jot doctor fix" applies the safe repairs first: creating the vault,
// creating the log directory, and rebuilding a broken index.
func HandleDoctor(args Args) error {
	// The config check reports load problems itself; run with defaults here.
	cfg, _ := config.Load()
	if cfg == nil {
		cfg = config.Default()
	}

	root := cfg.Vault.Root
	if args.Vault != "" {
		root = ExpandVaultPath(args.Vault)
	}

	if args.Subcommand == "fix" {
		applyFixes(cfg, root, args.JSON || args.Quiet)
	}

	checks := runChecks(cfg, root)

	passed, warned, failed := 0, 0, 0
	for _, c := range checks {
		switch c.Status {
		case StatusPass:
			passed++
		case StatusWarn:
			warned++
		case StatusFail:
			failed++
		}
	}

	if args.JSON {
		data := DoctorData{
			Checks: make([]DoctorCheck, 0, len(checks)),
			Summary: DoctorSummary{
				Passed:  passed,
				Warned:  warned,
				Failed:  failed,
				Healthy: failed == 0,
			},
		}
		for _, c := range checks {
			data.Checks = append(data.Checks, DoctorCheck{
				Name:    c.Name,
				Status:  c.Status.String(),
				Message: c.Message,
				Fix:     c.Fix,
			})
		}

		resp := NewJSONResponse("doctor", data)
		if failed > 0 {
			resp.Success = false
			msg := fmt.Sprintf("%d health check(s) failed", failed)
			resp.Error = &msg
		}
		resp.Print()
	} else {
		fmt.Println()
		fmt.Println(titleStyle.Render("jot doctor"))
		fmt.Println(RenderSeparator())
		for _, c := range checks {
			fmt.Println("  " + c.Render())
		}
		fmt.Println(RenderSeparator())
		fmt.Printf("  %d passed, %d warning(s), %d failed\n\n", passed, warned, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d health check(s) failed", failed)
	}
	return nil
}

// runChecks executes every health check against the given config and vault
// root. Taking them as arguments keeps the checks testable against temp
// vaults.
func runChecks(cfg *config.Config, root string) []HealthCheck {
	return []HealthCheck{
		checkVault(root),
		checkConfig(),
		checkIndex(root),
		checkLogFile(cfg),
		checkReminders(root),
	}
}

// checkVault verifies the vault root exists and is writable.
func checkVault(root string) HealthCheck {
	check := HealthCheck{Name: "vault"}

	if root == "" {
		check.Status = StatusFail
		check.Message = "No vault root configured"
		check.Fix = "set vault.root with 'jot config set vault.root ~/jot'"
		return check
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		check.Status = StatusFail
		check.Message = fmt.Sprintf("Vault not found at %s", root)
		check.Fix = "run 'jot doctor fix' to create it"
		return check
	}
	if err != nil {
		check.Status = StatusFail
		check.Message = fmt.Sprintf("Vault unreadable: %v", err)
		return check
	}
	if !info.IsDir() {
		check.Status = StatusFail
		check.Message = fmt.Sprintf("Vault path %s is not a directory", root)
		return check
	}

	// Write probe: a vault we cannot write to loses every note.
	probe := filepath.Join(root, notes.StateDir, ".doctor_probe")
	if err := os.MkdirAll(filepath.Dir(probe), 0755); err != nil {
		check.Status = StatusFail
		check.Message = fmt.Sprintf("Vault state dir not writable: %v", err)
		return check
	}
	if err := os.WriteFile(probe, []byte("ok"), 0600); err != nil {
		check.Status = StatusFail
		check.Message = fmt.Sprintf("Vault not writable: %v", err)
		return check
	}
	os.Remove(probe)

	check.Status = StatusPass
	check.Message = fmt.Sprintf("Vault OK (%s)", root)
	return check
}

// checkConfig verifies the config file parses and validates.
func checkConfig() HealthCheck {
	check := HealthCheck{Name: "config"}

	path, pathErr := activeConfigPath()
	if pathErr == nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			check.Status = StatusPass
			check.Message = "Config valid (using defaults)"
			return check
		}
	}

	if _, err := config.Load(); err != nil {
		check.Status = StatusWarn
		check.Message = fmt.Sprintf("Config file invalid: %v", err)
		check.Fix = fmt.Sprintf("edit %s or delete it to fall back to defaults", path)
		return check
	}

	check.Status = StatusPass
	check.Message = "Config valid"
	return check
}

// checkIndex verifies the index database opens, and warns when it has
// clearly fallen behind the vault.
func checkIndex(root string) HealthCheck {
	check := HealthCheck{Name: "index"}

	idx, err := index.NewNoteIndex(index.DefaultConfig(root))
	if err != nil {
		check.Status = StatusFail
		check.Message = fmt.Sprintf("Index database unusable: %v", err)
		check.Fix = "run 'jot doctor fix' to rebuild it"
		return check
	}
	defer idx.Close()

	stats := idx.Stats()
	if stats.NoteCount == 0 {
		if ns, listErr := notes.NewStore(root).List(""); listErr == nil && len(ns) > 0 {
			check.Status = StatusWarn
			check.Message = fmt.Sprintf("Index is empty but the vault has %d note(s)", len(ns))
			check.Fix = "run 'jot index rebuild'"
			return check
		}
	}

	check.Status = StatusPass
	check.Message = fmt.Sprintf("Index OK (%d note(s), %s)", stats.NoteCount, formatBytes(stats.DatabaseSize))
	return check
}

// checkLogFile verifies the configured log destination accepts writes.
func checkLogFile(cfg *config.Config) HealthCheck {
	check := HealthCheck{Name: "log"}

	if cfg.Log.File == "" {
		check.Status = StatusPass
		check.Message = "Logging to stderr"
		return check
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		check.Status = StatusFail
		check.Message = fmt.Sprintf("Log directory not writable: %v", err)
		return check
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		check.Status = StatusFail
		check.Message = fmt.Sprintf("Log file not writable: %v", err)
		check.Fix = "check permissions on " + cfg.Log.File
		return check
	}
	f.Close()

	check.Status = StatusPass
	check.Message = fmt.Sprintf("Log file OK (%s)", cfg.Log.File)
	return check
}

// checkReminders verifies the reminder store parses.
func checkReminders(root string) HealthCheck {
	check := HealthCheck{Name: "reminders"}

	rs, err := reminders.NewStore(root)
	if err != nil {
		check.Status = StatusWarn
		check.Message = fmt.Sprintf("Reminders unreadable: %v", err)
		check.Fix = fmt.Sprintf("delete %s to start fresh", filepath.Join(root, notes.StateDir, "reminders.json"))
		return check
	}

	check.Status = StatusPass
	check.Message = fmt.Sprintf("Reminders OK (%d pending)", len(rs.Pending()))
	return check
}

// =============================================================================
// FIXES
// =============================================================================

// applyFixes performs the repairs doctor can do safely on its own. It only
// creates directories and rebuilds the derived index database; it never
// touches note files or a malformed config.
func applyFixes(cfg *config.Config, root string, silent bool) {
	report := func(ok bool, msg string) {
		if silent {
			return
		}
		if ok {
			fmt.Printf("%s %s\n", RenderStatus("ok"), msg)
		} else {
			fmt.Printf("%s %s\n", RenderStatus("fail"), msg)
		}
	}

	if root != "" {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			if err := notes.NewStore(root).EnsureVault(); err != nil {
				report(false, fmt.Sprintf("Could not create vault: %v", err))
			} else {
				report(true, "Created vault at "+root)
			}
		}
	}

	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
			report(false, fmt.Sprintf("Could not create log directory: %v", err))
		}
	}

	// The index is derived data, so a broken database can be dropped and
	// rebuilt without loss.
	if root != "" {
		idxCfg := index.DefaultConfig(root)
		idx, err := index.NewNoteIndex(idxCfg)
		if err != nil {
			if rmErr := os.Remove(idxCfg.DatabasePath); rmErr == nil {
				if idx, err = index.NewNoteIndex(idxCfg); err == nil {
					report(true, "Rebuilt index database")
				} else {
					report(false, fmt.Sprintf("Could not rebuild index: %v", err))
				}
			}
		}
		if idx != nil {
			idx.Close()
		}
	}
}
