// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/config"
	"github.com/jotkit/jot-tui/internal/logger"
)

// =============================================================================
// JOT CAPTURE
// =============================================================================

// HandleCapture runs a line-by-line capture session. Plain lines append to a
// draft, slash commands execute against the same engine the composer uses,
// Ctrl+D saves the draft as a note, and Ctrl+C discards it.
func HandleCapture(args Args) error {
	if err := RequiresTTY("capture"); err != nil {
		return err
	}

	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	reg := commands.NewRegistry()
	if err := commands.RegisterBuiltins(reg); err != nil {
		return WrapError(err, "registering commands")
	}
	exec := commands.NewExecutor(reg, commands.NewHistory(env.cfg.History.Size))

	cmdCtx, err := env.commandContext()
	if err != nil {
		return err
	}

	sess := newCaptureSession(env, exec, cmdCtx, reg, args.Quiet)
	defer sess.close()

	sess.printWelcome()
	return sess.run()
}

// captureSession holds the liner state and the draft being built.
type captureSession struct {
	line        *liner.State
	historyFile string
	env         *cmdEnv
	exec        *commands.Executor
	cmdCtx      *commands.Context
	draft       []string
	saved       []string
	quiet       bool
}

func newCaptureSession(env *cmdEnv, exec *commands.Executor, cmdCtx *commands.Context, reg *commands.Registry, quiet bool) *captureSession {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(captureCompleter(reg))

	s := &captureSession{
		line:        line,
		historyFile: captureHistoryPath(),
		env:         env,
		exec:        exec,
		cmdCtx:      cmdCtx,
		quiet:       quiet,
	}
	s.loadHistory()
	return s
}

// captureCompleter completes slash command names from the registry. Only the
// command word completes; arguments are the user's business.
func captureCompleter(reg *commands.Registry) liner.Completer {
	return func(prefix string) []string {
		if !strings.HasPrefix(prefix, commands.Marker) {
			return nil
		}

		var out []string
		for _, cmd := range reg.All() {
			names := append([]string{cmd.Name}, cmd.Aliases...)
			for _, name := range names {
				full := commands.Marker + name
				if strings.HasPrefix(full, prefix) {
					out = append(out, full+" ")
				}
			}
		}
		sort.Strings(out)
		return out
	}
}

// captureHistoryPath places input history next to the config, with a temp
// dir fallback when the home directory is unknown.
func captureHistoryPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "jot_capture_history")
	}
	return filepath.Join(dir, "capture_history")
}

func (s *captureSession) loadHistory() {
	f, err := os.Open(s.historyFile)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := s.line.ReadHistory(f); err != nil {
		logger.Debug("capture history unreadable", "error", err)
	}
}

func (s *captureSession) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(s.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := s.line.WriteHistory(f); err != nil {
		logger.Debug("capture history not saved", "error", err)
	}
}

func (s *captureSession) close() {
	s.saveHistory()
	s.line.Close()
}

func (s *captureSession) printWelcome() {
	if s.quiet {
		return
	}
	fmt.Println(titleStyle.Render("jot capture"))
	fmt.Println(mutedStyle.Render("Lines append to a draft. Slash commands run. Ctrl+D saves, Ctrl+C discards."))
	fmt.Println(mutedStyle.Render("Tab completes command names; /help lists commands."))
	fmt.Println()
}

// run is the prompt loop.
func (s *captureSession) run() error {
	pending := ""
	for {
		var input string
		var err error
		if pending != "" {
			input, err = s.line.PromptWithSuggestion("> ", pending, len(pending))
			pending = ""
		} else {
			input, err = s.line.Prompt("> ")
		}

		if err == liner.ErrPromptAborted {
			// Ctrl+C throws the draft away.
			fmt.Println()
			if len(s.draft) > 0 && !s.quiet {
				fmt.Printf("Discarded %d line(s).\n", len(s.draft))
			}
			s.printSummary()
			return nil
		}
		if err == io.EOF {
			// Ctrl+D keeps it.
			fmt.Println()
			s.saveNote("")
			s.printSummary()
			return nil
		}
		if err != nil {
			return WrapError(err, "reading input")
		}

		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			s.line.AppendHistory(input)
		}

		if strings.HasPrefix(trimmed, commands.Marker) {
			pending = s.runCommand(trimmed)
			continue
		}

		// Blank lines inside a draft keep markdown paragraphs apart, but
		// a draft never starts with one.
		if trimmed == "" && len(s.draft) == 0 {
			continue
		}
		s.draft = append(s.draft, input)
	}
}

// runCommand executes one slash command and prints its outcome. The returned
// string pre-fills the next prompt when the command asks for it.
func (s *captureSession) runCommand(raw string) string {
	result, err := s.exec.Execute(raw, s.cmdCtx)
	if err != nil {
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
		return ""
	}
	if result == nil {
		return ""
	}

	if result.CreateNote {
		s.saveNote(result.NoteContent)
		return result.InsertContent
	}

	if result.Message != "" {
		if result.Success {
			fmt.Println(mutedStyle.Render(result.Message))
		} else {
			fmt.Println(errorStyle.Render(result.Message))
		}
	}
	return result.InsertContent
}

// saveNote persists content as a note. Empty content means "save the
// current draft", matching the composer's /save behavior.
func (s *captureSession) saveNote(content string) {
	usedDraft := false
	if strings.TrimSpace(content) == "" {
		content = strings.Join(s.draft, "\n")
		usedDraft = true
	}
	if strings.TrimSpace(content) == "" {
		if !s.quiet {
			fmt.Println(mutedStyle.Render("Nothing to save: draft is empty"))
		}
		return
	}

	path, err := s.env.store.CreateNote(s.env.root, s.cmdCtx.NotebookID, content)
	if err != nil {
		fmt.Println(errorStyle.Render("Create failed: " + err.Error()))
		return
	}

	if usedDraft {
		s.draft = nil
	}
	s.indexNote(path)
	s.saved = append(s.saved, path)
	fmt.Println(RenderStatus("ok") + " Note created: " + pathStyle.Render(path))
}

// indexNote keeps the search index current for notes saved mid-session.
func (s *captureSession) indexNote(path string) {
	if !s.env.cfg.Index.Enabled {
		return
	}
	if idx, err := s.env.openIndex(); err == nil {
		if err := idx.UpdateNote(path); err != nil {
			logger.Debug("index update failed", "path", path, "error", err)
		}
	}
}

func (s *captureSession) printSummary() {
	if s.quiet || len(s.saved) == 0 {
		return
	}
	fmt.Printf("Captured %d note(s) this session:\n", len(s.saved))
	for _, p := range s.saved {
		fmt.Println("  " + pathStyle.Render(p))
	}
}
