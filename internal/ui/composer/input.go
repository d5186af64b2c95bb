// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package composer provides the main composition view for the jot TUI.
package composer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/logger"
	"github.com/jotkit/jot-tui/internal/ui/components"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ExecDoneMsg reports a finished command execution.
type ExecDoneMsg struct {
	Raw    string
	Result *commands.Result
	Err    error
}

// DraftSavedMsg reports a finished draft save.
type DraftSavedMsg struct {
	Path string
	Err  error
}

// =============================================================================
// SUBMIT
// =============================================================================

// submitInput handles Enter. A line starting with the command marker is
// dispatched to the interpreter; anything else is committed to the draft.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	trimmed := strings.TrimSpace(m.input.Value())
	if trimmed == "" {
		return m, nil
	}

	if strings.HasPrefix(trimmed, commands.Marker) {
		return m.dispatchCommand(trimmed)
	}

	m.commitInputLine()
	m.refreshViewport()
	m.updateDraftStats()
	return m, nil
}

// dispatchCommand runs a slash command asynchronously. The input clears
// right away so the UI never blocks on a slow handler.
func (m Model) dispatchCommand(raw string) (tea.Model, tea.Cmd) {
	if m.executor == nil {
		return m.raiseError("Commands are not available")
	}

	m.input.Reset()
	m.engine.Dismiss()
	m.syncPopup()
	m.feedback = ""

	// Snapshot the context: the handler runs off the UI goroutine and must
	// not observe later notebook switches.
	exec := m.executor
	ctx := *m.cmdCtx
	return m, func() tea.Msg {
		res, err := exec.Execute(raw, &ctx)
		return ExecDoneMsg{Raw: raw, Result: res, Err: err}
	}
}

// handleExecDone applies a command result. Failures surface as a banner or
// an error-styled feedback line; the session always continues.
func (m Model) handleExecDone(msg ExecDoneMsg) (tea.Model, tea.Cmd) {
	name := commandName(msg.Raw)

	if msg.Err != nil {
		logger.CommandExecuted(name, false)
		return m.raiseError(msg.Err.Error())
	}

	logger.CommandExecuted(name, msg.Result == nil || msg.Result.Success)
	return m.applyResult(msg.Result)
}

// applyResult carries out the side effects a command asked for.
func (m Model) applyResult(res *commands.Result) (tea.Model, tea.Cmd) {
	if res == nil {
		return m, nil
	}

	var cmd tea.Cmd

	if res.ClearInput {
		m.input.Reset()
		m.engine.Dismiss()
		m.syncPopup()
	}
	if res.InsertContent != "" {
		m.input.SetValue(res.InsertContent)
		m.input.CursorEnd()
	}

	if res.CreateNote {
		cmd = m.createNoteFromResult(res.NoteContent)
	} else if res.Message != "" {
		m.feedback = res.Message
		m.feedbackIsErr = !res.Success
	}

	// Commands may have switched notebooks or touched notes.
	m.refreshNotebook()
	m.updateDraftStats()
	return m, cmd
}

// createNoteFromResult persists a note on behalf of a command. An empty
// NoteContent means "save the current draft".
func (m *Model) createNoteFromResult(content string) tea.Cmd {
	usedDraft := false
	if strings.TrimSpace(content) == "" {
		content = m.draftContent()
		usedDraft = true
	}
	if strings.TrimSpace(content) == "" {
		m.banners.AddWarning("Nothing to save: draft is empty")
		return m.armBannerTick()
	}
	if m.store == nil {
		m.banners.AddError("No vault is open")
		return m.armBannerTick()
	}

	path, err := m.store.CreateNote(m.cfg.Vault.Root, m.notebook, content)
	if err != nil {
		m.banners.AddError("Create failed: " + err.Error())
		return m.armBannerTick()
	}

	if usedDraft {
		m.draft = nil
		m.refreshViewport()
	}
	m.feedback = "Note created: " + path
	m.feedbackIsErr = false
	return nil
}

// =============================================================================
// SAVE
// =============================================================================

// saveDraft persists the draft as a note in the active notebook.
func (m Model) saveDraft() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	// Commit the line still being typed so it is not lost.
	if m.commitInputLine() {
		m.refreshViewport()
	}

	content := m.draftContent()
	if strings.TrimSpace(content) == "" {
		return m.raiseWarning("Nothing to save: draft is empty")
	}
	if m.store == nil {
		return m.raiseError("No vault is open")
	}

	m.saving = true
	m.statusBar.SetStatus(components.StatusSaving)

	root := m.cfg.Vault.Root
	notebook := m.notebook
	store := m.store
	return m, func() tea.Msg {
		path, err := store.CreateNote(root, notebook, content)
		return DraftSavedMsg{Path: path, Err: err}
	}
}

// handleDraftSaved applies the save outcome. The draft only clears once the
// note is actually on disk.
func (m Model) handleDraftSaved(msg DraftSavedMsg) (tea.Model, tea.Cmd) {
	m.saving = false

	if msg.Err != nil {
		m.statusBar.SetStatus(components.StatusError)
		return m.raiseError("Save failed: " + msg.Err.Error())
	}

	m.draft = nil
	m.refreshViewport()
	m.refreshNotebook()
	m.updateDraftStats()
	m.statusBar.SetStatus(components.StatusReady)
	m.feedback = "Saved " + msg.Path
	m.feedbackIsErr = false
	return m.raiseSuccess("Note saved: " + msg.Path)
}

// =============================================================================
// CLEAR
// =============================================================================

// clearDraft discards the draft and the line being typed.
func (m Model) clearDraft() (tea.Model, tea.Cmd) {
	if len(m.draft) == 0 && m.input.Value() == "" {
		return m, nil
	}
	m.draft = nil
	m.input.Reset()
	m.engine.Dismiss()
	m.syncPopup()
	m.feedback = ""
	m.refreshViewport()
	m.updateDraftStats()
	return m, nil
}

// commandName extracts the lowercased command name from a raw line, for
// logging.
func commandName(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(fields[0], commands.Marker))
}
