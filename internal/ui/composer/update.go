// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package composer provides the main composition view for the jot TUI.
package composer

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/reminders"
	"github.com/jotkit/jot-tui/internal/ui/components"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case commands.SuggestionsMsg:
		return m.handleSuggestions(msg)

	case ExecDoneMsg:
		return m.handleExecDone(msg)

	case DraftSavedMsg:
		return m.handleDraftSaved(msg)

	case ExportDoneMsg:
		return m.handleExportDone(msg)

	case reminders.TickMsg:
		return m.handleReminderTick(msg)

	case reminders.DueMsg:
		return m.handleRemindersDue(msg)

	case components.BannerTickMsg:
		return m.handleBannerTick(msg)

	case components.BannerDismissMsg:
		m.banners.RemoveBanner(msg.ID)
		return m, nil

	default:
		return m.handleDefault(msg)
	}
}

// =============================================================================
// RESIZE
// =============================================================================

// handleResize recalculates layout on terminal resize.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// IMPORTANT: These constants MUST stay in sync with the actual rendered
	// heights in view.go. If a section grows taller than reserved here, the
	// draft pane pushes the status bar off screen.
	const (
		headerHeight    = 2 // Header line + blank
		inputAreaHeight = 4 // Separator + input + char count + blank
		statusBarHeight = 2 // Blank + status bar
	)
	reservedHeight := headerHeight + inputAreaHeight + statusBarHeight

	viewportHeight := m.height - reservedHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = viewportHeight

	inputWidth := m.width - 8
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	popupWidth := m.width - 4
	if popupWidth > 60 {
		popupWidth = 60
	}
	m.popup.SetWidth(popupWidth)

	m.statusBar.SetWidth(m.width)
	m.theme.SetSize(m.width, m.height)

	if m.previewVisible {
		m.viewport.SetContent(m.renderPreviewContent())
	} else {
		m.refreshViewport()
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey routes key presses. Overlays come first, then suggestion
// navigation, then global shortcuts, and finally the text input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) || key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// Help overlay swallows everything until dismissed.
	if m.helpVisible {
		switch msg.String() {
		case "f1", "esc", "q", "enter":
			m.helpVisible = false
		}
		return m, nil
	}

	// Preview owns the screen while open. Close keys drop back to the
	// draft; everything else scrolls the viewport.
	if m.previewVisible {
		switch {
		case key.Matches(msg, m.keys.TogglePreview),
			msg.String() == "esc",
			msg.String() == "q":
			m.previewVisible = false
			m.refreshViewport()
			return m, nil
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	// Suggestion navigation outranks editing keys while the popup is open.
	if m.engine.Active() {
		switch {
		case key.Matches(msg, m.keys.AcceptSuggestion):
			return m.acceptSuggestion()
		case key.Matches(msg, m.keys.NextSuggestion):
			m.engine.Next()
			m.syncPopup()
			return m, nil
		case key.Matches(msg, m.keys.PrevSuggestion):
			m.engine.Prev()
			m.syncPopup()
			return m, nil
		case key.Matches(msg, m.keys.DismissSuggestions):
			m.engine.Dismiss()
			m.syncPopup()
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submitInput()
	case key.Matches(msg, m.keys.SaveDraft):
		return m.saveDraft()
	case key.Matches(msg, m.keys.ExportDraft):
		return m.exportDraft()
	case key.Matches(msg, m.keys.ClearDraft):
		return m.clearDraft()
	case key.Matches(msg, m.keys.TogglePreview):
		return m.togglePreview()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = true
		return m, nil
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// Escape with no popup open clears transient state instead.
	if msg.String() == "esc" {
		if m.dismissNewestBanner() {
			return m, nil
		}
		m.feedback = ""
		return m, nil
	}

	return m.handleTyping(msg)
}

// acceptSuggestion applies the selected completion and re-queries so the
// popup follows the rewritten input.
func (m Model) acceptSuggestion() (tea.Model, tea.Cmd) {
	v, ok := m.engine.Accept()
	if !ok {
		return m, nil
	}
	m.input.SetValue(v)
	m.input.CursorEnd()
	cmd := m.engine.OnInput(v, m.cmdCtx)
	m.syncPopup()
	return m, cmd
}

// handleTyping forwards a key to the text input and re-queries suggestions
// when the text changed. Letters only ever reach the input; the draft pane
// scrolls via explicit page keys so typing never moves it.
func (m Model) handleTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	if m.suggestionsOn && m.input.Value() != before {
		cmds = append(cmds, m.engine.OnInput(m.input.Value(), m.cmdCtx))
		m.syncPopup()
	}
	m.updateDraftStats()

	return m, tea.Batch(cmds...)
}

// dismissNewestBanner removes the most recent dismissible banner. Returns
// false when there was nothing to dismiss.
func (m *Model) dismissNewestBanner() bool {
	for _, b := range m.banners.GetBanners() {
		if b.Dismissible {
			m.banners.RemoveBanner(b.ID)
			return true
		}
	}
	return false
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// handleSuggestions applies an async suggestion result. The engine drops
// stale generations itself.
func (m Model) handleSuggestions(msg commands.SuggestionsMsg) (tea.Model, tea.Cmd) {
	m.engine.Resolve(msg)
	m.syncPopup()
	return m, nil
}

// =============================================================================
// PREVIEW
// =============================================================================

// togglePreview switches between the draft pane and the rendered preview.
func (m Model) togglePreview() (tea.Model, tea.Cmd) {
	if m.previewVisible {
		m.previewVisible = false
		m.refreshViewport()
		return m, nil
	}
	m.previewVisible = true
	m.viewport.SetContent(m.renderPreviewContent())
	m.viewport.GotoTop()
	return m, nil
}

// =============================================================================
// REMINDERS
// =============================================================================

// handleReminderTick advances the reminder clock and keeps the pending
// count in the status bar current.
func (m Model) handleReminderTick(msg reminders.TickMsg) (tea.Model, tea.Cmd) {
	if m.sched == nil {
		return m, nil
	}
	cmd := m.sched.HandleTick(msg)
	m.statusBar.SetPendingReminders(len(m.sched.Pending()))
	return m, cmd
}

// handleRemindersDue surfaces fired reminders as banners.
func (m Model) handleRemindersDue(msg reminders.DueMsg) (tea.Model, tea.Cmd) {
	for _, r := range msg.Reminders {
		m.banners.AddReminder(reminders.FormatDue(r))
	}
	if m.sched != nil {
		m.statusBar.SetPendingReminders(len(m.sched.Pending()))
	}
	return m, m.armBannerTick()
}

// =============================================================================
// BANNERS
// =============================================================================

// handleBannerTick expires banners and re-arms the tick while any remain.
func (m Model) handleBannerTick(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.banners.TickBanners()
	if m.banners.HasBanners() {
		return m, components.BannerTickCmd()
	}
	m.bannerTicking = false
	return m, nil
}

// =============================================================================
// DEFAULT
// =============================================================================

// handleDefault forwards remaining messages (cursor blink, mouse wheel) to
// the focused input and the viewport.
func (m Model) handleDefault(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}
