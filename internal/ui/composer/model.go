// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package composer provides the main composition view for the jot TUI.
package composer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/config"
	"github.com/jotkit/jot-tui/internal/index"
	"github.com/jotkit/jot-tui/internal/notes"
	"github.com/jotkit/jot-tui/internal/reminders"
	"github.com/jotkit/jot-tui/internal/ui/components"
	"github.com/jotkit/jot-tui/internal/ui/styles"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options bundles the collaborators the composer is wired with. Index and
// Scheduler may be nil when the matching feature is disabled in the
// configuration; the composer degrades gracefully without them.
type Options struct {
	Config    *config.Config
	Store     *notes.Store
	Index     *index.NoteIndex
	Scheduler *reminders.Scheduler
	Registry  *commands.Registry
	Executor  *commands.Executor
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the composition screen.
type Model struct {
	theme *styles.Theme
	keys  KeyMap

	width  int
	height int

	// The draft: committed lines live in draft, the line being typed lives
	// in the input until Enter commits it.
	draft    []string
	input    textinput.Model
	viewport viewport.Model

	// Slash command interpreter.
	registry *commands.Registry
	executor *commands.Executor
	engine   *commands.Engine
	popup    *components.CompletionPopup
	cmdCtx   *commands.Context

	// Vault collaborators.
	cfg   *config.Config
	store *notes.Store
	idx   *index.NoteIndex
	sched *reminders.Scheduler

	// Screen furniture.
	statusBar *components.StatusBar
	banners   *components.BannerManager

	// Feedback line below the draft pane; holds the last command result.
	feedback      string
	feedbackIsErr bool

	notebook  string
	noteCount int

	previewVisible bool
	helpVisible    bool
	suggestionsOn  bool
	saving         bool
	bannerTicking  bool

	quitting bool
}

// New creates a new composer model.
func New(theme *styles.Theme, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	// Create text input with prompt
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a line, or / for commands..."
	ti.CharLimit = 4096
	ti.Focus()

	// Create viewport for the draft pane
	vp := viewport.New(80, 20)
	vp.SetContent("")

	m := Model{
		theme:         theme,
		keys:          DefaultKeyMap(),
		input:         ti,
		viewport:      vp,
		registry:      opts.Registry,
		executor:      opts.Executor,
		popup:         components.NewCompletionPopup(theme),
		cfg:           cfg,
		store:         opts.Store,
		idx:           opts.Index,
		sched:         opts.Scheduler,
		statusBar:     components.NewStatusBar(theme),
		banners:       components.NewBannerManager(),
		suggestionsOn: cfg.UI.ShowSuggestions,
	}

	if opts.Registry != nil {
		m.engine = commands.NewEngine(opts.Registry)
	} else {
		m.engine = commands.NewEngine(commands.NewRegistry())
	}

	// Wire the command context. Interfaces stay nil rather than wrapping
	// nil pointers, so handlers can detect missing collaborators.
	ctx := &commands.Context{
		Root: cfg.Vault.Root,
	}
	if opts.Store != nil {
		ctx.Notes = opts.Store
		ctx.Notebooks = opts.Store
	}
	if opts.Index != nil {
		ctx.Search = opts.Index
		ctx.Tags = opts.Index
	}
	if opts.Scheduler != nil {
		ctx.Reminders = opts.Scheduler
	}
	m.cmdCtx = ctx

	m.refreshNotebook()
	m.statusBar.SetIndexState(m.indexState())
	if m.sched != nil {
		m.statusBar.SetPendingReminders(len(m.sched.Pending()))
	}
	m.refreshViewport()

	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and, when reminders are enabled, the
// reminder tick loop.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmds = append(cmds, textinput.Blink)

	if m.sched != nil && m.cfg.Reminders.Enabled {
		cmds = append(cmds, m.sched.TickCmd())
	}

	return tea.Batch(cmds...)
}

// =============================================================================
// DRAFT STATE
// =============================================================================

// draftContent returns the committed draft lines as one string.
func (m *Model) draftContent() string {
	return strings.Join(m.draft, "\n")
}

// commitInputLine moves a non-blank input line into the draft. Returns true
// when a line was committed.
func (m *Model) commitInputLine() bool {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return false
	}
	m.draft = append(m.draft, line)
	m.input.Reset()
	m.engine.Dismiss()
	m.syncPopup()
	return true
}

// updateDraftStats recomputes the word and character counts shown in the
// status bar. The line being typed counts too.
func (m *Model) updateDraftStats() {
	content := m.draftContent()
	if v := m.input.Value(); v != "" {
		if content == "" {
			content = v
		} else {
			content += "\n" + v
		}
	}
	words := len(strings.Fields(content))
	chars := len([]rune(content))
	m.statusBar.SetDraftStats(words, chars)
}

// refreshViewport re-renders the draft pane content. No-op while the
// preview is open; the preview owns the viewport until it closes.
func (m *Model) refreshViewport() {
	if m.previewVisible {
		return
	}
	if len(m.draft) == 0 {
		m.viewport.SetContent(m.renderEmptyState())
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetContent(m.renderDraft())
	m.viewport.GotoBottom()
}

// =============================================================================
// COLLABORATOR STATE
// =============================================================================

// refreshNotebook re-reads the active notebook and its note count from the
// store. Commands may have switched notebooks or created notes.
func (m *Model) refreshNotebook() {
	if m.store == nil {
		return
	}
	m.notebook = m.store.ActiveNotebook()
	m.cmdCtx.NotebookID = m.notebook

	m.noteCount = 0
	if ns, err := m.store.List(m.notebook); err == nil {
		m.noteCount = len(ns)
	}
	m.statusBar.SetNotebook(m.displayNotebook(), m.noteCount)
}

// displayNotebook returns the notebook name to show; the vault root has no
// directory name of its own.
func (m *Model) displayNotebook() string {
	if m.notebook == "" {
		return "default"
	}
	return m.notebook
}

// indexState maps the index collaborator onto the status bar indicator.
func (m *Model) indexState() components.IndexState {
	if m.idx == nil {
		return components.IndexOff
	}
	if m.idx.IsIndexed() {
		return components.IndexFresh
	}
	return components.IndexSyncing
}

// =============================================================================
// SUGGESTION POPUP
// =============================================================================

// syncPopup pushes the engine's suggestion state into the popup. The popup
// is a pure renderer; this is the only place its state comes from.
func (m *Model) syncPopup() {
	if !m.suggestionsOn || !m.engine.Active() {
		m.popup.Clear()
		return
	}
	m.popup.SetSuggestions(m.engine.Suggestions())
	m.popup.SetSelected(m.engine.Selected())
}

// =============================================================================
// BANNERS
// =============================================================================

// armBannerTick starts the banner expiry tick if it is not already running.
// The tick handler re-arms itself while banners remain and stops otherwise,
// so at most one tick loop is ever in flight.
func (m *Model) armBannerTick() tea.Cmd {
	if m.bannerTicking {
		return nil
	}
	m.bannerTicking = true
	return components.BannerTickCmd()
}

// raiseError shows an error banner.
func (m Model) raiseError(text string) (tea.Model, tea.Cmd) {
	m.banners.AddError(text)
	return m, m.armBannerTick()
}

// raiseWarning shows a warning banner.
func (m Model) raiseWarning(text string) (tea.Model, tea.Cmd) {
	m.banners.AddWarning(text)
	return m, m.armBannerTick()
}

// raiseSuccess shows a success banner.
func (m Model) raiseSuccess(text string) (tea.Model, tea.Cmd) {
	m.banners.AddSuccess(text)
	return m, m.armBannerTick()
}

// =============================================================================
// HELP
// =============================================================================

// currentHelpContext returns the context whose keys the help overlay
// should list.
func (m *Model) currentHelpContext() HelpContext {
	if m.previewVisible {
		return ContextPreview
	}
	if m.engine.Active() {
		return ContextSuggest
	}
	return ContextEditing
}
