// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the composer.
package commands

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// FAKE COLLABORATORS
// =============================================================================

type fakeNotebooks struct {
	books     []Notebook
	setActive string
	listErr   error
	setErr    error
}

func (f *fakeNotebooks) ListNotebooks() ([]Notebook, error) { return f.books, f.listErr }
func (f *fakeNotebooks) SetActiveNotebook(id string) error {
	f.setActive = id
	return f.setErr
}

type fakeTags struct {
	tags []string
	err  error
}

func (f *fakeTags) ListAllTags() ([]string, error) { return f.tags, f.err }

type fakeSearcher struct {
	hits  []SearchHit
	query string
	tag   string
	err   error
}

func (f *fakeSearcher) SearchNotes(root, query string) ([]SearchHit, error) {
	f.query = query
	return f.hits, f.err
}

func (f *fakeSearcher) SearchByTag(root, tag string) ([]SearchHit, error) {
	f.tag = tag
	return f.hits, f.err
}

type fakeScheduler struct {
	message  string
	dueAt    time.Time
	notebook string
	err      error
}

func (f *fakeScheduler) CreateReminder(message string, dueAt time.Time, notebookID string) error {
	f.message = message
	f.dueAt = dueAt
	f.notebook = notebookID
	return f.err
}

// builtinExec wires the built-in set behind a fresh executor.
func builtinExec(t *testing.T) *Executor {
	t.Helper()
	reg := NewRegistry()
	if err := RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}
	return NewExecutor(reg, NewHistory(0))
}

// =============================================================================
// REGISTRATION TESTS
// =============================================================================

func TestRegisterBuiltins(t *testing.T) {
	reg := NewRegistry()
	if err := RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}

	lookups := map[string]string{
		"help": "help", "h": "help", "?": "help",
		"note": "note", "new": "note",
		"notebook": "notebook", "nb": "notebook",
		"tag": "tag", "t": "tag",
		"search": "search", "find": "search",
		"tagged": "tagged", "bytag": "tagged",
		"remind": "remind", "rem": "remind",
		"timestamp": "timestamp", "ts": "timestamp",
		"clear": "clear", "cl": "clear",
	}
	for lookup, want := range lookups {
		cmd := reg.Get(lookup)
		if cmd == nil {
			t.Errorf("Get(%q) = nil, want %q", lookup, want)
			continue
		}
		if cmd.Name != want {
			t.Errorf("Get(%q) = %q, want %q", lookup, cmd.Name, want)
		}
	}

	if reg.Len() != 9 {
		t.Errorf("Len() = %d, want 9 built-ins", reg.Len())
	}

	// The set claims its names loudly; registering twice must fail.
	if err := RegisterBuiltins(reg); err == nil {
		t.Error("second RegisterBuiltins should report a collision")
	}
}

// =============================================================================
// HELP TESTS
// =============================================================================

func TestHelpCommand(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute("/help", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if !res.Success {
		t.Error("help should succeed")
	}
	for _, want := range []string{"Available Commands", "General", "Notes", "/tag", "/timestamp", "(/h, /?)"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestHelpCommand_SingleCommand(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute("/help remind", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	for _, want := range []string{"/remind", "/rem", "Usage:", "10m"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("command help missing %q in:\n%s", want, res.Message)
		}
	}

	// A marker on the argument is tolerated.
	res, err = exec.Execute("/help /tag", nil)
	if err != nil || !res.Success {
		t.Errorf("Execute(/help /tag) = %+v, %v", res, err)
	}
}

func TestHelpCommand_Unknown(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute("/help bogus", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if res.Success {
		t.Error("help for an unknown command should fail")
	}
	if !strings.Contains(res.Message, `"/bogus"`) {
		t.Errorf("message = %q, should name the unknown command", res.Message)
	}
}

func TestRenderCommandHelp_Args(t *testing.T) {
	out := RenderCommandHelp(&Command{
		Name:        "demo",
		Description: "Demonstrate help",
		Usage:       "/demo <need> [maybe]",
		Args: []ArgSpec{
			{Name: "need", Required: true, Description: "Required value"},
			{Name: "maybe", Description: "Optional value", Default: "42"},
		},
	})

	for _, want := range []string{"need", "[maybe]", "(default: 42)", "Usage: /demo <need> [maybe]"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderCommandHelp missing %q in:\n%s", want, out)
		}
	}
}

// =============================================================================
// NOTE AND NOTEBOOK TESTS
// =============================================================================

func TestNoteCommand(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute("/note quick capture idea", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if !res.CreateNote {
		t.Error("CreateNote = false, want true")
	}
	if res.NoteContent != "quick capture idea" {
		t.Errorf("NoteContent = %q, want joined args", res.NoteContent)
	}
	if !res.ClearInput {
		t.Error("ClearInput = false, want true")
	}
}

func TestNotebookCommand_List(t *testing.T) {
	exec := builtinExec(t)
	ctx := &Context{
		NotebookID: "work",
		Notebooks: &fakeNotebooks{books: []Notebook{
			{ID: "inbox", Name: "Inbox", NoteCount: 3},
			{ID: "work", Name: "Work", NoteCount: 12},
		}},
	}

	res, err := exec.Execute("/notebook", ctx)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	for _, want := range []string{"Inbox", "Work (active)", "12 notes"} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("listing missing %q in:\n%s", want, res.Message)
		}
	}
}

func TestNotebookCommand_Switch(t *testing.T) {
	nb := &fakeNotebooks{books: []Notebook{
		{ID: "inbox", Name: "Inbox"},
		{ID: "work", Name: "Work"},
	}}
	exec := builtinExec(t)

	res, err := exec.Execute("/notebook work", &Context{Notebooks: nb})
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if !res.Success {
		t.Errorf("switch failed: %+v", res)
	}
	if nb.setActive != "work" {
		t.Errorf("SetActiveNotebook got %q, want %q", nb.setActive, "work")
	}

	// Unknown notebook: structured failure, no store write.
	nb.setActive = ""
	res, err = exec.Execute("/notebook vacation", &Context{Notebooks: nb})
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if res.Success || nb.setActive != "" {
		t.Errorf("unknown notebook should be a structured failure, got %+v", res)
	}
}

func TestNotebookCommand_StoreErrorPropagates(t *testing.T) {
	nb := &fakeNotebooks{listErr: errors.New("vault unreachable")}
	exec := builtinExec(t)

	_, err := exec.Execute("/notebook", &Context{Notebooks: nb})
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want *ExecutionError", err)
	}
	if !errors.Is(err, nb.listErr) {
		t.Error("collaborator error should survive unwrapping")
	}
}

func TestNotebookCommand_Unavailable(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute("/notebook", &Context{})
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if res.Success {
		t.Error("missing collaborator should degrade to a structured failure")
	}
}

// =============================================================================
// TAG TESTS
// =============================================================================

func TestTagCommand(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute(`/tag "work stuff" urgent`, nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if res.InsertContent != "#work-stuff #urgent " {
		t.Errorf("InsertContent = %q, want %q", res.InsertContent, "#work-stuff #urgent ")
	}
}

func TestTagCommand_RequiresArgs(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute("/tag", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if res.Success {
		t.Error("missing tags should fail validation")
	}
	if !strings.Contains(res.Message, "/tag") {
		t.Errorf("message = %q, should mention the command", res.Message)
	}
}

// =============================================================================
// SEARCH TESTS
// =============================================================================

func TestSearchCommand(t *testing.T) {
	s := &fakeSearcher{hits: []SearchHit{
		{Path: "work/standup.md", Title: "Standup", Snippet: "...review the deploy..."},
		{Path: "inbox/todo.md", Title: "Todo"},
	}}
	exec := builtinExec(t)

	res, err := exec.Execute("/search deploy review", &Context{Root: "/vault", Search: s})
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if s.query != "deploy review" {
		t.Errorf("searcher got query %q, want %q", s.query, "deploy review")
	}
	for _, want := range []string{"2 matches", "Standup", "work/standup.md", "...review the deploy..."} {
		if !strings.Contains(res.Message, want) {
			t.Errorf("search output missing %q in:\n%s", want, res.Message)
		}
	}
}

func TestSearchCommand_NoHits(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute("/search nothing here", &Context{Search: &fakeSearcher{}})
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if !res.Success || !strings.Contains(res.Message, "no notes match") {
		t.Errorf("empty search should succeed with a message, got %+v", res)
	}
}

func TestTaggedCommand_StripsHash(t *testing.T) {
	s := &fakeSearcher{hits: []SearchHit{{Path: "a.md", Title: "A"}}}
	exec := builtinExec(t)

	if _, err := exec.Execute("/tagged #urgent", &Context{Search: s}); err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if s.tag != "urgent" {
		t.Errorf("searcher got tag %q, want %q", s.tag, "urgent")
	}
}

// =============================================================================
// REMIND TESTS
// =============================================================================

func TestRemindCommand(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	sched := &fakeScheduler{}
	ctx := &Context{
		NotebookID: "work",
		Reminders:  sched,
		Clock:      func() time.Time { return fixed },
	}
	exec := builtinExec(t)

	res, err := exec.Execute("/remind 2h call the dentist", ctx)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if !res.Success || !res.ClearInput {
		t.Errorf("result = %+v, want success with ClearInput", res)
	}
	if sched.message != "call the dentist" {
		t.Errorf("scheduler message = %q", sched.message)
	}
	if want := fixed.Add(2 * time.Hour); !sched.dueAt.Equal(want) {
		t.Errorf("dueAt = %v, want %v", sched.dueAt, want)
	}
	if sched.notebook != "work" {
		t.Errorf("notebook = %q, want %q", sched.notebook, "work")
	}
}

func TestRemindCommand_Validation(t *testing.T) {
	exec := builtinExec(t)

	tests := []string{
		"/remind",
		"/remind 10m",
		"/remind soon call mom",
		"/remind 0m call mom",
		"/remind 10x call mom",
	}
	for _, input := range tests {
		res, err := exec.Execute(input, nil)
		if err != nil {
			t.Errorf("Execute(%q) error = %v, want structured failure", input, err)
			continue
		}
		if res.Success {
			t.Errorf("Execute(%q) succeeded, want validation failure", input)
		}
	}
}

func TestParseRemindIn(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"10m", 10 * time.Minute, false},
		{"2h", 2 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"1w", 7 * 24 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"", 0, true},
		{"m", 0, true},
		{"0m", 0, true},
		{"-5m", 0, true},
		{"10x", 0, true},
		{"abc", 0, true},
		{"1.5h", 0, true},
	}

	for _, tc := range tests {
		got, err := parseRemindIn(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseRemindIn(%q) = %v, want error", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseRemindIn(%q) error = %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseRemindIn(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

// =============================================================================
// TIMESTAMP AND CLEAR TESTS
// =============================================================================

func TestTimestampCommand(t *testing.T) {
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	ctx := &Context{Clock: func() time.Time { return fixed }}
	exec := builtinExec(t)

	tests := []struct {
		input string
		want  string
	}{
		{"/timestamp iso", "2025-03-14T09:26:53Z"},
		{"/timestamp unix", "1741944413"},
		{"/timestamp date", "2025-03-14"},
		{"/timestamp time", "09:26:53"},
		{"/timestamp", "2025-03-14 09:26"},
		{"/ts ISO", "2025-03-14T09:26:53Z"},
	}

	for _, tc := range tests {
		res, err := exec.Execute(tc.input, ctx)
		if err != nil {
			t.Errorf("Execute(%q) error = %v", tc.input, err)
			continue
		}
		if res.InsertContent != tc.want {
			t.Errorf("Execute(%q) InsertContent = %q, want %q", tc.input, res.InsertContent, tc.want)
		}
	}
}

func TestTimestampCommand_RejectsFormat(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute("/timestamp rfc822", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if res.Success {
		t.Error("unknown format should fail validation")
	}
	if !strings.Contains(res.Message, "rfc822") {
		t.Errorf("message = %q, should name the bad format", res.Message)
	}
}

func TestClearCommand(t *testing.T) {
	exec := builtinExec(t)

	res, err := exec.Execute("/clear", nil)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if !res.Success || !res.ClearInput {
		t.Errorf("result = %+v, want success with ClearInput", res)
	}
}

// =============================================================================
// BUILT-IN AUTOCOMPLETE TESTS
// =============================================================================

func TestBuiltinAutocompletes(t *testing.T) {
	reg := NewRegistry()
	if err := RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}
	ctx := &Context{
		Notebooks: &fakeNotebooks{books: []Notebook{
			{ID: "inbox", Name: "Inbox"},
			{ID: "work", Name: "Work"},
		}},
		Tags: &fakeTags{tags: []string{"meeting", "urgent", "urgency"}},
	}

	tests := []struct {
		command string
		args    []string
		want    []string
	}{
		{"notebook", []string{"i"}, []string{"Inbox"}},
		{"notebook", []string{"W"}, []string{"Work"}},
		{"tag", []string{"ur"}, []string{"urgent", "urgency"}},
		{"tag", []string{"#ur"}, []string{"urgent", "urgency"}},
		{"tagged", []string{"me"}, []string{"meeting"}},
		{"remind", []string{"1"}, []string{"10m", "1h", "1d", "1w"}},
		{"remind", []string{"10m", "c"}, nil},
		{"help", []string{"ta"}, []string{"tag", "tagged"}},
	}

	for _, tc := range tests {
		cmd := reg.Get(tc.command)
		if cmd == nil || cmd.Autocomplete == nil {
			t.Fatalf("command %q has no autocomplete provider", tc.command)
		}
		got, err := cmd.Autocomplete(tc.args, ctx)
		if err != nil {
			t.Errorf("%s autocomplete error = %v", tc.command, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("%s autocomplete(%v) = %v, want %v", tc.command, tc.args, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%s autocomplete(%v)[%d] = %q, want %q", tc.command, tc.args, i, got[i], tc.want[i])
			}
		}
	}
}

func TestBuiltinAutocomplete_MissingCollaborators(t *testing.T) {
	reg := NewRegistry()
	if err := RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins failed: %v", err)
	}

	for _, name := range []string{"notebook", "tag", "tagged"} {
		cmd := reg.Get(name)
		got, err := cmd.Autocomplete([]string{"x"}, nil)
		if err != nil || got != nil {
			t.Errorf("%s autocomplete without collaborators = %v, %v; want nil, nil", name, got, err)
		}
	}
}
