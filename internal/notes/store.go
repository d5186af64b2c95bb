// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notes stores markdown notes inside a vault directory.
package notes

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/util"
)

// StateDir is the vault-local dot directory holding state, index, and
// reminder files.
const StateDir = ".jot"

// =============================================================================
// ERRORS
// =============================================================================

// NoteError represents a vault storage error with a message.
type NoteError struct {
	Message string
}

func (e *NoteError) Error() string {
	return e.Message
}

// Is allows errors.Is comparison with the sentinel errors below.
func (e *NoteError) Is(target error) bool {
	t, ok := target.(*NoteError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

var (
	ErrNoteNotFound     = &NoteError{Message: "note not found"}
	ErrNotebookNotFound = &NoteError{Message: "notebook not found"}
	ErrNotebookExists   = &NoteError{Message: "notebook already exists"}
	ErrNoVault          = &NoteError{Message: "no vault root configured"}
)

// =============================================================================
// STORE
// =============================================================================

// Store reads and writes notes under a vault root.
type Store struct {
	Root string
}

// The store backs the composer's note and notebook collaborators.
var (
	_ commands.NoteStore     = (*Store)(nil)
	_ commands.NotebookStore = (*Store)(nil)
)

// NewStore returns a store over the given vault root.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// EnsureVault creates the vault root and its state directory.
func (s *Store) EnsureVault() error {
	if s.Root == "" {
		return ErrNoVault
	}
	if err := os.MkdirAll(filepath.Join(s.Root, StateDir), 0755); err != nil {
		return fmt.Errorf("create vault: %w", err)
	}
	return nil
}

// vaultState is persisted at <vault>/.jot/state.json.
type vaultState struct {
	ActiveNotebook string `json:"active_notebook"`
}

// =============================================================================
// NOTE OPERATIONS
// =============================================================================

// CreateNote writes a new note file and returns its vault-relative path.
// The title comes from the first content line, the filename from its slug
// (uniquified with -2, -3... on collision), and inline #tags are recorded
// in the frontmatter. An empty root falls back to the store's own.
func (s *Store) CreateNote(root, notebookID, content string) (string, error) {
	root = s.resolveRoot(root)
	if root == "" {
		return "", ErrNoVault
	}

	title := DeriveTitle(content)
	if title == "" {
		title = "Untitled"
	}

	dir := root
	if notebookID != "" {
		dir = filepath.Join(root, notebookID)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create notebook directory: %w", err)
	}

	path := uniquePath(dir, FileSlug(title))

	now := time.Now().UTC().Truncate(time.Second)
	note := &Note{
		ID:       uuid.NewString(),
		Title:    title,
		Notebook: notebookID,
		Tags:     ExtractTags(content),
		Created:  now,
		Updated:  now,
		Body:     content,
	}

	data, err := ComposeNote(note)
	if err != nil {
		return "", err
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path, nil
	}
	return filepath.ToSlash(rel), nil
}

// Load reads one note by its vault-relative path.
func (s *Store) Load(rel string) (*Note, error) {
	root := s.resolveRoot("")
	if root == "" {
		return nil, ErrNoVault
	}

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("read note: %w", err)
	}

	n, err := ParseNote(data)
	if err != nil {
		return nil, err
	}
	n.Path = filepath.ToSlash(rel)
	fillNotebookFromPath(n)
	return n, nil
}

// Save rewrites an existing note in place, bumping its updated timestamp.
func (s *Store) Save(n *Note) error {
	root := s.resolveRoot("")
	if root == "" {
		return ErrNoVault
	}
	if n.Path == "" {
		return &NoteError{Message: "note has no path"}
	}

	n.Updated = time.Now().UTC().Truncate(time.Second)
	data, err := ComposeNote(n)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(filepath.Join(root, filepath.FromSlash(n.Path)), data, 0644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}

// List returns the vault's notes, newest first. A non-empty notebookID
// restricts the walk to that notebook. Unreadable or malformed files are
// skipped rather than failing the whole listing.
func (s *Store) List(notebookID string) ([]*Note, error) {
	root := s.resolveRoot("")
	if root == "" {
		return nil, ErrNoVault
	}

	start := root
	if notebookID != "" {
		start = filepath.Join(root, notebookID)
		if _, err := os.Stat(start); err != nil {
			if os.IsNotExist(err) {
				return nil, ErrNotebookNotFound
			}
			return nil, err
		}
	}

	var out []*Note
	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != start {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		n, err := ParseNote(data)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		n.Path = filepath.ToSlash(rel)
		fillNotebookFromPath(n)
		out = append(out, n)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Updated.After(out[j].Updated) })
	return out, nil
}

// Delete removes a note file by its vault-relative path.
func (s *Store) Delete(rel string) error {
	root := s.resolveRoot("")
	if root == "" {
		return ErrNoVault
	}
	err := os.Remove(filepath.Join(root, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return ErrNoteNotFound
	}
	return err
}

// =============================================================================
// NOTEBOOK OPERATIONS
// =============================================================================

// ListNotebooks returns the first-level vault subdirectories with their
// note counts, sorted by name. Dot directories are not notebooks.
func (s *Store) ListNotebooks() ([]commands.Notebook, error) {
	root := s.resolveRoot("")
	if root == "" {
		return nil, ErrNoVault
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}

	var out []commands.Notebook
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		out = append(out, commands.Notebook{
			ID:        entry.Name(),
			Name:      entry.Name(),
			NoteCount: countNotes(filepath.Join(root, entry.Name())),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// CreateNotebook makes a new first-level notebook directory.
func (s *Store) CreateNotebook(name string) error {
	root := s.resolveRoot("")
	if root == "" {
		return ErrNoVault
	}

	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return &NoteError{Message: fmt.Sprintf("invalid notebook name %q", name)}
	}

	dir := filepath.Join(root, name)
	if _, err := os.Stat(dir); err == nil {
		return ErrNotebookExists
	}
	if err := os.Mkdir(dir, 0755); err != nil {
		return fmt.Errorf("create notebook: %w", err)
	}
	return nil
}

// SetActiveNotebook validates the notebook and records it in the vault
// state file. An empty id clears the selection.
func (s *Store) SetActiveNotebook(id string) error {
	root := s.resolveRoot("")
	if root == "" {
		return ErrNoVault
	}

	if id != "" {
		info, err := os.Stat(filepath.Join(root, id))
		if err != nil || !info.IsDir() {
			return ErrNotebookNotFound
		}
	}
	return s.saveState(vaultState{ActiveNotebook: id})
}

// ActiveNotebook returns the recorded active notebook, or "" when none is
// set or the recorded one no longer exists.
func (s *Store) ActiveNotebook() string {
	root := s.resolveRoot("")
	if root == "" {
		return ""
	}

	st, err := s.loadState()
	if err != nil || st.ActiveNotebook == "" {
		return ""
	}
	info, err := os.Stat(filepath.Join(root, st.ActiveNotebook))
	if err != nil || !info.IsDir() {
		return ""
	}
	return st.ActiveNotebook
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Store) resolveRoot(root string) string {
	if root != "" {
		return root
	}
	return s.Root
}

func (s *Store) statePath() string {
	return filepath.Join(s.Root, StateDir, "state.json")
}

func (s *Store) loadState() (vaultState, error) {
	var st vaultState
	data, err := os.ReadFile(s.statePath())
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return vaultState{}, fmt.Errorf("parse state file: %w", err)
	}
	return st, nil
}

func (s *Store) saveState(st vaultState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return util.AtomicWriteFile(s.statePath(), data, 0644)
}

// uniquePath picks "<slug>.md", then "<slug>-2.md", "<slug>-3.md", until
// the name is free.
func uniquePath(dir, base string) string {
	path := filepath.Join(dir, base+".md")
	for i := 2; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s-%d.md", base, i))
	}
}

// countNotes counts the markdown files directly inside a notebook.
func countNotes(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			count++
		}
	}
	return count
}

// fillNotebookFromPath derives the notebook from the note's location when
// the frontmatter does not name one.
func fillNotebookFromPath(n *Note) {
	if n.Notebook != "" || n.Path == "" {
		return
	}
	if dir := filepath.Dir(filepath.FromSlash(n.Path)); dir != "." {
		n.Notebook = strings.SplitN(filepath.ToSlash(dir), "/", 2)[0]
	}
}
