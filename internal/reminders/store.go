// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reminders schedules and delivers note reminders.
package reminders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jotkit/jot-tui/internal/notes"
	"github.com/jotkit/jot-tui/internal/util"
)

// =============================================================================
// REMINDER TYPE
// =============================================================================

// Reminder is one scheduled reminder.
type Reminder struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	NotebookID string    `json:"notebook_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	DueAt      time.Time `json:"due_at"`
	Fired      bool      `json:"fired,omitempty"`
}

// DefaultMaxReminders bounds the reminder file so it cannot grow forever.
const DefaultMaxReminders = 500

// reminderFile is the on-disk shape of <vault>/.jot/reminders.json.
type reminderFile struct {
	Reminders []Reminder `json:"reminders"`
}

// =============================================================================
// REMINDER STORE
// =============================================================================

// Store persists reminders in a single JSON file under the vault state
// directory. All reminders are held in memory; every mutation rewrites
// the file atomically.
type Store struct {
	mu        sync.Mutex
	path      string
	reminders []Reminder

	// MaxReminders limits stored reminders (0 = unlimited). When the
	// bound is hit, fired reminders are evicted first, oldest first.
	MaxReminders int
}

// NewStore opens the reminder file for a vault. A missing file is an
// empty store; an unreadable one is abandoned rather than fatal, since
// reminders should never keep the app from starting.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("reminder store needs a vault root")
	}

	stateDir := filepath.Join(root, notes.StateDir)
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	s := &Store{
		path:         filepath.Join(stateDir, "reminders.json"),
		MaxReminders: DefaultMaxReminders,
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read reminders: %w", err)
	}

	var file reminderFile
	if err := json.Unmarshal(data, &file); err != nil {
		// Corrupt file: start empty, the next save replaces it
		return s, nil
	}
	s.reminders = file.Reminders
	return s, nil
}

// Add appends a reminder, assigning an ID when it has none.
func (s *Store) Add(r Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.reminders = append(s.reminders, r)
	s.enforceLimit()
	return s.save()
}

// All returns every stored reminder, soonest due first.
func (s *Store) All() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reminder, len(s.reminders))
	copy(out, s.reminders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out
}

// Pending returns reminders that have not fired yet, soonest due first.
func (s *Store) Pending() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Reminder
	for _, r := range s.reminders {
		if !r.Fired {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out
}

// Due returns unfired reminders whose due time is at or before now,
// soonest due first.
func (s *Store) Due(now time.Time) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Reminder
	for _, r := range s.reminders {
		if !r.Fired && !r.DueAt.After(now) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out
}

// MarkFired flags the given reminders as delivered.
func (s *Store) MarkFired(ids ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fired := make(map[string]bool, len(ids))
	for _, id := range ids {
		fired[id] = true
	}

	changed := false
	for i := range s.reminders {
		if fired[s.reminders[i].ID] && !s.reminders[i].Fired {
			s.reminders[i].Fired = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save()
}

// Len returns the number of stored reminders.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// enforceLimit evicts reminders beyond the bound. Eviction order puts
// fired reminders first, oldest created first, so pending reminders
// survive as long as possible. Caller holds the lock.
func (s *Store) enforceLimit() {
	if s.MaxReminders <= 0 || len(s.reminders) <= s.MaxReminders {
		return
	}

	sort.SliceStable(s.reminders, func(i, j int) bool {
		a, b := s.reminders[i], s.reminders[j]
		if a.Fired != b.Fired {
			return a.Fired
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	s.reminders = s.reminders[len(s.reminders)-s.MaxReminders:]
}

// save rewrites the reminder file. Caller holds the lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(reminderFile{Reminders: s.reminders}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	// Atomic write with fsync so a crash never loses the whole file
	return util.AtomicWriteFile(s.path, data, 0644)
}
