// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reminders schedules and delivers note reminders.
package reminders

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/logger"
)

// =============================================================================
// SCHEDULER
// =============================================================================

// DefaultTickInterval is how often the scheduler checks for due reminders.
const DefaultTickInterval = time.Second

// Scheduler records reminders and surfaces the ones that come due. It is
// what the /remind command talks to.
type Scheduler struct {
	store    *Store
	clock    func() time.Time
	interval time.Duration
}

var _ commands.ReminderScheduler = (*Scheduler)(nil)

// NewScheduler wraps a reminder store.
func NewScheduler(store *Store) *Scheduler {
	return &Scheduler{store: store, clock: time.Now, interval: DefaultTickInterval}
}

// SetClock replaces the wall clock, for tests.
func (s *Scheduler) SetClock(clock func() time.Time) {
	s.clock = clock
}

// SetInterval changes how often TickCmd fires. Non-positive values are
// ignored.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// CreateReminder stores a new reminder.
func (s *Scheduler) CreateReminder(message string, dueAt time.Time, notebookID string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("reminder message cannot be empty")
	}
	if dueAt.IsZero() {
		return fmt.Errorf("reminder needs a due time")
	}

	return s.store.Add(Reminder{
		Message:    message,
		NotebookID: notebookID,
		CreatedAt:  s.clock(),
		DueAt:      dueAt,
	})
}

// Pending returns reminders that have not fired yet.
func (s *Scheduler) Pending() []Reminder {
	return s.store.Pending()
}

// All returns every stored reminder.
func (s *Scheduler) All() []Reminder {
	return s.store.All()
}

// Due returns unfired reminders due at or before now without firing them.
func (s *Scheduler) Due(now time.Time) []Reminder {
	return s.store.Due(now)
}

// CollectDue pops the reminders due at now: they are marked fired and
// returned once. A second call for the same instant returns nothing.
func (s *Scheduler) CollectDue(now time.Time) []Reminder {
	due := s.store.Due(now)
	if len(due) == 0 {
		return nil
	}

	ids := make([]string, len(due))
	for i, r := range due {
		ids[i] = r.ID
	}
	if err := s.store.MarkFired(ids...); err != nil {
		logger.Warn("failed to persist fired reminders", "error", err)
	}
	logger.Debug("reminders fired", "count", len(due))
	return due
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to check for due reminders.
type TickMsg struct {
	Time time.Time
}

// DueMsg carries reminders that just came due.
type DueMsg struct {
	Reminders []Reminder
}

// TickCmd returns a command that ticks after the check interval.
func (s *Scheduler) TickCmd() tea.Cmd {
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick fires due reminders and re-arms the tick.
func (s *Scheduler) HandleTick(msg TickMsg) tea.Cmd {
	due := s.CollectDue(msg.Time)
	if len(due) == 0 {
		return s.TickCmd()
	}
	return tea.Batch(s.TickCmd(), func() tea.Msg {
		return DueMsg{Reminders: due}
	})
}

// FormatDue renders one reminder for the composer banner.
func FormatDue(r Reminder) string {
	if r.NotebookID == "" {
		return "Reminder: " + r.Message
	}
	return "Reminder: " + r.Message + " (" + r.NotebookID + ")"
}
