// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reminders schedules and delivers note reminders.
package reminders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SCHEDULER TESTS
// =============================================================================

func newTestScheduler(t *testing.T, now time.Time) *Scheduler {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sched := NewScheduler(store)
	sched.SetClock(func() time.Time { return now })
	return sched
}

func TestScheduler_CreateReminder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched := newTestScheduler(t, now)

	due := now.Add(2 * time.Hour)
	require.NoError(t, sched.CreateReminder("  review the draft  ", due, "work"))

	pending := sched.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "review the draft", pending[0].Message)
	assert.Equal(t, "work", pending[0].NotebookID)
	assert.True(t, pending[0].CreatedAt.Equal(now), "created at the injected clock")
	assert.True(t, pending[0].DueAt.Equal(due))
}

func TestScheduler_CreateReminder_Validation(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched := newTestScheduler(t, now)

	assert.Error(t, sched.CreateReminder("", now.Add(time.Hour), ""))
	assert.Error(t, sched.CreateReminder("   ", now.Add(time.Hour), ""))
	assert.Error(t, sched.CreateReminder("message", time.Time{}, ""))
	assert.Empty(t, sched.Pending())
}

func TestScheduler_CollectDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched := newTestScheduler(t, now)

	require.NoError(t, sched.CreateReminder("due now", now.Add(-time.Minute), ""))
	require.NoError(t, sched.CreateReminder("due later", now.Add(time.Hour), ""))

	due := sched.CollectDue(now)
	require.Len(t, due, 1)
	assert.Equal(t, "due now", due[0].Message)

	// Collected reminders are fired: a second sweep returns nothing.
	assert.Empty(t, sched.CollectDue(now))

	// The later one still fires when its time comes.
	due = sched.CollectDue(now.Add(2 * time.Hour))
	require.Len(t, due, 1)
	assert.Equal(t, "due later", due[0].Message)
}

func TestScheduler_HandleTick(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched := newTestScheduler(t, now)

	// Quiet tick still re-arms.
	assert.NotNil(t, sched.HandleTick(TickMsg{Time: now}))

	require.NoError(t, sched.CreateReminder("ping", now.Add(-time.Second), ""))
	assert.NotNil(t, sched.HandleTick(TickMsg{Time: now}))

	// The tick consumed the due reminder.
	assert.Empty(t, sched.Due(now))
}

func TestScheduler_SetInterval(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	sched := newTestScheduler(t, now)

	sched.SetInterval(5 * time.Second)
	assert.NotNil(t, sched.TickCmd())

	// Non-positive intervals are ignored rather than breaking the tick loop.
	sched.SetInterval(0)
	sched.SetInterval(-time.Second)
	assert.NotNil(t, sched.TickCmd())
}

func TestFormatDue(t *testing.T) {
	r := Reminder{Message: "stand-up prep"}
	assert.Equal(t, "Reminder: stand-up prep", FormatDue(r))

	r.NotebookID = "work"
	assert.Equal(t, "Reminder: stand-up prep (work)", FormatDue(r))
}
