// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reminders schedules and delivers note reminders.
//
// Reminders created with /remind live in a single JSON file under the
// vault state directory, bounded so it cannot grow without limit. The
// Scheduler wraps the store for the command layer and feeds the composer
// through a Bubble Tea tick: every TickMsg collects the reminders that
// just came due, marks them fired, and emits a DueMsg for the UI to
// surface as a banner.
//
// # Key Types
//
//   - Reminder: One scheduled reminder with message and due time
//   - Store: JSON-file persistence with fired-first eviction
//   - Scheduler: Command-layer facade plus tick handling
//   - DueMsg: Bubble Tea message carrying newly due reminders
//
// # Usage
//
//	store, err := reminders.NewStore(vaultRoot)
//	sched := reminders.NewScheduler(store)
//	sched.CreateReminder("stand-up prep", time.Now().Add(2*time.Hour), "work")
//
// Inside a Bubble Tea update loop:
//
//	case reminders.TickMsg:
//	    return m, m.sched.HandleTick(msg)
//	case reminders.DueMsg:
//	    m.banner = reminders.FormatDue(msg.Reminders[0])
package reminders
