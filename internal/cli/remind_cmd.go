// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/jotkit/jot-tui/internal/commands"
	"github.com/jotkit/jot-tui/internal/reminders"
)

// =============================================================================
// JOT REMIND
// =============================================================================

// HandleRemind schedules a reminder by running the same /remind command the
// composer uses, so the duration grammar has exactly one implementation.
func HandleRemind(args Args) error {
	if args.Duration == "" || args.Message == "" {
		return NewValidationError("arguments", args.Duration,
			"remind needs a duration and a message", "jot remind 10m stand up")
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
	exec := commands.NewExecutor(reg, commands.NewHistory(commands.DefaultHistoryCapacity))

	ctx, err := env.commandContext()
	if err != nil {
		return err
	}

	raw := commands.Marker + "remind " + args.Duration + " " + args.Message
	result, err := exec.Execute(raw, ctx)
	if err != nil {
		return WrapError(err, "scheduling reminder")
	}
	if !result.Success {
		return NewValidationError("duration", args.Duration, result.Message, "jot remind 2h water the plants")
	}

	if args.JSON {
		data := ReminderData{Message: args.Message, Notebook: env.notebook}
		if r, ok := newestReminder(env.remStore, args.Message); ok {
			data.DueAt = r.DueAt.Format("2006-01-02 15:04")
			data.Notebook = r.NotebookID
		}
		NewJSONResponse("remind", data).Print()
		return nil
	}

	fmt.Println(RenderStatus("ok") + " " + result.Message)
	return nil
}

// newestReminder finds the most recently created reminder with the given
// message, so output can echo the resolved due time.
func newestReminder(store *reminders.Store, message string) (reminders.Reminder, bool) {
	if store == nil {
		return reminders.Reminder{}, false
	}

	var best reminders.Reminder
	found := false
	for _, r := range store.All() {
		if r.Message != message {
			continue
		}
		if !found || r.CreatedAt.After(best.CreatedAt) {
			best = r
			found = true
		}
	}
	return best, found
}

// =============================================================================
// JOT REMINDERS
// =============================================================================

// HandleReminders lists pending reminders ordered by due time. --all
// includes ones that already fired.
func HandleReminders(args Args) error {
	parser := NewArgParser(args.Raw)
	includeAll := parser.BoolFlag("all")

	env, err := newCmdEnv(args)
	if err != nil {
		return err
	}
	defer env.close()

	sched, err := env.openScheduler()
	if err != nil {
		return err
	}

	var list []reminders.Reminder
	if includeAll {
		list = sched.All()
	} else {
		list = sched.Pending()
	}
	sort.Slice(list, func(i, j int) bool { return list[i].DueAt.Before(list[j].DueAt) })

	if args.JSON {
		data := RemindersData{Reminders: make([]ReminderData, 0, len(list)), Count: len(list)}
		for _, r := range list {
			data.Reminders = append(data.Reminders, ReminderData{
				Message:  r.Message,
				DueAt:    r.DueAt.Format("2006-01-02 15:04"),
				Notebook: r.NotebookID,
				Fired:    r.Fired,
			})
		}
		NewJSONResponse("reminders", data).Print()
		return nil
	}

	if len(list) == 0 {
		fmt.Println("No reminders. Set one with 'jot remind 10m <message>'.")
		return nil
	}

	now := time.Now()
	for _, r := range list {
		due := formatDueIn(r.DueAt, now)
		switch {
		case r.Fired:
			fmt.Printf("  %s  %s\n", mutedStyle.Render("fired"), mutedStyle.Render(r.Message))
		case r.DueAt.Before(now):
			fmt.Printf("  %s  %s\n", warnStyle.Render(due), r.Message)
		default:
			fmt.Printf("  %s  %s\n", valueStyle.Render(due), r.Message)
		}
		if r.NotebookID != "" {
			fmt.Printf("         %s\n", mutedStyle.Render(r.NotebookID))
		}
	}

	if !args.Quiet {
		fmt.Println(mutedStyle.Render(fmt.Sprintf("%d reminder(s)", len(list))))
	}
	return nil
}

// formatDueIn renders how far away a due time is, column-width friendly.
func formatDueIn(due, now time.Time) string {
	d := due.Sub(now)
	overdue := d < 0
	if overdue {
		d = -d
	}

	var span string
	switch {
	case d < time.Minute:
		span = "now"
	case d < time.Hour:
		span = fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		span = fmt.Sprintf("%dh", int(d.Hours()))
	default:
		span = fmt.Sprintf("%dd", int(d.Hours()/24))
	}

	if span == "now" {
		return "due now"
	}
	if overdue {
		return "-" + span
	}
	return "in " + span
}
