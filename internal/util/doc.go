// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for jot.
//
// The package holds the handful of primitives several jot packages need
// but that belong to none of them: crash-safe file writes and UTF-8
// aware truncation for terminal display.
//
// AtomicWriteFile is the write path for everything jot persists (notes,
// config, vault state, reminders). It writes through a same-directory
// temp file, fsyncs, and renames, so an interrupted write never leaves
// a half-written file behind.
//
// TruncateRunes cuts by character count and is what the CLI tables use.
// TruncateWidth and ClipWidth cut by terminal columns, counting wide
// East Asian characters as two, and are what the TUI uses to keep
// fixed-width cells aligned.
package util
