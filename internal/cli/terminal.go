// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TERMINAL DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is assumed when the real width is unknowable,
	// such as redirected output.
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the narrowest width table rendering will target.
	MinTerminalWidth = 40
)

// IsTTY reports whether stdin is an interactive terminal.
func IsTTY() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsStdoutTTY reports whether stdout is an interactive terminal. Rendered
// markdown and color are only worth emitting when it is.
func IsStdoutTTY() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsStderrTTY reports whether stderr is an interactive terminal.
func IsStderrTTY() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// GetTerminalWidth returns the current terminal width, clamped to
// MinTerminalWidth, or DefaultTerminalWidth when stdout is not a terminal.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	return width
}

// GetTerminalSize returns the terminal dimensions, falling back to 80x24.
func GetTerminalSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultTerminalWidth, 24
	}
	return width, height
}

// =============================================================================
// COLOR SUPPORT
// =============================================================================

var (
	colorsOnce    sync.Once
	colorsEnabled bool
	colorsForced  *bool
)

// ColorsEnabled reports whether output should use color. NO_COLOR wins over
// everything, FORCE_COLOR wins over TTY detection. The answer is computed
// once per process.
func ColorsEnabled() bool {
	if colorsForced != nil {
		return *colorsForced
	}

	colorsOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" {
			colorsEnabled = false
			return
		}
		if os.Getenv("FORCE_COLOR") != "" {
			colorsEnabled = true
			return
		}
		colorsEnabled = IsStdoutTTY()
	})

	return colorsEnabled
}

// ForceColorsEnabled overrides color detection. Tests use it to get
// deterministic output.
func ForceColorsEnabled(enabled bool) {
	colorsForced = &enabled
}

// GetColorProfile returns the termenv profile matching the current terminal,
// or Ascii when colors are disabled.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// =============================================================================
// INTERACTIVITY GUARDS
// =============================================================================

// CanPrompt reports whether both stdin and stdout are terminals, meaning we
// can ask the user questions.
func CanPrompt() bool {
	return IsTTY() && IsStdoutTTY()
}

// RequiresTTY returns an error describing why operation cannot run when
// stdin is not attached to a terminal.
func RequiresTTY(operation string) error {
	if !IsTTY() {
		return fmt.Errorf("%s requires an interactive terminal (stdin is not a TTY)", operation)
	}
	return nil
}
