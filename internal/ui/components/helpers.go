// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the jot TUI.
package components

import "strconv"

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// toStr converts an integer to a string.
func toStr(n int) string {
	return strconv.Itoa(n)
}

// fmtNumber formats a number with thousand separators.
func fmtNumber(n int) string {
	if n < 0 {
		if n == -9223372036854775808 { // negating MinInt64 overflows
			return "-9,223,372,036,854,775,808"
		}
		return "-" + fmtNumber(-n)
	}

	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	result := ""
	count := 0
	for i := len(s) - 1; i >= 0; i-- {
		if count > 0 && count%3 == 0 {
			result = "," + result
		}
		result = string(s[i]) + result
		count++
	}
	return result
}
