// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notes stores markdown notes inside a vault directory.
package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// TAG EXTRACTION TESTS
// =============================================================================

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"single", "call the dentist #health", []string{"health"}},
		{"several sorted", "#work then #admin then #work again", []string{"admin", "work"}},
		{"case folded", "#Work and #WORK", []string{"work"}},
		{"line start", "#inbox\nsecond line", []string{"inbox"}},
		{"hyphen and underscore", "see #follow-up and #q2_plan", []string{"follow-up", "q2_plan"}},
		{"digits", "#2025 planning", []string{"2025"}},
		{"unicode", "notes de #réunion", []string{"réunion"}},
		{"mid-word hash ignored", "see issue#42 for details", nil},
		{"bare hash ignored", "just a # sign", nil},
		{"heading with space", "# Heading", nil},
		{"none", "no tags here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTags(tt.body))
		})
	}
}

func TestMergeTags(t *testing.T) {
	got := MergeTags([]string{"Work", "#urgent", " ", "work"}, "body with #standup and #work")
	assert.Equal(t, []string{"standup", "urgent", "work"}, got)

	assert.Nil(t, MergeTags(nil, "nothing"))
}
