// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index maintains the searchable SQLite index of a vault.
package index

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// FULL-TEXT SEARCH TESTS
// =============================================================================

func TestSearchNotes_RequiresIndex(t *testing.T) {
	idx := newTestIndex(t)

	_, err := idx.SearchNotes(idx.root, "anything")
	assert.ErrorIs(t, err, ErrNotIndexed)

	_, err = idx.SearchByTag(idx.root, "work")
	assert.ErrorIs(t, err, ErrNotIndexed)

	_, err = idx.ListAllTags()
	assert.ErrorIs(t, err, ErrNotIndexed)
}

func TestSearchNotes_EmptyQuery(t *testing.T) {
	idx := newTestIndex(t)
	writeNote(t, idx.root, "note.md", "# Note\n\nsome body")
	require.NoError(t, idx.Reindex(context.Background()))

	for _, q := range []string{"", "   ", "\t"} {
		hits, err := idx.SearchNotes(idx.root, q)
		require.NoError(t, err)
		assert.Empty(t, hits)
	}
}

func TestSearchNotes_CaseAndComposition(t *testing.T) {
	idx := newTestIndex(t)

	// Body carries the decomposed spelling (e + combining acute).
	writeNote(t, idx.root, "meetings.md", "# Agenda\n\nNotes de la réunion d'avril")
	require.NoError(t, idx.Reindex(context.Background()))

	// Query with the composed, upper-cased spelling.
	hits, err := idx.SearchNotes(idx.root, "RÉUNION")
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, "meetings.md", hits[0].Path)
	assert.Equal(t, "Agenda", hits[0].Title)
	assert.Contains(t, hits[0].Snippet, "réunion")
}

func TestSearchNotes_TitleOnlyMatch(t *testing.T) {
	idx := newTestIndex(t)

	writeNote(t, idx.root, "plan.md", "---\ntitle: Quarterly Planning\n---\nWe map the next three months.")
	require.NoError(t, idx.Reindex(context.Background()))

	hits, err := idx.SearchNotes(idx.root, "quarterly")
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, "Quarterly Planning", hits[0].Title)
	// No body occurrence, so the snippet falls back to the note head.
	assert.Equal(t, "We map the next three months.", hits[0].Snippet)
}

func TestSearchNotes_SortedByPath(t *testing.T) {
	idx := newTestIndex(t)

	writeNote(t, idx.root, "b.md", "# B\n\nshared needle here")
	writeNote(t, idx.root, "a.md", "# A\n\nshared needle there")
	writeNote(t, idx.root, "c.md", "# C\n\nnothing relevant")
	require.NoError(t, idx.Reindex(context.Background()))

	hits, err := idx.SearchNotes(idx.root, "needle")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a.md", hits[0].Path)
	assert.Equal(t, "b.md", hits[1].Path)
}

func TestSearchNotes_LikeWildcardsAreLiteral(t *testing.T) {
	idx := newTestIndex(t)

	writeNote(t, idx.root, "match.md", "# Match\n\nbattery at 100% today")
	writeNote(t, idx.root, "decoy.md", "# Decoy\n\nbattery at 100x today")
	require.NoError(t, idx.Reindex(context.Background()))

	hits, err := idx.SearchNotes(idx.root, "100%")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "match.md", hits[0].Path)
}

// =============================================================================
// TAG SEARCH TESTS
// =============================================================================

func TestSearchByTag(t *testing.T) {
	idx := newTestIndex(t)

	writeNote(t, idx.root, "work/standup.md", "# Standup\n\nDemo prep #work")
	writeNote(t, idx.root, "work/retro.md", "---\ntags: [work]\n---\n# Retro\n\nNo inline marker here")
	writeNote(t, idx.root, "misc.md", "# Misc\n\n#personal errands")
	require.NoError(t, idx.Reindex(context.Background()))

	for _, q := range []string{"work", "#work", "WORK"} {
		hits, err := idx.SearchByTag(idx.root, q)
		require.NoError(t, err, "query %q", q)
		require.Len(t, hits, 2, "query %q", q)
		assert.Equal(t, "work/retro.md", hits[0].Path)
		assert.Equal(t, "work/standup.md", hits[1].Path)
	}

	// The inline occurrence anchors the snippet when present.
	hits, err := idx.SearchByTag(idx.root, "work")
	require.NoError(t, err)
	assert.Contains(t, hits[1].Snippet, "#work")

	hits, err = idx.SearchByTag(idx.root, "vacation")
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.SearchByTag(idx.root, "#")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestListAllTags(t *testing.T) {
	idx := newTestIndex(t)

	writeNote(t, idx.root, "one.md", "# One\n\n#zebra #apple")
	writeNote(t, idx.root, "two.md", "# Two\n\n#apple #mango")
	require.NoError(t, idx.Reindex(context.Background()))

	tags, err := idx.ListAllTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "mango", "zebra"}, tags)
}

func TestNotebookNoteCounts(t *testing.T) {
	idx := newTestIndex(t)

	writeNote(t, idx.root, "inbox.md", "# Inbox")
	writeNote(t, idx.root, "work/a.md", "# A")
	writeNote(t, idx.root, "work/b.md", "# B")
	require.NoError(t, idx.Reindex(context.Background()))

	counts, err := idx.NotebookNoteCounts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"": 1, "work": 2}, counts)
}

// =============================================================================
// SNIPPET TESTS
// =============================================================================

func TestBuildSnippet(t *testing.T) {
	t.Run("short body without match", func(t *testing.T) {
		got := buildSnippet("just a few words", "absent")
		assert.Equal(t, "just a few words", got)
	})

	t.Run("match mid body truncates both ends", func(t *testing.T) {
		body := strings.Repeat("alpha ", 30) + "needle" + strings.Repeat(" omega", 30)
		got := buildSnippet(body, "needle")
		assert.Contains(t, got, "needle")
		assert.True(t, strings.HasPrefix(got, "..."))
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("match at start keeps the head", func(t *testing.T) {
		body := "needle first, then a long tail " + strings.Repeat("word ", 30)
		got := buildSnippet(body, "needle")
		assert.True(t, strings.HasPrefix(got, "needle"))
		assert.True(t, strings.HasSuffix(got, "..."))
	})

	t.Run("newlines collapse to spaces", func(t *testing.T) {
		got := buildSnippet("line one\nline two\nline three", "two")
		assert.Equal(t, "line one line two line three", got)
	})

	t.Run("case folded match", func(t *testing.T) {
		got := buildSnippet("Meeting NOTES for Monday", "notes")
		assert.Contains(t, got, "NOTES")
	})
}

func TestFoldIndex(t *testing.T) {
	pos, n := foldIndex("Hello World", "world")
	assert.Equal(t, 6, pos)
	assert.Equal(t, 5, n)

	pos, _ = foldIndex("Hello World", "mars")
	assert.Equal(t, -1, pos)

	pos, _ = foldIndex("anything", "")
	assert.Equal(t, -1, pos)

	// Multibyte text folds without breaking offsets.
	pos, n = foldIndex("café RÉUNION", "réunion")
	assert.Equal(t, 6, pos)
	assert.Equal(t, 8, n)
}
