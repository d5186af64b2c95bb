// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package index maintains the searchable SQLite index of a vault.
package index

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jotkit/jot-tui/internal/commands"
)

// The index answers the composer's /search and /tagged lookups.
var (
	_ commands.Searcher  = (*NoteIndex)(nil)
	_ commands.TagSource = (*NoteIndex)(nil)
)

const (
	// MaxSearchResults bounds what a single query returns
	MaxSearchResults = 50

	// snippetRadius is how many runes of context surround a match
	snippetRadius = 40
)

// =============================================================================
// SEARCH METHODS
// =============================================================================

// SearchNotes finds notes whose title or body contains the query,
// ignoring case and Unicode composition. The root argument is accepted
// for the Searcher interface; the index always serves its own vault.
func (idx *NoteIndex) SearchNotes(root, query string) ([]commands.SearchHit, error) {
	if !idx.IsIndexed() {
		return nil, ErrNotIndexed
	}

	needle := normFold(strings.TrimSpace(query))
	if needle == "" {
		return []commands.SearchHit{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	rows, err := idx.db.Query(`
		SELECT path, title, content
		FROM notes
		WHERE norm_content LIKE ? ESCAPE '\'
		ORDER BY path
		LIMIT ?
	`, "%"+escapeLike(needle)+"%", MaxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var hits []commands.SearchHit
	for rows.Next() {
		var path, title, content string
		if err := rows.Scan(&path, &title, &content); err != nil {
			continue
		}
		hits = append(hits, commands.SearchHit{
			Path:    path,
			Title:   title,
			Snippet: buildSnippet(content, needle),
		})
	}

	return hits, nil
}

// SearchByTag finds notes carrying the tag. A leading '#' is tolerated.
func (idx *NoteIndex) SearchByTag(root, tag string) ([]commands.SearchHit, error) {
	if !idx.IsIndexed() {
		return nil, ErrNotIndexed
	}

	tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
	if tag == "" {
		return []commands.SearchHit{}, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	rows, err := idx.db.Query(`
		SELECT n.path, n.title, n.content
		FROM notes n
		JOIN tags t ON t.note_id = n.id
		WHERE t.tag = ?
		ORDER BY n.path
		LIMIT ?
	`, tag, MaxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var hits []commands.SearchHit
	for rows.Next() {
		var path, title, content string
		if err := rows.Scan(&path, &title, &content); err != nil {
			continue
		}
		// Snippet around the inline occurrence when there is one;
		// frontmatter-only tags fall back to the note head.
		hits = append(hits, commands.SearchHit{
			Path:    path,
			Title:   title,
			Snippet: buildSnippet(content, "#"+tag),
		})
	}

	return hits, nil
}

// ListAllTags returns every distinct tag in the vault, sorted.
func (idx *NoteIndex) ListAllTags() ([]string, error) {
	if !idx.IsIndexed() {
		return nil, ErrNotIndexed
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	rows, err := idx.db.Query("SELECT DISTINCT tag FROM tags ORDER BY tag")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err == nil {
			tags = append(tags, tag)
		}
	}

	return tags, nil
}

// NotebookNoteCounts returns indexed note counts per notebook. Notes at
// the vault root are reported under "".
func (idx *NoteIndex) NotebookNoteCounts() (map[string]int, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	rows, err := idx.db.Query(`
		SELECT notebook, COUNT(*) as count
		FROM notes
		GROUP BY notebook
		ORDER BY count DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var notebook string
		var count int
		if err := rows.Scan(&notebook, &count); err == nil {
			counts[notebook] = count
		}
	}

	return counts, nil
}

// =============================================================================
// SNIPPETS
// =============================================================================

// buildSnippet cuts a window of the body around the first case-insensitive
// occurrence of needle. Without a match it shows the note head. Whitespace
// runs collapse to single spaces so the snippet stays on one line.
func buildSnippet(body, needle string) string {
	pos, matchLen := foldIndex(body, needle)
	if pos < 0 {
		return headSnippet(body)
	}

	start := pos
	for i := 0; i < snippetRadius && start > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(body[:start])
		start -= size
	}
	end := pos + matchLen
	for i := 0; i < snippetRadius && end < len(body); i++ {
		_, size := utf8.DecodeRuneInString(body[end:])
		end += size
	}

	snippet := strings.Join(strings.Fields(body[start:end]), " ")
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(body) {
		snippet += "..."
	}
	return snippet
}

// headSnippet shows the first stretch of the body
func headSnippet(body string) string {
	end := 0
	for i := 0; i < 2*snippetRadius && end < len(body); i++ {
		_, size := utf8.DecodeRuneInString(body[end:])
		end += size
	}
	snippet := strings.Join(strings.Fields(body[:end]), " ")
	if end < len(body) {
		snippet += "..."
	}
	return snippet
}

// foldIndex locates the lower-cased needle in s, comparing rune by rune
// so case folding never misaligns the returned byte offset. It returns
// the offset and the byte length of the matched text, or -1.
func foldIndex(s, needle string) (int, int) {
	if needle == "" {
		return -1, 0
	}
	for i := range s {
		if n := foldPrefixLen(s[i:], needle); n >= 0 {
			return i, n
		}
	}
	return -1, 0
}

// foldPrefixLen returns how many bytes of s the lower-cased needle covers
// when s starts with it, or -1
func foldPrefixLen(s, needle string) int {
	total := 0
	for _, want := range needle {
		r, size := utf8.DecodeRuneInString(s[total:])
		if size == 0 || unicode.ToLower(r) != want {
			return -1
		}
		total += size
	}
	return total
}

// escapeLike escapes LIKE wildcards so user input matches literally
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
