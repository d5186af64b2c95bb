// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notes stores markdown notes inside a vault directory.
package notes

import (
	"regexp"
	"sort"
	"strings"
)

// tagPattern matches inline hashtags at a word boundary: "#" followed by a
// letter or digit, then letters, digits, hyphens, or underscores.
// Unicode-aware, so "#réunion" and "#会議" both count.
var tagPattern = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}][\p{L}\p{N}_-]*)`)

// ExtractTags returns the distinct inline hashtags of a body, lower-cased
// and sorted. Tags inside words ("issue#42") are not tags.
func ExtractTags(body string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range tagPattern.FindAllStringSubmatch(body, -1) {
		tag := strings.ToLower(m[2])
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}

// MergeTags unions frontmatter tags with inline body tags, lower-cased and
// sorted, for indexing.
func MergeTags(declared []string, body string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(tag, "#")))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}

	for _, t := range declared {
		add(t)
	}
	for _, t := range ExtractTags(body) {
		add(t)
	}
	sort.Strings(out)
	return out
}
