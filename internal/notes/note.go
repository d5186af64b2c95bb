// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notes stores markdown notes inside a vault directory.
package notes

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// maxTitleRunes caps titles derived from note bodies.
const maxTitleRunes = 80

// =============================================================================
// NOTE
// =============================================================================

// Note is one markdown note: its frontmatter fields plus the body.
type Note struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Notebook string    `yaml:"notebook,omitempty"`
	Tags     []string  `yaml:"tags,omitempty"`
	Created  time.Time `yaml:"created"`
	Updated  time.Time `yaml:"updated"`

	Path string `yaml:"-"` // vault-relative file path
	Body string `yaml:"-"` // markdown body without the frontmatter block
}

// ParseNote decodes a note file. A missing or unclosed frontmatter fence
// makes the whole file the body; only malformed YAML inside a closed fence
// is an error.
func ParseNote(data []byte) (*Note, error) {
	block, body := splitFrontmatter(data)
	n := &Note{Body: body}
	if block != nil {
		if err := yaml.Unmarshal(block, n); err != nil {
			return nil, fmt.Errorf("parse frontmatter: %w", err)
		}
	}
	return n, nil
}

// ComposeNote renders the note back into file form: fenced YAML frontmatter,
// a blank line, then the body.
func ComposeNote(n *Note) ([]byte, error) {
	fm, err := yaml.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("marshal frontmatter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(n.Body)
	return b.Bytes(), nil
}

// splitFrontmatter separates the YAML block between "---" fence lines from
// the body after the closing fence. Returns a nil block when the file has
// no opening fence or the fence never closes.
func splitFrontmatter(data []byte) ([]byte, string) {
	s := string(data)

	first, rest, _ := strings.Cut(s, "\n")
	if strings.TrimRight(first, "\r") != "---" {
		return nil, s
	}

	var block strings.Builder
	remaining := rest
	for remaining != "" {
		line, next, found := strings.Cut(remaining, "\n")
		if strings.TrimRight(line, "\r") == "---" {
			return []byte(block.String()), strings.TrimPrefix(next, "\n")
		}
		block.WriteString(line)
		block.WriteString("\n")
		if !found {
			break
		}
		remaining = next
	}
	return nil, s
}

// =============================================================================
// DERIVATION HELPERS
// =============================================================================

// DeriveTitle extracts a title from the first non-empty body line, with
// markdown heading markers stripped.
func DeriveTitle(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > maxTitleRunes {
			line = string(runes[:maxTitleRunes])
		}
		return line
	}
	return ""
}

// FileSlug returns a filesystem-safe slug for a note title.
func FileSlug(title string) string {
	if s := slug.Make(title); s != "" {
		return s
	}
	return "untitled"
}

// Checksum returns the blake2b-256 hex digest of a note file's content.
// The index compares checksums to skip unchanged notes on reindex.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
