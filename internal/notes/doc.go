// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notes stores markdown notes inside a vault directory.
//
// A note is a markdown file with a YAML frontmatter header carrying its id,
// title, notebook, tags, and timestamps. Notebooks are first-level vault
// subdirectories. Vault-local state such as the active notebook lives under
// <vault>/.jot.
//
// # Key Types
//
//   - Note: parsed frontmatter plus markdown body
//   - Store: vault-level create/load/save/list/delete plus notebook ops
//
// # File Format
//
//	---
//	id: 9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d
//	title: Standup notes
//	notebook: work
//	tags: [meeting, standup]
//	created: 2025-03-14T09:26:53Z
//	updated: 2025-03-14T09:26:53Z
//	---
//
//	Prep for the quarterly review #meeting
//
// Files without a frontmatter header, or with an unclosed fence, are
// treated as body-only notes rather than errors.
package notes
