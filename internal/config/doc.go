// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and manages jot's configuration.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - VaultConfig: Vault location and default notebook
//   - IndexConfig: Search index and vault watcher behavior
//   - ValidateErrors: Accumulated validation failures
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (JOT_*)
//   - ~/.jot/config.toml
//   - ~/.jot/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	vault := cfg.Vault.Root
//	debounce := cfg.WatchDebounce()
//
// Settings can also be read and written by their dot-notation key, which is
// how "jot config get" and "jot config set" address them:
//
//	val, _ := cfg.Get("ui.theme")
//	_ = cfg.Set("index.watch", "false")
package config
