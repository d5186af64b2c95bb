// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/jotkit/jot-tui/internal/config"
)

// =============================================================================
// JOT CONFIG
// =============================================================================

// HandleConfig reads and writes configuration. Verbs: get, set, list
// (default), and path. Keys use dot notation, e.g. ui.theme.
func HandleConfig(args Args) error {
	parser := NewArgParser(args.Raw)

	switch parser.Subcommand() {
	case "", "list":
		return configList(args)
	case "get":
		return configGet(args, parser.Positional(1))
	case "set":
		return configSet(args, parser.Positional(1), JoinPositionalArgs(parser, 2))
	case "path":
		return configPath(args)
	default:
		return NewValidationError("verb", parser.Subcommand(),
			"expected get, set, list, or path", "jot config get ui.theme")
	}
}

// loadConfigStrict loads config for the config command itself, where a
// broken file is an error rather than something to shrug past.
func loadConfigStrict() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, WrapError(err, "loading config")
	}
	return cfg, nil
}

func configGet(args Args, key string) error {
	if key == "" {
		return NewValidationError("key", "", "a config key is required", "jot config get ui.theme")
	}

	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	val, err := cfg.Get(key)
	if err != nil {
		return NewNotFoundError("config key", key)
	}

	if args.JSON {
		NewJSONResponse("config", ConfigData{Key: key, Value: val}).Print()
		return nil
	}

	if args.Quiet {
		fmt.Printf("%v\n", val)
		return nil
	}
	fmt.Printf("%s = %v\n", valueStyle.Render(key), val)
	return nil
}

func configSet(args Args, key, value string) error {
	if key == "" || value == "" {
		return NewValidationError("arguments", key,
			"config set needs a key and a value", "jot config set ui.theme light")
	}

	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return NewValidationError("key", key, err.Error(), "jot config set history.size 200")
	}
	if err := cfg.Validate(); err != nil {
		return NewValidationError("value", value, err.Error(), "")
	}
	if err := config.Save(cfg); err != nil {
		return WrapError(err, "saving config")
	}

	if args.JSON {
		val, _ := cfg.Get(key)
		NewJSONResponse("config", ConfigData{Key: key, Value: val}).Print()
		return nil
	}

	fmt.Printf("%s %s = %v\n", RenderStatus("ok"), valueStyle.Render(key), value)
	return nil
}

func configList(args Args) error {
	cfg, err := loadConfigStrict()
	if err != nil {
		return err
	}

	keys := config.GetAllKeys()
	sort.Strings(keys)

	if args.JSON {
		values := make(map[string]interface{}, len(keys))
		for _, key := range keys {
			if val, getErr := cfg.Get(key); getErr == nil {
				values[key] = val
			}
		}
		NewJSONResponse("config", ConfigData{Values: values}).Print()
		return nil
	}

	if !args.Quiet {
		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Println(RenderSeparator())
	}
	for _, key := range keys {
		val, getErr := cfg.Get(key)
		if getErr != nil {
			continue
		}
		fmt.Printf("%-26s %v\n", key, val)
	}
	return nil
}

func configPath(args Args) error {
	path, err := activeConfigPath()
	if err != nil {
		return WrapError(err, "resolving config path")
	}

	if args.JSON {
		NewJSONResponse("config", ConfigData{Path: path}).Print()
		return nil
	}
	fmt.Println(path)
	return nil
}

// activeConfigPath returns the config file jot is reading, or the TOML path
// it would write when no file exists yet.
func activeConfigPath() (string, error) {
	tomlPath, err := config.ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(tomlPath); statErr == nil {
		return tomlPath, nil
	}

	jsonPath, err := config.ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(jsonPath); statErr == nil {
		return jsonPath, nil
	}

	return tomlPath, nil
}
