// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and manages jot's configuration.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jotkit/jot-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete jot configuration.
type Config struct {
	// Version is the configuration schema version.
	Version string `toml:"version" json:"version"`

	// Vault configuration
	Vault VaultConfig `toml:"vault" json:"vault"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// History configuration
	History HistoryConfig `toml:"history" json:"history"`

	// Index configuration
	Index IndexConfig `toml:"index" json:"index"`

	// Reminders configuration
	Reminders RemindersConfig `toml:"reminders" json:"reminders"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// VaultConfig locates the note vault.
type VaultConfig struct {
	// Root is the vault directory. A leading ~ expands to the home directory.
	Root string `toml:"root" json:"root"`
	// DefaultNotebook is the notebook new notes land in when no notebook is
	// active. Empty means the vault root.
	DefaultNotebook string `toml:"default_notebook" json:"default_notebook"`
}

// UIConfig contains composer UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowSuggestions controls the slash-command suggestion popup.
	ShowSuggestions bool `toml:"show_suggestions" json:"show_suggestions"`
	// RenderedPreview renders the note preview as styled markdown when true,
	// plain text when false.
	RenderedPreview bool `toml:"rendered_preview" json:"rendered_preview"`
}

// HistoryConfig bounds the command history.
type HistoryConfig struct {
	// Size is the maximum number of command invocations kept.
	Size int `toml:"size" json:"size"`
}

// IndexConfig controls the note index and its vault watcher.
type IndexConfig struct {
	// Enabled controls whether the search index is maintained at all.
	Enabled bool `toml:"enabled" json:"enabled"`
	// Watch reindexes notes as they change on disk.
	Watch bool `toml:"watch" json:"watch"`
	// DebounceMs is how long a file must stay quiet before it is reindexed,
	// in milliseconds.
	DebounceMs int `toml:"debounce_ms" json:"debounce_ms"`
	// PollSecs is the scan interval of the polling fallback watcher,
	// in seconds.
	PollSecs int `toml:"poll_secs" json:"poll_secs"`
	// MaxFileSizeKB skips notes larger than this many kilobytes.
	MaxFileSizeKB int `toml:"max_file_size_kb" json:"max_file_size_kb"`
}

// RemindersConfig controls reminder delivery.
type RemindersConfig struct {
	// Enabled controls whether due reminders are surfaced in the composer.
	Enabled bool `toml:"enabled" json:"enabled"`
	// CheckSecs is how often due reminders are checked, in seconds.
	CheckSecs int `toml:"check_secs" json:"check_secs"`
}

// LogConfig controls log output.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error", "fatal"
	Level string `toml:"level" json:"level"`
	// File is the log file path. Empty means stderr for CLI runs and
	// ~/.jot/jot.log for TUI runs, where stderr would tear the alt screen.
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Vault: VaultConfig{
			Root:            "~/notes",
			DefaultNotebook: "",
		},

		UI: UIConfig{
			Theme:           "dark",
			ShowSuggestions: true,
			RenderedPreview: true,
		},

		History: HistoryConfig{
			Size: 50,
		},

		Index: IndexConfig{
			Enabled:       true,
			Watch:         true,
			DebounceMs:    500,
			PollSecs:      5,
			MaxFileSizeKB: 4096,
		},

		Reminders: RemindersConfig{
			Enabled:   true,
			CheckSecs: 1,
		},

		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the jot configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".jot"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// expandHome expands a leading ~ to the user's home directory. The ~user
// form is not supported and passes through unchanged.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not expand %q: %w", path, err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// No config file: run the defaults through the same pipeline.
	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// finishLoad applies the common post-load pipeline: environment overrides,
// migration, defaults, and validation.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	if err := cfg.Migrate(); err != nil {
		return nil, fmt.Errorf("config migration failed: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The file is decoded over the defaults, so settings the file
// omits keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// Vault
	if cfg.Vault.Root == "" {
		cfg.Vault.Root = defaults.Vault.Root
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	// History
	if cfg.History.Size == 0 {
		cfg.History.Size = defaults.History.Size
	}

	// Index
	if cfg.Index.DebounceMs == 0 {
		cfg.Index.DebounceMs = defaults.Index.DebounceMs
	}
	if cfg.Index.PollSecs == 0 {
		cfg.Index.PollSecs = defaults.Index.PollSecs
	}
	if cfg.Index.MaxFileSizeKB == 0 {
		cfg.Index.MaxFileSizeKB = defaults.Index.MaxFileSizeKB
	}

	// Reminders
	if cfg.Reminders.CheckSecs == 0 {
		cfg.Reminders.CheckSecs = defaults.Reminders.CheckSecs
	}

	// Log
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file. The write is atomic, so
// a crash mid-save leaves the previous config intact.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# jot configuration file")
	fmt.Fprintln(&buf, "# Generated by jot - edit with care")
	fmt.Fprintln(&buf, "#")
	fmt.Fprintln(&buf, "# Documentation: https://github.com/jotkit/jot-tui")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file atomically.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// ==========================================================================
	// Vault Settings Validation
	// ==========================================================================

	if strings.TrimSpace(c.Vault.Root) == "" {
		errs = append(errs, ValidationError{
			Field:   "vault.root",
			Message: "vault root cannot be empty",
		})
	}

	// Notebooks are single first-level directories inside the vault.
	if nb := c.Vault.DefaultNotebook; nb != "" {
		if strings.ContainsAny(nb, `/\`) || strings.HasPrefix(nb, ".") {
			errs = append(errs, ValidationError{
				Field:   "vault.default_notebook",
				Message: fmt.Sprintf("invalid notebook name %q, must be a plain directory name", nb),
			})
		}
	}

	// ==========================================================================
	// UI Settings Validation
	// ==========================================================================

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	// ==========================================================================
	// History Settings Validation
	// ==========================================================================

	if c.History.Size < 1 || c.History.Size > 1000 {
		errs = append(errs, ValidationError{
			Field:   "history.size",
			Message: fmt.Sprintf("size must be 1-1000, got %d", c.History.Size),
		})
	}

	// ==========================================================================
	// Index Settings Validation
	// ==========================================================================

	if c.Index.DebounceMs < 50 || c.Index.DebounceMs > 10000 {
		errs = append(errs, ValidationError{
			Field:   "index.debounce_ms",
			Message: fmt.Sprintf("debounce_ms must be 50-10000, got %d", c.Index.DebounceMs),
		})
	}
	if c.Index.PollSecs < 1 || c.Index.PollSecs > 300 {
		errs = append(errs, ValidationError{
			Field:   "index.poll_secs",
			Message: fmt.Sprintf("poll_secs must be 1-300, got %d", c.Index.PollSecs),
		})
	}
	if c.Index.MaxFileSizeKB < 16 || c.Index.MaxFileSizeKB > 65536 {
		errs = append(errs, ValidationError{
			Field:   "index.max_file_size_kb",
			Message: fmt.Sprintf("max_file_size_kb must be 16-65536, got %d", c.Index.MaxFileSizeKB),
		})
	}

	// ==========================================================================
	// Reminder Settings Validation
	// ==========================================================================

	if c.Reminders.CheckSecs < 1 || c.Reminders.CheckSecs > 3600 {
		errs = append(errs, ValidationError{
			Field:   "reminders.check_secs",
			Message: fmt.Sprintf("check_secs must be 1-3600, got %d", c.Reminders.CheckSecs),
		})
	}

	// ==========================================================================
	// Log Settings Validation
	// ==========================================================================

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true,
	}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error, fatal", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value
// configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	// Vault defaults
	if c.Vault.Root == "" {
		c.Vault.Root = defaults.Vault.Root
	}

	// UI defaults
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}

	// History defaults
	if c.History.Size == 0 {
		c.History.Size = defaults.History.Size
	}

	// Index defaults
	if c.Index.DebounceMs == 0 {
		c.Index.DebounceMs = defaults.Index.DebounceMs
	}
	if c.Index.PollSecs == 0 {
		c.Index.PollSecs = defaults.Index.PollSecs
	}
	if c.Index.MaxFileSizeKB == 0 {
		c.Index.MaxFileSizeKB = defaults.Index.MaxFileSizeKB
	}

	// Reminders defaults
	if c.Reminders.CheckSecs == 0 {
		c.Reminders.CheckSecs = defaults.Reminders.CheckSecs
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Migrate normalizes values written by older releases or by hand.
func (c *Config) Migrate() error {
	// Older builds wrote "warning"; charmbracelet/log calls it "warn".
	if strings.EqualFold(c.Log.Level, "warning") {
		c.Log.Level = "warn"
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Log.Level = strings.ToLower(c.Log.Level)

	// Expand ~ so every consumer sees a real path.
	root, err := expandHome(c.Vault.Root)
	if err != nil {
		return err
	}
	c.Vault.Root = root

	if c.Log.File != "" {
		file, err := expandHome(c.Log.File)
		if err != nil {
			return err
		}
		c.Log.File = file
	}

	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - JOT_VAULT: overrides vault.root
//   - JOT_NOTEBOOK: overrides vault.default_notebook
//   - JOT_THEME: overrides ui.theme
//   - JOT_LOG_LEVEL: overrides log.level
//   - JOT_NO_WATCH: set to "1" or "true" to disable the vault watcher
func (c *Config) ApplyEnvOverrides() {
	// JOT_VAULT
	if root := os.Getenv("JOT_VAULT"); root != "" {
		c.Vault.Root = root
	}

	// JOT_NOTEBOOK
	if nb := os.Getenv("JOT_NOTEBOOK"); nb != "" {
		c.Vault.DefaultNotebook = nb
	}

	// JOT_THEME
	if theme := os.Getenv("JOT_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	// JOT_LOG_LEVEL
	if level := os.Getenv("JOT_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	// JOT_NO_WATCH
	if noWatch := os.Getenv("JOT_NO_WATCH"); noWatch != "" {
		c.Index.Watch = !(noWatch == "1" || strings.ToLower(noWatch) == "true")
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		// If this is the last part, return the value
		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		// Otherwise, navigate into the struct
		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation (e.g., "ui.theme").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		// If this is the last part, set the value
		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		// Otherwise, navigate into the struct
		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go
// field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type
// conversion. String inputs are parsed into the field's type, so callers
// like "jot config set index.watch true" never care about the Go type.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	// Direct assignment for matching types
	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}

	// Type conversion for compatible types
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"vault.root",
		"vault.default_notebook",
		"ui.theme",
		"ui.show_suggestions",
		"ui.rendered_preview",
		"history.size",
		"index.enabled",
		"index.watch",
		"index.debounce_ms",
		"index.poll_secs",
		"index.max_file_size_kb",
		"reminders.enabled",
		"reminders.check_secs",
		"log.level",
		"log.file",
	}
}

// WatchDebounce returns the index debounce setting as a duration.
func (c *Config) WatchDebounce() time.Duration {
	return time.Duration(c.Index.DebounceMs) * time.Millisecond
}

// PollInterval returns the polling fallback interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Index.PollSecs) * time.Second
}

// CheckInterval returns the reminder check interval as a duration.
func (c *Config) CheckInterval() time.Duration {
	return time.Duration(c.Reminders.CheckSecs) * time.Second
}

// MaxFileSize returns the index file size cap in bytes.
func (c *Config) MaxFileSize() int64 {
	return int64(c.Index.MaxFileSizeKB) * 1024
}

// Clone returns a copy of the configuration. Every field is a value type,
// so the struct copy is a deep copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as indented JSON, for debug output.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
