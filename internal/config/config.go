// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for fraction.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.fraction/config.toml
//   - ~/.fraction/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/fraction-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete fraction configuration.
type Config struct {
	// Playback controls pacing and the script source
	Playback PlaybackConfig `toml:"playback" json:"playback"`

	// UI controls rendering and interaction
	UI UIConfig `toml:"ui" json:"ui"`

	// Log controls structured logging
	Log LogConfig `toml:"log" json:"log"`
}

// PlaybackConfig contains typing animation settings.
type PlaybackConfig struct {
	// MinDelayMs is the shortest pause between two typed characters
	MinDelayMs int `toml:"min_delay_ms" json:"min_delay_ms"`
	// MaxDelayMs is the longest pause between two typed characters
	MaxDelayMs int `toml:"max_delay_ms" json:"max_delay_ms"`
	// Script is a path to a YAML/JSON/TOML script (empty = built-in conversation)
	Script string `toml:"script" json:"script"`
	// Seed fixes the pacing randomness (0 = time based)
	Seed uint64 `toml:"seed" json:"seed"`
	// Watch reloads the script when the file changes
	Watch bool `toml:"watch" json:"watch"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Title is shown in the header bar
	Title string `toml:"title" json:"title"`
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// CodeLanguage is the chroma lexer used for every code block
	CodeLanguage string `toml:"code_language" json:"code_language"`
	// CodeStyle is the chroma style used for every code block
	CodeStyle string `toml:"code_style" json:"code_style"`
	// SidebarWidth is the open width of the sidebar in columns
	SidebarWidth int `toml:"sidebar_width" json:"sidebar_width"`
	// SidebarAnimMs is the open/close animation duration (0 = instant)
	SidebarAnimMs int `toml:"sidebar_anim_ms" json:"sidebar_anim_ms"`
	// CursorBlinkMs is the blink period of the typing cursor
	CursorBlinkMs int `toml:"cursor_blink_ms" json:"cursor_blink_ms"`
	// SmoothScroll eases the transcript towards the bottom instead of jumping
	SmoothScroll bool `toml:"smooth_scroll" json:"smooth_scroll"`
	// Mouse enables click handling for the header and sidebar controls
	Mouse bool `toml:"mouse" json:"mouse"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `toml:"level" json:"level"`
	// File is the log file path (empty = logging disabled)
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Playback: PlaybackConfig{
			MinDelayMs: 10,
			MaxDelayMs: 25,
		},
		UI: UIConfig{
			Title:         "fraction-ai-terminal",
			Theme:         "auto",
			CodeLanguage:  "javascript",
			CodeStyle:     "onedark",
			SidebarWidth:  32,
			SidebarAnimMs: 300,
			CursorBlinkMs: 530,
			SmoothScroll:  true,
			Mouse:         true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// MinDelay returns the minimum typing delay as a duration.
func (c *Config) MinDelay() time.Duration {
	return time.Duration(c.Playback.MinDelayMs) * time.Millisecond
}

// MaxDelay returns the maximum typing delay as a duration.
func (c *Config) MaxDelay() time.Duration {
	return time.Duration(c.Playback.MaxDelayMs) * time.Millisecond
}

// SidebarAnimation returns the sidebar animation duration.
func (c *Config) SidebarAnimation() time.Duration {
	return time.Duration(c.UI.SidebarAnimMs) * time.Millisecond
}

// CursorBlink returns the cursor blink period.
func (c *Config) CursorBlink() time.Duration {
	return time.Duration(c.UI.CursorBlinkMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the fraction configuration directory path.
// FRACTION_HOME overrides the default ~/.fraction.
func ConfigDir() (string, error) {
	if dir := os.Getenv("FRACTION_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".fraction"), nil
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

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last. When a file exists but cannot be
// decoded, defaults are returned together with the decode error.
func Load() (*Config, error) {
	var loadErr error

	for _, locate := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := locate()
		if err != nil {
			loadErr = err
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			loadErr = err
			break
		}
		return cfg, nil
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are decoded as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg, err := LoadFileOnly(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFileOnly decodes path over the defaults without environment
// overrides or validation. It is what an edit-and-save cycle starts from.
func LoadFileOnly(path string) (*Config, error) {
	cfg := Default()

	if isJSONPath(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config %s: %w", path, err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config %s: %w", path, err)
		}
	}

	cfg.SetDefaults()
	return cfg, nil
}

func isJSONPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".json")
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

// SaveToPath writes the configuration in the format LoadFromPath expects
// for path: JSON for .json files, TOML otherwise.
func SaveToPath(cfg *Config, path string) error {
	if isJSONPath(path) {
		return SaveJSON(cfg, path)
	}
	return SaveTOML(cfg, path)
}

// SaveJSON writes the configuration as indented JSON with 0600 permissions.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveTOML writes the configuration as TOML with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var sb strings.Builder
	sb.WriteString("# fraction configuration\n\n")
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
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

var validThemes = map[string]bool{"auto": true, "dark": true, "light": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Playback.MinDelayMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "playback.min_delay_ms",
			Message: fmt.Sprintf("must be >= 0, got %d", c.Playback.MinDelayMs),
		})
	}
	if c.Playback.MaxDelayMs < c.Playback.MinDelayMs {
		errs = append(errs, ValidationError{
			Field:   "playback.max_delay_ms",
			Message: fmt.Sprintf("must be >= min_delay_ms (%d), got %d", c.Playback.MinDelayMs, c.Playback.MaxDelayMs),
		})
	}

	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.SidebarWidth < 12 || c.UI.SidebarWidth > 120 {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar_width",
			Message: fmt.Sprintf("must be between 12 and 120, got %d", c.UI.SidebarWidth),
		})
	}
	if c.UI.SidebarAnimMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar_anim_ms",
			Message: fmt.Sprintf("must be >= 0, got %d", c.UI.SidebarAnimMs),
		})
	}
	if c.UI.CursorBlinkMs < 50 {
		errs = append(errs, ValidationError{
			Field:   "ui.cursor_blink_ms",
			Message: fmt.Sprintf("must be >= 50, got %d", c.UI.CursorBlinkMs),
		})
	}

	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty string fields that have no meaningful zero value.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.UI.Title == "" {
		c.UI.Title = defaults.UI.Title
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.CodeLanguage == "" {
		c.UI.CodeLanguage = defaults.UI.CodeLanguage
	}
	if c.UI.CodeStyle == "" {
		c.UI.CodeStyle = defaults.UI.CodeStyle
	}
	if c.UI.SidebarWidth == 0 {
		c.UI.SidebarWidth = defaults.UI.SidebarWidth
	}
	if c.UI.CursorBlinkMs == 0 {
		c.UI.CursorBlinkMs = defaults.UI.CursorBlinkMs
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - FRACTION_SCRIPT: overrides playback.script
//   - FRACTION_MIN_DELAY_MS: overrides playback.min_delay_ms
//   - FRACTION_MAX_DELAY_MS: overrides playback.max_delay_ms
//   - FRACTION_CODE_STYLE: overrides ui.code_style
//   - FRACTION_NO_MOUSE: set to "1" or "true" to disable mouse handling
//   - FRACTION_LOG_LEVEL: overrides log.level
//   - FRACTION_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() {
	if path := os.Getenv("FRACTION_SCRIPT"); path != "" {
		c.Playback.Script = path
	}
	if v, ok := envInt("FRACTION_MIN_DELAY_MS"); ok {
		c.Playback.MinDelayMs = v
	}
	if v, ok := envInt("FRACTION_MAX_DELAY_MS"); ok {
		c.Playback.MaxDelayMs = v
	}
	if style := os.Getenv("FRACTION_CODE_STYLE"); style != "" {
		c.UI.CodeStyle = style
	}
	if noMouse := os.Getenv("FRACTION_NO_MOUSE"); noMouse != "" {
		c.UI.Mouse = !(noMouse == "1" || strings.ToLower(noMouse) == "true")
	}
	if level := os.Getenv("FRACTION_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if file := os.Getenv("FRACTION_LOG_FILE"); file != "" {
		c.Log.File = file
	}
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "ui.code_style").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type.
func (c *Config) Set(key string, value string) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		field.SetInt(int64(v))
	case reflect.Uint64:
		v, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned value for %s: %w", key, err)
		}
		field.SetUint(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", key, err)
		}
		field.SetBool(v)
	default:
		return fmt.Errorf("cannot set %s of kind %s", key, field.Kind())
	}
	return nil
}

// lookup walks the struct by toml tag names.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	name = strings.ReplaceAll(strings.ToLower(name), "-", "_")
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]; tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Keys returns every settable key in dot notation.
func Keys() []string {
	var keys []string
	t := reflect.TypeOf(Config{})
	for i := 0; i < t.NumField(); i++ {
		section := t.Field(i)
		prefix := strings.Split(section.Tag.Get("toml"), ",")[0]
		for j := 0; j < section.Type.NumField(); j++ {
			keys = append(keys, prefix+"."+strings.Split(section.Type.Field(j).Tag.Get("toml"), ",")[0])
		}
	}
	return keys
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Clone creates a copy of the configuration. Config holds only value
// fields, so a struct copy is deep.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON for display.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
