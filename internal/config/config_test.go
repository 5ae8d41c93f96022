// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.MinDelay() != 10*time.Millisecond {
		t.Errorf("MinDelay = %v, want 10ms", cfg.MinDelay())
	}
	if cfg.MaxDelay() != 25*time.Millisecond {
		t.Errorf("MaxDelay = %v, want 25ms", cfg.MaxDelay())
	}
	if cfg.UI.CodeLanguage != "javascript" {
		t.Errorf("CodeLanguage = %q, want javascript", cfg.UI.CodeLanguage)
	}
	if cfg.UI.CodeStyle != "onedark" {
		t.Errorf("CodeStyle = %q, want onedark", cfg.UI.CodeStyle)
	}
	if cfg.SidebarAnimation() != 300*time.Millisecond {
		t.Errorf("SidebarAnimation = %v, want 300ms", cfg.SidebarAnimation())
	}
	if !cfg.UI.Mouse || !cfg.UI.SmoothScroll {
		t.Error("mouse and smooth scroll should default to enabled")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		field   string
		wantErr bool
	}{
		{name: "valid default config", mutate: func(c *Config) {}},
		{
			name:    "negative min delay",
			mutate:  func(c *Config) { c.Playback.MinDelayMs = -1 },
			field:   "playback.min_delay_ms",
			wantErr: true,
		},
		{
			name:    "max below min",
			mutate:  func(c *Config) { c.Playback.MinDelayMs = 30; c.Playback.MaxDelayMs = 20 },
			field:   "playback.max_delay_ms",
			wantErr: true,
		},
		{
			name:   "equal bounds",
			mutate: func(c *Config) { c.Playback.MinDelayMs = 15; c.Playback.MaxDelayMs = 15 },
		},
		{
			name:    "invalid theme",
			mutate:  func(c *Config) { c.UI.Theme = "neon" },
			field:   "ui.theme",
			wantErr: true,
		},
		{
			name:    "sidebar too narrow",
			mutate:  func(c *Config) { c.UI.SidebarWidth = 4 },
			field:   "ui.sidebar_width",
			wantErr: true,
		},
		{
			name:   "instant sidebar",
			mutate: func(c *Config) { c.UI.SidebarAnimMs = 0 },
		},
		{
			name:    "blink too fast",
			mutate:  func(c *Config) { c.UI.CursorBlinkMs = 10 },
			field:   "ui.cursor_blink_ms",
			wantErr: true,
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Log.Level = "chatty" },
			field:   "log.level",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidateErrors, got %T", err)
			}
			if verrs[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", verrs[0].Field, tt.field)
			}
		})
	}
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("ui.code_style", "monokai"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, err := cfg.Get("ui.code_style")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if val != "monokai" {
		t.Errorf("Get = %v, want monokai", val)
	}

	if err := cfg.Set("playback.max-delay-ms", "40"); err != nil {
		t.Fatalf("Set int failed: %v", err)
	}
	if cfg.Playback.MaxDelayMs != 40 {
		t.Errorf("MaxDelayMs = %d, want 40", cfg.Playback.MaxDelayMs)
	}

	if err := cfg.Set("playback.seed", "42"); err != nil {
		t.Fatalf("Set uint failed: %v", err)
	}
	if cfg.Playback.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Playback.Seed)
	}

	if err := cfg.Set("ui.mouse", "false"); err != nil {
		t.Fatalf("Set bool failed: %v", err)
	}
	if cfg.UI.Mouse {
		t.Error("Mouse should be false")
	}

	if err := cfg.Set("ui.sidebar_width", "wide"); err == nil {
		t.Error("expected error for non-integer value")
	}
	if _, err := cfg.Get("ui.nope"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := cfg.Get("ui.mouse.deeper"); err == nil {
		t.Error("expected error for key below a leaf")
	}
	if _, err := cfg.Get(""); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestConfig_Keys(t *testing.T) {
	cfg := Default()
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("Keys returned nothing")
	}
	for _, k := range keys {
		if _, err := cfg.Get(k); err != nil {
			t.Errorf("Get(%q) failed: %v", k, err)
		}
	}
}

func TestConfig_Clone(t *testing.T) {
	orig := Default()
	clone := orig.Clone()
	clone.UI.CodeStyle = "dracula"
	if orig.UI.CodeStyle != "onedark" {
		t.Error("modifying clone changed the original")
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FRACTION_SCRIPT", "/tmp/chat.yaml")
	t.Setenv("FRACTION_MIN_DELAY_MS", "5")
	t.Setenv("FRACTION_MAX_DELAY_MS", "not-a-number")
	t.Setenv("FRACTION_CODE_STYLE", "github")
	t.Setenv("FRACTION_NO_MOUSE", "true")
	t.Setenv("FRACTION_LOG_LEVEL", "debug")
	t.Setenv("FRACTION_LOG_FILE", "/tmp/fraction.log")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Playback.Script != "/tmp/chat.yaml" {
		t.Errorf("Script = %q", cfg.Playback.Script)
	}
	if cfg.Playback.MinDelayMs != 5 {
		t.Errorf("MinDelayMs = %d, want 5", cfg.Playback.MinDelayMs)
	}
	if cfg.Playback.MaxDelayMs != 25 {
		t.Errorf("unparseable override should be ignored, MaxDelayMs = %d", cfg.Playback.MaxDelayMs)
	}
	if cfg.UI.CodeStyle != "github" {
		t.Errorf("CodeStyle = %q", cfg.UI.CodeStyle)
	}
	if cfg.UI.Mouse {
		t.Error("FRACTION_NO_MOUSE should disable mouse")
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/tmp/fraction.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestConfig_SaveAndLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := Default()
	cfg.Playback.MaxDelayMs = 50
	cfg.UI.CodeStyle = "dracula"
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("perm = %o, want 600", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.Playback.MaxDelayMs != 50 || loaded.UI.CodeStyle != "dracula" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestConfig_LoadJSONPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"playback": {"min_delay_ms": 1, "max_delay_ms": 2}, "ui": {"title": ""}}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Playback.MinDelayMs != 1 || cfg.Playback.MaxDelayMs != 2 {
		t.Errorf("Playback = %+v", cfg.Playback)
	}
	if cfg.UI.Title != "fraction-ai-terminal" {
		t.Errorf("empty title should fall back to default, got %q", cfg.UI.Title)
	}
	if cfg.UI.CodeLanguage != "javascript" {
		t.Errorf("missing keys should keep defaults, got %q", cfg.UI.CodeLanguage)
	}
}

func TestConfig_SaveToPathJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := Default()
	cfg.UI.Title = "json demo"
	if err := SaveToPath(cfg, path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "{") {
		t.Errorf("expected JSON, got:\n%s", data)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.UI.Title != "json demo" {
		t.Errorf("Title = %q, want %q", loaded.UI.Title, "json demo")
	}
}

func TestConfig_LoadFileOnlyIgnoresEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveTOML(Default(), path); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FRACTION_LOG_FILE", "/tmp/session.log")
	t.Setenv("FRACTION_CODE_STYLE", "github")

	cfg, err := LoadFileOnly(path)
	if err != nil {
		t.Fatalf("LoadFileOnly failed: %v", err)
	}
	if cfg.Log.File != "" {
		t.Errorf("Log.File = %q, want empty", cfg.Log.File)
	}
	if cfg.UI.CodeStyle != "onedark" {
		t.Errorf("CodeStyle = %q, want onedark", cfg.UI.CodeStyle)
	}

	full, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if full.Log.File != "/tmp/session.log" {
		t.Errorf("LoadFromPath should apply env, Log.File = %q", full.Log.File)
	}
}

func TestConfig_LoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[playback]\nmin_delay_ms = 30\nmax_delay_ms = 5\n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "playback.max_delay_ms") {
		t.Fatalf("expected max_delay_ms validation error, got %v", err)
	}
}

func TestConfig_LoadFromHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FRACTION_HOME", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no files failed: %v", err)
	}
	if cfg.UI.CodeStyle != "onedark" {
		t.Errorf("expected defaults, got %q", cfg.UI.CodeStyle)
	}

	cfg.UI.Title = "demo"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	reloaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if reloaded.UI.Title != "demo" {
		t.Errorf("Title = %q, want demo", reloaded.UI.Title)
	}

	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [toml"), 0600); err != nil {
		t.Fatal(err)
	}
	fallback, err := Load()
	if err == nil {
		t.Error("expected decode error for broken file")
	}
	if fallback == nil || fallback.UI.Title != "fraction-ai-terminal" {
		t.Error("broken file should fall back to defaults")
	}
}
