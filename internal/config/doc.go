// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for fraction.
//
// # Key Types
//
//   - Config: main configuration structure
//   - PlaybackConfig: typing delays, script source, reload
//   - UIConfig: code highlighting, sidebar and cursor animation
//   - LogConfig: structured log destination and level
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the cli package)
//   - Environment variables (FRACTION_*)
//   - ~/.fraction/config.toml
//   - ~/.fraction/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
//	}
//	pacer := playback.NewPacer(cfg.MinDelay(), cfg.MaxDelay(), cfg.Playback.Seed)
package config
