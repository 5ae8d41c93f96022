// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package script holds the fixed conversation that fraction plays back.
//
// A Script is an ordered, immutable list of Turns (speaker plus message
// and/or code) together with the decorative chat labels shown in the
// sidebar. Scripts are validated once at construction; everything
// downstream may assume every turn carries a speaker and at least one of
// message or code.
//
// # Sources
//
//   - Default: the built-in closures conversation
//   - LoadFile: YAML, JSON or TOML files, selected by extension
//   - Watcher: fsnotify based reload of a script file
package script
