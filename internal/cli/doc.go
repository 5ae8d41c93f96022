// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the fraction command line.
//
// Usage:
//
//	fraction                          Play the conversation in the TUI
//	fraction print [--format F]       Write the conversation to stdout
//	fraction print --animate          Play it as plain text
//	fraction script validate PATH     Check a script file
//	fraction script export [PATH]     Convert a script (yaml, json, toml,
//	                                  markdown, html, plain)
//	fraction config show|init|path    Inspect the config file
//	fraction config get|set KEY       Read or change one setting
//	fraction version                  Print version information
//
// Global flags: --config, --script, --seed, --min-delay, --max-delay,
// --log-file, --log-level. The TUI also takes --no-mouse and --watch.
//
// Every command returns its error; Execute prints it once and maps it to
// an exit code with GetExitCode.
package cli
