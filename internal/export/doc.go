// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders scripts and played transcripts as documents.
//
// Supported formats:
//   - Markdown (.md): speaker lines with fenced code blocks
//   - JSON (.json): "turns"/"chats" document, loadable as a script
//   - Plain (.txt): the terminal layout without styling
//   - HTML (.html): standalone page with chroma-highlighted code
//
// Usage:
//
//	doc := export.FromScript(script.Default(), "Closures")
//	exporter, err := export.ForFormat("markdown", export.DefaultOptions())
//	path, err := export.ExportToFile(doc, exporter, "closures.md")
package export
