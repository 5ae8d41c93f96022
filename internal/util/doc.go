// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across fraction.
//
// String Utilities:
//   - NextGrapheme, GraphemeCount: grapheme-cluster stepping used by the
//     typing animation
//   - TruncateWidth, StringWidth, PadRight: terminal column aware layout
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
