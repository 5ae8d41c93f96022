// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// UNICODE: "one character" for reveal purposes is one grapheme cluster, so
// combining marks and emoji sequences never show up half-drawn.

// NextGrapheme returns the byte length of the grapheme cluster that starts at
// offset in s. Returns 0 when offset is at or past the end of s.
func NextGrapheme(s string, offset int) int {
	if offset < 0 || offset >= len(s) {
		return 0
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[offset:], -1)
	return len(cluster)
}

// GraphemeCount returns the number of user-perceived characters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// TruncateWidth truncates s to at most maxWidth terminal columns, appending
// an ellipsis when something was cut and there is room for it.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// StringWidth returns the display width of s in terminal columns.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads s with spaces up to width columns.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
