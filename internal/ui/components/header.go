// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/fraction-tui/internal/ui/styles"
	"github.com/jeranaias/fraction-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Title bar with the sidebar toggle glyph
// =============================================================================

// headerPadLeft matches the left padding of the theme's Header style.
const headerPadLeft = 1

// HeaderHeight is the number of rows the header occupies (title + border).
const HeaderHeight = 2

// Header renders the title bar. The terminal glyph on its left toggles the
// sidebar.
type Header struct {
	Title string
	Width int
	theme *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme, title string) *Header {
	return &Header{
		Title: title,
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// GlyphHit reports whether a click at (x, y) landed on the toggle glyph.
func (h *Header) GlyphHit(x, y int) bool {
	start := headerPadLeft
	end := start + lipgloss.Width(styles.Glyphs.Terminal)
	return y == 0 && x >= start && x < end
}

// View renders the header.
func (h *Header) View() string {
	glyph := h.theme.HeaderGlyph.Render(styles.Glyphs.Terminal)
	room := h.Width - headerPadLeft*2 - lipgloss.Width(styles.Glyphs.Terminal) - 1
	title := ""
	if room > 0 {
		title = h.theme.HeaderTitle.Render(util.TruncateWidth(h.Title, room))
	}

	width := h.Width
	if width < 1 {
		width = 1
	}
	return h.theme.Header.Width(width).Render(glyph + " " + title)
}
