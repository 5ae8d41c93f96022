// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the fraction TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// =============================================================================
// SPEAKER COLORS
// =============================================================================

// AgentBlue - Speaker label for "AI Agent 1"
var AgentBlue = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// AgentPurple - Speaker label for "AI Agent 2"
var AgentPurple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// =============================================================================
// ACCENT COLORS
// =============================================================================

// Cyan - Brand color, header glyph
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - In-progress code and the typing cursor
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Amber - Inline code spans
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Rose - Errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// Surface - Main background, stands in for the page background image
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}

// SurfaceDim - Header, sidebar and status bar background
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// CodeSurface - Background of code blocks
var CodeSurface = lipgloss.AdaptiveColor{Light: "#F0F0F4", Dark: "#282C34"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, sidebar entries
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints and help text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// OPACITY
// =============================================================================

// Pick resolves an adaptive color for the given background.
func Pick(c lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return c.Dark
	}
	return c.Light
}

// Fade blends fg toward bg by opacity (1 = fg, 0 = bg) in Lab space and
// returns the resulting hex color. Unparseable inputs return fg unchanged.
func Fade(fg, bg string, opacity float64) lipgloss.Color {
	if opacity >= 1 {
		return lipgloss.Color(fg)
	}
	if opacity < 0 {
		opacity = 0
	}
	from, err := colorful.Hex(bg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	to, err := colorful.Hex(fg)
	if err != nil {
		return lipgloss.Color(fg)
	}
	return lipgloss.Color(from.BlendLab(to, opacity).Clamped().Hex())
}

// FadeAdaptive is Fade for adaptive colors on the current background.
func FadeAdaptive(fg, bg lipgloss.AdaptiveColor, opacity float64, dark bool) lipgloss.Color {
	return Fade(Pick(fg, dark), Pick(bg, dark), opacity)
}
