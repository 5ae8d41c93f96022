// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Well-known speaker labels that receive a dedicated color.
const (
	SpeakerAgentOne = "AI Agent 1"
	SpeakerAgentTwo = "AI Agent 2"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App        lipgloss.Style
	Transcript lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderGlyph lipgloss.Style
	HeaderTitle lipgloss.Style

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	SpeakerAgentOne lipgloss.Style
	SpeakerAgentTwo lipgloss.Style
	SpeakerDefault  lipgloss.Style
	Message         lipgloss.Style
	InlineCode      lipgloss.Style
	Cursor          lipgloss.Style

	// ==========================================================================
	// CODE BLOCK STYLES
	// ==========================================================================

	CodeBlock     lipgloss.Style
	CodePending   lipgloss.Style
	CodeLangBadge lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar      lipgloss.Style
	SidebarTitle lipgloss.Style
	SidebarItem  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	ErrorStyle   lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. mode is "dark",
// "light" or "auto"; auto asks the terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Transcript = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.HeaderGlyph = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	// Messages
	t.SpeakerAgentOne = lipgloss.NewStyle().
		Bold(true).
		Foreground(AgentBlue)

	t.SpeakerAgentTwo = lipgloss.NewStyle().
		Bold(true).
		Foreground(AgentPurple)

	t.SpeakerDefault = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.Message = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.InlineCode = lipgloss.NewStyle().
		Foreground(Amber).
		Background(CodeSurface)

	t.Cursor = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// Code blocks
	t.CodeBlock = lipgloss.NewStyle().
		Background(CodeSurface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		MarginTop(1)

	t.CodePending = lipgloss.NewStyle().
		Foreground(Emerald).
		Background(CodeSurface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1).
		MarginTop(1)

	t.CodeLangBadge = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Sidebar
	t.Sidebar = lipgloss.NewStyle().
		Background(SurfaceDim).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay)

	t.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextMuted).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
}

// SpeakerStyle returns the label style for a speaker. Unknown speakers get
// the default treatment.
func (t *Theme) SpeakerStyle(speaker string) lipgloss.Style {
	switch speaker {
	case SpeakerAgentOne:
		return t.SpeakerAgentOne
	case SpeakerAgentTwo:
		return t.SpeakerAgentTwo
	default:
		return t.SpeakerDefault
	}
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
