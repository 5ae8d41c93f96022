// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the fraction TUI.

# Color System (colors.go)

All colors are Lip Gloss AdaptiveColor values so the palette follows the
terminal background:

	AgentBlue    - "AI Agent 1" label
	AgentPurple  - "AI Agent 2" label
	Emerald      - code being revealed, typing cursor
	SurfaceDim   - header, sidebar, status bar
	CodeSurface  - code block background

Fade blends a foreground toward the background with go-colorful, which is
how the sidebar renders its opacity transition.

# Theme System (theme.go)

	theme := styles.NewTheme("auto")
	label := theme.SpeakerStyle(turn.Speaker).Render(turn.Speaker + ":")

# Animations (animations.go)

	progress := styles.SidebarTransition.Apply(time.Since(start))
	cursor := styles.CursorFrame(visible)
*/
package styles
