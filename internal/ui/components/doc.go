// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI components of the fraction TUI.

Components are plain structs with a View or Render method; they never start
timers themselves. The terminal model owns scheduling and feeds them time.

# Components

Header (header.go) - Title bar with the ">_" glyph that toggles the sidebar.
Sidebar (sidebar.go) - Static chat list whose width and opacity animate.
Transcript (transcript.go) - Projection of a playback.Snapshot.
CodeBlock (codeblock.go) - Chroma-highlighted committed code.

# Usage

	theme := styles.NewTheme("auto")
	hl := components.NewHighlighter("javascript", "onedark")
	view := components.NewTranscript(theme, hl).Render(engine.Snapshot(), 80, true)
*/
package components
