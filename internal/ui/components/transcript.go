// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/fraction-tui/internal/playback"
	"github.com/jeranaias/fraction-tui/internal/ui/styles"
)

// =============================================================================
// TRANSCRIPT RENDERER - Pure projection of a playback snapshot
// =============================================================================

// Transcript renders committed entries followed by the in-progress turn.
// It holds no playback state of its own.
type Transcript struct {
	theme       *styles.Theme
	highlighter *Highlighter
}

// NewTranscript creates a renderer using a fixed highlighter.
func NewTranscript(theme *styles.Theme, highlighter *Highlighter) *Transcript {
	return &Transcript{theme: theme, highlighter: highlighter}
}

// Render draws the snapshot at the given width. cursorVisible selects the
// blink frame of the trailing cursor.
func (t *Transcript) Render(snap playback.Snapshot, width int, cursorVisible bool) string {
	if width < 1 {
		width = 1
	}

	blocks := make([]string, 0, len(snap.Transcript)+1)
	for _, entry := range snap.Transcript {
		blocks = append(blocks, t.renderEntry(entry, width))
	}
	if snap.Active != nil {
		blocks = append(blocks, t.renderActive(*snap.Active, width, cursorVisible))
	}

	return strings.Join(blocks, "\n\n")
}

func (t *Transcript) renderEntry(entry playback.Entry, width int) string {
	var sb strings.Builder
	sb.WriteString(t.line(entry.Speaker, t.inline(entry.Message), width))
	if entry.HasCode() {
		cb := NewCodeBlock(t.theme, t.highlighter, entry.Code)
		cb.SetMaxWidth(width)
		sb.WriteString("\n")
		sb.WriteString(cb.Render())
	}
	return sb.String()
}

func (t *Transcript) renderActive(active playback.ActiveTurn, width int, cursorVisible bool) string {
	cursor := t.theme.Cursor.Render(styles.CursorFrame(cursorVisible))

	if !active.CodeShown {
		return t.line(active.Speaker, t.inline(active.Prefix)+cursor, width)
	}

	var sb strings.Builder
	sb.WriteString(t.line(active.Speaker, t.inline(active.Prefix), width))
	sb.WriteString("\n")
	sb.WriteString(RenderPendingCode(t.theme, active.Code, width))
	sb.WriteString("\n")
	sb.WriteString(cursor)
	return sb.String()
}

// line renders "Speaker: body" wrapped to width. body is already styled.
func (t *Transcript) line(speaker, body string, width int) string {
	label := t.theme.SpeakerStyle(speaker).Render(speaker + ":")
	return lipgloss.NewStyle().Width(width).Render(label + " " + body)
}

// inline styles a message body. Typing prefixes and committed messages go
// through the same path so a line keeps its wrapping when it commits.
func (t *Transcript) inline(text string) string {
	return ParseInlineCode(text, t.theme.Message, t.theme.InlineCode)
}
