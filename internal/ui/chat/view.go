// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders header, sidebar, transcript and footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	body := m.viewport.View()
	if sidebar := m.sidebar.View(m.viewport.Height); sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		body,
		m.footerView(),
	)
}

func (m Model) footerHeight() int {
	return lipgloss.Height(m.footerView())
}

// footerView renders playback progress, the status message and key help.
func (m Model) footerView() string {
	snap := m.engine.Snapshot()
	progress := fmt.Sprintf("%d/%d", snap.Index, snap.Total)
	if snap.Done() {
		progress = "done"
	}

	left := m.theme.ShortcutKey.Render(progress)
	if m.status != "" {
		style := m.theme.ShortcutDesc
		if m.statusErr {
			style = m.theme.ErrorStyle
		}
		left += "  " + style.Render(m.status)
	}

	width := max(m.width, 1)
	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.theme.StatusBar.Width(width).Render(left),
			m.help.View(m.keys),
		)
	}

	room := width - m.theme.StatusBar.GetHorizontalFrameSize() - lipgloss.Width(left) - 2
	if room > 0 {
		h := m.help
		h.Width = room
		left += "  " + h.View(m.keys)
	}
	return m.theme.StatusBar.Width(width).MaxWidth(width).Render(left)
}
