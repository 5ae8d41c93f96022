// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/fraction-tui/internal/playback"
	"github.com/jeranaias/fraction-tui/internal/ui/styles"
)

// =============================================================================
// PLAYBACK TICKS
// =============================================================================

// stepCmd schedules the next engine step from the current state. Nothing is
// scheduled once the engine is done or stopped.
func (m Model) stepCmd() tea.Cmd {
	if m.engine.Done() || m.engine.Stopped() {
		return nil
	}
	tick := TypeTickMsg{Epoch: m.epoch, Generation: m.engine.Generation()}
	delay := m.pacer.Delay(m.engine.Phase())
	if delay <= 0 {
		return func() tea.Msg { return tick }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return tick })
}

func (m Model) handleTypeTick(msg TypeTickMsg) (tea.Model, tea.Cmd) {
	if msg.Epoch != m.epoch {
		return m, nil
	}
	change, ok := m.engine.Fire(msg.Generation)
	if !ok {
		return m, nil
	}

	if change.Kind == playback.ChangeCommit {
		m.logger.Debug("turn committed", "index", change.Index, "id", change.Entry.ID, "speaker", change.Entry.Speaker)
	}
	if m.engine.Done() {
		m.logger.Info("playback finished", "turns", m.engine.Len())
	}

	m.refresh()
	scroll := m.followBottom()
	return m, tea.Batch(m.stepCmd(), scroll)
}

// =============================================================================
// SMOOTH SCROLL
// =============================================================================

func (m Model) maxYOffset() int {
	return max(0, m.viewport.TotalLineCount()-m.viewport.Height)
}

// followBottom scrolls the transcript to its end, eased when smooth
// scrolling is enabled.
func (m *Model) followBottom() tea.Cmd {
	if !m.ready {
		return nil
	}
	target := m.maxYOffset()
	if !m.cfg.UI.SmoothScroll {
		m.viewport.GotoBottom()
		return nil
	}
	if target == m.viewport.YOffset {
		return nil
	}
	if m.scroll.active && m.scroll.to == target {
		return nil
	}

	m.scroll = scrollState{
		generation: m.scroll.generation + 1,
		active:     true,
		from:       m.viewport.YOffset,
		to:         target,
		start:      m.now(),
	}
	return scrollTickCmd(m.scroll.generation)
}

func (m Model) handleScrollTick(msg ScrollTickMsg) (tea.Model, tea.Cmd) {
	if !m.scroll.active || msg.Generation != m.scroll.generation {
		return m, nil
	}
	p := styles.ScrollTransition.Apply(msg.Time.Sub(m.scroll.start))
	offset := m.scroll.from + int(math.Round(float64(m.scroll.to-m.scroll.from)*p))
	m.viewport.SetYOffset(offset)
	if p >= 1 {
		m.scroll.active = false
		return m, nil
	}
	return m, scrollTickCmd(msg.Generation)
}

// =============================================================================
// CURSOR BLINK
// =============================================================================

func (m Model) blinkCmd() tea.Cmd {
	return tea.Tick(m.cfg.CursorBlink(), func(time.Time) tea.Msg { return BlinkMsg{} })
}

func (m Model) handleBlink() (tea.Model, tea.Cmd) {
	if m.engine.Done() || m.engine.Stopped() {
		m.blinking = false
		return m, nil
	}
	m.cursorVisible = !m.cursorVisible
	m.refresh()
	return m, m.blinkCmd()
}

// =============================================================================
// SCRIPT RELOAD
// =============================================================================

// handleReload replaces the engine with one for the new script. The old
// engine is stopped and its pending ticks belong to a previous epoch.
func (m Model) handleReload(msg ScriptReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn("script reload failed", "error", msg.Err)
		m.setStatus("reload failed: "+msg.Err.Error(), true)
		return m, nil
	}

	m.engine.Stop()
	m.epoch++
	m.engine = playback.New(msg.Script)
	m.sidebar.SetChats(msg.Script.Chats())
	m.cursorVisible = true
	m.scroll.active = false
	m.setStatus(fmt.Sprintf("script reloaded (%d turns)", msg.Script.Len()), false)
	m.logger.Info("script reloaded", "turns", msg.Script.Len(), "epoch", m.epoch)

	m.refresh()
	m.viewport.GotoTop()

	cmds := []tea.Cmd{m.stepCmd()}
	if !m.blinking && !m.engine.Done() {
		m.blinking = true
		cmds = append(cmds, m.blinkCmd())
	}
	return m, tea.Batch(cmds...)
}

// =============================================================================
// COMMAND HELPERS
// =============================================================================

func sidebarTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(styles.FrameInterval, func(t time.Time) tea.Msg {
		return SidebarTickMsg{Generation: gen, Time: t}
	})
}

func scrollTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(styles.FrameInterval, func(t time.Time) tea.Msg {
		return ScrollTickMsg{Generation: gen, Time: t}
	})
}

func copyCmd(write func(string) error, code string) tea.Cmd {
	return func() tea.Msg {
		return CopyResultMsg{
			Lines: strings.Count(code, "\n") + 1,
			Err:   write(code),
		}
	}
}

func formatCopied(lines int) string {
	if lines == 1 {
		return "copied 1 line"
	}
	return fmt.Sprintf("copied %d lines", lines)
}
