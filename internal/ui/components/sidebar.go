// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/fraction-tui/internal/script"
	"github.com/jeranaias/fraction-tui/internal/ui/styles"
	"github.com/jeranaias/fraction-tui/internal/util"
)

// =============================================================================
// SIDEBAR COMPONENT - Static chat list with animated open/close
// =============================================================================

// sidebarTitle is the heading shown above the chat list.
const sidebarTitle = "Chats"

// Sidebar owns only its visibility and animation progress. Entries are
// inert.
//
// Progress runs linearly from 0 (closed) to 1 (open); the eased value drives
// both the rendered width and the opacity. Every toggle bumps the generation
// so ticks scheduled for an earlier animation are ignored.
type Sidebar struct {
	chats      []script.Chat
	openWidth  int
	transition styles.TransitionConfig
	theme      *styles.Theme

	open       bool
	progress   float64
	from       float64
	start      time.Time
	animating  bool
	generation uint64
}

// NewSidebar creates a closed sidebar.
func NewSidebar(theme *styles.Theme, chats []script.Chat, openWidth int, duration time.Duration) *Sidebar {
	transition := styles.SidebarTransition
	transition.Duration = duration
	return &Sidebar{
		chats:      append([]script.Chat(nil), chats...),
		openWidth:  openWidth,
		transition: transition,
		theme:      theme,
	}
}

// SetChats replaces the listed chats.
func (s *Sidebar) SetChats(chats []script.Chat) {
	s.chats = append([]script.Chat(nil), chats...)
}

// Open reports the target state: true while open or opening.
func (s *Sidebar) Open() bool {
	return s.open
}

// Animating reports whether an animation is in flight.
func (s *Sidebar) Animating() bool {
	return s.animating
}

// Generation identifies the current animation.
func (s *Sidebar) Generation() uint64 {
	return s.generation
}

// Progress returns the linear animation position in [0, 1].
func (s *Sidebar) Progress() float64 {
	return s.progress
}

// Opacity returns the eased visibility in [0, 1].
func (s *Sidebar) Opacity() float64 {
	return styles.EaseInOutQuad(s.progress)
}

// Width returns the current rendered width in columns.
func (s *Sidebar) Width() int {
	return int(math.Round(s.Opacity() * float64(s.openWidth)))
}

// Toggle flips the target state and starts an animation from the current
// position. Returns true when ticks are needed.
func (s *Sidebar) Toggle(now time.Time) bool {
	return s.setOpen(!s.open, now)
}

// Close forces the target state to closed.
func (s *Sidebar) Close(now time.Time) bool {
	return s.setOpen(false, now)
}

func (s *Sidebar) setOpen(open bool, now time.Time) bool {
	if s.open == open && !s.animating {
		return false
	}
	s.open = open
	s.generation++
	s.from = s.progress
	s.start = now
	s.animating = true
	return s.advance(now)
}

// Tick advances the animation for generation gen. Stale generations are
// ignored. Returns true when another tick is needed.
func (s *Sidebar) Tick(gen uint64, now time.Time) bool {
	if gen != s.generation || !s.animating {
		return false
	}
	return s.advance(now)
}

func (s *Sidebar) advance(now time.Time) bool {
	target := 0.0
	if s.open {
		target = 1
	}
	distance := math.Abs(target - s.from)

	// A reversal mid-way only has the remaining distance to travel.
	elapsed := s.transition.Duration
	if s.transition.Duration > 0 && distance > 0 {
		elapsed = time.Duration(float64(now.Sub(s.start)) / distance)
	}
	step := distance * linear(s.transition, elapsed)

	if s.open {
		s.progress = s.from + step
	} else {
		s.progress = s.from - step
	}

	if step >= distance {
		s.progress = target
		s.animating = false
		return false
	}
	return true
}

func linear(t styles.TransitionConfig, elapsed time.Duration) float64 {
	t.Easing = styles.EaseLinear
	return t.Apply(elapsed)
}

// CloseHit reports whether a click at (x, y), relative to the sidebar's top
// left corner, landed on the close caret.
func (s *Sidebar) CloseHit(x, y int) bool {
	if y != 0 || s.Width()-3-lipgloss.Width(styles.Glyphs.Close)-1 <= 0 {
		return false
	}
	caret := s.Width() - 1 - 1 - lipgloss.Width(styles.Glyphs.Close)
	return x >= caret && x < caret+lipgloss.Width(styles.Glyphs.Close)
}

// View renders the sidebar at its current width and opacity. Returns the
// empty string when fully closed.
func (s *Sidebar) View(height int) string {
	width := s.Width()
	if width <= 0 || height <= 0 {
		return ""
	}

	opacity := s.Opacity()
	dark := s.theme.IsDark
	fg := func(c lipgloss.AdaptiveColor) lipgloss.Color {
		return styles.FadeAdaptive(c, styles.SurfaceDim, opacity, dark)
	}

	// One column for the right border, one for padding either side.
	inner := width - 1 - 2
	if inner <= 0 {
		return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render("")
	}

	var lines []string

	closeGlyph := lipgloss.NewStyle().Foreground(fg(styles.Emerald)).Render(styles.Glyphs.Close)
	titleRoom := inner - lipgloss.Width(styles.Glyphs.Close) - 1
	title := util.PadRight(util.TruncateWidth(sidebarTitle, titleRoom), titleRoom)
	if titleRoom > 0 {
		lines = append(lines, s.theme.SidebarTitle.Foreground(fg(styles.TextPrimary)).Render(title)+" "+closeGlyph)
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(fg(styles.Overlay)).Render(strings.Repeat("-", inner)))

	itemStyle := s.theme.SidebarItem.Foreground(fg(styles.TextSecondary))
	for _, chat := range s.chats {
		label := styles.Glyphs.Chat + " " + chat.Name
		lines = append(lines, itemStyle.Render(util.TruncateWidth(label, inner)))
	}

	content := strings.Join(lines, "\n")
	return s.theme.Sidebar.
		Width(width - 1).
		Height(height).
		MaxHeight(height).
		Padding(0, 1).
		Render(content)
}
