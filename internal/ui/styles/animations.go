// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"time"
)

// =============================================================================
// TRANSITION EFFECTS
// =============================================================================

// FrameInterval is the tick period of sidebar and scroll animations.
const FrameInterval = 16 * time.Millisecond

// TransitionConfig defines a transition animation.
type TransitionConfig struct {
	Duration time.Duration
	Easing   EasingFunc
}

// EasingFunc is a function that maps progress (0-1) to output (0-1).
type EasingFunc func(t float64) float64

// EaseLinear - constant speed
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad - decelerating to zero
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutQuad - acceleration until halfway, then deceleration
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseOutCubic - decelerating to zero (smoother)
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// Apply returns the eased progress after elapsed time, clamped to [0, 1].
// A zero duration completes immediately.
func (c TransitionConfig) Apply(elapsed time.Duration) float64 {
	if c.Duration <= 0 || elapsed >= c.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	easing := c.Easing
	if easing == nil {
		easing = EaseLinear
	}
	return clamp01(easing(float64(elapsed) / float64(c.Duration)))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Default transitions
var (
	// SidebarTransition matches the 300ms ease-in-out of the sidebar width and opacity.
	SidebarTransition = TransitionConfig{
		Duration: 300 * time.Millisecond,
		Easing:   EaseInOutQuad,
	}
	// ScrollTransition eases the transcript toward the bottom.
	ScrollTransition = TransitionConfig{
		Duration: 120 * time.Millisecond,
		Easing:   EaseOutCubic,
	}
)

// =============================================================================
// TYPING ANIMATION
// =============================================================================

// TypingCursor characters for blinking cursor
var TypingCursor = []string{"_", " "}

// CursorBlinkRate is the rate at which the cursor blinks
var CursorBlinkRate = 530 * time.Millisecond

// CursorFrame returns the cursor glyph for the blink state.
func CursorFrame(visible bool) string {
	if visible {
		return TypingCursor[0]
	}
	return TypingCursor[1]
}

// =============================================================================
// GLYPHS
// =============================================================================

// Glyphs used by the header and sidebar (ASCII-safe).
var Glyphs = struct {
	Terminal string
	Close    string
	Chat     string
}{
	Terminal: ">_",
	Close:    "<",
	Chat:     "#",
}
