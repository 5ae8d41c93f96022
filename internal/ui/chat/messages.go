// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/jeranaias/fraction-tui/internal/script"
)

// =============================================================================
// PLAYBACK MESSAGES
// =============================================================================

// TypeTickMsg fires a scheduled engine step. Epoch identifies the engine
// (bumped on reload) and Generation the engine state it was scheduled for.
type TypeTickMsg struct {
	Epoch      uint64
	Generation uint64
}

// ScriptReloadedMsg carries a script re-read from disk.
type ScriptReloadedMsg struct {
	Script *script.Script
	Err    error
}

// =============================================================================
// ANIMATION MESSAGES
// =============================================================================

// SidebarTickMsg advances the sidebar animation.
type SidebarTickMsg struct {
	Generation uint64
	Time       time.Time
}

// ScrollTickMsg advances the smooth scroll animation.
type ScrollTickMsg struct {
	Generation uint64
	Time       time.Time
}

// BlinkMsg toggles the typing cursor.
type BlinkMsg struct{}

// =============================================================================
// COPY MESSAGES
// =============================================================================

// CopyResultMsg reports the outcome of a clipboard copy.
type CopyResultMsg struct {
	Lines int
	Err   error
}
