// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the Bubble Tea playback view.

The model owns one playback.Engine and never mutates playback state outside
of Engine.Fire. Every scheduled step carries the engine epoch and generation
it was scheduled for:

	TypeTickMsg{Epoch, Generation} -> Engine.Fire -> refresh -> next tick

Ticks from an earlier generation or a replaced engine are dropped, so a
reload or quit never races a pending timer. Sidebar and scroll animations
carry their own generations in the same way.

# Key Bindings

	tab / ctrl+b   toggle the chat sidebar
	esc            close the sidebar
	y              copy the last committed code block
	?              toggle full help
	q / ctrl+c     quit
*/
package chat
