// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package playback replays a script as a typing animation.

# State Machine

The Engine owns all playback state and moves through four phases:

	Typing ──(message fully revealed)──▶ RevealingCode ──▶ Committing ──▶ next turn
	   │                                                      ▲
	   └────────────(no code on this turn)────────────────────┘

	last turn committed ──▶ Done (terminal)

Step is the only transition function. Each call performs exactly one atomic
mutation: reveal one grapheme of the message, reveal the whole code block,
or commit the turn to the transcript and advance. Once Done, Step is a no-op
forever.

# Timer Discipline

Every mutation bumps the engine's generation. A timer scheduled for
generation g calls Fire(g); if anything has moved the engine since, the fire
is stale and nothing happens. Stop disposes the engine so late timers cannot
mutate it either.

# Pacing

Pacer decides how long to wait before the next step. Only Typing steps are
delayed (uniformly random within a configured range); code reveals and
commits happen immediately. Runner drives an engine with a real timer for
non-interactive output.
*/
package playback
