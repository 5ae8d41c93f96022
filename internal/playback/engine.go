// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package playback

import (
	"github.com/google/uuid"

	"github.com/jeranaias/fraction-tui/internal/script"
	"github.com/jeranaias/fraction-tui/internal/util"
)

// =============================================================================
// PHASES
// =============================================================================

// Phase is the engine's position in the per-turn state machine.
type Phase int

const (
	PhaseTyping        Phase = iota // Revealing the message one grapheme at a time
	PhaseRevealingCode              // Message complete, code block pending
	PhaseCommitting                 // Turn complete, waiting to be committed
	PhaseDone                       // All turns committed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhaseRevealingCode:
		return "revealing-code"
	case PhaseCommitting:
		return "committing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// =============================================================================
// TYPES
// =============================================================================

// Cursor is the engine's position within the active turn.
type Cursor struct {
	Index     int  // Turn index into the script
	Revealed  int  // Byte length of the revealed message prefix
	CodeShown bool // Whether the code block has been revealed
}

// Entry is a turn that finished playback.
type Entry struct {
	ID    string
	Index int
	script.Turn
}

// ChangeKind identifies what a step did.
type ChangeKind int

const (
	ChangeChar   ChangeKind = iota // One grapheme appended to the prefix
	ChangeCode                     // Code block revealed
	ChangeCommit                   // Turn committed and cursor advanced
)

// Change describes the mutation performed by one step.
type Change struct {
	Kind  ChangeKind
	Index int    // Turn index the change applied to
	Entry *Entry // Set for ChangeCommit
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDFunc overrides how transcript entry IDs are generated.
func WithIDFunc(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine replays a script. It is not safe for concurrent use; the UI loop
// (or a Runner) is its only caller.
type Engine struct {
	script     *script.Script
	cursor     Cursor
	phase      Phase
	transcript []Entry
	generation uint64
	stopped    bool
	newID      func() string
}

// New creates an engine positioned before the first turn of s.
func New(s *script.Script, opts ...Option) *Engine {
	e := &Engine{
		script: s,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.settle()
	return e
}

// Step performs one atomic transition. It returns false, with no mutation,
// once playback is done or the engine has been stopped.
func (e *Engine) Step() (Change, bool) {
	if e.stopped || e.phase == PhaseDone {
		return Change{}, false
	}

	turn, _ := e.script.Turn(e.cursor.Index)
	change := Change{Index: e.cursor.Index}

	switch e.phase {
	case PhaseTyping:
		e.cursor.Revealed += util.NextGrapheme(turn.Message, e.cursor.Revealed)
		change.Kind = ChangeChar

	case PhaseRevealingCode:
		e.cursor.CodeShown = true
		change.Kind = ChangeCode

	case PhaseCommitting:
		e.transcript = append(e.transcript, Entry{
			ID:    e.newID(),
			Index: e.cursor.Index,
			Turn:  turn,
		})
		entry := e.transcript[len(e.transcript)-1]
		change.Kind = ChangeCommit
		change.Entry = &entry
		e.cursor = Cursor{Index: e.cursor.Index + 1}
	}

	e.generation++
	e.settle()
	return change, true
}

// Fire is Step guarded by a generation check. A timer scheduled when the
// engine was at generation gen only takes effect if nothing has changed
// since; otherwise the fire is stale and ignored.
func (e *Engine) Fire(gen uint64) (Change, bool) {
	if gen != e.generation {
		return Change{}, false
	}
	return e.Step()
}

// settle derives the phase from the cursor.
func (e *Engine) settle() {
	turn, ok := e.script.Turn(e.cursor.Index)
	switch {
	case !ok:
		e.phase = PhaseDone
	case e.cursor.Revealed < len(turn.Message):
		e.phase = PhaseTyping
	case turn.HasCode() && !e.cursor.CodeShown:
		e.phase = PhaseRevealingCode
	default:
		e.phase = PhaseCommitting
	}
}

// Stop disposes the engine. Pending and future fires become no-ops.
func (e *Engine) Stop() {
	e.stopped = true
	e.generation++
}

// Stopped reports whether Stop has been called.
func (e *Engine) Stopped() bool {
	return e.stopped
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Done reports whether every turn has been committed.
func (e *Engine) Done() bool {
	return e.phase == PhaseDone
}

// Generation returns the mutation counter used to invalidate stale timers.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// Cursor returns the current cursor.
func (e *Engine) Cursor() Cursor {
	return e.cursor
}

// Len returns the number of turns in the script.
func (e *Engine) Len() int {
	return e.script.Len()
}

// Transcript returns a copy of the committed entries.
func (e *Engine) Transcript() []Entry {
	out := make([]Entry, len(e.transcript))
	copy(out, e.transcript)
	return out
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// ActiveTurn is the partially revealed turn currently being played.
type ActiveTurn struct {
	Index     int
	Speaker   string
	Message   string // Full message
	Prefix    string // Revealed part of Message
	Code      string // Full code, shown only when CodeShown
	CodeShown bool
}

// Snapshot is a read-only projection of the engine for rendering.
type Snapshot struct {
	Phase      Phase
	Index      int
	Total      int
	Generation uint64
	Transcript []Entry
	Active     *ActiveTurn // nil once playback is done
}

// Done reports whether the snapshot was taken after playback finished.
func (s Snapshot) Done() bool {
	return s.Phase == PhaseDone
}

// Snapshot copies the state needed to render the transcript.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:      e.phase,
		Index:      e.cursor.Index,
		Total:      e.script.Len(),
		Generation: e.generation,
		Transcript: e.Transcript(),
	}
	if turn, ok := e.script.Turn(e.cursor.Index); ok {
		snap.Active = &ActiveTurn{
			Index:     e.cursor.Index,
			Speaker:   turn.Speaker,
			Message:   turn.Message,
			Prefix:    turn.Message[:e.cursor.Revealed],
			Code:      turn.Code,
			CodeShown: e.cursor.CodeShown,
		}
	}
	return snap
}
