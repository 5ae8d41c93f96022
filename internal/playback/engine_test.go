// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package playback

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/fraction-tui/internal/script"
)

func sequentialIDs() Option {
	n := 0
	return WithIDFunc(func() string {
		n++
		return fmt.Sprintf("entry-%d", n)
	})
}

func newEngine(t *testing.T, turns ...script.Turn) *Engine {
	t.Helper()
	s, err := script.New(turns, nil)
	require.NoError(t, err)
	return New(s, sequentialIDs())
}

// runToEnd steps until done and returns every snapshot observed along the way.
func runToEnd(t *testing.T, e *Engine) []Snapshot {
	t.Helper()
	snaps := []Snapshot{e.Snapshot()}
	for i := 0; i < 100000; i++ {
		if _, ok := e.Step(); !ok {
			return snaps
		}
		snaps = append(snaps, e.Snapshot())
	}
	t.Fatal("engine did not terminate")
	return nil
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestEngine_SingleMessage(t *testing.T) {
	e := newEngine(t, script.Turn{Speaker: "A", Message: "hi"})

	runToEnd(t, e)

	snap := e.Snapshot()
	assert.True(t, snap.Done())
	assert.Equal(t, 1, snap.Index)
	assert.Nil(t, snap.Active)
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, "A", snap.Transcript[0].Speaker)
	assert.Equal(t, "hi", snap.Transcript[0].Message)
	assert.Equal(t, "entry-1", snap.Transcript[0].ID)
}

func TestEngine_MessageThenCode(t *testing.T) {
	e := newEngine(t, script.Turn{Speaker: "A", Message: "ab", Code: "x()"})

	type observed struct {
		prefix    string
		codeShown bool
	}
	var states []observed
	var kinds []ChangeKind

	for {
		change, ok := e.Step()
		if !ok {
			break
		}
		kinds = append(kinds, change.Kind)
		if snap := e.Snapshot(); snap.Active != nil {
			states = append(states, observed{snap.Active.Prefix, snap.Active.CodeShown})
		}
	}

	assert.Equal(t, []observed{
		{"a", false},
		{"ab", false},
		{"ab", true},
	}, states)
	assert.Equal(t, []ChangeKind{ChangeChar, ChangeChar, ChangeCode, ChangeCommit}, kinds)

	snap := e.Snapshot()
	assert.Equal(t, 1, snap.Index)
	require.Len(t, snap.Transcript, 1)
	assert.Equal(t, "x()", snap.Transcript[0].Code)
}

func TestEngine_EmptyMessageWithCode(t *testing.T) {
	e := newEngine(t, script.Turn{Speaker: "B", Code: "x()"})

	assert.Equal(t, PhaseRevealingCode, e.Phase())

	change, ok := e.Step()
	require.True(t, ok)
	assert.Equal(t, ChangeCode, change.Kind)
	assert.Equal(t, PhaseCommitting, e.Phase())

	change, ok = e.Step()
	require.True(t, ok)
	assert.Equal(t, ChangeCommit, change.Kind)
	require.NotNil(t, change.Entry)
	assert.Equal(t, "x()", change.Entry.Code)
	assert.Empty(t, change.Entry.Message)
	assert.True(t, e.Done())
}

func TestEngine_EmptyScript(t *testing.T) {
	e := newEngine(t)

	assert.True(t, e.Done())
	_, ok := e.Step()
	assert.False(t, ok)
	assert.Nil(t, e.Snapshot().Active)
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestEngine_CommitsFullContent(t *testing.T) {
	s := script.Default()
	e := New(s)

	runToEnd(t, e)

	transcript := e.Transcript()
	require.Len(t, transcript, s.Len())
	for i, entry := range transcript {
		want, _ := s.Turn(i)
		assert.Equal(t, want, entry.Turn, "turn %d", i)
		assert.Equal(t, i, entry.Index)
		assert.NotEmpty(t, entry.ID)
	}
}

func TestEngine_PrefixMonotonicAndBounded(t *testing.T) {
	e := New(script.Default())

	lastIndex, lastLen := 0, 0
	for _, snap := range runToEnd(t, e) {
		if snap.Active == nil {
			continue
		}
		a := snap.Active
		assert.LessOrEqual(t, len(a.Prefix), len(a.Message))
		assert.True(t, strings.HasPrefix(a.Message, a.Prefix))
		assert.GreaterOrEqual(t, snap.Index, lastIndex)
		if snap.Index == lastIndex {
			assert.GreaterOrEqual(t, len(a.Prefix), lastLen)
		}
		lastIndex, lastLen = snap.Index, len(a.Prefix)
	}
}

func TestEngine_CodeNeverPartial(t *testing.T) {
	e := New(script.Default())

	for _, snap := range runToEnd(t, e) {
		if snap.Active == nil {
			continue
		}
		if snap.Active.CodeShown {
			assert.Equal(t, len(snap.Active.Message), len(snap.Active.Prefix),
				"code shown before message finished")
		}
	}
}

func TestEngine_TerminalIsIdempotent(t *testing.T) {
	e := newEngine(t, script.Turn{Speaker: "A", Message: "hi"})
	runToEnd(t, e)

	before := e.Snapshot()
	for i := 0; i < 50; i++ {
		_, ok := e.Step()
		assert.False(t, ok)
		_, ok = e.Fire(e.Generation())
		assert.False(t, ok)
	}
	assert.Equal(t, before, e.Snapshot())
}

func TestEngine_GraphemeSteps(t *testing.T) {
	e := newEngine(t, script.Turn{Speaker: "A", Message: "é🇳🇿"})

	_, ok := e.Step()
	require.True(t, ok)
	assert.Equal(t, "é", e.Snapshot().Active.Prefix)

	_, ok = e.Step()
	require.True(t, ok)
	assert.Equal(t, "é🇳🇿", e.Snapshot().Active.Prefix)
	assert.Equal(t, PhaseCommitting, e.Phase())
}

// =============================================================================
// TIMER DISCIPLINE
// =============================================================================

func TestEngine_StaleFireIgnored(t *testing.T) {
	e := newEngine(t, script.Turn{Speaker: "A", Message: "abc"})

	stale := e.Generation()
	_, ok := e.Fire(stale)
	require.True(t, ok)

	before := e.Cursor()
	_, ok = e.Fire(stale)
	assert.False(t, ok, "a fire scheduled for an older generation must not mutate")
	assert.Equal(t, before, e.Cursor())

	_, ok = e.Fire(e.Generation())
	assert.True(t, ok)
	assert.Equal(t, 2, e.Cursor().Revealed)
}

func TestEngine_StopPreventsMutation(t *testing.T) {
	e := newEngine(t, script.Turn{Speaker: "A", Message: "abc"})

	gen := e.Generation()
	e.Stop()

	_, ok := e.Fire(gen)
	assert.False(t, ok)
	_, ok = e.Fire(e.Generation())
	assert.False(t, ok)
	_, ok = e.Step()
	assert.False(t, ok)
	assert.Equal(t, Cursor{}, e.Cursor())
	assert.True(t, e.Stopped())
}

func TestEngine_SnapshotIsACopy(t *testing.T) {
	e := newEngine(t, script.Turn{Speaker: "A", Message: "a"}, script.Turn{Speaker: "B", Message: "b"})
	runToEnd(t, e)

	snap := e.Snapshot()
	snap.Transcript[0].Message = "changed"
	assert.Equal(t, "a", e.Transcript()[0].Message)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "typing", PhaseTyping.String())
	assert.Equal(t, "revealing-code", PhaseRevealingCode.String())
	assert.Equal(t, "committing", PhaseCommitting.String())
	assert.Equal(t, "done", PhaseDone.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
