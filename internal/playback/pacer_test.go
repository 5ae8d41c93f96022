// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/fraction-tui/internal/script"
)

func TestPacer_DelayWithinBounds(t *testing.T) {
	p := NewPacer(10*time.Millisecond, 25*time.Millisecond, 42)

	for i := 0; i < 1000; i++ {
		d := p.Delay(PhaseTyping)
		assert.GreaterOrEqual(t, d, 10*time.Millisecond)
		assert.LessOrEqual(t, d, 25*time.Millisecond)
	}
}

func TestPacer_OnlyTypingIsPaced(t *testing.T) {
	p := DefaultPacer()

	assert.Zero(t, p.Delay(PhaseRevealingCode))
	assert.Zero(t, p.Delay(PhaseCommitting))
	assert.Zero(t, p.Delay(PhaseDone))
}

func TestPacer_SeedIsDeterministic(t *testing.T) {
	a := NewPacer(DefaultMinDelay, DefaultMaxDelay, 7)
	b := NewPacer(DefaultMinDelay, DefaultMaxDelay, 7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Delay(PhaseTyping), b.Delay(PhaseTyping))
	}
}

func TestPacer_NormalisesBounds(t *testing.T) {
	p := NewPacer(30*time.Millisecond, 5*time.Millisecond, 1)
	min, max := p.Bounds()
	assert.Equal(t, 5*time.Millisecond, min)
	assert.Equal(t, 30*time.Millisecond, max)

	fixed := NewPacer(-time.Second, 0, 1)
	assert.Zero(t, fixed.Delay(PhaseTyping))
}

// =============================================================================
// RUNNER
// =============================================================================

func TestRunner_PlaysToCompletion(t *testing.T) {
	e := New(script.Default())
	r := NewRunner(e, NewPacer(0, time.Microsecond, 1))

	var commits int
	err := r.Run(context.Background(), func(change Change, snap Snapshot) {
		if change.Kind == ChangeCommit {
			commits++
		}
	})

	require.NoError(t, err)
	assert.True(t, e.Done())
	assert.Equal(t, script.Default().Len(), commits)
}

func TestRunner_CancelStopsEngine(t *testing.T) {
	e := newEngine(t, script.Turn{Speaker: "A", Message: "a long message that takes a while"})
	r := NewRunner(e, NewPacer(time.Hour, time.Hour, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, e.Stopped())
	assert.Equal(t, Cursor{}, e.Cursor())
}

func TestRunner_AlreadyDone(t *testing.T) {
	e := newEngine(t)
	assert.NoError(t, NewRunner(e, nil).Run(context.Background(), nil))
}
