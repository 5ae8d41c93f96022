// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package playback

import (
	"context"
	"time"
)

// ChangeFunc observes each successful step.
type ChangeFunc func(change Change, snap Snapshot)

// Runner drives an engine with a real timer, outside of any UI loop.
type Runner struct {
	engine *Engine
	pacer  *Pacer
}

// NewRunner creates a runner. A nil pacer uses DefaultPacer.
func NewRunner(engine *Engine, pacer *Pacer) *Runner {
	if pacer == nil {
		pacer = DefaultPacer()
	}
	return &Runner{engine: engine, pacer: pacer}
}

// Run plays the engine to completion, calling onChange after every step.
// When ctx is cancelled the pending timer is stopped, the engine is
// disposed and ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context, onChange ChangeFunc) error {
	if r.engine.Done() {
		return nil
	}

	timer := time.NewTimer(r.pacer.Delay(r.engine.Phase()))
	defer timer.Stop()

	for {
		gen := r.engine.Generation()

		select {
		case <-ctx.Done():
			r.engine.Stop()
			return ctx.Err()

		case <-timer.C:
			change, ok := r.engine.Fire(gen)
			if ok && onChange != nil {
				onChange(change, r.engine.Snapshot())
			}
		}

		if r.engine.Done() || r.engine.Stopped() {
			return nil
		}
		timer.Reset(r.pacer.Delay(r.engine.Phase()))
	}
}
