// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package playback

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Default typing delay bounds.
const (
	DefaultMinDelay = 10 * time.Millisecond
	DefaultMaxDelay = 25 * time.Millisecond
)

// Pacer picks the delay before the next step.
type Pacer struct {
	min time.Duration
	max time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewPacer creates a pacer with typing delays uniformly distributed in
// [min, max]. A zero seed uses a time-based seed. Bounds are swapped if
// given in the wrong order and clamped at zero.
func NewPacer(min, max time.Duration, seed uint64) *Pacer {
	if min < 0 {
		min = 0
	}
	if max < 0 {
		max = 0
	}
	if min > max {
		min, max = max, min
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Pacer{
		min: min,
		max: max,
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// DefaultPacer uses the default bounds and a time-based seed.
func DefaultPacer() *Pacer {
	return NewPacer(DefaultMinDelay, DefaultMaxDelay, 0)
}

// Bounds returns the configured typing delay range.
func (p *Pacer) Bounds() (time.Duration, time.Duration) {
	return p.min, p.max
}

// Delay returns how long to wait before stepping from phase. Only typing
// is paced; code reveals and commits are immediate.
func (p *Pacer) Delay(phase Phase) time.Duration {
	if phase != PhaseTyping {
		return 0
	}
	if p.max == p.min {
		return p.min
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.min + time.Duration(p.rng.Int64N(int64(p.max-p.min)+1))
}
