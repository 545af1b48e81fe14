// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"fmt"
	"time"
)

// DefaultFPS is the target frame rate.
const DefaultFPS = 60

// Clock is the time source of a Pacer.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep calls time.Sleep.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Pacer limits a loop to a fixed number of ticks per second.
type Pacer struct {
	budget time.Duration
	clock  Clock
}

// NewPacer creates a pacer for fps ticks per second. A nil clock uses
// SystemClock.
func NewPacer(fps int, clock Clock) (*Pacer, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("frame: fps = %d, want > 0", fps)
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Pacer{budget: time.Second / time.Duration(fps), clock: clock}, nil
}

// Budget returns the time allotted to one tick.
func (p *Pacer) Budget() time.Duration { return p.budget }

// Now returns the pacer clock's current time.
func (p *Pacer) Now() time.Time { return p.clock.Now() }

// Wait sleeps for whatever is left of the budget of a tick that started
// at start. It returns the time slept, and false when the tick overran
// its budget, in which case it does not sleep at all.
func (p *Pacer) Wait(start time.Time) (time.Duration, bool) {
	elapsed := p.clock.Now().Sub(start)
	if elapsed >= p.budget {
		return 0, elapsed == p.budget
	}
	d := p.budget - elapsed
	p.clock.Sleep(d)
	return d, true
}
