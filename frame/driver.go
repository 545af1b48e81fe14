// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package frame animates a donut.Renderer on a screen.
//
// A Driver owns the rotation angles. Each tick it clears the screen,
// plots the frame, presents it, advances the angles and waits out the
// rest of the frame budget:
//
//	d, err := frame.New(r, screen, frame.WithPalette(pal))
//	if err != nil {
//		return err
//	}
//	err = d.Run(ctx)
//
// Run returns when ctx is cancelled, when the screen reports a close
// request, or after the configured number of frames. Stop requests are
// checked between frames only.
package frame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/donut"
)

// DefaultStep is the per-frame change of both angles, in radians.
const DefaultStep = 0.01

// Screen is a surface a Driver presents frames to.
type Screen interface {
	donut.Surface

	// Present makes the current contents visible.
	Present() error
}

// Stopper is implemented by screens that can ask the driver to stop,
// such as a window or terminal the user closes.
type Stopper interface {
	Done() <-chan struct{}
}

// Info describes the frame about to be presented.
type Info struct {
	Frame   int          // zero-based frame number
	Angles  donut.Angles // angles the frame was drawn with
	Samples int          // samples plotted
}

// Annotator is implemented by screens that label frames, for example with
// a heads-up line. Annotate is called after drawing and before Present.
type Annotator interface {
	Annotate(info Info)
}

// ErrSizeMismatch is returned by New when the renderer and screen differ
// in size.
var ErrSizeMismatch = errors.New("frame: renderer and screen sizes differ")

// Stats summarises a run.
type Stats struct {
	Frames   int           // frames presented
	Samples  int           // samples plotted, including off-screen ones
	Overruns int           // frames that exceeded the pacer budget
	Elapsed  time.Duration // wall time from first to last frame
}

// Driver animates a renderer on a screen.
// A Driver is not safe for concurrent use.
type Driver struct {
	renderer *donut.Renderer
	screen   Screen
	palette  donut.Palette
	step     donut.Angles
	angles   donut.Angles
	pacer    *Pacer
	limit    int
	logger   *slog.Logger

	stats Stats
}

// Option configures a Driver.
type Option func(*Driver)

// WithPalette sets the colors frames are drawn with.
func WithPalette(p donut.Palette) Option {
	return func(d *Driver) { d.palette = p }
}

// WithStep sets the per-frame angle increments.
func WithStep(step donut.Angles) Option {
	return func(d *Driver) { d.step = step }
}

// WithStart sets the angles of the first frame.
func WithStart(a donut.Angles) Option {
	return func(d *Driver) { d.angles = a }
}

// WithPacer limits the frame rate. Without a pacer frames are produced as
// fast as the screen accepts them, which suits offline outputs.
func WithPacer(p *Pacer) Option {
	return func(d *Driver) { d.pacer = p }
}

// WithFrameLimit stops Run after n frames. Zero means no limit.
func WithFrameLimit(n int) Option {
	return func(d *Driver) { d.limit = n }
}

// WithLogger overrides donut.Logger for this driver.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// New creates a driver. The renderer and screen must have the same size.
func New(r *donut.Renderer, s Screen, opts ...Option) (*Driver, error) {
	if r.Width() != s.Width() || r.Height() != s.Height() {
		return nil, fmt.Errorf("%w: renderer %dx%d, screen %dx%d",
			ErrSizeMismatch, r.Width(), r.Height(), s.Width(), s.Height())
	}
	d := &Driver{
		renderer: r,
		screen:   s,
		palette:  donut.DefaultPalette,
		step:     donut.Angles{A: DefaultStep, B: DefaultStep},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.limit < 0 {
		return nil, fmt.Errorf("frame: frame limit %d, want >= 0", d.limit)
	}
	if d.logger == nil {
		d.logger = donut.Logger()
	}
	return d, nil
}

// Angles returns the angles the next frame will be drawn with.
func (d *Driver) Angles() donut.Angles { return d.angles }

// Frames returns the number of frames presented so far.
func (d *Driver) Frames() int { return d.stats.Frames }

// Stats returns counters for the frames presented so far.
func (d *Driver) Stats() Stats { return d.stats }

// Step draws and presents one frame, then advances the angles.
// The angles advance only when presenting succeeds.
func (d *Driver) Step() error {
	n := donut.Draw(d.screen, d.renderer, d.angles, d.palette)
	if a, ok := d.screen.(Annotator); ok {
		a.Annotate(Info{Frame: d.stats.Frames, Angles: d.angles, Samples: n})
	}
	if err := d.screen.Present(); err != nil {
		return fmt.Errorf("frame: present frame %d: %w", d.stats.Frames, err)
	}
	d.stats.Frames++
	d.stats.Samples += n
	d.angles = d.angles.Advance(d.step)
	return nil
}

// Run draws frames until ctx is done, the screen asks to stop, or the
// frame limit is reached. Cancellation is not an error.
func (d *Driver) Run(ctx context.Context) error {
	var stop <-chan struct{}
	if s, ok := d.screen.(Stopper); ok {
		stop = s.Done()
	}

	now := time.Now
	if d.pacer != nil {
		now = d.pacer.Now
	}

	d.logger.Info("frame: run started",
		"width", d.renderer.Width(), "height", d.renderer.Height(),
		"limit", d.limit, "paced", d.pacer != nil)

	begin := now()
	defer func() {
		d.stats.Elapsed = now().Sub(begin)
		d.logger.Info("frame: run stopped",
			"frames", d.stats.Frames, "samples", d.stats.Samples,
			"overruns", d.stats.Overruns, "elapsed", d.stats.Elapsed)
	}()

	for {
		if d.limit > 0 && d.stats.Frames >= d.limit {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return nil
		default:
		}

		start := now()
		if err := d.Step(); err != nil {
			return err
		}

		if d.pacer != nil {
			if _, ok := d.pacer.Wait(start); !ok {
				d.stats.Overruns++
				d.logger.Debug("frame: overran budget",
					"frame", d.stats.Frames, "budget", d.pacer.Budget())
			}
		}
	}
}
