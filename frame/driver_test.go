// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frame

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/donut"
)

// memScreen is a pixmap that counts presents and can request a stop.
type memScreen struct {
	*donut.Pixmap
	presents   int
	presentErr error
	stopAfter  int
	done       chan struct{}
}

func newMemScreen(w, h int) *memScreen {
	return &memScreen{Pixmap: donut.NewPixmap(w, h), done: make(chan struct{})}
}

func (s *memScreen) Present() error {
	if s.presentErr != nil {
		return s.presentErr
	}
	s.presents++
	if s.stopAfter > 0 && s.presents == s.stopAfter {
		close(s.done)
	}
	return nil
}

func (s *memScreen) Done() <-chan struct{} { return s.done }

// annotatingScreen records the Info of every frame.
type annotatingScreen struct {
	*memScreen
	infos []Info
}

func (s *annotatingScreen) Annotate(info Info) { s.infos = append(s.infos, info) }

func newTestDriver(t *testing.T, s Screen, opts ...Option) *Driver {
	t.Helper()
	r, err := donut.NewRenderer(s.Width(), s.Height())
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(r, s, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func TestNewSizeMismatch(t *testing.T) {
	r, err := donut.NewRenderer(40, 40)
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(r, newMemScreen(40, 30))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("New() error = %v, want ErrSizeMismatch", err)
	}

	if _, err := New(r, newMemScreen(40, 40), WithFrameLimit(-1)); err == nil {
		t.Error("New() with negative frame limit should fail")
	}
}

func TestDriverStep(t *testing.T) {
	s := newMemScreen(48, 48)
	d := newTestDriver(t, s, WithStart(donut.Angles{A: 1, B: 2}))

	if err := d.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if s.presents != 1 {
		t.Errorf("presents = %d, want 1", s.presents)
	}
	want := donut.Angles{A: 1 + DefaultStep, B: 2 + DefaultStep}
	if d.Angles() != want {
		t.Errorf("Angles() = %+v, want %+v", d.Angles(), want)
	}

	lit := 0
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			if s.GetPixel(x, y) != donut.Black {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("frame has no lit pixels")
	}
	if st := d.Stats(); st.Frames != 1 || st.Samples == 0 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestDriverStepPresentError(t *testing.T) {
	s := newMemScreen(16, 16)
	s.presentErr = errors.New("device lost")
	d := newTestDriver(t, s)

	err := d.Step()
	if err == nil || !strings.Contains(err.Error(), "device lost") {
		t.Fatalf("Step() error = %v, want wrapped present error", err)
	}
	if d.Angles() != (donut.Angles{}) {
		t.Errorf("angles advanced after a failed present: %+v", d.Angles())
	}
}

func TestDriverRunFrameLimit(t *testing.T) {
	s := newMemScreen(32, 32)
	d := newTestDriver(t, s, WithFrameLimit(5), WithStep(donut.Angles{A: 0.5, B: -0.25}))

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s.presents != 5 || d.Frames() != 5 {
		t.Errorf("presents = %d, frames = %d, want 5", s.presents, d.Frames())
	}
	if got := d.Angles(); math.Abs(got.A-2.5) > 1e-12 || math.Abs(got.B+1.25) > 1e-12 {
		t.Errorf("Angles() = %+v, want {2.5 -1.25}", got)
	}
}

func TestDriverRunStopsOnScreenClose(t *testing.T) {
	s := newMemScreen(32, 32)
	s.stopAfter = 3
	d := newTestDriver(t, s)

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s.presents != 3 {
		t.Errorf("presents = %d, want 3", s.presents)
	}
}

func TestDriverRunCancelled(t *testing.T) {
	s := newMemScreen(32, 32)
	d := newTestDriver(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s.presents != 0 {
		t.Errorf("presents = %d after cancelled context, want 0", s.presents)
	}
}

func TestDriverRunPropagatesPresentError(t *testing.T) {
	s := newMemScreen(16, 16)
	s.presentErr = errors.New("broken pipe")
	d := newTestDriver(t, s)

	if err := d.Run(context.Background()); err == nil {
		t.Fatal("Run() should return the present error")
	}
}

func TestDriverRunPaced(t *testing.T) {
	clock := newFakeClock()
	pacer, err := NewPacer(50, clock)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := newMemScreen(24, 24)
	d := newTestDriver(t, s, WithPacer(pacer), WithFrameLimit(4), WithLogger(logger))

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(clock.slept) != 4 {
		t.Fatalf("slept %d times, want 4", len(clock.slept))
	}
	for i, sl := range clock.slept {
		if sl != 20*time.Millisecond {
			t.Errorf("sleep %d = %v, want 20ms", i, sl)
		}
	}
	st := d.Stats()
	if st.Overruns != 0 || st.Elapsed != 80*time.Millisecond {
		t.Errorf("Stats() = %+v, want no overruns and 80ms elapsed", st)
	}
	if !strings.Contains(buf.String(), "run stopped") || !strings.Contains(buf.String(), "frames=4") {
		t.Errorf("log output = %s", buf.String())
	}
}

func TestDriverRunCountsOverruns(t *testing.T) {
	clock := newFakeClock()
	// Every Now call costs 30ms, so each frame overruns a 50fps budget.
	clock.onNow = func() { clock.advance(30 * time.Millisecond) }
	pacer, err := NewPacer(50, clock)
	if err != nil {
		t.Fatal(err)
	}

	s := newMemScreen(24, 24)
	d := newTestDriver(t, s, WithPacer(pacer), WithFrameLimit(3))
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(clock.slept) != 0 {
		t.Errorf("slept %v on overrun frames", clock.slept)
	}
	if d.Stats().Overruns != 3 {
		t.Errorf("Overruns = %d, want 3", d.Stats().Overruns)
	}
}

func TestDriverAnnotates(t *testing.T) {
	s := &annotatingScreen{memScreen: newMemScreen(32, 32)}
	d := newTestDriver(t, s, WithFrameLimit(2), WithStep(donut.Angles{A: 1, B: 0}))
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(s.infos) != 2 {
		t.Fatalf("annotated %d frames, want 2", len(s.infos))
	}
	for i, info := range s.infos {
		if info.Frame != i || info.Angles.A != float64(i) || info.Samples == 0 {
			t.Errorf("info %d = %+v", i, info)
		}
	}
}
