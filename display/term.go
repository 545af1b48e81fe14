// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"fmt"
	"os"
	"sync"

	"github.com/nsf/termbox-go"

	"github.com/gogpu/donut"
)

// grayLevels is the number of shades termbox offers in grayscale mode.
const grayLevels = 24

// Term draws frames into an interactive terminal with termbox.
// Each cell holds the ramp character for the sample, tinted by the same
// luminance. Esc, Ctrl-C or q close it.
type Term struct {
	width, height int
	cellWidth     int

	done     chan struct{}
	doneOnce sync.Once
	events   sync.WaitGroup

	closeOnce sync.Once
}

// termAvailable reports whether stdout is a terminal.
func termAvailable() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func openTerm(opts Options) (Display, error) {
	return NewTerm(opts.Width, opts.Height, opts.cellWidth())
}

// NewTerm takes over the terminal. Each pixel covers cellWidth columns.
// A zero width and height select the largest square that fits; otherwise
// the size is clipped to the terminal.
func NewTerm(width, height, cellWidth int) (*Term, error) {
	cellWidth = max(1, cellWidth)
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %dx%d", donut.ErrInvalidSize, width, height)
	}
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("termbox init: %w", err)
	}
	termbox.SetOutputMode(termbox.OutputGrayscale)
	termbox.SetInputMode(termbox.InputEsc)

	tw, th := termbox.Size()
	tw /= cellWidth
	if width == 0 && height == 0 {
		width = min(tw, th)
		height = width
	}
	width, height = min(width, tw), min(height, th)
	if width <= 0 || height <= 0 {
		termbox.Close()
		return nil, fmt.Errorf("%w: terminal is %dx%d", donut.ErrInvalidSize, tw, th)
	}

	t := &Term{
		width:     width,
		height:    height,
		cellWidth: cellWidth,
		done:      make(chan struct{}),
	}
	t.events.Add(1)
	go t.pollEvents()
	return t, nil
}

// pollEvents closes done on a quit key and returns when Close interrupts
// the event loop.
func (t *Term) pollEvents() {
	defer t.events.Done()
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			return
		case termbox.EventKey:
			if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
				t.doneOnce.Do(func() { close(t.done) })
			}
		case termbox.EventError:
			// Keep polling: Close relies on Interrupt reaching this loop.
			t.doneOnce.Do(func() {
				donut.Logger().Warn("display: terminal event error", "err", ev.Err)
				close(t.done)
			})
		}
	}
}

// Done is closed when the user asks to quit.
func (t *Term) Done() <-chan struct{} { return t.done }

// Width returns the number of pixel columns in use.
func (t *Term) Width() int { return t.width }

// Height returns the number of rows in use.
func (t *Term) Height() int { return t.height }

// Clear blanks the terminal. The terminal's own background shows through.
func (t *Term) Clear(donut.RGBA) {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
}

// SetPixel puts the ramp character for c into the cells of pixel (x, y).
func (t *Term) SetPixel(x, y int, c donut.RGBA) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	ch, fg := rune(donut.GlyphFor(c)), grayAttribute(c)
	for i := range t.cellWidth {
		termbox.SetCell(x*t.cellWidth+i, y, ch, fg, termbox.ColorDefault)
	}
}

// grayAttribute maps a color's luminance to a grayscale attribute.
func grayAttribute(c donut.RGBA) termbox.Attribute {
	return termbox.Attribute(1 + int(c.Luminance()*(grayLevels-1)+0.5))
}

// Present flushes the back buffer to the terminal.
func (t *Term) Present() error {
	return termbox.Flush()
}

// Close stops event polling and restores the terminal.
func (t *Term) Close() error {
	t.closeOnce.Do(func() {
		termbox.Interrupt()
		t.events.Wait()
		termbox.Close()
	})
	return nil
}
