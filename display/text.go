// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gogpu/donut"
)

// Default size of the text display, in pixels. With DefaultCellWidth the
// frame is 80 columns wide.
const (
	DefaultTextWidth  = 40
	DefaultTextHeight = 40
)

// DefaultCellWidth is the number of columns a pixel takes on character
// displays. Terminal cells are about twice as tall as they are wide.
const DefaultCellWidth = 2

// ansiHome moves the cursor to the top-left corner.
const ansiHome = "\x1b[H"

// Text renders frames as rows of ramp characters on a writer.
// Pixels that were cleared and not plotted print as spaces.
type Text struct {
	width, height int
	cellWidth     int
	cells         []byte
	w             *bufio.Writer
	home          bool
	closed        bool
}

// NewText creates a text display of the given size writing to w. Each
// pixel prints as one character until SetCellWidth says otherwise.
func NewText(w io.Writer, width, height int, home bool) (*Text, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", donut.ErrInvalidSize, width, height)
	}
	t := &Text{
		width:     width,
		height:    height,
		cellWidth: 1,
		cells:     make([]byte, width*height),
		w:         bufio.NewWriter(w),
		home:      home,
	}
	t.Clear(donut.Black)
	return t, nil
}

func openText(opts Options) (Display, error) {
	w := opts.Output
	if w == nil {
		w = os.Stdout
	}
	width, height := opts.Width, opts.Height
	if width == 0 && height == 0 {
		width, height = DefaultTextWidth, DefaultTextHeight
	}
	t, err := NewText(w, width, height, opts.Home)
	if err != nil {
		return nil, err
	}
	t.SetCellWidth(opts.cellWidth())
	return t, nil
}

// SetCellWidth repeats each character n times across a row. Values below
// 1 are treated as 1.
func (t *Text) SetCellWidth(n int) { t.cellWidth = max(1, n) }

// Width returns the number of columns.
func (t *Text) Width() int { return t.width }

// Height returns the number of rows.
func (t *Text) Height() int { return t.height }

// Clear blanks every cell. The color is ignored: the background is
// whatever the terminal shows behind a space.
func (t *Text) Clear(donut.RGBA) {
	for i := range t.cells {
		t.cells[i] = ' '
	}
}

// SetPixel writes the ramp character for c's luminance.
func (t *Text) SetPixel(x, y int, c donut.RGBA) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return
	}
	t.cells[y*t.width+x] = donut.GlyphFor(c)
}

// String returns the current frame, one line per row.
func (t *Text) String() string {
	b := make([]byte, 0, (t.width*t.cellWidth+1)*t.height)
	for y := 0; y < t.height; y++ {
		for _, c := range t.cells[y*t.width : (y+1)*t.width] {
			for range t.cellWidth {
				b = append(b, c)
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}

// Present writes the frame.
func (t *Text) Present() error {
	if t.closed {
		return ErrClosed
	}
	if t.home {
		if _, err := t.w.WriteString(ansiHome); err != nil {
			return err
		}
	}
	if _, err := t.w.WriteString(t.String()); err != nil {
		return err
	}
	return t.w.Flush()
}

// Close flushes pending output.
func (t *Text) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	return t.w.Flush()
}
