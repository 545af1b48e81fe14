// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"errors"
	"io"

	"github.com/gogpu/donut"
	"github.com/gogpu/donut/frame"
)

// Display is a screen a frame.Driver presents to, plus the resources
// behind it.
//
// Displays are NOT thread-safe. Each display should be used from a single
// goroutine.
type Display interface {
	frame.Screen

	// Close releases the display. Buffered outputs such as GIF are
	// written here. Close is idempotent.
	Close() error
}

// Options configures a display backend. Backends ignore fields that do
// not apply to them.
type Options struct {
	// Width and Height are the raster size. Zero lets the terminal
	// backend size itself to the terminal.
	Width, Height int

	// Output receives text frames. Nil means os.Stdout.
	Output io.Writer

	// Home moves the cursor home before each text frame, so frames
	// replace each other on an ANSI terminal.
	Home bool

	// Path is the output directory for PNG frames or the file for a GIF.
	Path string

	// HUD stamps frame number and angles onto image frames.
	HUD bool

	// CellWidth is the number of columns each pixel takes on the term
	// and text displays; 0 means DefaultCellWidth.
	CellWidth int

	// Scale resizes GIF frames; 0 means DefaultGIFScale. Every frame is
	// kept in memory until Close, so large rasters want a small scale.
	Scale float64

	// FPS sets the GIF frame delay; 0 means frame.DefaultFPS.
	FPS int

	// Palette is used to build the GIF color table and the HUD color.
	Palette donut.Palette
}

func (o Options) fps() int {
	if o.FPS <= 0 {
		return frame.DefaultFPS
	}
	return o.FPS
}

func (o Options) cellWidth() int {
	if o.CellWidth <= 0 {
		return DefaultCellWidth
	}
	return o.CellWidth
}

// ErrClosed is returned when presenting to a closed display.
var ErrClosed = errors.New("display: closed")
