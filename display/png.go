// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/donut"
	"github.com/gogpu/donut/frame"
)

// PNGSequence writes every presented frame to its own PNG file,
// frame00000.png, frame00001.png, ... in a directory.
type PNGSequence struct {
	*donut.Pixmap

	dir     string
	hud     bool
	hudRGBA donut.RGBA
	info    frame.Info
	written int
	closed  bool
}

// NewPNGSequence creates dir if needed and returns a display writing
// width x height frames into it.
func NewPNGSequence(dir string, width, height int, hud bool, p donut.Palette) (*PNGSequence, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", donut.ErrInvalidSize, width, height)
	}
	if dir == "" {
		return nil, errors.New("display: png output directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &PNGSequence{
		Pixmap:  donut.NewPixmap(width, height),
		dir:     dir,
		hud:     hud,
		hudRGBA: hudColor(p),
	}, nil
}

func openPNG(opts Options) (Display, error) {
	w, h := imageSize(opts)
	return NewPNGSequence(opts.Path, w, h, opts.HUD, opts.Palette)
}

// imageSize applies the image backend default size.
func imageSize(opts Options) (int, int) {
	if opts.Width == 0 && opts.Height == 0 {
		return donut.DefaultWidth, donut.DefaultHeight
	}
	return opts.Width, opts.Height
}

// Annotate records the frame info for the HUD.
func (s *PNGSequence) Annotate(info frame.Info) { s.info = info }

// FramePath returns the file frame n is written to.
func (s *PNGSequence) FramePath(n int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame%05d.png", n))
}

// Written returns the number of files written.
func (s *PNGSequence) Written() int { return s.written }

// Present writes the current frame to the next file.
func (s *PNGSequence) Present() error {
	if s.closed {
		return ErrClosed
	}
	if s.hud {
		drawHUD(s.Pixmap, hudText(s.info), s.hudRGBA)
	}

	path := s.FramePath(s.written)
	if err := s.SavePNG(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.written++
	return nil
}

// Close marks the sequence finished. Files are complete once Present
// returns, so there is nothing to flush.
func (s *PNGSequence) Close() error {
	s.closed = true
	return nil
}
