// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/donut"
	"github.com/gogpu/donut/frame"
)

// GIF collects presented frames and encodes them as a looping animated
// GIF on Close.
type GIF struct {
	*donut.Pixmap

	w        io.Writer
	closer   io.Closer
	scaled   image.Rectangle
	palette  color.Palette
	delay    int
	hud      bool
	hudRGBA  donut.RGBA
	info     frame.Info
	frames   []*image.Paletted
	closed   bool
	closeErr error
}

// DefaultGIFScale is the frame scale the gif backend uses when
// Options.Scale is 0. Frames are held in memory until Close, so a
// 1600x1600 raster over 120 frames costs about 19 MB at this scale and
// 300 MB at full size.
const DefaultGIFScale = 0.25

// NewGIF returns a display that writes an animated GIF to w when closed.
// Frames are resized by scale (0 means 1) and shown for 1/fps seconds.
// Every frame stays in memory until Close.
func NewGIF(w io.Writer, width, height int, scale float64, fps int, hud bool, p donut.Palette) (*GIF, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", donut.ErrInvalidSize, width, height)
	}
	if scale == 0 {
		scale = 1
	}
	if math.IsNaN(scale) || scale < 0 || scale > 1 {
		return nil, fmt.Errorf("display: gif scale %g, want (0, 1]", scale)
	}
	sw := max(1, int(math.Round(float64(width)*scale)))
	sh := max(1, int(math.Round(float64(height)*scale)))
	if fps <= 0 {
		fps = frame.DefaultFPS
	}

	return &GIF{
		Pixmap:  donut.NewPixmap(width, height),
		w:       w,
		scaled:  image.Rect(0, 0, sw, sh),
		palette: gifPalette(p),
		delay:   max(1, int(math.Round(100/float64(fps)))),
		hud:     hud,
		hudRGBA: hudColor(p),
	}, nil
}

func openGIF(opts Options) (Display, error) {
	if opts.Path == "" {
		return nil, errors.New("display: gif output path is empty")
	}
	f, err := os.Create(opts.Path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	w, h := imageSize(opts)
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultGIFScale
	}
	g, err := NewGIF(f, w, h, scale, opts.fps(), opts.HUD, opts.Palette)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	g.closer = f
	return g, nil
}

// gifPalette is background, foreground, and 254 steps between them, which
// covers both shade modes and the HUD exactly or closely.
func gifPalette(p donut.Palette) color.Palette {
	bg := p.Background
	bg.A = 1
	fg := p.Foreground
	fg.A = 1

	pal := make(color.Palette, 0, 256)
	pal = append(pal, bg.Color(), fg.Color())
	black := donut.Black
	for i := 1; i < 255; i++ {
		pal = append(pal, black.Lerp(fg, float64(i)/255).Color())
	}
	return pal
}

// Annotate records the frame info for the HUD.
func (g *GIF) Annotate(info frame.Info) { g.info = info }

// Frames returns the number of frames collected so far.
func (g *GIF) Frames() int { return len(g.frames) }

// Present snapshots the current frame.
func (g *GIF) Present() error {
	if g.closed {
		return ErrClosed
	}
	if g.hud {
		drawHUD(g.Pixmap, hudText(g.info), g.hudRGBA)
	}
	src := g.ToImage()

	dst := image.NewPaletted(g.scaled, g.palette)
	if g.scaled.Eq(src.Bounds()) {
		xdraw.Draw(dst, dst.Bounds(), src, image.Point{}, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	}
	g.frames = append(g.frames, dst)
	return nil
}

// Close encodes the collected frames. An animation with no frames is not
// written.
func (g *GIF) Close() error {
	if g.closed {
		return g.closeErr
	}
	g.closed = true

	if len(g.frames) > 0 {
		delays := make([]int, len(g.frames))
		for i := range delays {
			delays[i] = g.delay
		}
		g.closeErr = gif.EncodeAll(g.w, &gif.GIF{
			Image:     g.frames,
			Delay:     delays,
			LoopCount: 0,
		})
	}
	if g.closer != nil {
		if err := g.closer.Close(); err != nil && g.closeErr == nil {
			g.closeErr = err
		}
	}
	g.frames = nil
	return g.closeErr
}
