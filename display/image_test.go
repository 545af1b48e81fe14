// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"bytes"
	"errors"
	"image"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/donut"
	"github.com/gogpu/donut/frame"
)

func TestPNGSequence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s, err := NewPNGSequence(dir, 32, 24, false, donut.DefaultPalette)
	if err != nil {
		t.Fatal(err)
	}

	s.Clear(donut.Black)
	s.SetPixel(5, 6, donut.White)
	for range 3 {
		if err := s.Present(); err != nil {
			t.Fatal(err)
		}
	}
	if s.Written() != 3 {
		t.Errorf("Written() = %d, want 3", s.Written())
	}

	f, err := os.Open(s.FramePath(2))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds(); got != image.Rect(0, 0, 32, 24) {
		t.Errorf("bounds = %v", got)
	}
	if r, _, _, _ := img.At(5, 6).RGBA(); r != 0xffff {
		t.Errorf("pixel (5,6) red = %#x, want 0xffff", r)
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r != 0 {
		t.Errorf("pixel (0,0) red = %#x, want 0", r)
	}

	if filepath.Base(s.FramePath(7)) != "frame00007.png" {
		t.Errorf("FramePath(7) = %s", s.FramePath(7))
	}
	_ = s.Close()
	if err := s.Present(); !errors.Is(err, ErrClosed) {
		t.Errorf("Present after Close = %v, want ErrClosed", err)
	}
}

func TestPNGSequenceErrors(t *testing.T) {
	if _, err := NewPNGSequence("", 1, 1, false, donut.DefaultPalette); err == nil {
		t.Error("empty directory should fail")
	}
	if _, err := NewPNGSequence(t.TempDir(), 0, 1, false, donut.DefaultPalette); !errors.Is(err, donut.ErrInvalidSize) {
		t.Errorf("zero width error = %v, want ErrInvalidSize", err)
	}
}

func TestOpenPNGDefaultSize(t *testing.T) {
	d, err := Open("png", Options{Path: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	if d.Width() != donut.DefaultWidth || d.Height() != donut.DefaultHeight {
		t.Errorf("size = %dx%d, want defaults", d.Width(), d.Height())
	}
}

func TestHUDDrawsText(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 24))
	drawHUD(img, hudText(frame.Info{Frame: 3, Samples: 10}), donut.White)

	lit := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("HUD drew nothing")
	}
}

func TestHUDText(t *testing.T) {
	got := hudText(frame.Info{Frame: 12, Angles: donut.Angles{A: 0.5, B: 0.25}, Samples: 99})
	want := "#00012 A=0.50 B=0.25 n=99"
	if got != want {
		t.Errorf("hudText = %q, want %q", got, want)
	}
}

func TestPNGSequenceHUD(t *testing.T) {
	dir := t.TempDir()
	s, _ := NewPNGSequence(dir, 200, 30, true, donut.DefaultPalette)
	s.Clear(donut.Black)
	s.Annotate(frame.Info{Frame: 1})
	if err := s.Present(); err != nil {
		t.Fatal(err)
	}
	f, _ := os.Open(s.FramePath(0))
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	lit := false
	for y := 0; y < 30 && !lit; y++ {
		for x := 0; x < 200; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r != 0 {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("HUD not visible in written frame")
	}
}

func TestGIF(t *testing.T) {
	var buf bytes.Buffer
	g, err := NewGIF(&buf, 40, 20, 0.5, 25, false, donut.DefaultPalette)
	if err != nil {
		t.Fatal(err)
	}
	for range 4 {
		g.Clear(donut.Black)
		g.SetPixel(10, 10, donut.White)
		if err := g.Present(); err != nil {
			t.Fatal(err)
		}
	}
	if g.Frames() != 4 {
		t.Errorf("Frames() = %d, want 4", g.Frames())
	}
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 4 {
		t.Fatalf("decoded %d frames, want 4", len(anim.Image))
	}
	if got := anim.Image[0].Bounds(); got != image.Rect(0, 0, 20, 10) {
		t.Errorf("frame bounds = %v, want 20x10", got)
	}
	if anim.Delay[0] != 4 {
		t.Errorf("delay = %d, want 4 (1/25 s)", anim.Delay[0])
	}
	if err := g.Present(); !errors.Is(err, ErrClosed) {
		t.Errorf("Present after Close = %v, want ErrClosed", err)
	}
}

func TestGIFEmptyWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	g, _ := NewGIF(&buf, 4, 4, 1, 10, false, donut.DefaultPalette)
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for an empty animation", buf.Len())
	}
}

func TestGIFScaleValidation(t *testing.T) {
	for _, scale := range []float64{-0.5, 1.5} {
		if _, err := NewGIF(&bytes.Buffer{}, 4, 4, scale, 10, false, donut.DefaultPalette); err == nil {
			t.Errorf("scale %g should fail", scale)
		}
	}
}

func TestGIFPalette(t *testing.T) {
	bg := donut.Hex("#102030")
	pal := gifPalette(donut.Palette{Background: bg, Foreground: donut.White})
	if len(pal) != 256 {
		t.Fatalf("palette size = %d, want 256", len(pal))
	}
	if pal[0] != bg.Color() {
		t.Errorf("pal[0] = %v, want background %v", pal[0], bg.Color())
	}
	if pal[1] != donut.White.Color() {
		t.Errorf("pal[1] = %v, want foreground", pal[1])
	}
}

func TestOpenGIFWritesFile(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  int
	}{
		{"default scale", 0, 4},
		{"full size", 1, 16},
		{"half", 0.5, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "donut.gif")
			d, err := Open("gif", Options{Width: 16, Height: 16, Path: path, FPS: 50, Scale: tt.scale})
			if err != nil {
				t.Fatal(err)
			}
			d.Clear(donut.Black)
			if err := d.Present(); err != nil {
				t.Fatal(err)
			}
			if err := d.Close(); err != nil {
				t.Fatal(err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			anim, err := gif.DecodeAll(f)
			if err != nil {
				t.Fatal(err)
			}
			if len(anim.Image) != 1 || anim.Delay[0] != 2 {
				t.Fatalf("frames = %d delay = %v, want 1 frame of 2", len(anim.Image), anim.Delay)
			}
			if b := anim.Image[0].Bounds(); b.Dx() != tt.want || b.Dy() != tt.want {
				t.Errorf("frame = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.want, tt.want)
			}
		})
	}
}

func TestOpenGIFEmptyPath(t *testing.T) {
	if _, err := Open("gif", Options{Width: 4, Height: 4}); err == nil {
		t.Error("empty path should fail")
	}
}

func TestGrayAttribute(t *testing.T) {
	tests := []struct {
		c    donut.RGBA
		want int
	}{
		{donut.Black, 1},
		{donut.White, grayLevels},
	}
	for _, tt := range tests {
		if got := int(grayAttribute(tt.c)); got != tt.want {
			t.Errorf("grayAttribute(%s) = %d, want %d", tt.c.Hex(), got, tt.want)
		}
	}
}
