// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package display

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/donut"
	"github.com/gogpu/donut/frame"
)

// hudMargin is the inset of the heads-up line from the top-left corner.
const hudMargin = 4

// hudText formats the heads-up line for a frame.
func hudText(info frame.Info) string {
	return fmt.Sprintf("#%05d A=%.2f B=%.2f n=%d", info.Frame, info.Angles.A, info.Angles.B, info.Samples)
}

// drawHUD writes text onto dst in the top-left corner using the 7x13
// bitmap face. Text that does not fit is clipped by dst's bounds.
func drawHUD(dst draw.Image, text string, c donut.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.Color()),
		Face: face,
		Dot:  fixed.P(dst.Bounds().Min.X+hudMargin, dst.Bounds().Min.Y+hudMargin+face.Ascent),
	}
	d.DrawString(text)
}

// hudColor picks a readable HUD color for a palette: the foreground at
// half strength, so it stays distinct from the brightest samples.
func hudColor(p donut.Palette) donut.RGBA {
	c := p.Foreground.Lerp(p.Background, 0.5)
	c.A = 1
	return c
}
