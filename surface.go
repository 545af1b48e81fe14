package donut

// Surface is a fixed-size raster a frame is drawn onto.
//
// SetPixel must ignore coordinates outside [0, Width) x [0, Height):
// projected points routinely leave the raster at grazing angles.
type Surface interface {
	Width() int
	Height() int
	Clear(c RGBA)
	SetPixel(x, y int, c RGBA)
}

// Draw clears s to the palette background and plots the frame for ang.
// Later samples overwrite earlier ones at the same pixel; there is no
// depth test. It returns the number of samples plotted, including those
// that fell outside the surface.
func Draw(s Surface, r *Renderer, ang Angles, p Palette) int {
	s.Clear(p.Background)
	n := 0
	r.Render(ang.A, ang.B, func(smp Sample) {
		s.SetPixel(smp.X, smp.Y, p.Shade(smp.Intensity))
		n++
	})
	return n
}
