// Package donut renders a spinning torus onto a raster.
//
// # Overview
//
// A torus is sampled on a fixed (theta, phi) grid, rotated by two angles,
// projected with a perspective divide and shaded by a single luminance
// term. Only points facing the light are emitted. The result for one frame
// is a deterministic sequence of samples that a Surface plots.
//
// # Quick Start
//
//	r, err := donut.NewRenderer(800, 800)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	pm := donut.NewPixmap(800, 800)
//	donut.Draw(pm, r, donut.Angles{A: 1, B: 0.5}, donut.DefaultPalette)
//	pm.SavePNG("donut.png")
//
// # Coordinate System
//
// The torus axis is the y axis before rotation and the viewer looks down
// +z from the origin. A turns the torus about x, then B about z. Raster
// coordinates have their origin at the top-left with y growing down.
//
// # Visibility
//
// There is no depth buffer. A sample is drawn when its luminance is
// positive, so the far side of the tube can show through where both sides
// face the light. Samples are emitted theta-major, phi-minor; the last
// write to a pixel wins.
//
// # Animation
//
// Package frame drives a Renderer against a display at a fixed rate;
// package display provides terminal, text, PNG and GIF outputs.
package donut

// Default raster configuration.
const (
	// DefaultWidth is the default raster width in pixels.
	DefaultWidth = 1600

	// DefaultHeight is the default raster height in pixels.
	DefaultHeight = 1600
)
