// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom models the rotated torus with explicit vectors and
// rotations. It is slower than the closed form in package donut and
// exists to check it and to inspect single surface points.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Light is the (unnormalised) light direction. Its length is √2, which is
// why luminance ranges over [-√2, √2].
var Light = r3.Vec{X: 0, Y: 1, Z: -1}

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// Point is a surface point of the rotated torus in view space.
type Point struct {
	Pos    r3.Vec // position, viewer at the origin looking down +z
	Normal r3.Vec // unit outward normal
}

// Luminance returns the normal dotted with Light.
func (p Point) Luminance() float64 {
	return r3.Dot(p.Normal, Light)
}

// Project returns the untruncated raster position of p for a raster of the
// given size and projection scale k1.
func (p Point) Project(width, height int, k1 float64) (x, y float64) {
	ooz := 1 / p.Pos.Z
	return float64(width)/2 + k1*ooz*p.Pos.X, float64(height)/2 - k1*ooz*p.Pos.Y
}

// Torus evaluates the surface point at (theta, phi) for a torus with tube
// radius r1 and axis distance r2, viewed from k2 and rotated by a about x
// then b about z.
func Torus(r1, r2, k2, theta, phi, a, b float64) Point {
	st, ct := math.Sincos(theta)
	circle := r3.Vec{X: r2 + r1*ct, Y: r1 * st}
	normal := r3.Vec{X: ct, Y: st}

	// The sweep about y runs clockwise seen from +y.
	sweep := r3.NewRotation(-phi, axisY)
	tiltA := r3.NewRotation(a, axisX)
	spinB := r3.NewRotation(b, axisZ)

	rotate := func(v r3.Vec) r3.Vec {
		return spinB.Rotate(tiltA.Rotate(sweep.Rotate(v)))
	}

	pos := rotate(circle)
	pos.Z += k2
	return Point{Pos: pos, Normal: r3.Unit(rotate(normal))}
}
