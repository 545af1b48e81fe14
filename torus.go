package donut

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned when validating renderer parameters.
var (
	// ErrDegenerateGeometry is returned when the viewer distance K2 does not
	// exceed R1+R2. Such a torus can reach or cross the eye plane, so the
	// perspective divide hits zero or flips sign.
	ErrDegenerateGeometry = errors.New("donut: viewer distance must exceed R1+R2")

	// ErrInvalidShape is returned for non-finite or non-positive radii.
	ErrInvalidShape = errors.New("donut: invalid torus shape")

	// ErrInvalidSpacing is returned for a sampling step outside (0, 2π].
	ErrInvalidSpacing = errors.New("donut: invalid sampling spacing")

	// ErrInvalidSize is returned for a non-positive raster size.
	ErrInvalidSize = errors.New("donut: invalid raster size")

	// ErrInvalidColor is returned by ParseHex for malformed input.
	ErrInvalidColor = errors.New("donut: invalid hex color")
)

// Shape holds the torus constants.
type Shape struct {
	// R1 is the radius of the tube (the swept circle).
	R1 float64

	// R2 is the distance from the torus axis to the centre of the tube.
	R2 float64

	// K2 is the distance from the viewer to the torus centre.
	K2 float64
}

// DefaultShape is the torus drawn when no shape is configured.
var DefaultShape = Shape{R1: 1, R2: 2, K2: 5}

// Validate reports whether the shape can be projected.
//
// K2 == R1+R2 is rejected as well: the nearest surface point then sits on
// the eye plane and its projected denominator is zero.
func (s Shape) Validate() error {
	for _, v := range []float64{s.R1, s.R2, s.K2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %+v has non-finite component", ErrInvalidShape, s)
		}
	}
	if s.R1 <= 0 {
		return fmt.Errorf("%w: R1 = %g, want > 0", ErrInvalidShape, s.R1)
	}
	if s.R2 < 0 {
		return fmt.Errorf("%w: R2 = %g, want >= 0", ErrInvalidShape, s.R2)
	}
	if s.K2 <= s.R1+s.R2 {
		return fmt.Errorf("%w: K2 = %g, R1+R2 = %g", ErrDegenerateGeometry, s.K2, s.R1+s.R2)
	}
	return nil
}

// K1 returns the projection scale for a raster of the given width.
//
// The outer edge of the torus, at x = R1+R2 and depth K2, lands 3/8 of the
// width from the centre: width*3/8 = K1*(R1+R2)/K2.
func (s Shape) K1(width int) float64 {
	return float64(width) * s.K2 * 3 / (8 * (s.R1 + s.R2))
}

// Angles is the rotation state of the torus: A turns it about the x axis
// and B about the z axis. Both are radians and unbounded.
type Angles struct {
	A, B float64
}

// Advance returns the angles moved by delta.
func (a Angles) Advance(delta Angles) Angles {
	return Angles{A: a.A + delta.A, B: a.B + delta.B}
}
