package donut

import (
	"fmt"
	"iter"
	"math"
)

// Sample is one visible surface point of a frame.
type Sample struct {
	// X and Y are raster coordinates. They may fall outside the raster at
	// grazing angles; surfaces ignore such writes.
	X, Y int

	// Intensity is the luminance mapped to [0, 255].
	Intensity uint8

	// L is the luminance the sample was shaded from. It is always > 0.
	L float64
}

// Renderer maps a pair of rotation angles to the visible samples of a
// torus on a fixed-size raster.
//
// A Renderer is immutable after creation; Render, All and Samples are
// pure functions of their angles and may be called from any goroutine.
type Renderer struct {
	width  int
	height int
	shape  Shape
	k1     float64

	thetaSpacing float64
	phiSpacing   float64

	// Sine/cosine of every grid value, indexed by grid position.
	cosTheta, sinTheta []float64
	cosPhi, sinPhi     []float64
}

// NewRenderer creates a renderer for a width x height raster.
//
// It returns ErrInvalidSize, ErrInvalidSpacing, ErrInvalidShape or
// ErrDegenerateGeometry (wrapped) when the parameters cannot produce a
// finite projection.
func NewRenderer(width, height int, opts ...RendererOption) (*Renderer, error) {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if err := o.shape.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateSpacing(o.thetaSpacing); err != nil {
		return nil, fmt.Errorf("theta: %w", err)
	}
	if err := ValidateSpacing(o.phiSpacing); err != nil {
		return nil, fmt.Errorf("phi: %w", err)
	}

	r := &Renderer{
		width:        width,
		height:       height,
		shape:        o.shape,
		k1:           o.shape.K1(width),
		thetaSpacing: o.thetaSpacing,
		phiSpacing:   o.phiSpacing,
	}
	r.cosTheta, r.sinTheta = trigTable(o.thetaSpacing)
	r.cosPhi, r.sinPhi = trigTable(o.phiSpacing)

	Logger().Debug("donut: renderer created",
		"width", width, "height", height,
		"k1", r.k1,
		"theta_steps", len(r.cosTheta), "phi_steps", len(r.cosPhi))

	return r, nil
}

// MaxGridSteps is the largest number of samples allowed on either axis of
// the sampling grid.
const MaxGridSteps = 1 << 14

// ValidateSpacing reports whether step is a usable sampling step: within
// (0, 2π] and producing at most MaxGridSteps grid values.
func ValidateSpacing(step float64) error {
	if math.IsNaN(step) || step <= 0 || step > 2*math.Pi {
		return fmt.Errorf("%w: step %g, want (0, 2π]", ErrInvalidSpacing, step)
	}
	if n := math.Ceil(2 * math.Pi / step); n > MaxGridSteps {
		return fmt.Errorf("%w: step %g gives %.0f samples, want at most %d", ErrInvalidSpacing, step, n, MaxGridSteps)
	}
	return nil
}

// trigTable samples [0, 2π) at k*step for k < ⌈2π/step⌉.
func trigTable(step float64) (cos, sin []float64) {
	n := int(math.Ceil(2 * math.Pi / step))
	cos = make([]float64, 0, n)
	sin = make([]float64, 0, n)
	for k := 0; k < n; k++ {
		v := float64(k) * step
		if v >= 2*math.Pi {
			break
		}
		cos = append(cos, math.Cos(v))
		sin = append(sin, math.Sin(v))
	}
	return cos, sin
}

// Width returns the raster width.
func (r *Renderer) Width() int { return r.width }

// Height returns the raster height.
func (r *Renderer) Height() int { return r.height }

// Shape returns the torus constants.
func (r *Renderer) Shape() Shape { return r.shape }

// K1 returns the projection scale.
func (r *Renderer) K1() float64 { return r.k1 }

// GridSize returns the number of theta and phi values sampled per frame.
// Every frame visits nTheta*nPhi grid points; only the lit ones are emitted.
func (r *Renderer) GridSize() (nTheta, nPhi int) {
	return len(r.cosTheta), len(r.cosPhi)
}

// Render streams the visible samples for angles (a, b) to sink, theta
// outer and phi inner, both ascending.
func (r *Renderer) Render(a, b float64, sink func(Sample)) {
	r.walk(a, b, func(s Sample) bool {
		sink(s)
		return true
	})
}

// All returns the visible samples for angles (a, b) as a sequence.
// The sequence is lazy and may be iterated any number of times.
func (r *Renderer) All(a, b float64) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		r.walk(a, b, yield)
	}
}

// Samples returns the visible samples for angles (a, b).
func (r *Renderer) Samples(a, b float64) []Sample {
	var out []Sample
	r.Render(a, b, func(s Sample) {
		out = append(out, s)
	})
	return out
}

// rotation caches the trigonometry of one frame's angles.
type rotation struct {
	cosA, sinA float64
	cosB, sinB float64
}

func newRotation(a, b float64) rotation {
	return rotation{
		cosA: math.Cos(a), sinA: math.Sin(a),
		cosB: math.Cos(b), sinB: math.Sin(b),
	}
}

func (r *Renderer) walk(a, b float64, yield func(Sample) bool) {
	rot := newRotation(a, b)
	for i := range r.cosTheta {
		for j := range r.cosPhi {
			sx, sy, lum := r.project(rot, i, j)
			if !(lum > 0) {
				continue
			}
			s := Sample{
				X:         int(sx),
				Y:         int(sy),
				Intensity: intensity(lum),
				L:         lum,
			}
			if !yield(s) {
				return
			}
		}
	}
}

// project returns the untruncated raster position and luminance of grid
// point (i, j) under rot.
func (r *Renderer) project(rot rotation, i, j int) (sx, sy, lum float64) {
	cosTheta, sinTheta := r.cosTheta[i], r.sinTheta[i]
	cosPhi, sinPhi := r.cosPhi[j], r.sinPhi[j]
	cosA, sinA := rot.cosA, rot.sinA
	cosB, sinB := rot.cosB, rot.sinB

	// Point on the tube cross-section before it is swept around the axis.
	circleX := r.shape.R2 + r.shape.R1*cosTheta
	circleY := r.shape.R1 * sinTheta

	x := circleX*(cosB*cosPhi+sinA*sinB*sinPhi) - circleY*cosA*sinB
	y := circleX*(sinB*cosPhi-sinA*cosB*sinPhi) + circleY*cosA*cosB
	z := r.shape.K2 + cosA*circleX*sinPhi + circleY*sinA
	ooz := 1 / z

	// y is negated: it grows up in space and down on the raster.
	sx = float64(r.width)/2 + r.k1*ooz*x
	sy = float64(r.height)/2 - r.k1*ooz*y

	// Surface normal dotted with the light direction (0, 1, -1).
	lum = cosPhi*cosTheta*sinB - cosA*cosTheta*sinPhi - sinA*sinTheta +
		cosB*(cosA*sinTheta-cosTheta*sinA*sinPhi)
	return sx, sy, lum
}

// intensity maps a luminance to [0, 255]. L reaches √2 on the brightest
// points, so the upper end saturates.
func intensity(lum float64) uint8 {
	return uint8(clamp255(math.Round(lum * 255)))
}
