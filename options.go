package donut

// Default sampling steps, in radians.
const (
	// DefaultThetaSpacing is the step around the tube cross-section.
	DefaultThetaSpacing = 0.07

	// DefaultPhiSpacing is the step around the torus axis.
	DefaultPhiSpacing = 0.02
)

// RendererOption configures a Renderer during creation.
// Use functional options to customize the torus and its sampling grid.
//
// Example:
//
//	// Default torus and grid
//	r, err := donut.NewRenderer(800, 800)
//
//	// Thicker tube, finer grid
//	r, err := donut.NewRenderer(800, 800,
//		donut.WithShape(donut.Shape{R1: 1.5, R2: 2, K2: 6}),
//		donut.WithPhiSpacing(0.01))
type RendererOption func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	shape        Shape
	thetaSpacing float64
	phiSpacing   float64
}

// defaultRendererOptions returns the default renderer options.
func defaultRendererOptions() rendererOptions {
	return rendererOptions{
		shape:        DefaultShape,
		thetaSpacing: DefaultThetaSpacing,
		phiSpacing:   DefaultPhiSpacing,
	}
}

// WithShape sets the torus radii and viewer distance.
// The shape is validated by NewRenderer.
func WithShape(s Shape) RendererOption {
	return func(o *rendererOptions) {
		o.shape = s
	}
}

// WithThetaSpacing sets the sampling step around the tube.
func WithThetaSpacing(step float64) RendererOption {
	return func(o *rendererOptions) {
		o.thetaSpacing = step
	}
}

// WithPhiSpacing sets the sampling step around the torus axis.
func WithPhiSpacing(step float64) RendererOption {
	return func(o *rendererOptions) {
		o.phiSpacing = step
	}
}
