package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/donut"
	"github.com/gogpu/donut/display"
	"github.com/gogpu/donut/frame"
)

// defaultFileFrames bounds file outputs when -frames is not given.
const defaultFileFrames = 120

// Config holds the command-line settings.
type Config struct {
	Display   string
	Width     int
	Height    int
	FPS       int
	StepA     float64
	StepB     float64
	R1        float64
	R2        float64
	K2        float64
	ThetaStep float64
	PhiStep   float64
	BG        string
	FG        string
	Shade     string
	Frames    int
	Out       string
	HUD       bool
	Scale     float64
	LogLevel  string
	Probe     string
}

// settings is a validated Config in the types the libraries take.
type settings struct {
	Config

	shape   donut.Shape
	palette donut.Palette
	level   slog.Level
	file    bool // png or gif output

	probe      bool
	probeTheta float64
	probePhi   float64
}

// parseFlags reads a Config from args. Flag syntax errors are reported on
// stderr by the flag package.
func parseFlags(args []string, stderr io.Writer) (Config, error) {
	var c Config
	fs := flag.NewFlagSet("donut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: donut [options]\n\nRenders a spinning, shaded torus.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&c.Display, "display", "", "display backend: term, text, png or gif (default: best available)")
	fs.IntVar(&c.Width, "width", 0, "raster width (0: backend default)")
	fs.IntVar(&c.Height, "height", 0, "raster height (0: backend default)")
	fs.IntVar(&c.FPS, "fps", frame.DefaultFPS, "frame rate for interactive displays and GIF timing")
	fs.Float64Var(&c.StepA, "step-a", frame.DefaultStep, "rotation about the x axis per frame, radians")
	fs.Float64Var(&c.StepB, "step-b", frame.DefaultStep, "rotation about the z axis per frame, radians")
	fs.Float64Var(&c.R1, "r1", donut.DefaultShape.R1, "tube radius")
	fs.Float64Var(&c.R2, "r2", donut.DefaultShape.R2, "distance from the torus center to the tube center")
	fs.Float64Var(&c.K2, "k2", donut.DefaultShape.K2, "viewer distance, must exceed r1+r2")
	fs.Float64Var(&c.ThetaStep, "theta-step", donut.DefaultThetaSpacing, "sampling step around the tube")
	fs.Float64Var(&c.PhiStep, "phi-step", donut.DefaultPhiSpacing, "sampling step around the torus axis")
	fs.StringVar(&c.BG, "bg", "#000000", "background color")
	fs.StringVar(&c.FG, "fg", "#FFFFFF", "foreground color")
	fs.StringVar(&c.Shade, "shade", donut.ShadeGraded.String(), "shading: graded or flat")
	fs.IntVar(&c.Frames, "frames", 0, "stop after this many frames (0: until closed; file outputs default to "+strconv.Itoa(defaultFileFrames)+")")
	fs.StringVar(&c.Out, "out", "", "output directory for png, output file for gif")
	fs.BoolVar(&c.HUD, "hud", false, "stamp frame number and angles on image frames")
	fs.Float64Var(&c.Scale, "scale", 0, "GIF frame scale in (0, 1] (0: backend default "+strconv.FormatFloat(display.DefaultGIFScale, 'g', -1, 64)+"; gif frames are held in memory until exit)")
	fs.StringVar(&c.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	fs.StringVar(&c.Probe, "probe", "", "print the surface point at theta,phi and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return c, nil
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	_, err := c.resolve()
	return err
}

func (c Config) resolve() (settings, error) {
	s := settings{Config: c}

	s.shape = donut.Shape{R1: c.R1, R2: c.R2, K2: c.K2}
	if err := s.shape.Validate(); err != nil {
		return s, err
	}
	if err := donut.ValidateSpacing(c.ThetaStep); err != nil {
		return s, fmt.Errorf("-theta-step: %w", err)
	}
	if err := donut.ValidateSpacing(c.PhiStep); err != nil {
		return s, fmt.Errorf("-phi-step: %w", err)
	}
	if math.IsNaN(c.StepA) || math.IsInf(c.StepA, 0) || math.IsNaN(c.StepB) || math.IsInf(c.StepB, 0) {
		return s, fmt.Errorf("rotation steps must be finite, got %g, %g", c.StepA, c.StepB)
	}
	if c.Width < 0 || c.Height < 0 {
		return s, fmt.Errorf("%w: %dx%d", donut.ErrInvalidSize, c.Width, c.Height)
	}
	if (c.Width == 0) != (c.Height == 0) {
		return s, fmt.Errorf("%w: -width and -height must be given together, got %dx%d", donut.ErrInvalidSize, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return s, fmt.Errorf("-fps %d, want > 0", c.FPS)
	}
	if c.Frames < 0 {
		return s, fmt.Errorf("-frames %d, want >= 0", c.Frames)
	}
	if math.IsNaN(c.Scale) || c.Scale < 0 || c.Scale > 1 {
		return s, fmt.Errorf("-scale %g, want (0, 1] or 0 for the default", c.Scale)
	}

	bg, err := donut.ParseHex(c.BG)
	if err != nil {
		return s, fmt.Errorf("-bg: %w", err)
	}
	fg, err := donut.ParseHex(c.FG)
	if err != nil {
		return s, fmt.Errorf("-fg: %w", err)
	}
	mode, err := donut.ParseShadeMode(c.Shade)
	if err != nil {
		return s, fmt.Errorf("-shade: %w", err)
	}
	s.palette = donut.Palette{Background: bg, Foreground: fg, Mode: mode}

	if err := s.level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return s, fmt.Errorf("-log-level: %w", err)
	}

	if c.Display != "" {
		if _, ok := display.Get(c.Display); !ok {
			return s, fmt.Errorf("-display %q, want one of %s", c.Display, strings.Join(display.List(), ", "))
		}
	}
	s.file = c.Display == "png" || c.Display == "gif"
	if s.file && c.Out == "" {
		return s, fmt.Errorf("-display %s needs -out", c.Display)
	}
	if s.file && s.Frames == 0 {
		s.Frames = defaultFileFrames
	}

	if c.Probe != "" {
		s.probe = true
		s.probeTheta, s.probePhi, err = parsePair(c.Probe)
		if err != nil {
			return s, fmt.Errorf("-probe: %w", err)
		}
	}
	return s, nil
}

// parsePair parses "x,y" into two finite floats.
func parsePair(v string) (float64, float64, error) {
	a, b, ok := strings.Cut(v, ",")
	if !ok {
		return 0, 0, errors.New("want theta,phi")
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, err
	}
	if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, 0, fmt.Errorf("%q is not finite", v)
	}
	return x, y, nil
}

// rendererOptions returns the renderer options for s.
func (s settings) rendererOptions() []donut.RendererOption {
	return []donut.RendererOption{
		donut.WithShape(s.shape),
		donut.WithThetaSpacing(s.ThetaStep),
		donut.WithPhiSpacing(s.PhiStep),
	}
}

// displayOptions returns the display options for s.
func (s settings) displayOptions(home bool) display.Options {
	return display.Options{
		Width:   s.Width,
		Height:  s.Height,
		Home:    home,
		Path:    s.Out,
		HUD:     s.HUD,
		Scale:   s.Scale,
		FPS:     s.FPS,
		Palette: s.palette,
	}
}
