// Command donut renders a spinning, shaded torus to the terminal, to stdout
// as text, or to PNG frames or an animated GIF.
//
// Usage:
//
//	donut [options]
//
// Examples:
//
//	donut                                  # interactive, Esc or q to quit
//	donut -display text -frames 1          # one ASCII frame on stdout
//	donut -display gif -out donut.gif -width 400 -height 400 -hud
//	donut -probe 0.5,1.2                   # inspect one surface point
//
// Exit status is 0 after a normal stop, 1 when a display cannot be opened
// or fails while running, and 2 for invalid options.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/donut"
	"github.com/gogpu/donut/display"
	"github.com/gogpu/donut/frame"
	"github.com/gogpu/donut/internal/geom"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, "donut: %v\n", err)
		return exitUsage
	}
	s, err := cfg.resolve()
	if err != nil {
		fmt.Fprintf(stderr, "donut: %v\n", err)
		return exitUsage
	}

	donut.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: s.level})))
	defer donut.SetLogger(nil)

	if s.probe {
		printProbe(stdout, s)
		return exitOK
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := animate(ctx, s, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "donut: %v\n", err)
		return exitFailed
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stderr, "donut: %d frames, %d samples in %v\n", stats.Frames, stats.Samples, stats.Elapsed.Round(time.Millisecond))
	return exitOK
}

// animate opens the display, runs the driver on it and closes it.
// The display is closed before returning so a terminal is restored before
// anything else is printed.
func animate(ctx context.Context, s settings, stdout io.Writer) (frame.Stats, error) {
	opts := s.displayOptions(isTerminal(stdout))
	opts.Output = stdout

	var (
		d   display.Display
		err error
	)
	if s.Display == "" {
		d, err = display.OpenBest(opts)
	} else {
		d, err = display.Open(s.Display, opts)
	}
	if err != nil {
		return frame.Stats{}, err
	}

	stats, runErr := drive(ctx, s, d)
	if err := d.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close display: %w", err)
	}
	return stats, runErr
}

func drive(ctx context.Context, s settings, d display.Display) (frame.Stats, error) {
	r, err := donut.NewRenderer(d.Width(), d.Height(), s.rendererOptions()...)
	if err != nil {
		return frame.Stats{}, err
	}

	opts := []frame.Option{
		frame.WithPalette(s.palette),
		frame.WithStep(donut.Angles{A: s.StepA, B: s.StepB}),
		frame.WithFrameLimit(s.Frames),
	}
	if !s.file {
		pacer, err := frame.NewPacer(s.FPS, frame.SystemClock{})
		if err != nil {
			return frame.Stats{}, err
		}
		opts = append(opts, frame.WithPacer(pacer))
	}

	drv, err := frame.New(r, d, opts...)
	if err != nil {
		return frame.Stats{}, err
	}
	err = drv.Run(ctx)
	return drv.Stats(), err
}

// printProbe prints the surface point at the probe angles with the torus
// at rest.
func printProbe(w io.Writer, s settings) {
	width, height := s.Width, s.Height
	if width == 0 && height == 0 {
		width, height = donut.DefaultWidth, donut.DefaultHeight
	}
	pt := geom.Torus(s.shape.R1, s.shape.R2, s.shape.K2, s.probeTheta, s.probePhi, 0, 0)
	x, y := pt.Project(width, height, s.shape.K1(width))
	l := pt.Luminance()

	fmt.Fprintf(w, "theta     %.6f\n", s.probeTheta)
	fmt.Fprintf(w, "phi       %.6f\n", s.probePhi)
	fmt.Fprintf(w, "position  %.6f %.6f %.6f\n", pt.Pos.X, pt.Pos.Y, pt.Pos.Z)
	fmt.Fprintf(w, "normal    %.6f %.6f %.6f\n", pt.Normal.X, pt.Normal.Y, pt.Normal.Z)
	fmt.Fprintf(w, "luminance %.6f\n", l)
	fmt.Fprintf(w, "screen    %d %d (%dx%d)\n", int(x), int(y), width, height)
	fmt.Fprintf(w, "visible   %t\n", l > 0)
}

// isTerminal reports whether w is a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
