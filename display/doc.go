// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package display provides the screens a frame.Driver presents to.
//
// A Display is a donut.Surface that can also present and close. Backends
// are looked up by name in a registry, so the command line and embedding
// programs pick outputs the same way.
//
// # Backends
//
//   - term: interactive terminal via termbox. Esc, Ctrl-C or q closes it.
//   - text: ASCII frames on an io.Writer, one line per row.
//   - png: one numbered PNG file per frame in a directory.
//   - gif: a looping animated GIF, written when the display is closed.
//
// Character backends draw each pixel as a character of donut.Ramp chosen
// by luminance. Image backends can stamp a heads-up line with the frame
// number and angles.
//
// # Selection
//
// OpenBest tries backends with a positive priority, highest first, and
// falls back when one fails to open:
//
//	d, err := display.OpenBest(display.Options{})
//	if err != nil {
//		return err
//	}
//	defer d.Close()
//
// File backends have priority 0 and are only opened by name:
//
//	d, err := display.Open("gif", display.Options{
//		Width: 400, Height: 400, Path: "donut.gif", HUD: true,
//	})
package display
