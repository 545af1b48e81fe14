package donut

import "fmt"

// ShadeMode selects how sample intensity affects the drawn color.
type ShadeMode int

const (
	// ShadeGraded scales the foreground by intensity/255.
	ShadeGraded ShadeMode = iota

	// ShadeFlat draws every visible sample in the foreground color.
	// Intensity only decides visibility.
	ShadeFlat
)

// String returns the flag spelling of the mode.
func (m ShadeMode) String() string {
	switch m {
	case ShadeGraded:
		return "graded"
	case ShadeFlat:
		return "flat"
	default:
		return fmt.Sprintf("ShadeMode(%d)", int(m))
	}
}

// ParseShadeMode parses "graded" or "flat".
func ParseShadeMode(s string) (ShadeMode, error) {
	switch s {
	case "graded":
		return ShadeGraded, nil
	case "flat":
		return ShadeFlat, nil
	}
	return 0, fmt.Errorf("donut: unknown shade mode %q", s)
}

// Palette holds the colors a frame is drawn with.
type Palette struct {
	Background RGBA
	Foreground RGBA
	Mode       ShadeMode
}

// DefaultPalette is white on black, graded.
var DefaultPalette = Palette{
	Background: Black,
	Foreground: White,
	Mode:       ShadeGraded,
}

// Shade returns the color for a sample of the given intensity.
func (p Palette) Shade(intensity uint8) RGBA {
	if p.Mode == ShadeFlat {
		return p.Foreground
	}
	return p.Foreground.Scale(float64(intensity) / 255)
}

// Ramp is the character ramp used on character displays, darkest first.
const Ramp = ".,-~:;=!*#$@"

// Glyph returns the ramp character for an intensity.
func Glyph(intensity uint8) byte {
	i := int(intensity) * len(Ramp) / 256
	return Ramp[i]
}

// GlyphFor returns the ramp character for a color, by luminance.
func GlyphFor(c RGBA) byte {
	return Glyph(uint8(clamp255(c.Luminance() * 255)))
}
