package imaging

import (
	"errors"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrEmptyImage is returned by analysis functions that need at least one pixel.
var ErrEmptyImage = errors.New("image has no pixels")

// RGBAColor represents an RGBA color with 8-bit, non-premultiplied components.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// Opaque reports whether the pixel has any opacity at all.
func (c RGBAColor) Opaque() bool {
	return c.A > 0
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
//
// All components are rounded to whole numbers:
//   - Hue represents the color type, 0-359 degrees (0=red, 120=green, 240=blue)
//   - Saturation represents color intensity, 0-100 percent (0=gray, 100=vivid)
//   - Lightness represents brightness, 0-100 percent (0=black, 50=normal, 100=white)
type HSLColor struct {
	H int `json:"h"`
	S int `json:"s"`
	L int `json:"l"`
}

// Hex renders the HSL triple as a "#rrggbb" string.
func (c HSLColor) Hex() string {
	return colorful.Hsl(float64(c.H), float64(c.S)/100, float64(c.L)/100).Clamped().Hex()
}

// RGBToHSL converts 8-bit RGB values to HSL color space.
//
// The conversion follows the standard algorithm:
//  1. Normalize RGB to 0-1 range
//  2. Find min and max components
//  3. Calculate Lightness as (max + min) / 2
//  4. Calculate Saturation based on lightness (zero when max == min)
//  5. Calculate Hue from the six-sector formula of whichever component is max
//
// The hue is the sector value divided by 6 and scaled by 360, in that order;
// rounding is sensitive to it on exact half-degree hues.
//
// Each component is then rounded to the nearest integer. A hue that rounds up
// to 360 wraps around to 0.
func RGBToHSL(r, g, b uint8) HSLColor {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}

	max := math.Max(c.R, math.Max(c.G, c.B))
	min := math.Min(c.R, math.Min(c.G, c.B))
	l := (max + min) / 2

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}
		h = hueSector(c, max, d) / 6
	}

	hue := int(math.Round(h * 360))
	if hue >= 360 {
		hue -= 360
	}

	return HSLColor{
		H: hue,
		S: int(math.Round(s * 100)),
		L: int(math.Round(l * 100)),
	}
}

// hueSector returns the hue in sixths of a turn, in [0,6).
func hueSector(c colorful.Color, max, d float64) float64 {
	switch max {
	case c.R:
		h := (c.G - c.B) / d
		if c.G < c.B {
			h += 6
		}
		return h
	case c.G:
		return (c.B-c.R)/d + 2
	default:
		return (c.R-c.G)/d + 4
	}
}

// AverageHSL returns the mean HSL color of every pixel in the grid.
//
// Each pixel is converted to a rounded HSL triple first (alpha is ignored), the
// triples are summed component-wise, and the mean of each component is rounded
// again. Hue is averaged arithmetically, not as an angle.
//
// Returns ErrEmptyImage if the grid has no pixels.
func AverageHSL(g Grid) (HSLColor, error) {
	width, height := g.Width(), g.Height()
	total := width * height
	if width <= 0 || height <= 0 {
		return HSLColor{}, ErrEmptyImage
	}

	var sumH, sumS, sumL int64
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			p := g.RGBAAt(x, y)
			hsl := RGBToHSL(p.R, p.G, p.B)
			sumH += int64(hsl.H)
			sumS += int64(hsl.S)
			sumL += int64(hsl.L)
		}
	}

	n := float64(total)
	return HSLColor{
		H: int(math.Round(float64(sumH) / n)),
		S: int(math.Round(float64(sumS) / n)),
		L: int(math.Round(float64(sumL) / n)),
	}, nil
}
