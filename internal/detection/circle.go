package detection

import (
	"fmt"
	"math"

	"github.com/ironsheep/badge-verify/internal/imaging"
)

// DefaultTolerance is the slack, in pixels, allowed beyond the measured radius
// before an opaque pixel counts as outside the circle.
const DefaultTolerance = 5.0

// ValidateTolerance rejects tolerances no circle check can use: negative
// values and NaN, which compares false against every distance.
func ValidateTolerance(tolerance float64) error {
	if math.IsNaN(tolerance) || tolerance < 0 {
		return fmt.Errorf("tolerance must be a non-negative number, got %g", tolerance)
	}
	return nil
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Center is the real-valued geometric center of an image.
type Center struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CircleReport describes the outcome of a circle boundary check.
type CircleReport struct {
	// Center is (width/2, height/2), not rounded to a pixel.
	Center Center `json:"center"`

	// MaxRadius is the distance from Center to the farthest opaque pixel,
	// clamped to the inscribed circle min(width, height)/2.
	MaxRadius float64 `json:"max_radius"`

	// Tolerance is the slack that was applied on top of MaxRadius.
	Tolerance float64 `json:"tolerance"`

	// OpaquePixels is the number of pixels with non-zero alpha.
	OpaquePixels int `json:"opaque_pixels"`

	// HasCircle is true when no opaque pixel lies beyond MaxRadius+Tolerance.
	HasCircle bool `json:"has_circle"`

	// Violation is the first opaque pixel found outside the circle, if any.
	Violation *Point `json:"violation,omitempty"`
}

// CheckCircle reports whether every opaque pixel of g lies within a circle
// centered on the image, allowing tolerance pixels of slack.
//
// See MeasureCircle for the algorithm.
func CheckCircle(g imaging.Grid, tolerance float64) bool {
	return MeasureCircle(g, tolerance).HasCircle
}

// MeasureCircle runs the circle boundary check and returns its details.
//
// The check makes two full passes over the grid:
//
//  1. Find the largest distance from the center to any opaque pixel. The result
//     is clamped to min(width, height)/2 so stray pixels in the corners cannot
//     grow the circle beyond the inscribed one.
//  2. Look for an opaque pixel farther than that radius plus tolerance. The
//     scan stops at the first such pixel.
//
// The second pass depends on the global maximum of the first, so the passes
// cannot be merged.
//
// A grid with no opaque pixels has a radius of 0 and passes vacuously.
func MeasureCircle(g imaging.Grid, tolerance float64) CircleReport {
	width, height := g.Width(), g.Height()
	center := Center{X: float64(width) / 2, Y: float64(height) / 2}

	report := CircleReport{
		Center:    center,
		Tolerance: tolerance,
		HasCircle: true,
	}

	// Pass 1: farthest opaque pixel.
	maxRadius := 0.0
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if !g.RGBAAt(x, y).Opaque() {
				continue
			}
			report.OpaquePixels++
			maxRadius = math.Max(maxRadius, center.distance(x, y))
		}
	}

	maxRadius = math.Min(maxRadius, math.Min(center.X, center.Y))
	report.MaxRadius = maxRadius

	// Pass 2: anything beyond the radius plus tolerance fails the check.
	limit := maxRadius + tolerance
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if g.RGBAAt(x, y).Opaque() && center.distance(x, y) > limit {
				report.HasCircle = false
				report.Violation = &Point{X: x, Y: y}
				return report
			}
		}
	}

	return report
}

func (c Center) distance(x, y int) float64 {
	return math.Hypot(float64(x)-c.X, float64(y)-c.Y)
}
