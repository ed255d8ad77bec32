// Package imaging provides the pixel-level building blocks for badge verification.
//
// It hides image codecs behind small capabilities so the analysis code never
// touches a decoder directly:
//   - Decode and ImageCache turn files or byte streams into image.Image values
//   - Resizer produces resized working copies (disintegration/imaging or bild)
//   - Grid exposes a decoded image as a width×height matrix of RGBA pixels
//
// On top of Grid it implements the color math shared by the checks: RGBToHSL
// and AverageHSL.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// NewGrid always rebases an image so its top-left pixel is (0,0), whatever the
// bounds of the source image were.
//
// # Color Representation
//
// Pixels are 8-bit, non-premultiplied RGBA. HSL triples are rounded integers:
// Hue (0-359), Saturation (0-100), Lightness (0-100).
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Grid values are immutable snapshots and
// may be shared between goroutines.
package imaging
