// Package detection implements the two badge checks that run over a pixel grid.
//
// # Circle Boundary
//
// MeasureCircle (and its boolean shortcut CheckCircle) decides whether every
// opaque pixel lies inside a circle centered on the image's geometric center.
// The radius is not given by the caller: it is measured as the distance to the
// farthest opaque pixel, capped at the inscribed circle, and a tolerance in
// pixels is added on top. Circles at other positions are not detected.
//
// # Happy Colors
//
// CheckHappyColors averages the HSL color of every pixel (see
// imaging.AverageHSL) and tests it against a HappyRange. DefaultHappyRange holds
// the built-in band; callers may pass their own.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Distances are Euclidean, measured from pixel coordinates to the real-valued
// center (width/2, height/2).
package detection
