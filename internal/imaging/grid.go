package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Grid is a read-only width×height matrix of RGBA pixels.
//
// Analysis functions depend only on this interface, never on a particular
// image codec. Coordinates are 0-based with the origin at the top-left corner;
// callers must keep 0 <= x < Width() and 0 <= y < Height().
type Grid interface {
	Width() int
	Height() int
	RGBAAt(x, y int) RGBAColor
}

// PixelGrid is a Grid backed by a non-premultiplied NRGBA buffer.
type PixelGrid struct {
	img *image.NRGBA
}

// NewGrid snapshots img into a PixelGrid.
//
// The source is cloned into non-premultiplied form with its bounds shifted to
// start at (0,0), so transparent pixels keep their stored color channels and
// later changes to img do not affect the grid.
func NewGrid(img image.Image) *PixelGrid {
	return &PixelGrid{img: imaging.Clone(img)}
}

// Width returns the number of pixel columns.
func (g *PixelGrid) Width() int {
	return g.img.Bounds().Dx()
}

// Height returns the number of pixel rows.
func (g *PixelGrid) Height() int {
	return g.img.Bounds().Dy()
}

// RGBAAt returns the pixel at (x, y).
func (g *PixelGrid) RGBAAt(x, y int) RGBAColor {
	i := g.img.PixOffset(x, y)
	p := g.img.Pix[i : i+4 : i+4]
	return RGBAColor{R: p[0], G: p[1], B: p[2], A: p[3]}
}
