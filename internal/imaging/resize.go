package imaging

import (
	"fmt"
	"image"
	"sort"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// Resizer produces a resized working copy of an image. The source image is
// never modified.
type Resizer interface {
	Resize(img image.Image, width, height int) image.Image
}

// ResizerFunc adapts a plain function to the Resizer interface.
type ResizerFunc func(img image.Image, width, height int) image.Image

// Resize calls f(img, width, height).
func (f ResizerFunc) Resize(img image.Image, width, height int) image.Image {
	return f(img, width, height)
}

// Names of the built-in resize backends.
const (
	ResizerImaging = "imaging"
	ResizerBild    = "bild"
)

// DefaultResizer is the backend used when none is configured.
const DefaultResizer = ResizerImaging

var resizers = map[string]Resizer{
	// Bilinear in both backends.
	ResizerImaging: ResizerFunc(func(img image.Image, width, height int) image.Image {
		return imaging.Resize(img, width, height, imaging.Linear)
	}),
	ResizerBild: ResizerFunc(func(img image.Image, width, height int) image.Image {
		return transform.Resize(img, width, height, transform.Linear)
	}),
}

// NewResizer returns the built-in resize backend with the given name.
// An empty name selects DefaultResizer.
func NewResizer(name string) (Resizer, error) {
	if name == "" {
		name = DefaultResizer
	}
	r, ok := resizers[name]
	if !ok {
		return nil, fmt.Errorf("unknown resizer %q (available: %v)", name, ResizerNames())
	}
	return r, nil
}

// ResizerNames lists the built-in resize backends in sorted order.
func ResizerNames() []string {
	names := make([]string, 0, len(resizers))
	for name := range resizers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
