package badge

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/badge-verify/internal/detection"
	"github.com/ironsheep/badge-verify/internal/imaging"
)

// Default resize target for the reported badge size.
const (
	DefaultWidth  = 512
	DefaultHeight = 512
)

// Loader turns a path into a decoded image. *imaging.ImageCache satisfies it.
type Loader interface {
	Load(path string) (image.Image, error)
}

// Options configures a Verifier.
type Options struct {
	// Tolerance is the circle check slack in pixels. Must not be negative.
	Tolerance float64

	// Width and Height are the resize target for the reported size.
	Width  int
	Height int

	// AnalyzeResized runs both checks on the resized copy instead of the
	// decoded original.
	AnalyzeResized bool

	// HappyRange is the accepted average color band. The zero value selects
	// detection.DefaultHappyRange.
	HappyRange detection.HappyRange
}

// DefaultOptions returns a 512×512 target, tolerance 5, checks on the original.
func DefaultOptions() Options {
	return Options{
		Tolerance:  detection.DefaultTolerance,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		HappyRange: detection.DefaultHappyRange(),
	}
}

// Validate rejects options no verification could run with.
func (o Options) Validate() error {
	if err := detection.ValidateTolerance(o.Tolerance); err != nil {
		return err
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("resize target must be positive, got %dx%d", o.Width, o.Height)
	}
	return o.HappyRange.Validate()
}

// Result is the outcome of verifying one badge.
type Result struct {
	// Width and Height are the dimensions of the resized working copy.
	Width  int `json:"width"`
	Height int `json:"height"`

	HasCircle      bool `json:"has_circle"`
	HasHappyColors bool `json:"has_happy_colors"`

	// AverageColor is the mean HSL color the happy check classified.
	AverageColor imaging.HSLColor `json:"average_color"`
	AverageHex   string           `json:"average_hex"`

	// Circle holds the details of the circle boundary check.
	Circle detection.CircleReport `json:"circle"`

	// AnalyzedResized is true when the checks ran on the resized copy.
	AnalyzedResized bool `json:"analyzed_resized"`

	// Image is the resized working copy.
	Image image.Image `json:"-"`
}

// Verifier checks badge images.
//
// A Verifier holds no per-call state and may be used from several goroutines
// if its Loader is safe for concurrent use.
type Verifier struct {
	loader  Loader
	resizer imaging.Resizer
	opts    Options
}

// New creates a Verifier. opts is validated here so Verify never fails on
// configuration.
func New(loader Loader, resizer imaging.Resizer, opts Options) (*Verifier, error) {
	if opts.HappyRange == (detection.HappyRange{}) {
		opts.HappyRange = detection.DefaultHappyRange()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if resizer == nil {
		r, err := imaging.NewResizer(imaging.DefaultResizer)
		if err != nil {
			return nil, err
		}
		resizer = r
	}
	return &Verifier{loader: loader, resizer: resizer, opts: opts}, nil
}

// Options returns the configuration the Verifier runs with.
func (v *Verifier) Options() Options {
	return v.opts
}

// Verify loads the image at path and verifies it.
//
// Load failures are returned wrapped and no partial result is produced.
func (v *Verifier) Verify(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if v.loader == nil {
		return nil, fmt.Errorf("verify %s: no loader configured", path)
	}
	img, err := v.loader.Load(path)
	if err != nil {
		return nil, fmt.Errorf("verify %s: %w", path, err)
	}
	return v.VerifyImage(ctx, img)
}

// VerifyImage verifies an already decoded image.
//
// The reported size is always that of the resized copy. Which pixels the checks
// see depends on Options.AnalyzeResized: by default they run on img as decoded.
func (v *Verifier) VerifyImage(ctx context.Context, img image.Image) (*Result, error) {
	resized := v.resizer.Resize(img, v.opts.Width, v.opts.Height)
	size := resized.Bounds()

	analyzed := img
	if v.opts.AnalyzeResized {
		analyzed = resized
	}
	grid := imaging.NewGrid(analyzed)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	circle := detection.MeasureCircle(grid, v.opts.Tolerance)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	happy, avg, err := detection.CheckHappyColors(grid, v.opts.HappyRange)
	if err != nil {
		return nil, fmt.Errorf("happy color check: %w", err)
	}

	return &Result{
		Width:           size.Dx(),
		Height:          size.Dy(),
		HasCircle:       circle.HasCircle,
		HasHappyColors:  happy,
		AverageColor:    avg,
		AverageHex:      avg.Hex(),
		Circle:          circle,
		AnalyzedResized: v.opts.AnalyzeResized,
		Image:           resized,
	}, nil
}
