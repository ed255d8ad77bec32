package badge

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/badge-verify/internal/detection"
	"github.com/ironsheep/badge-verify/internal/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var yellow = color.NRGBA{255, 255, 0, 255}

// discImage returns a transparent black canvas with a centered filled disc.
func discImage(width, height int, radius float64, c color.NRGBA) *image.NRGBA {
	return discOn(width, height, radius, c, color.NRGBA{})
}

// discOn paints a centered filled disc over a bg-colored canvas.
func discOn(width, height int, radius float64, c, bg color.NRGBA) *image.NRGBA {
	img := solidImage(width, height, bg)
	cx, cy := float64(width)/2, float64(height)/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if math.Hypot(float64(x)-cx, float64(y)-cy) <= radius {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return img
}

func solidImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// mapLoader serves images from memory.
type mapLoader map[string]image.Image

func (m mapLoader) Load(path string) (image.Image, error) {
	img, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return img, nil
}

// fixedResizer ignores its input and returns out.
func fixedResizer(out image.Image) imaging.Resizer {
	return imaging.ResizerFunc(func(image.Image, int, int) image.Image { return out })
}

func newTestVerifier(t *testing.T, loader Loader, resizer imaging.Resizer, opts Options) *Verifier {
	t.Helper()
	v, err := New(loader, resizer, opts)
	require.NoError(t, err)
	return v
}

func TestVerify_YellowDisc(t *testing.T) {
	loader := mapLoader{"badge.png": discImage(10, 10, 5, yellow)}
	v := newTestVerifier(t, loader, nil, DefaultOptions())

	res, err := v.Verify(context.Background(), "badge.png")
	require.NoError(t, err)

	assert.Equal(t, 512, res.Width)
	assert.Equal(t, 512, res.Height)
	assert.True(t, res.HasCircle)
	assert.True(t, res.HasHappyColors)
	// 79 yellow pixels among 21 transparent black ones
	assert.Equal(t, imaging.HSLColor{H: 47, S: 79, L: 40}, res.AverageColor)
	assert.Equal(t, 79, res.Circle.OpaquePixels)
	assert.False(t, res.AnalyzedResized)
	require.NotNil(t, res.Image)
	assert.Equal(t, image.Rect(0, 0, 512, 512), res.Image.Bounds())
}

func TestVerify_FromPNGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badge.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, discImage(64, 64, 30, yellow)))
	require.NoError(t, f.Close())

	for _, name := range imaging.ResizerNames() {
		t.Run(name, func(t *testing.T) {
			resizer, err := imaging.NewResizer(name)
			require.NoError(t, err)
			v := newTestVerifier(t, imaging.NewImageCache(), resizer, DefaultOptions())

			res, err := v.Verify(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, 512, res.Width)
			assert.Equal(t, 512, res.Height)
			assert.True(t, res.HasCircle)
		})
	}
}

func TestVerify_AllTransparent(t *testing.T) {
	loader := mapLoader{"clear.png": image.NewNRGBA(image.Rect(0, 0, 8, 8))}
	v := newTestVerifier(t, loader, nil, DefaultOptions())

	res, err := v.Verify(context.Background(), "clear.png")
	require.NoError(t, err)

	assert.True(t, res.HasCircle, "no opaque pixel can leave the circle")
	assert.False(t, res.HasHappyColors)
	assert.Equal(t, imaging.HSLColor{}, res.AverageColor)
	assert.Equal(t, 0.0, res.Circle.MaxRadius)
}

func TestVerify_EmptyImage(t *testing.T) {
	loader := mapLoader{"empty.png": image.NewNRGBA(image.Rect(0, 0, 0, 0))}
	v := newTestVerifier(t, loader, nil, DefaultOptions())

	res, err := v.Verify(context.Background(), "empty.png")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, imaging.ErrEmptyImage)
}

func TestVerify_LoadFailure(t *testing.T) {
	v := newTestVerifier(t, mapLoader{}, nil, DefaultOptions())

	res, err := v.Verify(context.Background(), "missing.png")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.png")
}

func TestVerify_DecodeFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("\x89PNG but truncated"), 0o644))

	v := newTestVerifier(t, imaging.NewImageCache(), nil, DefaultOptions())
	res, err := v.Verify(context.Background(), path)
	assert.Nil(t, res)
	assert.Error(t, err)
}

func TestVerify_NoLoader(t *testing.T) {
	v := newTestVerifier(t, nil, nil, DefaultOptions())
	_, err := v.Verify(context.Background(), "badge.png")
	assert.Error(t, err)
}

func TestVerify_Canceled(t *testing.T) {
	v := newTestVerifier(t, mapLoader{"badge.png": discImage(10, 10, 5, yellow)}, nil, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := v.Verify(ctx, "badge.png")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVerifyImage_AnalyzesOriginalByDefault(t *testing.T) {
	// Transparent pixels keep a yellow color so the average stays yellow
	original := discOn(40, 40, 18, yellow, color.NRGBA{255, 255, 0, 0})
	// The stand-in "resized" copy is an opaque red square: neither round nor happy
	resized := solidImage(512, 512, color.NRGBA{255, 0, 0, 255})

	v := newTestVerifier(t, nil, fixedResizer(resized), DefaultOptions())
	res, err := v.VerifyImage(context.Background(), original)
	require.NoError(t, err)

	assert.Equal(t, 512, res.Width)
	assert.True(t, res.HasCircle)
	assert.True(t, res.HasHappyColors)
	assert.False(t, res.AnalyzedResized)
	assert.Equal(t, 40.0/2, res.Circle.Center.X)
}

func TestVerifyImage_AnalyzeResized(t *testing.T) {
	original := discOn(40, 40, 18, yellow, color.NRGBA{255, 255, 0, 0})
	resized := solidImage(512, 512, color.NRGBA{255, 0, 0, 255})

	opts := DefaultOptions()
	opts.AnalyzeResized = true
	v := newTestVerifier(t, nil, fixedResizer(resized), opts)

	res, err := v.VerifyImage(context.Background(), original)
	require.NoError(t, err)

	assert.Equal(t, 512, res.Width)
	assert.False(t, res.HasCircle)
	assert.False(t, res.HasHappyColors)
	assert.True(t, res.AnalyzedResized)
	assert.Equal(t, 256.0, res.Circle.Center.X)
	assert.Equal(t, imaging.HSLColor{H: 0, S: 100, L: 50}, res.AverageColor)
}

func TestVerifyImage_CustomSize(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 128, 64
	v := newTestVerifier(t, nil, nil, opts)

	res, err := v.VerifyImage(context.Background(), discImage(32, 32, 16, yellow))
	require.NoError(t, err)
	assert.Equal(t, 128, res.Width)
	assert.Equal(t, 64, res.Height)
}

func TestVerifyImage_HappyFixtureFromHSL(t *testing.T) {
	r, g, b := colorful.Hsl(60, 0.75, 0.6).RGB255()
	v := newTestVerifier(t, nil, nil, DefaultOptions())

	res, err := v.VerifyImage(context.Background(), solidImage(64, 64, color.NRGBA{r, g, b, 255}))
	require.NoError(t, err)

	assert.True(t, res.HasHappyColors)
	assert.InDelta(t, 60, res.AverageColor.H, 1)
	assert.InDelta(t, 75, res.AverageColor.S, 1)
	assert.InDelta(t, 60, res.AverageColor.L, 1)
	// A solid square is not a circle
	assert.False(t, res.HasCircle)
}

func TestVerifyImage_CustomHappyRange(t *testing.T) {
	opts := DefaultOptions()
	opts.HappyRange = detection.HappyRange{
		Hue:        detection.Interval{Min: 0, Max: 10},
		Saturation: detection.Interval{Min: 90, Max: 100},
		Lightness:  detection.Interval{Min: 40, Max: 60},
	}
	v := newTestVerifier(t, nil, nil, opts)

	res, err := v.VerifyImage(context.Background(), solidImage(8, 8, color.NRGBA{255, 0, 0, 255}))
	require.NoError(t, err)
	assert.True(t, res.HasHappyColors)
}

func TestNew_Options(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Options)
		wantErr bool
	}{
		{"defaults", func(*Options) {}, false},
		{"zero tolerance", func(o *Options) { o.Tolerance = 0 }, false},
		{"negative tolerance", func(o *Options) { o.Tolerance = -1 }, true},
		{"NaN tolerance", func(o *Options) { o.Tolerance = math.NaN() }, true},
		{"zero width", func(o *Options) { o.Width = 0 }, true},
		{"negative height", func(o *Options) { o.Height = -5 }, true},
		{"inverted range", func(o *Options) { o.HappyRange.Hue = detection.Interval{Min: 90, Max: 30} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := New(nil, nil, opts)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_ZeroHappyRangeUsesDefault(t *testing.T) {
	opts := DefaultOptions()
	opts.HappyRange = detection.HappyRange{}

	v := newTestVerifier(t, nil, nil, opts)
	assert.Equal(t, detection.DefaultHappyRange(), v.Options().HappyRange)
}

func TestResult_JSON(t *testing.T) {
	v := newTestVerifier(t, nil, nil, DefaultOptions())
	res, err := v.VerifyImage(context.Background(), discImage(10, 10, 5, yellow))
	require.NoError(t, err)

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, 512.0, m["width"])
	assert.Equal(t, 512.0, m["height"])
	assert.Equal(t, true, m["has_circle"])
	assert.Equal(t, true, m["has_happy_colors"])
	assert.NotContains(t, m, "Image")
	assert.Contains(t, m, "circle")
}
