package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Decode reads and decodes a single image from r.
//
// Supported formats are PNG, JPEG, GIF, BMP, TIFF and WebP. The returned
// format name is the one registered by the matching decoder (e.g. "png").
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

type cachedImage struct {
	img    image.Image
	format string
}

// ImageCache keeps decoded badge images keyed by the path they were loaded
// from, so verifying the same file twice reads it from disk once.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// Cached images stay in memory until removed via Evict() or Clear(). Long-running
// processes (the MCP server) should evict images they no longer need.
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("badge.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	grid := imaging.NewGrid(img)
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]cachedImage
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]cachedImage),
	}
}

// Load returns the image at path, decoding it from disk on first use.
//
// The image is cached using the exact path string provided, so relative and
// absolute paths to the same file are separate entries. Errors from opening or
// decoding the file are returned wrapped; nothing is cached on failure.
func (c *ImageCache) Load(path string) (image.Image, error) {
	entry, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return entry.img, nil
}

func (c *ImageCache) load(path string) (cachedImage, error) {
	c.mu.RLock()
	entry, ok := c.images[path]
	c.mu.RUnlock()
	if ok {
		return entry, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cachedImage{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := Decode(f)
	if err != nil {
		return cachedImage{}, fmt.Errorf("%s: %w", path, err)
	}

	entry = cachedImage{img: img, format: format}
	c.mu.Lock()
	c.images[path] = entry
	c.mu.Unlock()

	return entry, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]cachedImage)
	c.mu.Unlock()
}

// Evict removes the image loaded from path. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the name of the decoder that read the file: "png", "jpeg",
	// "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded color model can carry transparency.
	// Badges without alpha are fully opaque, so every pixel counts toward the
	// circle check.
	HasAlpha bool `json:"has_alpha"`

	// OpaquePixels is the number of pixels with non-zero alpha.
	OpaquePixels int `json:"opaque_pixels"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image through cache and describes it.
//
// The format is the one reported by the decoder, not guessed from the file
// extension.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	entry, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	grid := NewGrid(entry.img)
	opaque := 0
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			if grid.RGBAAt(x, y).Opaque() {
				opaque++
			}
		}
	}

	return &ImageInfo{
		Width:         grid.Width(),
		Height:        grid.Height(),
		Format:        entry.format,
		HasAlpha:      hasAlphaModel(entry.img),
		OpaquePixels:  opaque,
		FileSizeBytes: stat.Size(),
	}, nil
}

func hasAlphaModel(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64, *image.Paletted:
		return true
	}
	return false
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image, loading it into cache if
// needed.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
