package host

import (
	"fmt"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"sync"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/cropresize-mcp/internal/pixel"
)

// ImageCache keeps decoded RGBA grids keyed by file path so repeated calls on
// the same file skip the disk read and decode.
//
// Entries stay until Evict or Clear is called.
type ImageCache struct {
	mu     sync.RWMutex
	grids  map[string]*pixel.Grid
	loader func(path string) (*pixel.Grid, error)
}

// NewImageCache creates an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		grids:  make(map[string]*pixel.Grid),
		loader: decodeFile,
	}
}

// Load returns the RGBA grid for path, decoding the file on first use.
//
// Supported formats are those imaging can open: PNG, JPEG, GIF, BMP and TIFF.
// The cache key is the path string exactly as given.
func (c *ImageCache) Load(path string) (*pixel.Grid, error) {
	c.mu.RLock()
	if g, ok := c.grids[path]; ok {
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()

	g, err := c.loader(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.grids[path] = g
	c.mu.Unlock()

	return g, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.grids)
}

// Clear removes every cached image.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.grids = make(map[string]*pixel.Grid)
	c.mu.Unlock()
}

// Evict removes one image. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.grids, path)
	c.mu.Unlock()
}

func decodeFile(path string) (*pixel.Grid, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return pixel.FromImage(img), nil
}
