package host

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ironsheep/cropresize-mcp/internal/pixel"
)

// createTestImage writes a solid-colour PNG into dir and returns its path.
func createTestImage(t *testing.T, dir, name string, width, height int, c color.Color) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.Len() != 0 {
		t.Errorf("new cache holds %d images", cache.Len())
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, t.TempDir(), "red.png", 30, 20, color.NRGBA{255, 0, 0, 255})

	g1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g1.Width != 30 || g1.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", g1.Width, g1.Height)
	}
	if len(g1.Pix) != 30*20*pixel.Channels {
		t.Errorf("length: got %d, want %d", len(g1.Pix), 30*20*pixel.Channels)
	}
	if !bytes.Equal(g1.Pix[:4], []byte{255, 0, 0, 255}) {
		t.Errorf("first pixel: got %v, want [255 0 0 255]", g1.Pix[:4])
	}

	g2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if g1 != g2 {
		t.Error("second Load did not return cached grid")
	}
}

func TestImageCache_Load_Errors(t *testing.T) {
	cache := NewImageCache()

	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := cache.Load(bad); err == nil {
		t.Error("Load should fail for invalid image data")
	}
	if cache.Len() != 0 {
		t.Errorf("failed loads should not be cached, have %d", cache.Len())
	}
}

func TestImageCache_TranslucentPixelsStayUnpremultiplied(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, t.TempDir(), "half.png", 2, 2, color.NRGBA{200, 100, 50, 128})

	g, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(g.Pix[:4], []byte{200, 100, 50, 128}) {
		t.Errorf("first pixel: got %v, want [200 100 50 128]", g.Pix[:4])
	}
}

func TestImageCache_EvictAndClear(t *testing.T) {
	cache := NewImageCache()
	dir := t.TempDir()
	a := createTestImage(t, dir, "a.png", 4, 4, color.White)
	b := createTestImage(t, dir, "b.png", 4, 4, color.Black)

	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", cache.Len())
	}

	cache.Evict(a)
	cache.Evict("/nonexistent/path")
	if cache.Len() != 1 {
		t.Errorf("after Evict: got %d, want 1", cache.Len())
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after Clear: got %d, want 0", cache.Len())
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	path := createTestImage(t, t.TempDir(), "grey.png", 16, 16, color.NRGBA{128, 128, 128, 255})

	var decodes atomic.Int32
	cache.loader = func(p string) (*pixel.Grid, error) {
		decodes.Add(1)
		return decodeFile(p)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load failed: %v", err)
	}
	if decodes.Load() == 0 {
		t.Error("loader never called")
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}
