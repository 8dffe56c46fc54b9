package transform

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/ironsheep/cropresize-mcp/internal/pixel"
)

// solidGrid returns a grid filled with one opaque colour.
func solidGrid(width, height int, r, g, b byte) *pixel.Grid {
	pix := make([]byte, width*height*pixel.Channels)
	for i := 0; i < len(pix); i += pixel.Channels {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 0xff
	}
	return &pixel.Grid{Width: width, Height: height, Pix: pix}
}

// indexGrid gives every pixel a distinct red/green pair equal to its x/y.
func indexGrid(width, height int) *pixel.Grid {
	pix := make([]byte, width*height*pixel.Channels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			off := (y*width + x) * pixel.Channels
			pix[off], pix[off+1], pix[off+2], pix[off+3] = byte(x), byte(y), 0, 0xff
		}
	}
	return &pixel.Grid{Width: width, Height: height, Pix: pix}
}

// nearPixel compares two RGBA samples allowing one unit of rounding error.
func nearPixel(got, want []byte) bool {
	for i := range want {
		d := int(got[i]) - int(want[i])
		if d < -1 || d > 1 {
			return false
		}
	}
	return true
}

func allResamplers(t *testing.T) []Resampler {
	t.Helper()

	var rs []Resampler
	for _, spec := range []struct{ backend, filter string }{
		{BackendImaging, FilterLinear},
		{BackendImaging, FilterLanczos},
		{BackendBild, FilterLinear},
		{BackendBild, FilterNearest},
		{BackendXDraw, FilterLinear},
		{BackendXDraw, FilterCatmullRom},
	} {
		r, err := NewResampler(spec.backend, spec.filter)
		if err != nil {
			t.Fatalf("NewResampler(%s, %s): %v", spec.backend, spec.filter, err)
		}
		rs = append(rs, r)
	}
	return rs
}

func TestCropAndResize_SameRatio(t *testing.T) {
	in := solidGrid(800, 600, 10, 200, 30)

	for _, r := range allResamplers(t) {
		t.Run(r.String(), func(t *testing.T) {
			out, err := CropAndResize(in, pixel.Dimensions{Width: 400, Height: 300}, Options{Resampler: r})
			if err != nil {
				t.Fatalf("CropAndResize failed: %v", err)
			}
			if out.Width != 400 || out.Height != 300 {
				t.Errorf("dimensions: got %dx%d, want 400x300", out.Width, out.Height)
			}
			if len(out.Pix) != 400*300*pixel.Channels {
				t.Errorf("length: got %d, want %d", len(out.Pix), 400*300*pixel.Channels)
			}
			// A flat colour stays flat under every filter, give or take rounding.
			for _, off := range []int{0, len(out.Pix) / 2, len(out.Pix) - pixel.Channels} {
				if !nearPixel(out.Pix[off:off+4], []byte{10, 200, 30, 255}) {
					t.Errorf("pixel at byte %d: got %v, want ~[10 200 30 255]", off, out.Pix[off:off+4])
				}
			}
		})
	}
}

func TestCropAndResize_Upscale(t *testing.T) {
	out, err := CropAndResize(solidGrid(4, 3, 1, 2, 3), pixel.Dimensions{Width: 40, Height: 30}, Options{})
	if err != nil {
		t.Fatalf("CropAndResize failed: %v", err)
	}
	if out.Width != 40 || out.Height != 30 || len(out.Pix) != 40*30*pixel.Channels {
		t.Errorf("got %dx%d (%d bytes), want 40x30", out.Width, out.Height, len(out.Pix))
	}
}

func TestCropAndResize_Identity(t *testing.T) {
	in := indexGrid(6, 4)

	out, err := CropAndResize(in, pixel.Dimensions{Width: 6, Height: 4}, Options{})
	if err != nil {
		t.Fatalf("CropAndResize failed: %v", err)
	}
	if !bytes.Equal(out.Pix, in.Pix) {
		t.Error("identity transform changed pixels")
	}

	out.Pix[0] = 0x7f
	if in.Pix[0] == 0x7f {
		t.Error("output aliases the input grid")
	}
}

func TestCropAndResize_CropOutOfBounds(t *testing.T) {
	tests := []struct {
		name    string
		in, out pixel.Dimensions
	}{
		{"wide photo into portrait frame", pixel.Dimensions{Width: 2000, Height: 1123}, pixel.Dimensions{Width: 720, Height: 1280}},
		{"square from wide", pixel.Dimensions{Width: 1000, Height: 500}, pixel.Dimensions{Width: 200, Height: 200}},
		{"one pixel short", pixel.Dimensions{Width: 1001, Height: 500}, pixel.Dimensions{Width: 200, Height: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := solidGrid(tt.in.Width, tt.in.Height, 0, 0, 0)
			out, err := CropAndResize(g, tt.out, Options{})
			if !errors.Is(err, pixel.ErrCropOutOfBounds) {
				t.Fatalf("error: got %v, want ErrCropOutOfBounds", err)
			}
			if out != nil {
				t.Error("no grid should be returned on failure")
			}
		})
	}
}

func TestCropAndResize_Cover(t *testing.T) {
	in := solidGrid(1000, 500, 50, 60, 70)

	for _, r := range allResamplers(t) {
		t.Run(r.String(), func(t *testing.T) {
			out, err := CropAndResize(in, pixel.Dimensions{Width: 200, Height: 200}, Options{Scaling: Cover, Resampler: r})
			if err != nil {
				t.Fatalf("CropAndResize failed: %v", err)
			}
			if out.Width != 200 || out.Height != 200 || len(out.Pix) != 200*200*pixel.Channels {
				t.Errorf("got %dx%d (%d bytes), want 200x200", out.Width, out.Height, len(out.Pix))
			}
		})
	}
}

func TestCropAndResize_CoverTakesCentre(t *testing.T) {
	// 8x2 -> 2x2 with cover: height already matches, so no resampling and a
	// pure crop of columns 3 and 4.
	in := indexGrid(8, 2)

	out, err := CropAndResize(in, pixel.Dimensions{Width: 2, Height: 2}, Options{Scaling: Cover})
	if err != nil {
		t.Fatalf("CropAndResize failed: %v", err)
	}

	want := []byte{
		3, 0, 0, 255, 4, 0, 0, 255,
		3, 1, 0, 255, 4, 1, 0, 255,
	}
	if !bytes.Equal(out.Pix, want) {
		t.Errorf("pixels:\n got %v\nwant %v", out.Pix, want)
	}
}

func TestCropAndResize_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		grid *pixel.Grid
		out  pixel.Dimensions
	}{
		{"empty grid", &pixel.Grid{}, pixel.Dimensions{Width: 10, Height: 10}},
		{"zero output width", solidGrid(4, 4, 0, 0, 0), pixel.Dimensions{Width: 0, Height: 4}},
		{"negative output height", solidGrid(4, 4, 0, 0, 0), pixel.Dimensions{Width: 4, Height: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropAndResize(tt.grid, tt.out, Options{})
			if !errors.Is(err, pixel.ErrInvalidDimensions) {
				t.Errorf("error: got %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestCropAndResize_CorruptGrid(t *testing.T) {
	g := &pixel.Grid{Width: 4, Height: 4, Pix: make([]byte, 10)}
	_, err := CropAndResize(g, pixel.Dimensions{Width: 2, Height: 2}, Options{})
	if !errors.Is(err, pixel.ErrInputSizeMismatch) {
		t.Errorf("error: got %v, want ErrInputSizeMismatch", err)
	}
}

func TestCropAndResize_DoesNotModifyInput(t *testing.T) {
	in := indexGrid(20, 10)
	before := append([]byte(nil), in.Pix...)

	if _, err := CropAndResize(in, pixel.Dimensions{Width: 10, Height: 10}, Options{Scaling: Cover}); err != nil {
		t.Fatalf("CropAndResize failed: %v", err)
	}
	if !bytes.Equal(in.Pix, before) {
		t.Error("input grid was modified")
	}
}

func TestApply_WrongResamplerSize(t *testing.T) {
	plan, err := NewPlan(pixel.Dimensions{Width: 10, Height: 10}, pixel.Dimensions{Width: 5, Height: 5}, Strict)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}

	_, err = Apply(solidGrid(10, 10, 0, 0, 0), plan, brokenResampler{})
	if err == nil {
		t.Fatal("expected error for a resampler that ignores the requested size")
	}
}

// brokenResampler always returns a 1x1 image.
type brokenResampler struct{}

func (brokenResampler) Resize(image.Image, int, int) image.Image {
	return image.NewNRGBA(image.Rect(0, 0, 1, 1))
}

func (brokenResampler) String() string { return "broken" }

func TestScale_IgnoresCropWindow(t *testing.T) {
	in := pixel.Dimensions{Width: 1000, Height: 500}
	out := pixel.Dimensions{Width: 200, Height: 200}

	plan, err := NewPlan(in, out, Strict)
	if !errors.Is(err, pixel.ErrCropOutOfBounds) {
		t.Fatalf("expected ErrCropOutOfBounds, got %v", err)
	}

	img, err := Scale(solidGrid(1000, 500, 0, 0, 0), plan, nil)
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("scaled size: got %dx%d, want 200x100", b.Dx(), b.Dy())
	}
}

func TestScale_BrokenResampler(t *testing.T) {
	plan, err := NewPlan(pixel.Dimensions{Width: 20, Height: 20}, pixel.Dimensions{Width: 10, Height: 10}, Strict)
	if err != nil {
		t.Fatalf("NewPlan failed: %v", err)
	}
	if _, err := Scale(solidGrid(20, 20, 0, 0, 0), plan, brokenResampler{}); err == nil {
		t.Fatal("expected error for a resampler that ignores the requested size")
	}
}
