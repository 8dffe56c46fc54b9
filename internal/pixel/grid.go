package pixel

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Channels is the number of bytes per pixel: red, green, blue, alpha.
const Channels = 4

// Dimensions is a width and height in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Validate reports ErrInvalidDimensions unless both sides are positive and
// the byte length of a grid this size fits in an int.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %dx%d, both sides must be positive", ErrInvalidDimensions, d.Width, d.Height)
	}
	if d.Height > math.MaxInt/Channels/d.Width {
		return fmt.Errorf("%w: %dx%d overflows the buffer length", ErrInvalidDimensions, d.Width, d.Height)
	}
	return nil
}

// Pixels returns Width*Height.
func (d Dimensions) Pixels() int {
	return d.Width * d.Height
}

// ByteLen returns the length of a buffer holding a grid of this size.
func (d Dimensions) ByteLen() int {
	return d.Width * d.Height * Channels
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Region is a rectangle inside a grid, given by its top-left corner and size.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Within reports whether the region lies entirely inside a grid of size d.
func (r Region) Within(d Dimensions) bool {
	return r.X >= 0 && r.Y >= 0 && r.Width >= 0 && r.Height >= 0 &&
		r.X+r.Width <= d.Width && r.Y+r.Height <= d.Height
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Grid is a width x height array of RGBA pixels stored row-major in Pix.
// len(Pix) is always Width*Height*Channels.
type Grid struct {
	Width  int
	Height int
	Pix    []byte
}

// Dimensions returns the grid size.
func (g *Grid) Dimensions() Dimensions {
	return Dimensions{Width: g.Width, Height: g.Height}
}

// Image returns an *image.NRGBA that shares Pix with the grid.
func (g *Grid) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    g.Pix,
		Stride: g.Width * Channels,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
}

// Decode copies buf into a new Grid of the given size.
//
// The buffer is read as row-major RGBA. Its length must be exactly
// width*height*Channels; anything else fails with ErrInputSizeMismatch and
// no grid is produced.
func Decode(buf []byte, width, height int) (*Grid, error) {
	dims := Dimensions{Width: width, Height: height}
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if want := dims.ByteLen(); len(buf) != want {
		return nil, fmt.Errorf("%w: buffer length %d, expected %d (%dx%dx%d)",
			ErrInputSizeMismatch, len(buf), want, width, height, Channels)
	}

	pix := make([]byte, len(buf))
	copy(pix, buf)
	return &Grid{Width: width, Height: height, Pix: pix}, nil
}

// Encode returns a copy of the grid's pixels as a flat RGBA buffer.
func Encode(g *Grid) []byte {
	out := make([]byte, len(g.Pix))
	copy(out, g.Pix)
	return out
}

// FromImage converts any image to a Grid anchored at (0,0).
//
// An *image.NRGBA whose rows are already packed is adopted without copying;
// everything else goes through imaging.Clone, which also un-premultiplies
// *image.RGBA sources.
func FromImage(img image.Image) *Grid {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == n.Rect.Dx()*Channels {
		size := n.Rect.Dx() * n.Rect.Dy() * Channels
		return &Grid{Width: n.Rect.Dx(), Height: n.Rect.Dy(), Pix: n.Pix[:size]}
	}
	n := imaging.Clone(img)
	return &Grid{Width: n.Rect.Dx(), Height: n.Rect.Dy(), Pix: n.Pix}
}
