package transform

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/cropresize-mcp/internal/pixel"
)

// Options tunes CropAndResize. The zero value is Strict scaling with
// DefaultResampler.
type Options struct {
	Scaling   Scaling
	Resampler Resampler
}

// CropAndResize scales g so its aspect ratio is kept and then cuts the centred
// out-sized region from the result.
//
// The returned grid is always out.Width x out.Height with pixel.Channels
// channels, and is newly allocated; g is not modified. Failures wrap
// pixel.ErrInputSizeMismatch, pixel.ErrInvalidDimensions or
// pixel.ErrCropOutOfBounds and are detected before any resampling happens.
func CropAndResize(g *pixel.Grid, out pixel.Dimensions, opts Options) (*pixel.Grid, error) {
	in := g.Dimensions()
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	if len(g.Pix) != in.ByteLen() {
		return nil, fmt.Errorf("%w: grid holds %d bytes, expected %d for %v",
			pixel.ErrInputSizeMismatch, len(g.Pix), in.ByteLen(), in)
	}

	plan, err := NewPlan(in, out, opts.Scaling)
	if err != nil {
		return nil, err
	}
	return Apply(g, plan, opts.Resampler)
}

// Apply executes a plan produced by NewPlan against g. A nil Resampler means
// DefaultResampler.
func Apply(g *pixel.Grid, plan Plan, r Resampler) (*pixel.Grid, error) {
	if r == nil {
		r = DefaultResampler()
	}
	if plan.Identity() {
		return &pixel.Grid{Width: g.Width, Height: g.Height, Pix: pixel.Encode(g)}, nil
	}

	resized, err := Scale(g, plan, r)
	if err != nil {
		return nil, err
	}

	b := resized.Bounds()
	rect := plan.Crop.Rect().Add(b.Min)
	if !rect.In(b) {
		return nil, fmt.Errorf("%w: region %v does not fit in %v", pixel.ErrCropOutOfBounds, plan.Crop, plan.Scaled)
	}
	if rect == b {
		return pixel.FromImage(resized), nil
	}
	return pixel.FromImage(imaging.Crop(resized, rect)), nil
}

// Scale resizes g to plan.Scaled without cropping. The crop window is not
// checked, so Scale also serves plans that NewPlan rejected with
// pixel.ErrCropOutOfBounds. A nil Resampler means DefaultResampler.
func Scale(g *pixel.Grid, plan Plan, r Resampler) (image.Image, error) {
	if r == nil {
		r = DefaultResampler()
	}

	var resized image.Image = g.Image()
	if plan.Scaled != plan.Input {
		resized = r.Resize(resized, plan.Scaled.Width, plan.Scaled.Height)
	}

	b := resized.Bounds()
	if got := (pixel.Dimensions{Width: b.Dx(), Height: b.Dy()}); got != plan.Scaled {
		return nil, fmt.Errorf("resampler %v produced %v, expected %v", r, got, plan.Scaled)
	}
	return resized, nil
}
