package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/cropresize-mcp/internal/pixel"
)

// Plan records the geometry of one crop-and-resize call.
type Plan struct {
	Input  pixel.Dimensions `json:"input"`
	Output pixel.Dimensions `json:"output"`
	Scaled pixel.Dimensions `json:"scaled"`
	Crop   pixel.Region     `json:"crop"`
	Mode   Scaling          `json:"mode"`
}

// AspectScale returns the size the input is resized to before cropping.
//
// When the input is relatively wider than the output the width is pinned to
// the output width, otherwise the height is pinned to the output height. The
// free side keeps the input aspect ratio, rounded down and possibly to zero
// for extreme ratios. Both sizes must be positive and the cross products
// in.Width*out.Height and in.Height*out.Width must fit in an int; NewPlan
// checks both before calling.
func AspectScale(in, out pixel.Dimensions) pixel.Dimensions {
	if in.Width*out.Height > in.Height*out.Width {
		return pixel.Dimensions{
			Width:  out.Width,
			Height: in.Height * out.Width / in.Width,
		}
	}
	return pixel.Dimensions{
		Width:  in.Width * out.Height / in.Height,
		Height: out.Height,
	}
}

// CoverScale is AspectScale with the free side rounded up instead of down,
// so the result covers out on both axes and the crop always fits.
func CoverScale(in, out pixel.Dimensions) pixel.Dimensions {
	if in.Width*out.Height > in.Height*out.Width {
		return pixel.Dimensions{
			Width:  ceilDiv(in.Width*out.Height, in.Height),
			Height: out.Height,
		}
	}
	return pixel.Dimensions{
		Width:  out.Width,
		Height: ceilDiv(in.Height*out.Width, in.Width),
	}
}

// ceilDiv rounds a/b up for a >= 0 and b > 0 without forming a+b-1.
func ceilDiv(a, b int) int {
	if a == 0 {
		return 0
	}
	return (a-1)/b + 1
}

// floorDiv rounds a/b toward negative infinity for b > 0.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// CenterCrop returns the out-sized window centred in a grid of size scaled.
// The origin is floored, so odd margins leave the extra pixel at the
// bottom/right, and a negative odd margin rounds away from zero. The window
// is not checked against scaled.
func CenterCrop(scaled, out pixel.Dimensions) pixel.Region {
	return pixel.Region{
		X:      floorDiv(scaled.Width-out.Width, 2),
		Y:      floorDiv(scaled.Height-out.Height, 2),
		Width:  out.Width,
		Height: out.Height,
	}
}

// Scaling selects how the intermediate size is computed.
type Scaling int

const (
	// Strict pins one side to the output and floors the other (AspectScale).
	// Any aspect mismatch leaves the crop short on one axis and fails.
	Strict Scaling = iota

	// Cover resizes until both sides reach the output (CoverScale) and
	// crops away the excess.
	Cover
)

// ParseScaling maps "strict" or "cover" to a Scaling.
func ParseScaling(s string) (Scaling, error) {
	switch s {
	case "strict", "":
		return Strict, nil
	case "cover":
		return Cover, nil
	}
	return Strict, fmt.Errorf("unknown scaling mode %q (want strict or cover)", s)
}

// MarshalText encodes the mode by name.
func (s Scaling) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s Scaling) String() string {
	if s == Cover {
		return "cover"
	}
	return "strict"
}

// NewPlan validates both sizes and computes the scale and crop for them.
//
// Errors:
//   - pixel.ErrInvalidDimensions if any side is not positive, or the sizes
//     are too large to compare without overflow
//   - pixel.ErrCropOutOfBounds if the crop window does not fit inside the
//     scaled grid
func NewPlan(in, out pixel.Dimensions, mode Scaling) (Plan, error) {
	if err := in.Validate(); err != nil {
		return Plan{}, fmt.Errorf("input: %w", err)
	}
	if err := out.Validate(); err != nil {
		return Plan{}, fmt.Errorf("output: %w", err)
	}
	if in.Width > math.MaxInt/out.Height || in.Height > math.MaxInt/out.Width {
		return Plan{}, fmt.Errorf("%w: %v and %v overflow the aspect comparison",
			pixel.ErrInvalidDimensions, in, out)
	}

	scaled := AspectScale(in, out)
	if mode == Cover {
		scaled = CoverScale(in, out)
	}
	crop := CenterCrop(scaled, out)
	p := Plan{Input: in, Output: out, Scaled: scaled, Crop: crop, Mode: mode}

	if !crop.Within(scaled) {
		return p, fmt.Errorf("%w: region %v does not fit in %v scaled from %v",
			pixel.ErrCropOutOfBounds, crop, scaled, in)
	}
	return p, nil
}

// Identity reports whether the plan leaves the image untouched.
func (p Plan) Identity() bool {
	return p.Scaled == p.Input && p.Scaled == p.Output
}
