// Package cropresize is the entry point a host calls with a raw RGBA buffer.
//
// It ties the pixel adapter to the transform stages:
//
//	buffer -> pixel.Decode -> transform.CropAndResize -> pixel.Encode -> buffer
//
// and adds the limits and logging that belong at the boundary. It never
// decodes compressed formats; the host hands it pixels that are already
// expanded to RGBA.
package cropresize

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/cropresize-mcp/internal/pixel"
	"github.com/ironsheep/cropresize-mcp/internal/transform"
)

// Error kind names reported by Kind.
const (
	KindInputSizeMismatch = "InputSizeMismatch"
	KindInvalidDimensions = "InvalidDimensions"
	KindCropOutOfBounds   = "CropOutOfBounds"
	KindInternal          = "Internal"
)

// Kind names the failure category of err, or KindInternal for anything that
// is not an input error.
func Kind(err error) string {
	switch {
	case errors.Is(err, pixel.ErrInputSizeMismatch):
		return KindInputSizeMismatch
	case errors.Is(err, pixel.ErrInvalidDimensions):
		return KindInvalidDimensions
	case errors.Is(err, pixel.ErrCropOutOfBounds):
		return KindCropOutOfBounds
	default:
		return KindInternal
	}
}

// Engine runs crop-and-resize calls with a fixed resampler, scaling mode and
// size limit. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	opts      transform.Options
	maxPixels int
	log       logrus.FieldLogger
}

// New creates an Engine. maxPixels bounds the input, intermediate and output
// pixel counts; zero or less disables the bound. A nil logger discards.
func New(opts transform.Options, maxPixels int, log logrus.FieldLogger) *Engine {
	if opts.Resampler == nil {
		opts.Resampler = transform.DefaultResampler()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{opts: opts, maxPixels: maxPixels, log: log}
}

// Options returns the transform options the engine was built with.
func (e *Engine) Options() transform.Options {
	return e.opts
}

// CropAndResizeImage resizes the RGBA buffer input, of size inputWidth x
// inputHeight, so that its centre fills outputWidth x outputHeight, and
// returns the result as a new RGBA buffer of outputWidth*outputHeight*4
// bytes.
//
// Every failure wraps pixel.ErrInvalidDimensions, pixel.ErrInputSizeMismatch
// or pixel.ErrCropOutOfBounds; no partial buffer is ever returned.
func (e *Engine) CropAndResizeImage(input []byte, inputWidth, inputHeight, outputWidth, outputHeight int) ([]byte, error) {
	in := pixel.Dimensions{Width: inputWidth, Height: inputHeight}
	out := pixel.Dimensions{Width: outputWidth, Height: outputHeight}

	if err := e.checkSizes(in, out); err != nil {
		return nil, err
	}
	g, err := pixel.Decode(input, inputWidth, inputHeight)
	if err != nil {
		return nil, err
	}

	result, err := e.run(g, out)
	if err != nil {
		return nil, err
	}
	return pixel.Encode(result), nil
}

// CropAndResizeGrid is CropAndResizeImage for a caller that already holds a
// grid.
func (e *Engine) CropAndResizeGrid(g *pixel.Grid, out pixel.Dimensions) (*pixel.Grid, error) {
	in := g.Dimensions()
	if err := e.checkSizes(in, out); err != nil {
		return nil, err
	}
	if len(g.Pix) != in.ByteLen() {
		return nil, fmt.Errorf("%w: grid holds %d bytes, expected %d for %v",
			pixel.ErrInputSizeMismatch, len(g.Pix), in.ByteLen(), in)
	}
	return e.run(g, out)
}

// Plan validates a call and returns its geometry without touching pixels.
func (e *Engine) Plan(in, out pixel.Dimensions) (transform.Plan, error) {
	if err := e.checkSizes(in, out); err != nil {
		return transform.Plan{}, err
	}
	return e.plan(in, out)
}

// Preview is the scaled image of a call together with the crop window that
// would be cut from it.
type Preview struct {
	Scaled image.Image
	Plan   transform.Plan

	// Fits is false when the window leaves the scaled image, which the real
	// call reports as pixel.ErrCropOutOfBounds.
	Fits bool
}

// Preview scales g the way CropAndResizeGrid would but stops before cropping.
// A crop window that does not fit is reported through Preview.Fits rather
// than as an error, so the caller can show where it lands. When the scaled
// size itself has a zero side there is nothing to draw and the
// pixel.ErrCropOutOfBounds error is returned as is.
func (e *Engine) Preview(g *pixel.Grid, out pixel.Dimensions) (*Preview, error) {
	in := g.Dimensions()
	if err := e.checkSizes(in, out); err != nil {
		return nil, err
	}
	if len(g.Pix) != in.ByteLen() {
		return nil, fmt.Errorf("%w: grid holds %d bytes, expected %d for %v",
			pixel.ErrInputSizeMismatch, len(g.Pix), in.ByteLen(), in)
	}

	plan, err := e.plan(in, out)
	fits := err == nil
	if err != nil && !errors.Is(err, pixel.ErrCropOutOfBounds) {
		return nil, err
	}
	if !fits {
		if plan.Scaled.Width <= 0 || plan.Scaled.Height <= 0 {
			return nil, err
		}
		// plan stops at the bounds check, before the limit on the scaled size.
		if err := e.checkLimit("scaled", plan.Scaled); err != nil {
			return nil, err
		}
	}

	scaled, err := transform.Scale(g, plan, e.opts.Resampler)
	if err != nil {
		return nil, err
	}
	return &Preview{Scaled: scaled, Plan: plan, Fits: fits}, nil
}

func (e *Engine) plan(in, out pixel.Dimensions) (transform.Plan, error) {
	plan, err := transform.NewPlan(in, out, e.opts.Scaling)
	if err != nil {
		return plan, err
	}
	if err := e.checkLimit("scaled", plan.Scaled); err != nil {
		return plan, err
	}
	return plan, nil
}

func (e *Engine) run(g *pixel.Grid, out pixel.Dimensions) (*pixel.Grid, error) {
	plan, err := e.plan(g.Dimensions(), out)
	if err != nil {
		return nil, err
	}
	return e.apply(g, plan)
}

// checkSizes rejects non-positive or oversized input and output sizes.
func (e *Engine) checkSizes(in, out pixel.Dimensions) error {
	if err := in.Validate(); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if err := e.checkLimit("input", in); err != nil {
		return err
	}
	return e.checkLimit("output", out)
}

func (e *Engine) apply(g *pixel.Grid, plan transform.Plan) (*pixel.Grid, error) {
	start := time.Now()

	result, err := transform.Apply(g, plan, e.opts.Resampler)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"input":     plan.Input.String(),
		"output":    plan.Output.String(),
		"scaled":    plan.Scaled.String(),
		"crop":      plan.Crop.String(),
		"mode":      plan.Mode.String(),
		"resampler": e.opts.Resampler.String(),
		"elapsed":   time.Since(start),
	}).Debug("crop and resize")

	return result, nil
}

// checkLimit applies the pixel bound to a size. Sizes with a zero or
// negative side hold no pixels and always pass.
func (e *Engine) checkLimit(what string, d pixel.Dimensions) error {
	if e.maxPixels <= 0 || d.Width <= 0 || d.Height <= 0 {
		return nil
	}
	if d.Width > e.maxPixels/d.Height {
		return fmt.Errorf("%s: %w: %v exceeds the limit of %d pixels",
			what, pixel.ErrInvalidDimensions, d, e.maxPixels)
	}
	return nil
}
