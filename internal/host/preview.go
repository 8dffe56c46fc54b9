package host

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/cropresize-mcp/internal/pixel"
)

// DefaultOutlineColor is used when a preview request names no colour.
const DefaultOutlineColor = "#ff0000"

// PreviewImage is a PNG of a scaled image with a crop window outlined on it.
type PreviewImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	// ScaledX and ScaledY locate the scaled image's top-left corner in the
	// preview. They are non-zero only when the window starts left of or above
	// the image.
	ScaledX int `json:"scaled_x"`
	ScaledY int `json:"scaled_y"`
}

// ParseOutlineColor parses "#rrggbb". An empty string gives
// DefaultOutlineColor.
func ParseOutlineColor(hex string) (color.NRGBA, error) {
	if hex == "" {
		hex = DefaultOutlineColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// DrawCropOutline copies scaled onto a transparent canvas large enough to
// hold both the image and crop, then draws a one pixel border just inside
// crop. It returns the canvas and where the image's origin landed on it.
func DrawCropOutline(scaled image.Image, crop pixel.Region, outline color.NRGBA) (*image.NRGBA, image.Point) {
	sb := scaled.Bounds()
	imgRect := image.Rect(0, 0, sb.Dx(), sb.Dy())
	cropRect := crop.Rect()
	union := imgRect.Union(cropRect)

	at := imgRect.Min.Sub(union.Min)
	canvas := imaging.New(union.Dx(), union.Dy(), color.NRGBA{})
	canvas = imaging.Paste(canvas, scaled, at)

	r := cropRect.Sub(union.Min)
	for x := r.Min.X; x < r.Max.X; x++ {
		canvas.SetNRGBA(x, r.Min.Y, outline)
		canvas.SetNRGBA(x, r.Max.Y-1, outline)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		canvas.SetNRGBA(r.Min.X, y, outline)
		canvas.SetNRGBA(r.Max.X-1, y, outline)
	}
	return canvas, at
}

// RenderPreview draws the crop outline and encodes the result as PNG.
func RenderPreview(scaled image.Image, crop pixel.Region, outline color.NRGBA) (*PreviewImage, error) {
	canvas, at := DrawCropOutline(scaled, crop, outline)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	b := canvas.Bounds()
	return &PreviewImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		ScaledX:     at.X,
		ScaledY:     at.Y,
	}, nil
}
