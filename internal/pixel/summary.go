package pixel

import (
	"github.com/lucasb-eyer/go-colorful"
)

// RGBAColor is an 8-bit RGBA colour.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// HSLColor is a colour in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// Summary describes a grid at a glance so a caller can sanity-check a result
// without rendering it.
type Summary struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// MeanHex is the average colour as lowercase "#rrggbb", alpha excluded.
	MeanHex string `json:"mean_hex"`

	// MeanRGBA averages each channel independently.
	MeanRGBA RGBAColor `json:"mean_rgba"`

	MeanHSL HSLColor `json:"mean_hsl"`

	// Opaque is true when the grid has pixels and every alpha sample is 255.
	Opaque bool `json:"opaque"`
}

// Summarize averages the grid's channels. An empty grid yields a zero mean
// and is not Opaque.
func Summarize(g *Grid) Summary {
	s := Summary{Width: g.Width, Height: g.Height, Opaque: true}

	var sum [Channels]uint64
	for i := 0; i+Channels <= len(g.Pix); i += Channels {
		sum[0] += uint64(g.Pix[i])
		sum[1] += uint64(g.Pix[i+1])
		sum[2] += uint64(g.Pix[i+2])
		sum[3] += uint64(g.Pix[i+3])
		if g.Pix[i+3] != 0xff {
			s.Opaque = false
		}
	}

	n := uint64(len(g.Pix) / Channels)
	if n == 0 {
		s.Opaque = false
		s.MeanHex = "#000000"
		return s
	}

	s.MeanRGBA = RGBAColor{
		R: uint8(sum[0] / n),
		G: uint8(sum[1] / n),
		B: uint8(sum[2] / n),
		A: uint8(sum[3] / n),
	}

	c := colorful.Color{
		R: float64(s.MeanRGBA.R) / 255.0,
		G: float64(s.MeanRGBA.G) / 255.0,
		B: float64(s.MeanRGBA.B) / 255.0,
	}
	h, sat, l := c.Hsl()
	s.MeanHex = c.Hex()
	s.MeanHSL = HSLColor{H: int(h), S: int(sat * 100), L: int(l * 100)}
	return s
}
