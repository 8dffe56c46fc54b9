package transform

import (
	"fmt"
	"image"
	"sort"
	"strings"

	bild "github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Resampler resizes an image to exactly width x height.
type Resampler interface {
	Resize(img image.Image, width, height int) image.Image
	String() string
}

// Backend names accepted by NewResampler.
const (
	BackendImaging = "imaging"
	BackendBild    = "bild"
	BackendXDraw   = "xdraw"
)

// Filter names accepted by NewResampler. Not every backend has every filter.
const (
	FilterNearest    = "nearest"
	FilterBox        = "box"
	FilterLinear     = "linear"
	FilterCatmullRom = "catmullrom"
	FilterLanczos    = "lanczos"
)

var imagingFilters = map[string]imaging.ResampleFilter{
	FilterNearest:    imaging.NearestNeighbor,
	FilterBox:        imaging.Box,
	FilterLinear:     imaging.Linear,
	FilterCatmullRom: imaging.CatmullRom,
	FilterLanczos:    imaging.Lanczos,
}

var bildFilters = map[string]bild.ResampleFilter{
	FilterNearest:    bild.NearestNeighbor,
	FilterBox:        bild.Box,
	FilterLinear:     bild.Linear,
	FilterCatmullRom: bild.CatmullRom,
	FilterLanczos:    bild.Lanczos,
}

var xdrawFilters = map[string]draw.Interpolator{
	FilterNearest:    draw.NearestNeighbor,
	FilterLinear:     draw.BiLinear,
	FilterCatmullRom: draw.CatmullRom,
}

// DefaultResampler is bilinear resampling through imaging.
func DefaultResampler() Resampler {
	return imagingResampler{name: FilterLinear, filter: imaging.Linear}
}

// NewResampler returns the resampler for a backend and filter name. Names are
// case-insensitive.
func NewResampler(backend, filter string) (Resampler, error) {
	backend = strings.ToLower(strings.TrimSpace(backend))
	filter = strings.ToLower(strings.TrimSpace(filter))

	switch backend {
	case BackendImaging:
		f, ok := imagingFilters[filter]
		if !ok {
			return nil, unknownFilter(backend, filter, imagingFilters)
		}
		return imagingResampler{name: filter, filter: f}, nil
	case BackendBild:
		f, ok := bildFilters[filter]
		if !ok {
			return nil, unknownFilter(backend, filter, bildFilters)
		}
		return bildResampler{name: filter, filter: f}, nil
	case BackendXDraw:
		f, ok := xdrawFilters[filter]
		if !ok {
			return nil, unknownFilter(backend, filter, xdrawFilters)
		}
		return xdrawResampler{name: filter, interp: f}, nil
	default:
		return nil, fmt.Errorf("unknown resampler backend %q (want %s, %s or %s)",
			backend, BackendImaging, BackendBild, BackendXDraw)
	}
}

func unknownFilter[T any](backend, filter string, known map[string]T) error {
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Errorf("backend %s has no filter %q (have %s)", backend, filter, strings.Join(names, ", "))
}

type imagingResampler struct {
	name   string
	filter imaging.ResampleFilter
}

func (r imagingResampler) Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, r.filter)
}

func (r imagingResampler) String() string { return BackendImaging + "/" + r.name }

// bildResampler returns premultiplied *image.RGBA; pixel.FromImage converts
// it back.
type bildResampler struct {
	name   string
	filter bild.ResampleFilter
}

func (r bildResampler) Resize(img image.Image, width, height int) image.Image {
	return bild.Resize(img, width, height, r.filter)
}

func (r bildResampler) String() string { return BackendBild + "/" + r.name }

type xdrawResampler struct {
	name   string
	interp draw.Interpolator
}

func (r xdrawResampler) Resize(img image.Image, width, height int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	r.interp.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

func (r xdrawResampler) String() string { return BackendXDraw + "/" + r.name }
