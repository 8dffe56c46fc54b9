// Package transform scales a pixel grid to a target size and cuts out its
// centre.
//
// CropAndResize runs in two stages. AspectScale picks an intermediate size
// with the input's aspect ratio in which one side equals the output side
// exactly; CenterCrop then positions an output-sized window in the middle of
// that intermediate grid. All arithmetic is integer: the branch between the
// two axes is decided by cross-multiplication and both divisions floor.
//
// Because the other side is floored, the intermediate grid can end up smaller
// than the output on that axis. The window then does not fit and the call
// fails with pixel.ErrCropOutOfBounds instead of clamping or reading past the
// grid. NewPlan reports the same outcome without touching any pixels. The
// Cover scaling mode rounds the free side up instead, so the window always
// fits and the excess is cropped away.
//
// Resampling is pluggable through Resampler. Backends wrap
// github.com/disintegration/imaging (the default),
// github.com/anthonynsimon/bild and golang.org/x/image/draw.
//
// Everything here is synchronous and keeps no state between calls, so
// concurrent calls are safe as long as they do not share an output grid.
package transform
