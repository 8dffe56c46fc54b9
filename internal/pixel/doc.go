// Package pixel holds the in-memory pixel representation used by the crop and
// resize pipeline, and the adapter that moves it to and from flat byte buffers.
//
// # Layout
//
// A Grid is a row-major run of RGBA samples, four bytes per pixel, with no
// padding between rows:
//
//	offset(x, y) = (y*Width + x) * Channels
//
// Samples are non-premultiplied, which is what a browser canvas hands out from
// getImageData and what image.NRGBA stores. Grid.Image exposes the same bytes
// as an *image.NRGBA without copying.
//
// # Errors
//
// The package defines the three failure kinds shared by the whole pipeline:
//   - ErrInputSizeMismatch: buffer length differs from width*height*Channels
//   - ErrInvalidDimensions: a width or height is zero, negative or too large
//   - ErrCropOutOfBounds: a crop region leaves the grid it is cut from
//
// Failures wrap one of these with the offending values, so callers test with
// errors.Is and print err.Error() for the diagnostic.
package pixel
