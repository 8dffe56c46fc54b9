package pixel

import "errors"

// Failure kinds. Every error returned by this module for bad input wraps
// exactly one of these.
var (
	ErrInputSizeMismatch = errors.New("input size mismatch")
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrCropOutOfBounds   = errors.New("crop out of bounds")
)
