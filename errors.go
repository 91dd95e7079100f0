package palquant

import "errors"

var (
	// ErrEmptyInput is returned when quantizing a Quantizer that was never fed.
	ErrEmptyInput = errors.New("palquant: no samples to quantize")
	// ErrInvalidColorCount is returned for a requested color count outside [1, MaxColors].
	// Counts are rejected, never clamped.
	ErrInvalidColorCount = errors.New("palquant: color count out of range")
	// ErrNotQuantized is returned by mapping and estimation before a successful quantize.
	ErrNotQuantized = errors.New("palquant: palette not built")
	ErrPixelLength  = errors.New("palquant: pixel buffer length is not a multiple of 4")
	ErrDimensions   = errors.New("palquant: pixel buffer does not match dimensions")
)
