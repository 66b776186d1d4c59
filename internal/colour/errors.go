package colour

import "errors"

var (
	// ErrEmptyImage is returned when an image has no pixels.
	ErrEmptyImage = errors.New("image has no pixels")

	// ErrInvalidClusterCount is returned when k is outside [1, number of samples].
	ErrInvalidClusterCount = errors.New("invalid cluster count")

	// ErrEmptyClusterSet is returned when ranking is asked to rank nothing.
	ErrEmptyClusterSet = errors.New("empty cluster set")
)
