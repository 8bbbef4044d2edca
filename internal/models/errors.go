package models

import "errors"

var (
	// ErrConfiguration reports degenerate viewer parameters such as
	// non-positive volume extents or a non-positive window aspect.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrUnsupportedFormat reports a volume source that cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported volume format")

	// ErrGraphicsInit reports a window or graphics context failure.
	ErrGraphicsInit = errors.New("graphics initialization failed")
)
