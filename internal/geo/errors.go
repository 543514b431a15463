package geo

import "errors"

// Sentinel errors for obstacle map construction.
var (
	ErrEmptyLandscape = errors.New("landscape has no regions")
	ErrGridTooLarge   = errors.New("obstacle grid too large")
)
