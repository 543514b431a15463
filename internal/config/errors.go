package config

import "errors"

var (
	ErrInvalidLogLevel        = errors.New("invalid log level")
	ErrInvalidTickRate        = errors.New("tick rate must be positive")
	ErrInvalidIterations      = errors.New("iterations per calculation must be positive")
	ErrMissingDataPath        = errors.New("missing data path")
	ErrUnknownPlacementSource = errors.New("unknown placement source")
	ErrRenderWithoutProbe     = errors.New("render path requires a probe")
)
