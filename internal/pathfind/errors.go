package pathfind

import "errors"

var (
	// ErrAlreadyRunning is returned by Scheduler.Run when the loop is active.
	ErrAlreadyRunning = errors.New("scheduler already running")

	// ErrInvalidConfig is returned by New for a negative budget or tick rate.
	ErrInvalidConfig = errors.New("invalid path finder config")
)
