package frame

import "errors"

var (
	// ErrStopped is returned when starting a scheduler that already stopped.
	ErrStopped = errors.New("frame: scheduler stopped")

	// ErrMissingDependency indicates an incomplete Deps.
	ErrMissingDependency = errors.New("frame: missing dependency")
)
