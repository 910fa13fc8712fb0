package particles

import "errors"

var (
	// ErrDisposed is returned for any call on a freed handle.
	ErrDisposed = errors.New("particles: handle disposed")

	// ErrParameterBounds indicates a parameter outside its valid range.
	ErrParameterBounds = errors.New("particles: parameter out of valid bounds")
)
