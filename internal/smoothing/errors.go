package smoothing

import "errors"

var (
	// ErrDisposed is returned for any call on a freed handle.
	ErrDisposed = errors.New("smoothing: handle disposed")

	// ErrUnknownEngine indicates a Params.Kind with no engine behind it.
	ErrUnknownEngine = errors.New("smoothing: unknown engine")

	// ErrParameterBounds indicates an engine parameter outside its valid range.
	ErrParameterBounds = errors.New("smoothing: parameter out of valid bounds")
)
