package render

import (
	"errors"
	"fmt"
)

var (
	// ErrShaderCompile indicates a shader stage failed to compile.
	ErrShaderCompile = errors.New("render: shader compile failed")

	// ErrShaderLink indicates a program failed to link.
	ErrShaderLink = errors.New("render: program link failed")
)

// ShaderError carries the driver info log of a failed compile or link.
type ShaderError struct {
	Program string
	Stage   string
	Log     string
	Wrapped error
}

func (e *ShaderError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("%v: %s: %s", e.Wrapped, e.Program, e.Log)
	}
	return fmt.Sprintf("%v: %s (%s): %s", e.Wrapped, e.Program, e.Stage, e.Log)
}

func (e *ShaderError) Unwrap() error {
	return e.Wrapped
}
