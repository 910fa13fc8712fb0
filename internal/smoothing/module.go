package smoothing

import (
	"context"
	"fmt"
	"sync"
)

type Kind string

const (
	KindEase   Kind = "ease"
	KindSpring Kind = "spring"
)

const DefaultEaseFactor = 0.12

// Params selects and tunes the engine behind every handle of a Module.
type Params struct {
	Kind       Kind    `yaml:"kind"`
	EaseFactor float64 `yaml:"ease_factor"`
	FPS        int     `yaml:"fps"`
	Frequency  float64 `yaml:"frequency"`
	Damping    float64 `yaml:"damping"`
}

func DefaultParams() Params {
	return Params{
		Kind:       KindEase,
		EaseFactor: DefaultEaseFactor,
		FPS:        60,
		Frequency:  6.0,
		Damping:    1.0,
	}
}

type Handle uint32

// Module is a handle-based scroll smoothing engine. Handles stay valid until
// Free; every call on a freed or unknown handle returns ErrDisposed.
type Module struct {
	params Params

	mu      sync.Mutex
	next    Handle
	engines map[Handle]engine
}

// Load validates params and returns a ready module.
func Load(ctx context.Context, p Params) (*Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Module{params: p, engines: make(map[Handle]engine)}, nil
}

func (p Params) validate() error {
	switch p.Kind {
	case KindEase:
		if p.EaseFactor <= 0 || p.EaseFactor > 1 {
			return fmt.Errorf("%w: ease_factor %f not in (0, 1]", ErrParameterBounds, p.EaseFactor)
		}
	case KindSpring:
		if p.FPS <= 0 {
			return fmt.Errorf("%w: fps must be positive, got %d", ErrParameterBounds, p.FPS)
		}
		if p.Frequency <= 0 {
			return fmt.Errorf("%w: frequency must be positive, got %f", ErrParameterBounds, p.Frequency)
		}
		if p.Damping < 0 {
			return fmt.Errorf("%w: damping must be non-negative, got %f", ErrParameterBounds, p.Damping)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEngine, p.Kind)
	}
	return nil
}

func (m *Module) Params() Params { return m.params }

func (m *Module) Create() Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	var e engine
	switch m.params.Kind {
	case KindSpring:
		e = newSpringEngine(m.params.FPS, m.params.Frequency, m.params.Damping)
	default:
		e = newEaseEngine(m.params.EaseFactor)
	}
	m.engines[m.next] = e
	return m.next
}

// Free releases h. Freeing twice is a no-op.
func (m *Module) Free(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.engines, h)
}

func (m *Module) with(h Handle, fn func(engine)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.engines[h]
	if !ok {
		return ErrDisposed
	}
	fn(e)
	return nil
}

func (m *Module) SetTarget(h Handle, v float64) error {
	return m.with(h, func(e engine) { e.setTarget(v) })
}

// SetCurrent jumps the smoothed position to v and zeroes velocity.
func (m *Module) SetCurrent(h Handle, v float64) error {
	return m.with(h, func(e engine) { e.setCurrent(v) })
}

func (m *Module) SetMax(h Handle, v float64) error {
	return m.with(h, func(e engine) { e.setMax(v) })
}

func (m *Module) Tick(h Handle) error {
	return m.with(h, func(e engine) { e.tick() })
}

func (m *Module) Current(h Handle) (float64, error) {
	var v float64
	err := m.with(h, func(e engine) { v = e.current() })
	return v, err
}

func (m *Module) Velocity(h Handle) (float64, error) {
	var v float64
	err := m.with(h, func(e engine) { v = e.velocity() })
	return v, err
}
