package particles

import (
	"errors"

	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/logging"
)

// Buffer is one frame's read-only view of the particle field. It aliases
// module storage and must not be kept past the frame it was returned in.
type Buffer struct {
	Positions  []float32
	Velocities []float32
	Count      int
}

// Adapter owns one particle handle for the frame loop.
type Adapter struct {
	mod *Module
	h   Handle
	log *zap.Logger
}

func NewAdapter(mod *Module, count int, w, h float64, log *zap.Logger) *Adapter {
	return &Adapter{
		mod: mod,
		h:   mod.Create(count, w, h),
		log: logging.OrNop(log).Named("particles"),
	}
}

// Step advances the simulation and re-fetches both views. ok is false once
// the handle has been disposed, which callers treat as a signal to stop.
func (a *Adapter) Step(dt, px, py float64) (Buffer, bool) {
	if err := a.mod.Update(a.h, dt, px, py); err != nil {
		return Buffer{}, a.check(err)
	}
	n, err := a.mod.Len(a.h)
	if err != nil {
		return Buffer{}, a.check(err)
	}
	pos, err := a.mod.Positions(a.h)
	if err != nil {
		return Buffer{}, a.check(err)
	}
	vel, err := a.mod.Velocities(a.h)
	if err != nil {
		return Buffer{}, a.check(err)
	}
	return Buffer{Positions: pos, Velocities: vel, Count: n}, true
}

// Resize rescales the field in place; the handle and particle count are kept.
func (a *Adapter) Resize(w, h float64) bool {
	return a.check(a.mod.Resize(a.h, w, h))
}

func (a *Adapter) Count() int {
	n, _ := a.mod.Len(a.h)
	return n
}

func (a *Adapter) Handle() Handle { return a.h }

func (a *Adapter) Dispose() {
	a.mod.Free(a.h)
}

func (a *Adapter) check(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrDisposed) {
		a.log.Debug("handle disposed, stopping")
	} else {
		a.log.Warn("particle call failed", zap.Error(err))
	}
	return false
}
