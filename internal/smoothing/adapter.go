package smoothing

import (
	"errors"

	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/logging"
)

// Adapter drives one smoothing handle for the frame loop. A disposed handle
// is reported as ok=false so the caller can stop quietly.
type Adapter struct {
	mod *Module
	h   Handle
	log *zap.Logger
}

func NewAdapter(mod *Module, log *zap.Logger) *Adapter {
	return &Adapter{mod: mod, h: mod.Create(), log: logging.OrNop(log).Named("smoothing")}
}

// Seed places the engine at target with zero velocity so the first tick
// renders the restored position without easing in from zero.
func (a *Adapter) Seed(target, max float64) bool {
	err := a.mod.SetMax(a.h, max)
	if err == nil {
		err = a.mod.SetTarget(a.h, target)
	}
	if err == nil {
		err = a.mod.SetCurrent(a.h, target)
	}
	return a.check(err)
}

// Frame pushes the latest target and bound, advances one tick and reads the
// smoothed position back.
func (a *Adapter) Frame(target, max float64) (current, velocity float64, ok bool) {
	err := a.mod.SetMax(a.h, max)
	if err == nil {
		err = a.mod.SetTarget(a.h, target)
	}
	if err == nil {
		err = a.mod.Tick(a.h)
	}
	if err == nil {
		current, err = a.mod.Current(a.h)
	}
	if err == nil {
		velocity, err = a.mod.Velocity(a.h)
	}
	if !a.check(err) {
		return 0, 0, false
	}
	return current, velocity, true
}

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
		a.log.Warn("smoothing call failed", zap.Error(err))
	}
	return false
}
