package smoothing

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// engine is the per-handle integrator. Implementations are not safe for
// concurrent use; Module serialises access.
type engine interface {
	setTarget(v float64)
	setCurrent(v float64)
	setMax(v float64)
	tick()
	current() float64
	velocity() float64
}

// easeEngine moves a fixed fraction of the remaining distance each tick.
type easeEngine struct {
	target, cur, vel, max float64
	factor                float64
}

func newEaseEngine(factor float64) *easeEngine {
	return &easeEngine{factor: factor}
}

func (e *easeEngine) setTarget(v float64) { e.target = math.Min(math.Max(v, 0), e.max) }
func (e *easeEngine) setCurrent(v float64) {
	e.cur = v
	e.vel = 0
}
func (e *easeEngine) setMax(v float64) { e.max = math.Max(v, 0) }

func (e *easeEngine) tick() {
	delta := (e.target - e.cur) * e.factor
	e.vel = delta
	e.cur += delta
}

func (e *easeEngine) current() float64  { return e.cur }
func (e *easeEngine) velocity() float64 { return e.vel }

// springEngine is a damped harmonic oscillator pulled towards the target.
// Velocity is reported in pixels per frame like the ease engine.
type springEngine struct {
	spring                harmonica.Spring
	fps                   float64
	target, cur, vel, max float64
}

func newSpringEngine(fps int, frequency, damping float64) *springEngine {
	return &springEngine{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		fps:    float64(fps),
	}
}

func (e *springEngine) setTarget(v float64) { e.target = math.Min(math.Max(v, 0), e.max) }
func (e *springEngine) setCurrent(v float64) {
	e.cur = v
	e.vel = 0
}
func (e *springEngine) setMax(v float64) { e.max = math.Max(v, 0) }

func (e *springEngine) tick() {
	e.cur, e.vel = e.spring.Update(e.cur, e.vel, e.target)
}

func (e *springEngine) current() float64  { return e.cur }
func (e *springEngine) velocity() float64 { return e.vel / e.fps }
