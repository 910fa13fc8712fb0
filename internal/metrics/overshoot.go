package metrics

import "math"

// Overshoot is the largest distance current travelled past target in the
// direction it was moving.
type Overshoot struct {
	name  string
	max   float64
	prevT float64
	dir   float64
	seen  bool
}

func NewOvershoot() *Overshoot {
	return &Overshoot{name: "overshoot"}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(s Sample) {
	if o.seen && s.Target != o.prevT {
		o.dir = math.Copysign(1, s.Target-o.prevT)
	}
	o.prevT, o.seen = s.Target, true
	if o.dir == 0 {
		return
	}
	if past := (s.Current - s.Target) * o.dir; past > o.max {
		o.max = past
	}
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() {
	*o = Overshoot{name: o.name}
}
