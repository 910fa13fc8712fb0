package metrics

import "math"

// SettleTolerance matches the distance below which the frame loop stops
// touching the document.
const SettleTolerance = 0.5

// Settle measures the longest time from a target change until current stays
// within tolerance of the target.
type Settle struct {
	name      string
	tolerance float64
	changedAt float64
	moving    bool
	prevT     float64
	seen      bool
	longest   float64
}

func NewSettle(tolerance float64) *Settle {
	return &Settle{name: "settle_time", tolerance: tolerance}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(x Sample) {
	if s.seen && x.Target != s.prevT {
		if !s.moving {
			s.changedAt = x.Time
		}
		s.moving = true
	}
	s.prevT, s.seen = x.Target, true

	if s.moving && math.Abs(x.Current-x.Target) <= s.tolerance {
		s.longest = math.Max(s.longest, x.Time-s.changedAt)
		s.moving = false
	}
}

// Value is the longest settle time in seconds, or -1 if the run ended
// before current settled.
func (s *Settle) Value() float64 {
	if s.moving {
		return -1
	}
	return s.longest
}

func (s *Settle) Reset() {
	*s = Settle{name: s.name, tolerance: s.tolerance}
}
