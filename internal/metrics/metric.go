package metrics

// Sample is the scroll state of one frame.
type Sample struct {
	Time     float64 `json:"time"`
	Target   float64 `json:"target"`
	Current  float64 `json:"current"`
	Velocity float64 `json:"velocity"`
	Skipped  bool    `json:"skipped"`
}

// Metric accumulates one figure over a run of samples.
type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Default returns the metrics recorded for every run.
func Default() []Metric {
	return []Metric{
		NewOvershoot(),
		NewSettle(SettleTolerance),
		NewMeanSpeed(),
		NewSkipRatio(),
	}
}

// Evaluate feeds samples through ms and returns their values by name.
func Evaluate(samples []Sample, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, s := range samples {
			m.Observe(s)
		}
		out[m.Name()] = m.Value()
	}
	return out
}
