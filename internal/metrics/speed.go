package metrics

import "math"

// MeanSpeed is the mean absolute velocity in pixels per frame.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(s Sample) {
	m.sum += math.Abs(s.Velocity)
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// SkipRatio is the fraction of frames that skipped document writes.
type SkipRatio struct {
	name    string
	skipped int
	samples int
}

func NewSkipRatio() *SkipRatio {
	return &SkipRatio{name: "skip_ratio"}
}

func (r *SkipRatio) Name() string { return r.name }

func (r *SkipRatio) Observe(s Sample) {
	r.samples++
	if s.Skipped {
		r.skipped++
	}
}

func (r *SkipRatio) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.skipped) / float64(r.samples)
}

func (r *SkipRatio) Reset() {
	r.skipped = 0
	r.samples = 0
}
