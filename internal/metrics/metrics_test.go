package metrics

import (
	"math"
	"testing"
)

func ramp(target float64, currents ...float64) []Sample {
	out := []Sample{{Time: 0}}
	for i, c := range currents {
		out = append(out, Sample{Time: float64(i+1) * 0.1, Target: target, Current: c})
	}
	return out
}

func TestOvershoot(t *testing.T) {
	m := NewOvershoot()
	got := Evaluate(ramp(100, 60, 95, 104, 101, 100), m)["overshoot"]
	if math.Abs(got-4) > 1e-9 {
		t.Errorf("expected overshoot 4, got %f", got)
	}

	got = Evaluate(ramp(100, 50, 80, 99.9), m)["overshoot"]
	if got != 0 {
		t.Errorf("expected no overshoot after reset, got %f", got)
	}
}

func TestOvershootScrollingUp(t *testing.T) {
	samples := []Sample{
		{Target: 100, Current: 100},
		{Target: 0, Current: 40},
		{Target: 0, Current: -3},
		{Target: 0, Current: 0},
	}
	if got := Evaluate(samples, NewOvershoot())["overshoot"]; math.Abs(got-3) > 1e-9 {
		t.Errorf("expected overshoot 3, got %f", got)
	}
}

func TestSettle(t *testing.T) {
	m := NewSettle(0.5)
	got := Evaluate(ramp(100, 60, 95, 99.6, 100), m)["settle_time"]
	// target changes at t=0.1, within tolerance at t=0.3
	if math.Abs(got-0.2) > 1e-9 {
		t.Errorf("expected settle time 0.2, got %f", got)
	}

	got = Evaluate(ramp(100, 10, 20), m)["settle_time"]
	if got != -1 {
		t.Errorf("expected -1 for an unsettled run, got %f", got)
	}
}

func TestMeanSpeedAndSkipRatio(t *testing.T) {
	samples := []Sample{
		{Velocity: 4},
		{Velocity: -2, Skipped: true},
		{Velocity: 0, Skipped: true},
		{Velocity: 2},
	}
	vals := Evaluate(samples, NewMeanSpeed(), NewSkipRatio())

	if vals["mean_speed"] != 2 {
		t.Errorf("expected mean speed 2, got %f", vals["mean_speed"])
	}
	if vals["skip_ratio"] != 0.5 {
		t.Errorf("expected skip ratio 0.5, got %f", vals["skip_ratio"])
	}
}

func TestEmptyRun(t *testing.T) {
	vals := Evaluate(nil, Default()...)
	if len(vals) != 4 {
		t.Fatalf("expected 4 metrics, got %d", len(vals))
	}
	for name, v := range vals {
		if v != 0 {
			t.Errorf("%s: expected 0 for an empty run, got %f", name, v)
		}
	}
}
