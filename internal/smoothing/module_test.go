package smoothing

import (
	"context"
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func load(t *testing.T, p Params) *Module {
	t.Helper()
	m, err := Load(context.Background(), p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return m
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		err  error
	}{
		{"default", DefaultParams(), nil},
		{"zero ease", Params{Kind: KindEase}, ErrParameterBounds},
		{"ease above one", Params{Kind: KindEase, EaseFactor: 1.5}, ErrParameterBounds},
		{"spring no fps", Params{Kind: KindSpring, Frequency: 5, Damping: 1}, ErrParameterBounds},
		{"spring negative damping", Params{Kind: KindSpring, FPS: 60, Frequency: 5, Damping: -1}, ErrParameterBounds},
		{"unknown", Params{Kind: "bezier"}, ErrUnknownEngine},
	}

	for _, tt := range tests {
		_, err := Load(context.Background(), tt.p)
		if tt.err == nil && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if tt.err != nil && !errors.Is(err, tt.err) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.err, err)
		}
	}
}

func TestEaseTick(t *testing.T) {
	m := load(t, DefaultParams())
	h := m.Create()
	_ = m.SetMax(h, 1000)
	_ = m.SetTarget(h, 100)
	_ = m.Tick(h)

	cur, _ := m.Current(h)
	vel, _ := m.Velocity(h)
	if math.Abs(cur-12) > 1e-9 {
		t.Errorf("expected current 12, got %f", cur)
	}
	if math.Abs(vel-12) > 1e-9 {
		t.Errorf("expected velocity 12, got %f", vel)
	}

	for i := 0; i < 200; i++ {
		_ = m.Tick(h)
	}
	cur, _ = m.Current(h)
	if math.Abs(cur-100) > 1e-6 {
		t.Errorf("expected convergence to 100, got %f", cur)
	}
}

func TestTargetClampedToMax(t *testing.T) {
	for _, p := range []Params{DefaultParams(), {Kind: KindSpring, FPS: 60, Frequency: 6, Damping: 1}} {
		m := load(t, p)
		h := m.Create()
		_ = m.SetMax(h, 300)
		_ = m.SetTarget(h, 900)
		for i := 0; i < 600; i++ {
			_ = m.Tick(h)
		}
		cur, _ := m.Current(h)
		if math.Abs(cur-300) > 0.5 {
			t.Errorf("%s: expected current near 300, got %f", p.Kind, cur)
		}
	}
}

func TestDisposedHandle(t *testing.T) {
	g := NewWithT(t)
	m := load(t, DefaultParams())
	h := m.Create()
	m.Free(h)
	m.Free(h)

	g.Expect(m.SetTarget(h, 1)).To(MatchError(ErrDisposed))
	g.Expect(m.Tick(h)).To(MatchError(ErrDisposed))
	_, err := m.Current(h)
	g.Expect(err).To(MatchError(ErrDisposed))
	g.Expect(m.SetCurrent(Handle(999), 1)).To(MatchError(ErrDisposed))
}

func TestHandlesAreIndependent(t *testing.T) {
	m := load(t, DefaultParams())
	a, b := m.Create(), m.Create()
	_ = m.SetMax(a, 100)
	_ = m.SetTarget(a, 100)
	_ = m.Tick(a)

	cur, _ := m.Current(b)
	if cur != 0 {
		t.Errorf("expected untouched handle at 0, got %f", cur)
	}
}
