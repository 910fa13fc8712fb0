package particles

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
)

// maxStep caps a single update so a long stall (window drag, breakpoint)
// does not fling particles across the screen.
const maxStep = 0.1

type Params struct {
	Stiffness     float64 `yaml:"stiffness"`
	Damping       float64 `yaml:"damping"`
	PointerRadius float64 `yaml:"pointer_radius"`
	PointerForce  float64 `yaml:"pointer_force"`
	Seed          int64   `yaml:"seed"`
}

func DefaultParams() Params {
	return Params{
		Stiffness:     0.01,
		Damping:       0.92,
		PointerRadius: 150,
		PointerForce:  4,
		Seed:          1,
	}
}

func (p Params) validate() error {
	if p.Stiffness < 0 {
		return fmt.Errorf("%w: stiffness %f", ErrParameterBounds, p.Stiffness)
	}
	if p.Damping <= 0 || p.Damping > 1 {
		return fmt.Errorf("%w: damping %f not in (0, 1]", ErrParameterBounds, p.Damping)
	}
	if p.PointerRadius < 0 {
		return fmt.Errorf("%w: pointer_radius %f", ErrParameterBounds, p.PointerRadius)
	}
	return nil
}

type Handle uint32

type field struct {
	w, h float64
	n    int
	pos  []float32
	vel  []float32
	home []float32
}

// Module is a handle-based particle engine. Positions and velocities are
// stored interleaved ([x0, y0, x1, y1, ...]) and exposed as views that alias
// the engine's storage.
type Module struct {
	params Params

	mu     sync.Mutex
	next   Handle
	fields map[Handle]*field
}

func Load(ctx context.Context, p Params) (*Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Module{params: p, fields: make(map[Handle]*field)}, nil
}

// Create scatters count particles over a w×h area.
func (m *Module) Create(count int, w, h float64) Handle {
	if count < 0 {
		count = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	rng := rand.New(rand.NewSource(m.params.Seed + int64(m.next)))
	f := &field{
		w:    w,
		h:    h,
		n:    count,
		pos:  make([]float32, count*2),
		vel:  make([]float32, count*2),
		home: make([]float32, count*2),
	}
	for i := 0; i < count; i++ {
		x, y := float32(rng.Float64()*w), float32(rng.Float64()*h)
		f.home[i*2], f.home[i*2+1] = x, y
		f.pos[i*2], f.pos[i*2+1] = x, y
		f.vel[i*2] = float32((rng.Float64() - 0.5) * 0.5)
		f.vel[i*2+1] = float32((rng.Float64() - 0.5) * 0.5)
	}
	m.fields[m.next] = f
	return m.next
}

// Free releases h. Views handed out earlier keep pointing at the old
// storage and must not be read. Freeing twice is a no-op.
func (m *Module) Free(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.fields, h)
}

func (m *Module) get(h Handle) (*field, error) {
	f, ok := m.fields[h]
	if !ok {
		return nil, ErrDisposed
	}
	return f, nil
}

// Update advances the field by dt seconds with the pointer at (px, py).
func (m *Module) Update(h Handle, dt, px, py float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.get(h)
	if err != nil {
		return err
	}

	dt = math.Min(math.Max(dt, 0), maxStep)
	steps := dt * 60
	damp := math.Pow(m.params.Damping, steps)
	r := m.params.PointerRadius
	r2 := r * r

	for i := 0; i < f.n; i++ {
		x, y := float64(f.pos[i*2]), float64(f.pos[i*2+1])
		vx, vy := float64(f.vel[i*2]), float64(f.vel[i*2+1])

		ax := (float64(f.home[i*2]) - x) * m.params.Stiffness
		ay := (float64(f.home[i*2+1]) - y) * m.params.Stiffness

		dx, dy := x-px, y-py
		if d2 := dx*dx + dy*dy; d2 < r2 && d2 > 1e-6 {
			d := math.Sqrt(d2)
			push := (1 - d/r) * m.params.PointerForce
			ax += dx / d * push
			ay += dy / d * push
		}

		vx = (vx + ax*steps) * damp
		vy = (vy + ay*steps) * damp
		f.vel[i*2], f.vel[i*2+1] = float32(vx), float32(vy)
		f.pos[i*2], f.pos[i*2+1] = float32(x+vx*steps), float32(y+vy*steps)
	}
	return nil
}

func (m *Module) Len(h Handle) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.get(h)
	if err != nil {
		return 0, err
	}
	return f.n, nil
}

// Positions returns a view over the live position storage, valid until the
// next Update, Resize or Free.
func (m *Module) Positions(h Handle) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.get(h)
	if err != nil {
		return nil, err
	}
	return f.pos[:f.n*2:f.n*2], nil
}

// Velocities returns a view over the live velocity storage, valid until the
// next Update, Resize or Free.
func (m *Module) Velocities(h Handle) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.get(h)
	if err != nil {
		return nil, err
	}
	return f.vel[:f.n*2:f.n*2], nil
}

// Resize rescales the field to a new area. Storage is reallocated, so any
// previously returned view is stale afterwards.
func (m *Module) Resize(h Handle, w, hgt float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.get(h)
	if err != nil {
		return err
	}

	sx, sy := float32(1), float32(1)
	if f.w > 0 {
		sx = float32(w / f.w)
	}
	if f.h > 0 {
		sy = float32(hgt / f.h)
	}

	pos := make([]float32, len(f.pos))
	home := make([]float32, len(f.home))
	vel := make([]float32, len(f.vel))
	for i := 0; i < f.n; i++ {
		pos[i*2], pos[i*2+1] = f.pos[i*2]*sx, f.pos[i*2+1]*sy
		home[i*2], home[i*2+1] = f.home[i*2]*sx, f.home[i*2+1]*sy
	}
	copy(vel, f.vel)

	f.pos, f.home, f.vel = pos, home, vel
	f.w, f.h = w, hgt
	return nil
}
