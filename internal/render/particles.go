package render

import (
	"fmt"
	"math"
)

const (
	// MaxSpeed is the velocity magnitude mapped to speed 1.
	MaxSpeed = 5

	VariantGlow = "glow"
	VariantInk  = "ink"
)

// ParticleRenderer draws the particle field as point sprites.
type ParticleRenderer struct {
	dev    Device
	prog   Program
	blend  Blend
	speeds []float32
	vw, vh float64
}

// NewParticleRenderer links the particle program on dev. Shader failures
// are returned as errors wrapping ErrShaderCompile or ErrShaderLink.
func NewParticleRenderer(dev Device, variant string) (*ParticleRenderer, error) {
	blend := BlendAdditive
	switch variant {
	case VariantGlow, "":
	case VariantInk:
		blend = BlendAlpha
	default:
		return nil, fmt.Errorf("render: unknown particle variant %q", variant)
	}
	prog, err := dev.Program("particles", particleVertex, particleFragment)
	if err != nil {
		return nil, err
	}
	return &ParticleRenderer{dev: dev, prog: prog, blend: blend}, nil
}

// Resize reallocates the backing store to dpr × viewport.
func (r *ParticleRenderer) Resize(vw, vh, dpr float64) {
	r.vw, r.vh = vw, vh
	r.dev.Resize(BackingSize(vw, vh, dpr))
}

// Draw clears the surface and draws count particles. positions and
// velocities are only read during the call.
func (r *ParticleRenderer) Draw(positions, velocities []float32, count int) {
	r.speeds = Speeds(velocities, count, r.speeds)
	r.dev.Clear()
	r.dev.DrawPoints(PointPass{
		Program:    r.prog,
		Positions:  positions[:count*2],
		Speeds:     r.speeds,
		Count:      count,
		Resolution: [2]float32{float32(r.vw), float32(r.vh)},
		Blend:      r.blend,
	})
}

// Speeds writes min(|v|/MaxSpeed, 1) for each particle into dst, growing
// it when needed, and returns the filled slice.
func Speeds(velocities []float32, count int, dst []float32) []float32 {
	if cap(dst) < count {
		dst = make([]float32, count)
	}
	dst = dst[:count]
	for i := 0; i < count; i++ {
		vx, vy := float64(velocities[i*2]), float64(velocities[i*2+1])
		dst[i] = float32(math.Min(math.Sqrt(vx*vx+vy*vy)/MaxSpeed, 1))
	}
	return dst
}
